package file

import (
	"context"
	"time"

	"go-fileshare/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FileRepository persists file records. All sharing mutations are single
// atomic document updates ($addToSet / $set), never read-modify-write
// overwrites, so concurrent shares cannot drop each other's additions.
type FileRepository interface {
	Save(ctx context.Context, file *File) error
	Get(ctx context.Context, id string) (*File, error)
	FindByToken(ctx context.Context, token string) (*File, error)
	FindAccessibleBy(ctx context.Context, userID string) ([]*File, error)
	FindUnviewedBy(ctx context.Context, userID string) ([]*File, error)
	AddRecipients(ctx context.Context, id string, userIDs []string, sharedAt time.Time) (*File, error)
	SetShareToken(ctx context.Context, id string, token string) (*File, error)
	AddViewer(ctx context.Context, id string, userID string) (*File, error)
	ListFilenames(ctx context.Context) ([]string, error)
	EnsureIndexes(ctx context.Context) error
}

type FileRepositoryImpl struct {
	Collection *mongo.Collection
}

func NewFileRepository(mongodb *database.MongodbDB) FileRepository {
	return &FileRepositoryImpl{
		Collection: mongodb.DB.Collection("files"),
	}
}

func (r *FileRepositoryImpl) Save(ctx context.Context, file *File) error {
	if file.ID.IsZero() {
		file.ID = primitive.NewObjectID()
	}
	if file.SharedWith == nil {
		file.SharedWith = []string{}
	}
	if file.ViewedBy == nil {
		file.ViewedBy = []string{}
	}
	_, err := r.Collection.InsertOne(ctx, file)
	return err
}

func (r *FileRepositoryImpl) Get(ctx context.Context, id string) (*File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var file File
	if err := r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *FileRepositoryImpl) FindByToken(ctx context.Context, token string) (*File, error) {
	var file File
	if err := r.Collection.FindOne(ctx, bson.M{"share_token": token}).Decode(&file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *FileRepositoryImpl) FindAccessibleBy(ctx context.Context, userID string) ([]*File, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"uploaded_by": userID},
			{"shared_with": userID},
		},
	}
	return r.find(ctx, filter)
}

func (r *FileRepositoryImpl) FindUnviewedBy(ctx context.Context, userID string) ([]*File, error) {
	filter := bson.M{
		"shared_with": userID,
		"viewed_by":   bson.M{"$ne": userID},
	}
	return r.find(ctx, filter)
}

func (r *FileRepositoryImpl) find(ctx context.Context, filter bson.M) ([]*File, error) {
	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var files []*File
	if err := cursor.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// AddRecipients unions userIDs into shared_with and stamps shared_at,
// returning the updated record.
func (r *FileRepositoryImpl) AddRecipients(ctx context.Context, id string, userIDs []string, sharedAt time.Time) (*File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	update := bson.M{
		"$addToSet": bson.M{"shared_with": bson.M{"$each": userIDs}},
		"$set":      bson.M{"shared_at": sharedAt},
	}
	return r.findOneAndUpdate(ctx, oid, update)
}

// SetShareToken overwrites any previous token, permanently invalidating it.
func (r *FileRepositoryImpl) SetShareToken(ctx context.Context, id string, token string) (*File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	update := bson.M{"$set": bson.M{"share_token": token}}
	return r.findOneAndUpdate(ctx, oid, update)
}

// AddViewer records a share-notification acknowledgement; repeats are no-ops.
func (r *FileRepositoryImpl) AddViewer(ctx context.Context, id string, userID string) (*File, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}

	update := bson.M{"$addToSet": bson.M{"viewed_by": userID}}
	return r.findOneAndUpdate(ctx, oid, update)
}

func (r *FileRepositoryImpl) findOneAndUpdate(ctx context.Context, oid primitive.ObjectID, update bson.M) (*File, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var file File
	if err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&file); err != nil {
		return nil, err
	}
	return &file, nil
}

// ListFilenames returns every stored disk name; used by the orphan sweeper.
func (r *FileRepositoryImpl) ListFilenames(ctx context.Context) ([]string, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"filename": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Filename string `bson:"filename"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Filename)
	}
	return names, nil
}

func (r *FileRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "share_token", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{Keys: bson.D{{Key: "uploaded_by", Value: 1}}},
		{Keys: bson.D{{Key: "shared_with", Value: 1}}},
	})
	return err
}
