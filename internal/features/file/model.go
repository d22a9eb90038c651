package file

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// File is the central record: upload metadata plus sharing state.
// shared_with and viewed_by are sets (each id at most once); they only grow,
// there is no unshare path.
type File struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Filename     string             `json:"filename" bson:"filename"` // opaque disk name
	OriginalName string             `json:"original_name" bson:"original_name"`
	Size         int64              `json:"size" bson:"size"`
	MimeType     string             `json:"mime_type" bson:"mime_type"`
	UploadedBy   string             `json:"uploaded_by" bson:"uploaded_by"`
	SharedWith   []string           `json:"shared_with" bson:"shared_with"`
	ShareToken   string             `json:"share_token,omitempty" bson:"share_token,omitempty"`
	SharedAt     *time.Time         `json:"shared_at,omitempty" bson:"shared_at,omitempty"`
	ViewedBy     []string           `json:"viewed_by" bson:"viewed_by"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}

// IsOwner reports whether userID created this file.
func (f *File) IsOwner(userID string) bool {
	return f.UploadedBy == userID
}

// IsSharedWith reports whether userID is a share recipient.
func (f *File) IsSharedWith(userID string) bool {
	for _, id := range f.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}
