package file

import (
	"context"
	"fmt"
	"time"

	"go-fileshare/internal/common/errs"
	"go-fileshare/internal/config"
	"go-fileshare/internal/features/user"
	"go-fileshare/pkg/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ShareNotifier receives best-effort share events for live delivery.
// Implemented by the notification hub; wired in main to avoid a package cycle.
type ShareNotifier interface {
	NotifyShared(userID string, f *File)
}

// ShareLink is the response of a successful link generation.
type ShareLink struct {
	Token  string `json:"token"`
	FileID string `json:"fileId"`
}

type FileService interface {
	SaveFile(ctx context.Context, file *File) error
	ValidateUpload(fileSize int64) error
	GetAccessibleFiles(ctx context.Context, userID string) ([]*File, error)
	Share(ctx context.Context, fileID, requester string, recipientIDs []string) (*File, error)
	GenerateShareLink(ctx context.Context, fileID, requester string) (*ShareLink, error)
	ResolveByToken(ctx context.Context, token, requester string) (*File, error)
	GetForDownload(ctx context.Context, fileID, requester string) (*File, error)
	MarkViewed(ctx context.Context, fileID, userID string) error
	ListNotifications(ctx context.Context, userID string) ([]*File, error)
}

type FileServiceImpl struct {
	FileRepo       FileRepository
	UserRepo       user.UserRepository
	Policy         AccessPolicy
	MaxUploadBytes int64
	Notifier       ShareNotifier
	Logger         *zap.Logger
}

func NewFileService(fileRepo FileRepository, userRepo user.UserRepository, cfg *config.Config, notifier ShareNotifier, logger *zap.Logger) FileService {
	return &FileServiceImpl{
		FileRepo:       fileRepo,
		UserRepo:       userRepo,
		Policy:         NewAccessPolicy(cfg),
		MaxUploadBytes: cfg.MaxUploadMB << 20,
		Notifier:       notifier,
		Logger:         logger,
	}
}

func (s *FileServiceImpl) SaveFile(ctx context.Context, file *File) error {
	if file.UploadedBy == "" {
		return fmt.Errorf("uploader id is required: %w", errs.ErrValidation)
	}
	if err := s.FileRepo.Save(ctx, file); err != nil {
		return fmt.Errorf("save file record: %w", errs.ErrStore)
	}
	return nil
}

func (s *FileServiceImpl) ValidateUpload(fileSize int64) error {
	if fileSize > s.MaxUploadBytes {
		return fmt.Errorf("file too large (max %dMB): %w", s.MaxUploadBytes>>20, errs.ErrValidation)
	}
	return nil
}

func (s *FileServiceImpl) GetAccessibleFiles(ctx context.Context, userID string) ([]*File, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required: %w", errs.ErrUnauthenticated)
	}
	files, err := s.FileRepo.FindAccessibleBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", errs.ErrStore)
	}
	if files == nil {
		files = []*File{}
	}
	return files, nil
}

// Share unions recipientIDs into the file's shared_with set. Already-present
// recipients are silent no-ops; only net-new recipients get a notification.
func (s *FileServiceImpl) Share(ctx context.Context, fileID, requester string, recipientIDs []string) (*File, error) {
	if fileID == "" || requester == "" {
		return nil, fmt.Errorf("file id and owner id are required: %w", errs.ErrValidation)
	}
	if len(recipientIDs) == 0 {
		return nil, fmt.Errorf("recipient ids are required: %w", errs.ErrValidation)
	}

	f, err := s.getFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if !s.Policy.CanShare(requester, f) {
		return nil, fmt.Errorf("only the owner can share: %w", errs.ErrForbidden)
	}

	var newRecipients []string
	for _, id := range recipientIDs {
		if !f.IsSharedWith(id) {
			newRecipients = append(newRecipients, id)
		}
	}

	updated, err := s.FileRepo.AddRecipients(ctx, fileID, recipientIDs, time.Now())
	if err != nil {
		return nil, fmt.Errorf("share file: %w", errs.ErrStore)
	}

	if s.Notifier != nil {
		for _, id := range newRecipients {
			s.Notifier.NotifyShared(id, updated)
		}
	}
	s.Logger.Info("file shared",
		zap.String("file_id", fileID),
		zap.String("user_id", requester),
		zap.Int("recipients", len(recipientIDs)))

	return updated, nil
}

// GenerateShareLink mints a fresh capability token, overwriting any previous
// one; the old token becomes permanently unresolvable.
func (s *FileServiceImpl) GenerateShareLink(ctx context.Context, fileID, requester string) (*ShareLink, error) {
	if fileID == "" {
		return nil, fmt.Errorf("file id is required: %w", errs.ErrValidation)
	}

	f, err := s.getFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if !s.Policy.CanGenerateLink(requester, f) {
		return nil, fmt.Errorf("only the owner can generate a link: %w", errs.ErrForbidden)
	}

	token, err := utils.NewShareToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	updated, err := s.FileRepo.SetShareToken(ctx, fileID, token)
	if err != nil {
		return nil, fmt.Errorf("store token: %w", errs.ErrStore)
	}

	return &ShareLink{Token: updated.ShareToken, FileID: updated.ID.Hex()}, nil
}

// ResolveByToken looks a file up by exact token match. The requester must be
// a registered user; under the strict scope they must also be owner or
// recipient. Read-only, returns the full record.
func (s *FileServiceImpl) ResolveByToken(ctx context.Context, token, requester string) (*File, error) {
	if requester == "" {
		return nil, fmt.Errorf("user id is required: %w", errs.ErrUnauthenticated)
	}
	if token == "" {
		return nil, fmt.Errorf("token is required: %w", errs.ErrValidation)
	}

	if _, err := s.UserRepo.FindByID(ctx, requester); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("only registered users can access shared files: %w", errs.ErrForbidden)
		}
		return nil, fmt.Errorf("lookup user: %w", errs.ErrStore)
	}

	f, err := s.FileRepo.FindByToken(ctx, token)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("invalid share link: %w", errs.ErrNotFound)
		}
		return nil, fmt.Errorf("lookup token: %w", errs.ErrStore)
	}

	if !s.Policy.CanResolveByToken(requester, f) {
		return nil, fmt.Errorf("no access to this file: %w", errs.ErrForbidden)
	}

	return f, nil
}

// GetForDownload authorizes a download. Blob existence on disk is checked by
// the caller; absence there is NotFound, not Forbidden.
func (s *FileServiceImpl) GetForDownload(ctx context.Context, fileID, requester string) (*File, error) {
	if requester == "" {
		return nil, fmt.Errorf("user id is required: %w", errs.ErrUnauthenticated)
	}

	f, err := s.getFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if !s.Policy.CanDownload(requester, f) {
		return nil, fmt.Errorf("no permission to download this file: %w", errs.ErrForbidden)
	}

	return f, nil
}

// MarkViewed acknowledges a share notification. Idempotent.
func (s *FileServiceImpl) MarkViewed(ctx context.Context, fileID, userID string) error {
	if fileID == "" || userID == "" {
		return fmt.Errorf("file id and user id are required: %w", errs.ErrValidation)
	}

	if _, err := s.getFile(ctx, fileID); err != nil {
		return err
	}

	if _, err := s.FileRepo.AddViewer(ctx, fileID, userID); err != nil {
		return fmt.Errorf("mark viewed: %w", errs.ErrStore)
	}
	return nil
}

// ListNotifications is a derived view: files shared with the user that they
// have not yet acknowledged. Recomputed on every call, never stored.
func (s *FileServiceImpl) ListNotifications(ctx context.Context, userID string) ([]*File, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required: %w", errs.ErrUnauthenticated)
	}
	files, err := s.FileRepo.FindUnviewedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", errs.ErrStore)
	}
	if files == nil {
		files = []*File{}
	}
	return files, nil
}

func (s *FileServiceImpl) getFile(ctx context.Context, fileID string) (*File, error) {
	f, err := s.FileRepo.Get(ctx, fileID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("file %s: %w", fileID, errs.ErrNotFound)
		}
		return nil, fmt.Errorf("find file: %w", errs.ErrStore)
	}
	return f, nil
}
