package maintenance

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-fileshare/internal/features/file"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// stubFileRepo only implements ListFilenames meaningfully; the sweeper uses
// nothing else.
type stubFileRepo struct {
	filenames []string
}

func (s *stubFileRepo) Save(ctx context.Context, f *file.File) error { return nil }
func (s *stubFileRepo) Get(ctx context.Context, id string) (*file.File, error) {
	return nil, mongo.ErrNoDocuments
}
func (s *stubFileRepo) FindByToken(ctx context.Context, token string) (*file.File, error) {
	return nil, mongo.ErrNoDocuments
}
func (s *stubFileRepo) FindAccessibleBy(ctx context.Context, userID string) ([]*file.File, error) {
	return nil, nil
}
func (s *stubFileRepo) FindUnviewedBy(ctx context.Context, userID string) ([]*file.File, error) {
	return nil, nil
}
func (s *stubFileRepo) AddRecipients(ctx context.Context, id string, userIDs []string, sharedAt time.Time) (*file.File, error) {
	return nil, mongo.ErrNoDocuments
}
func (s *stubFileRepo) SetShareToken(ctx context.Context, id string, token string) (*file.File, error) {
	return nil, mongo.ErrNoDocuments
}
func (s *stubFileRepo) AddViewer(ctx context.Context, id string, userID string) (*file.File, error) {
	return nil, mongo.ErrNoDocuments
}
func (s *stubFileRepo) ListFilenames(ctx context.Context) ([]string, error) {
	return s.filenames, nil
}
func (s *stubFileRepo) EnsureIndexes(ctx context.Context) error { return nil }

func writeBlob(t *testing.T, dir, name string, age time.Duration) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	old := time.Now().Add(-age)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("chtimes %s: %v", name, err)
	}
}

func TestSweepOnceRemovesOnlyOldOrphans(t *testing.T) {
	dir := t.TempDir()

	writeBlob(t, dir, "referenced", 24*time.Hour)
	writeBlob(t, dir, "orphan-old", 24*time.Hour)
	writeBlob(t, dir, "orphan-fresh", time.Minute)

	svc := &SweepServiceImpl{
		FileRepo:  &stubFileRepo{filenames: []string{"referenced"}},
		UploadDir: dir,
		Logger:    zap.NewNop(),
	}

	removed, err := svc.SweepOnce(context.Background())
	if err != nil {
		t.Fatalf("SweepOnce: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	if _, err := os.Stat(filepath.Join(dir, "referenced")); err != nil {
		t.Error("referenced blob must survive")
	}
	if _, err := os.Stat(filepath.Join(dir, "orphan-fresh")); err != nil {
		t.Error("fresh orphan must survive this sweep")
	}
	if _, err := os.Stat(filepath.Join(dir, "orphan-old")); !os.IsNotExist(err) {
		t.Error("old orphan must be removed")
	}
}

func TestSweepOnceMissingDir(t *testing.T) {
	svc := &SweepServiceImpl{
		FileRepo:  &stubFileRepo{},
		UploadDir: filepath.Join(t.TempDir(), "does-not-exist"),
		Logger:    zap.NewNop(),
	}

	removed, err := svc.SweepOnce(context.Background())
	if err != nil {
		t.Fatalf("SweepOnce: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}
