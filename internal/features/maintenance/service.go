package maintenance

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go-fileshare/internal/config"
	"go-fileshare/internal/features/file"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SweepService periodically deletes blobs in the upload directory that have
// no matching file record. Blobs are write-once, so anything unreferenced is
// garbage (e.g. a record insert failed after the blob landed).
type SweepService interface {
	Start(ctx context.Context) error
	Stop() error
	SweepOnce(ctx context.Context) (int, error)
}

type SweepServiceImpl struct {
	FileRepo  file.FileRepository
	UploadDir string
	Schedule  string
	Logger    *zap.Logger

	scheduler *cron.Cron
}

func NewSweepService(fileRepo file.FileRepository, cfg *config.Config, logger *zap.Logger) SweepService {
	return &SweepServiceImpl{
		FileRepo:  fileRepo,
		UploadDir: cfg.FSPath,
		Schedule:  cfg.SweepSchedule,
		Logger:    logger,
	}
}

func (s *SweepServiceImpl) Start(ctx context.Context) error {
	s.scheduler = cron.New()
	_, err := s.scheduler.AddFunc(s.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		removed, err := s.SweepOnce(ctx)
		if err != nil {
			s.Logger.Warn("blob sweep failed", zap.Error(err))
			return
		}
		if removed > 0 {
			s.Logger.Info("blob sweep removed orphans", zap.Int("count", removed))
		}
	})
	if err != nil {
		return err
	}
	s.scheduler.Start()
	return nil
}

func (s *SweepServiceImpl) Stop() error {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	return nil
}

// SweepOnce removes unreferenced blobs and returns how many were deleted.
func (s *SweepServiceImpl) SweepOnce(ctx context.Context) (int, error) {
	names, err := s.FileRepo.ListFilenames(ctx)
	if err != nil {
		return 0, err
	}

	referenced := make(map[string]struct{}, len(names))
	for _, n := range names {
		referenced[n] = struct{}{}
	}

	entries, err := os.ReadDir(s.UploadDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := referenced[entry.Name()]; ok {
			continue
		}
		// Skip very fresh blobs: the upload may still be writing its record.
		if info, err := entry.Info(); err == nil && time.Since(info.ModTime()) < time.Hour {
			continue
		}
		if err := os.Remove(filepath.Join(s.UploadDir, entry.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}
