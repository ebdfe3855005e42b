package services

import (
	"context"
	"time"

	"github.com/lessonforge/backend/internal/apperr"
	"github.com/lessonforge/backend/internal/models"
	"go.uber.org/zap"
)

// OrphanAuditRepository is the interface that wraps read-only graph consistency queries.
type OrphanAuditRepository interface {
	CountOrphanModules(ctx context.Context) (int, error)
	CountOrphanLessons(ctx context.Context) (int, error)
}

type auditService struct {
	repo   OrphanAuditRepository
	logger *zap.Logger
}

// NewAuditService creates a new graph audit service
func NewAuditService(repo OrphanAuditRepository, logger *zap.Logger) *auditService {
	return &auditService{
		repo:   repo,
		logger: logger,
	}
}

// RunOrphanAudit counts modules and lessons unreachable from any course and logs the result.
// It never deletes anything.
func (s *auditService) RunOrphanAudit(ctx context.Context) (*models.OrphanReport, error) {
	modules, err := s.repo.CountOrphanModules(ctx)
	if err != nil {
		s.logger.Error("failed to count orphan modules", zap.Error(err))
		return nil, apperr.Persistence("failed to audit modules", err)
	}

	lessons, err := s.repo.CountOrphanLessons(ctx)
	if err != nil {
		s.logger.Error("failed to count orphan lessons", zap.Error(err))
		return nil, apperr.Persistence("failed to audit lessons", err)
	}

	report := &models.OrphanReport{
		OrphanModules: modules,
		OrphanLessons: lessons,
		CheckedAt:     time.Now().UTC(),
	}

	if modules > 0 || lessons > 0 {
		s.logger.Warn("orphan rows found in content graph",
			zap.Int("orphan_modules", modules),
			zap.Int("orphan_lessons", lessons),
		)
	} else {
		s.logger.Info("content graph audit clean")
	}

	return report, nil
}
