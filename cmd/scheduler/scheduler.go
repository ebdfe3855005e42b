package main

import (
	"context"
	"fmt"
	"time"

	"github.com/lessonforge/backend/internal/models"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const auditTimeout = time.Minute

// OrphanAuditor defines the consistency check run on a schedule
type OrphanAuditor interface {
	// RunOrphanAudit counts modules and lessons no longer referenced by any parent
	RunOrphanAudit(ctx context.Context) (*models.OrphanReport, error)
}

// Scheduler runs periodic maintenance jobs
type Scheduler struct {
	cron    *cron.Cron
	logger  *zap.Logger
	auditor OrphanAuditor
}

// NewScheduler creates a scheduler that runs the orphan audit on the given cron spec
func NewScheduler(logger *zap.Logger, auditor OrphanAuditor, auditSpec string) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger,
		auditor: auditor,
	}

	if _, err := s.cron.AddFunc(auditSpec, s.runOrphanAudit); err != nil {
		return nil, fmt.Errorf("invalid orphan audit schedule %q: %w", auditSpec, err)
	}

	return s, nil
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) runOrphanAudit() {
	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	report, err := s.auditor.RunOrphanAudit(ctx)
	if err != nil {
		s.logger.Error("Orphan audit failed", zap.Error(err))
		return
	}

	s.logger.Info("Orphan audit finished",
		zap.Int("orphan_modules", report.OrphanModules),
		zap.Int("orphan_lessons", report.OrphanLessons),
	)
}
