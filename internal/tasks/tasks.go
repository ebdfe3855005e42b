// Package tasks defines the asynq tasks of the background enrichment worker.
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TypeEnrichLesson generates content blocks for one lesson
	TypeEnrichLesson = "lesson:enrich"
	// QueueEnrichment is the queue served by the enrichment worker
	QueueEnrichment = "enrichment"

	enrichLessonTimeout = 2 * time.Minute
)

// ErrAlreadyQueued is returned when an enrichment task for the lesson is already pending or running
var ErrAlreadyQueued = errors.New("enrichment task already queued")

// EnrichLessonPayload is the payload of a TypeEnrichLesson task
type EnrichLessonPayload struct {
	LessonID    string `json:"lessonId"`
	CourseTitle string `json:"courseTitle"`
	ModuleTitle string `json:"moduleTitle"`
	LessonTitle string `json:"lessonTitle"`
	Language    string `json:"language"`
}

// EnrichLessonTaskID returns the task ID that keeps a single queued enrichment per lesson
func EnrichLessonTaskID(lessonID string) string {
	return TypeEnrichLesson + ":" + lessonID
}

// NewEnrichLessonTask builds an enrichment task. Generation failures are not retried.
func NewEnrichLessonTask(payload EnrichLessonPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode enrich lesson payload: %w", err)
	}

	return asynq.NewTask(TypeEnrichLesson, data,
		asynq.TaskID(EnrichLessonTaskID(payload.LessonID)),
		asynq.Queue(QueueEnrichment),
		asynq.MaxRetry(0),
		asynq.Timeout(enrichLessonTimeout),
	), nil
}

// ParseEnrichLessonPayload decodes the payload of an enrichment task
func ParseEnrichLessonPayload(task *asynq.Task) (EnrichLessonPayload, error) {
	var payload EnrichLessonPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("failed to decode enrich lesson payload: %w", err)
	}
	return payload, nil
}

// TaskEnqueuer is implemented by *asynq.Client
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskInspector is implemented by *asynq.Inspector
type TaskInspector interface {
	GetTaskInfo(queue, id string) (*asynq.TaskInfo, error)
	DeleteTask(queue, id string) error
}

type enrichmentQueue struct {
	client    TaskEnqueuer
	inspector TaskInspector
}

// NewEnrichmentQueue creates a queue that schedules lesson enrichment tasks.
// inspector is used to clear finished tasks that still hold a lesson's task ID.
func NewEnrichmentQueue(client TaskEnqueuer, inspector TaskInspector) *enrichmentQueue {
	return &enrichmentQueue{
		client:    client,
		inspector: inspector,
	}
}

// EnqueueEnrichLesson schedules enrichment of a lesson and returns the task ID.
// A failed or completed task for the same lesson is replaced; a pending or running one is not.
func (q *enrichmentQueue) EnqueueEnrichLesson(ctx context.Context, payload EnrichLessonPayload) (string, error) {
	task, err := NewEnrichLessonTask(payload)
	if err != nil {
		return "", err
	}

	info, err := q.client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		if err := q.clearFinished(EnrichLessonTaskID(payload.LessonID)); err != nil {
			return "", err
		}
		info, err = q.client.EnqueueContext(ctx, task)
	}
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return "", ErrAlreadyQueued
	}
	if err != nil {
		return "", fmt.Errorf("failed to enqueue enrich lesson task: %w", err)
	}

	return info.ID, nil
}

// clearFinished deletes the task holding id when it is archived or completed.
// It returns ErrAlreadyQueued when the task is still waiting or running.
func (q *enrichmentQueue) clearFinished(id string) error {
	if q.inspector == nil {
		return ErrAlreadyQueued
	}

	existing, err := q.inspector.GetTaskInfo(QueueEnrichment, id)
	if errors.Is(err, asynq.ErrTaskNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to inspect enrich lesson task: %w", err)
	}

	switch existing.State {
	case asynq.TaskStateArchived, asynq.TaskStateCompleted:
		if err := q.inspector.DeleteTask(QueueEnrichment, id); err != nil && !errors.Is(err, asynq.ErrTaskNotFound) {
			return fmt.Errorf("failed to delete finished enrich lesson task: %w", err)
		}
		return nil
	default:
		return ErrAlreadyQueued
	}
}
