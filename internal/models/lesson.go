package models

import "time"

// Lesson represents a single lesson. ContentBlocks stays empty until the lesson is enriched.
type Lesson struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	ContentBlocks ContentBlocks `json:"contentBlocks"`
	IsEnriched    bool          `json:"isEnriched"`
	IsCompleted   bool          `json:"isCompleted"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// LessonSummary represents a lesson without its content blocks
type LessonSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsEnriched  bool   `json:"isEnriched"`
	IsCompleted bool   `json:"isCompleted"`
}

// GenerateLessonRequest represents a request to enrich a lesson with generated content
type GenerateLessonRequest struct {
	LessonID    string `json:"lessonId" example:"2f6c1f0e-5c1b-4d8e-9d55-0d6b7f3a1c21"`
	CourseTitle string `json:"courseTitle" example:"Photosynthesis"`
	ModuleTitle string `json:"moduleTitle" example:"The Light-Dependent Stage"`
	LessonTitle string `json:"lessonTitle" example:"Light Reactions"`
	Language    string `json:"language,omitempty" example:"English"`
}

// GenerateLessonResponse represents the response of lesson enrichment
type GenerateLessonResponse struct {
	LessonID string  `json:"lessonId"`
	Message  string  `json:"message"`
	Lesson   *Lesson `json:"lesson"`
}

// EnqueueLessonResponse represents the response of an asynchronous enrichment request
type EnqueueLessonResponse struct {
	LessonID string `json:"lessonId"`
	TaskID   string `json:"taskId"`
	Message  string `json:"message"`
}

// ToggleCompletionRequest represents a request to toggle lesson completion.
// A nil IsCompleted flips the current value.
type ToggleCompletionRequest struct {
	IsCompleted *bool `json:"isCompleted,omitempty" example:"true"`
}

// ToggleCompletionResponse represents the response of a completion toggle
type ToggleCompletionResponse struct {
	Message     string `json:"message"`
	IsCompleted bool   `json:"isCompleted"`
}
