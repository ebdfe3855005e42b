package models

import "time"

// Module represents a course module owning an ordered list of lessons
type Module struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	LessonIDs []string  `json:"lessonIds"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ModuleDetailResponse represents a module with its lessons in course detail responses
type ModuleDetailResponse struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Lessons []LessonSummary `json:"lessons"`
}
