package models

import "time"

// Course represents a generated course, the root of the content graph
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	ModuleIDs   []string  `json:"moduleIds"`
	OwnerID     *string   `json:"userId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CourseListItem represents a course in list responses
type CourseListItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// CourseDetailResponse represents a course with its modules and lesson summaries populated
type CourseDetailResponse struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Tags        []string               `json:"tags"`
	OwnerID     *string                `json:"userId,omitempty"`
	Modules     []ModuleDetailResponse `json:"modules"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// GenerateCourseRequest represents a request to generate a course outline
type GenerateCourseRequest struct {
	Topic  string  `json:"topic" example:"Photosynthesis"`
	UserID *string `json:"userId,omitempty" example:"user-123"`
}

// GenerateCourseResponse represents the response of course outline generation
type GenerateCourseResponse struct {
	CourseID string `json:"courseId"`
	Message  string `json:"message"`
}
