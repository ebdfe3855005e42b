package models

// Outline represents a validated course outline returned by the generator
type Outline struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	Modules     []OutlineModule `json:"modules"`
}

// OutlineModule represents a module of an outline with its lesson titles
type OutlineModule struct {
	Title   string   `json:"title"`
	Lessons []string `json:"lessons"`
}

// LessonCount returns the total number of lesson titles across all modules
func (o *Outline) LessonCount() int {
	count := 0
	for _, m := range o.Modules {
		count += len(m.Lessons)
	}
	return count
}
