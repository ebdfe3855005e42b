// Package schema turns untrusted generator output into validated outline and content block values.
//
// Every function in this package is pure. Syntax errors and shape errors are reported the same way,
// as an *apperr.Error of kind UpstreamParse carrying the raw text.
package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/lessonforge/backend/internal/apperr"
	"github.com/lessonforge/backend/internal/models"
)

const (
	// MinMCQBlocks is the minimum number of mcq blocks an enriched lesson must carry
	MinMCQBlocks = 4
	// MinMCQOptions is the minimum number of options of a single mcq block
	MinMCQOptions = 2
	// MaxTitleLength is the longest course, module or lesson title, in characters
	MaxTitleLength = 255
)

var (
	leadingFence  = regexp.MustCompile("(?i)^\\s*```(?:json)?")
	trailingFence = regexp.MustCompile("```\\s*$")
)

// StripFences removes a leading triple-backtick fence (optionally tagged json, any case), a trailing
// fence and surrounding whitespace. Backticks inside the value are kept.
func StripFences(raw string) string {
	text := leadingFence.ReplaceAllString(raw, "")
	text = trailingFence.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// decodeFirstValue decodes the first JSON value of text into v. Text that does not start with a JSON
// object or array is treated as prose and skipped up to the first open delimiter.
// Anything after the value is ignored.
func decodeFirstValue(text string, open byte, v any) error {
	if !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "[") {
		if start := strings.IndexByte(text, open); start > 0 {
			text = text[start:]
		}
	}
	return json.NewDecoder(strings.NewReader(text)).Decode(v)
}

type outlineWire struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Tags        []*string           `json:"tags"`
	Modules     []outlineModuleWire `json:"modules"`
}

type outlineModuleWire struct {
	Title   *string   `json:"title"`
	Lessons []*string `json:"lessons"`
}

// ParseOutline validates raw generator text as a course outline.
// The outline must have a non-empty title and at least one module, and every module needs a title
// and at least one non-empty lesson title.
func ParseOutline(raw string) (*models.Outline, error) {
	var wire outlineWire
	if err := decodeFirstValue(StripFences(raw), '{', &wire); err != nil {
		return nil, apperr.UpstreamParse("outline is not valid JSON", raw, err)
	}

	outline, err := wire.toOutline()
	if err != nil {
		return nil, apperr.UpstreamParse("outline failed validation", raw, err)
	}
	return outline, nil
}

func (w *outlineWire) toOutline() (*models.Outline, error) {
	if isBlank(w.Title) {
		return nil, fmt.Errorf("title is required")
	}
	if err := checkTitleLength("title", *w.Title); err != nil {
		return nil, err
	}
	if w.Description == nil {
		return nil, fmt.Errorf("description is required")
	}
	if len(w.Modules) == 0 {
		return nil, fmt.Errorf("at least one module is required")
	}

	outline := &models.Outline{
		Title:       strings.TrimSpace(*w.Title),
		Description: strings.TrimSpace(*w.Description),
		Tags:        make([]string, 0, len(w.Tags)),
		Modules:     make([]models.OutlineModule, 0, len(w.Modules)),
	}

	for i, tag := range w.Tags {
		if isBlank(tag) {
			return nil, fmt.Errorf("tag %d is empty", i)
		}
		outline.Tags = append(outline.Tags, strings.TrimSpace(*tag))
	}

	for i, m := range w.Modules {
		if isBlank(m.Title) {
			return nil, fmt.Errorf("module %d: title is required", i)
		}
		if err := checkTitleLength(fmt.Sprintf("module %d: title", i), *m.Title); err != nil {
			return nil, err
		}
		if len(m.Lessons) == 0 {
			return nil, fmt.Errorf("module %d: at least one lesson is required", i)
		}
		module := models.OutlineModule{
			Title:   strings.TrimSpace(*m.Title),
			Lessons: make([]string, 0, len(m.Lessons)),
		}
		for j, lesson := range m.Lessons {
			if isBlank(lesson) {
				return nil, fmt.Errorf("module %d: lesson %d: title is required", i, j)
			}
			if err := checkTitleLength(fmt.Sprintf("module %d: lesson %d: title", i, j), *lesson); err != nil {
				return nil, err
			}
			module.Lessons = append(module.Lessons, strings.TrimSpace(*lesson))
		}
		outline.Modules = append(outline.Modules, module)
	}

	return outline, nil
}

type blockWire struct {
	Type        *string   `json:"type"`
	Text        *string   `json:"text"`
	Language    *string   `json:"language"`
	Query       *string   `json:"query"`
	Question    *string   `json:"question"`
	Options     []*string `json:"options"`
	Answer      *int      `json:"answer"`
	Explanation *string   `json:"explanation"`
}

// ParseContentBlocks validates raw generator text as a non-empty array of content blocks.
// One invalid block fails the whole array.
func ParseContentBlocks(raw string) (models.ContentBlocks, error) {
	var items []json.RawMessage
	if err := decodeFirstValue(StripFences(raw), '[', &items); err != nil {
		return nil, apperr.UpstreamParse("content blocks are not a valid JSON array", raw, err)
	}
	if len(items) == 0 {
		return nil, apperr.UpstreamParse("content blocks are empty", raw, nil)
	}

	blocks := make(models.ContentBlocks, 0, len(items))
	for i, item := range items {
		var wire blockWire
		if err := json.Unmarshal(item, &wire); err != nil {
			return nil, apperr.UpstreamParse("content block is malformed", raw, fmt.Errorf("block %d: %w", i, err))
		}
		block, err := wire.toBlock()
		if err != nil {
			return nil, apperr.UpstreamParse("content block failed validation", raw, fmt.Errorf("block %d: %w", i, err))
		}
		blocks = append(blocks, block)
	}

	return blocks, nil
}

func (w *blockWire) toBlock() (models.ContentBlock, error) {
	if w.Type == nil {
		return nil, fmt.Errorf("type is required")
	}

	switch models.BlockType(*w.Type) {
	case models.BlockTypeHeading:
		if isBlank(w.Text) {
			return nil, fmt.Errorf("heading: text is required")
		}
		return models.HeadingBlock{Text: *w.Text}, nil
	case models.BlockTypeParagraph:
		if isBlank(w.Text) {
			return nil, fmt.Errorf("paragraph: text is required")
		}
		return models.ParagraphBlock{Text: *w.Text}, nil
	case models.BlockTypeCode:
		if isBlank(w.Language) {
			return nil, fmt.Errorf("code: language is required")
		}
		if isBlank(w.Text) {
			return nil, fmt.Errorf("code: text is required")
		}
		return models.CodeBlock{Language: *w.Language, Text: *w.Text}, nil
	case models.BlockTypeVideo:
		if isBlank(w.Query) {
			return nil, fmt.Errorf("video: query is required")
		}
		return models.VideoBlock{Query: *w.Query}, nil
	case models.BlockTypeMCQ:
		return w.toMCQ()
	default:
		return nil, fmt.Errorf("unknown block type %q", *w.Type)
	}
}

func (w *blockWire) toMCQ() (models.ContentBlock, error) {
	if isBlank(w.Question) {
		return nil, fmt.Errorf("mcq: question is required")
	}
	if len(w.Options) < MinMCQOptions {
		return nil, fmt.Errorf("mcq: at least %d options are required, got %d", MinMCQOptions, len(w.Options))
	}
	options := make([]string, 0, len(w.Options))
	for i, opt := range w.Options {
		if isBlank(opt) {
			return nil, fmt.Errorf("mcq: option %d is empty", i)
		}
		options = append(options, *opt)
	}
	if w.Answer == nil {
		return nil, fmt.Errorf("mcq: answer is required")
	}
	if *w.Answer < 0 || *w.Answer >= len(options) {
		return nil, fmt.Errorf("mcq: answer %d is out of range [0, %d)", *w.Answer, len(options))
	}
	if isBlank(w.Explanation) {
		return nil, fmt.Errorf("mcq: explanation is required")
	}

	return models.MCQBlock{
		Question:    *w.Question,
		Options:     options,
		Answer:      *w.Answer,
		Explanation: *w.Explanation,
	}, nil
}

// CheckLessonContract verifies that blocks contain every variant at least once
// and at least MinMCQBlocks multiple choice questions
func CheckLessonContract(blocks models.ContentBlocks) error {
	counts := blocks.CountByType()
	for _, blockType := range models.AllBlockTypes {
		if counts[blockType] == 0 {
			return fmt.Errorf("missing %s block", blockType)
		}
	}
	if counts[models.BlockTypeMCQ] < MinMCQBlocks {
		return fmt.Errorf("expected at least %d mcq blocks, got %d", MinMCQBlocks, counts[models.BlockTypeMCQ])
	}
	return nil
}

// ParseLessonContent parses content blocks and enforces the enriched lesson contract
func ParseLessonContent(raw string) (models.ContentBlocks, error) {
	blocks, err := ParseContentBlocks(raw)
	if err != nil {
		return nil, err
	}
	if err := CheckLessonContract(blocks); err != nil {
		return nil, apperr.UpstreamParse("lesson content does not meet the block contract", raw, err)
	}
	return blocks, nil
}

func checkTitleLength(field, title string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(title)); n > MaxTitleLength {
		return fmt.Errorf("%s is %d characters, at most %d are allowed", field, n, MaxTitleLength)
	}
	return nil
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
