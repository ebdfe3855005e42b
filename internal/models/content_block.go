package models

import (
	"encoding/json"
	"fmt"
)

// BlockType represents the type tag of a content block
type BlockType string

const (
	BlockTypeHeading   BlockType = "heading"
	BlockTypeParagraph BlockType = "paragraph"
	BlockTypeCode      BlockType = "code"
	BlockTypeVideo     BlockType = "video"
	BlockTypeMCQ       BlockType = "mcq"
)

// AllBlockTypes lists every content block variant in canonical order
var AllBlockTypes = []BlockType{
	BlockTypeHeading,
	BlockTypeParagraph,
	BlockTypeCode,
	BlockTypeVideo,
	BlockTypeMCQ,
}

// ContentBlock is a closed union of lesson content variants.
// Only the block types declared in this package implement it.
type ContentBlock interface {
	Type() BlockType
	contentBlock()
}

// HeadingBlock is a section heading
type HeadingBlock struct {
	Text string `json:"text"`
}

// ParagraphBlock is a paragraph of explanation
type ParagraphBlock struct {
	Text string `json:"text"`
}

// CodeBlock is a code sample in a given programming language
type CodeBlock struct {
	Language string `json:"language"`
	Text     string `json:"text"`
}

// VideoBlock holds a video search query, resolved to a video id by the client
type VideoBlock struct {
	Query string `json:"query"`
}

// MCQBlock is a multiple choice question. Answer is a zero-based index into Options.
type MCQBlock struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      int      `json:"answer"`
	Explanation string   `json:"explanation"`
}

func (HeadingBlock) Type() BlockType   { return BlockTypeHeading }
func (ParagraphBlock) Type() BlockType { return BlockTypeParagraph }
func (CodeBlock) Type() BlockType      { return BlockTypeCode }
func (VideoBlock) Type() BlockType     { return BlockTypeVideo }
func (MCQBlock) Type() BlockType       { return BlockTypeMCQ }

func (HeadingBlock) contentBlock()   {}
func (ParagraphBlock) contentBlock() {}
func (CodeBlock) contentBlock()      {}
func (VideoBlock) contentBlock()     {}
func (MCQBlock) contentBlock()       {}

func (b HeadingBlock) MarshalJSON() ([]byte, error) {
	type alias HeadingBlock
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		alias
	}{BlockTypeHeading, alias(b)})
}

func (b ParagraphBlock) MarshalJSON() ([]byte, error) {
	type alias ParagraphBlock
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		alias
	}{BlockTypeParagraph, alias(b)})
}

func (b CodeBlock) MarshalJSON() ([]byte, error) {
	type alias CodeBlock
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		alias
	}{BlockTypeCode, alias(b)})
}

func (b VideoBlock) MarshalJSON() ([]byte, error) {
	type alias VideoBlock
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		alias
	}{BlockTypeVideo, alias(b)})
}

func (b MCQBlock) MarshalJSON() ([]byte, error) {
	type alias MCQBlock
	return json.Marshal(struct {
		Type BlockType `json:"type"`
		alias
	}{BlockTypeMCQ, alias(b)})
}

// ContentBlocks is an ordered sequence of content blocks stored as a JSON array
type ContentBlocks []ContentBlock

// MarshalJSON encodes a nil sequence as an empty array
func (c ContentBlocks) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]ContentBlock(c))
}

// UnmarshalJSON decodes stored blocks by their type tag.
// Unknown tags are rejected; field level validation of model output lives in the schema package.
func (c *ContentBlocks) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	blocks := make(ContentBlocks, 0, len(raw))
	for i, item := range raw {
		block, err := DecodeContentBlock(item)
		if err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		blocks = append(blocks, block)
	}
	*c = blocks
	return nil
}

// CountByType returns the number of blocks of each type
func (c ContentBlocks) CountByType() map[BlockType]int {
	counts := make(map[BlockType]int, len(AllBlockTypes))
	for _, b := range c {
		counts[b.Type()]++
	}
	return counts
}

// DecodeContentBlock decodes a single tagged block
func DecodeContentBlock(data []byte) (ContentBlock, error) {
	var probe struct {
		Type BlockType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	switch probe.Type {
	case BlockTypeHeading:
		var b HeadingBlock
		err := json.Unmarshal(data, &b)
		return b, err
	case BlockTypeParagraph:
		var b ParagraphBlock
		err := json.Unmarshal(data, &b)
		return b, err
	case BlockTypeCode:
		var b CodeBlock
		err := json.Unmarshal(data, &b)
		return b, err
	case BlockTypeVideo:
		var b VideoBlock
		err := json.Unmarshal(data, &b)
		return b, err
	case BlockTypeMCQ:
		var b MCQBlock
		err := json.Unmarshal(data, &b)
		return b, err
	default:
		return nil, fmt.Errorf("unknown block type %q", probe.Type)
	}
}
