// Package document compiles session-plan sections into HTML and PDF
// artifacts.
package document

import "fmt"

// Section is one ordered piece of a compiled document: either markdown
// text or an image with an optional caption.
type Section interface {
	isSection()
}

// Markdown is a markdown text section.
type Markdown struct {
	Text string
}

// Image is an image section referencing a file on disk.
type Image struct {
	Path    string
	Caption string
}

func (Markdown) isSection() {}
func (Image) isSection()    {}

// SectionInput is the wire shape a section arrives in at the tool boundary.
type SectionInput struct {
	Type    string `json:"type" yaml:"type"`
	Content string `json:"content" yaml:"content"`
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`
}

// ParseSections validates wire-shaped sections and converts them into the
// Section sum type. Unknown types are rejected here, before any rendering
// logic runs.
func ParseSections(inputs []SectionInput) ([]Section, error) {
	sections := make([]Section, 0, len(inputs))
	for i, in := range inputs {
		switch in.Type {
		case "markdown":
			if in.Content == "" {
				return nil, fmt.Errorf("section %d: markdown content is empty", i+1)
			}
			sections = append(sections, Markdown{Text: in.Content})
		case "image":
			if in.Content == "" {
				return nil, fmt.Errorf("section %d: image path is empty", i+1)
			}
			sections = append(sections, Image{Path: in.Content, Caption: in.Caption})
		default:
			return nil, fmt.Errorf("section %d: unknown type %q", i+1, in.Type)
		}
	}
	return sections, nil
}
