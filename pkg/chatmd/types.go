// Package chatmd renders the constrained markdown subset used by assistant chat
// answers into an ordered list of display blocks.
//
// The renderer is line oriented: fenced code regions are cut out first, every
// other line is classified into exactly one block, and the text that remains
// after the block marker is scanned for inline spans. Rendering never fails;
// markup that does not match degrades to literal text.
package chatmd

import "fmt"

// BlockKind classifies a display block.
type BlockKind uint8

// Block kinds in the order they are documented.
const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockHorizontalRule
	BlockBlockquote
	BlockListItem
	BlockBlank
	BlockCodeBlock
)

//nolint:gochecknoglobals // Read-only lookup table.
var blockKindNames = [...]string{
	BlockParagraph:      "paragraph",
	BlockHeading:        "heading",
	BlockHorizontalRule: "rule",
	BlockBlockquote:     "blockquote",
	BlockListItem:       "list_item",
	BlockBlank:          "blank",
	BlockCodeBlock:      "code_block",
}

func (k BlockKind) String() string {
	if int(k) < len(blockKindNames) {
		return blockKindNames[k]
	}
	return fmt.Sprintf("BlockKind(%d)", k)
}

// MarshalText encodes the kind by name.
func (k BlockKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name produced by MarshalText.
func (k *BlockKind) UnmarshalText(text []byte) error {
	for i, name := range blockKindNames {
		if name == string(text) {
			*k = BlockKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown block kind %q", text)
}

// SpanKind classifies an inline span.
type SpanKind uint8

// Span kinds.
const (
	SpanText SpanKind = iota
	SpanCode
	SpanBold
	SpanItalic
	SpanLink
)

//nolint:gochecknoglobals // Read-only lookup table.
var spanKindNames = [...]string{
	SpanText:   "text",
	SpanCode:   "code",
	SpanBold:   "bold",
	SpanItalic: "italic",
	SpanLink:   "link",
}

func (k SpanKind) String() string {
	if int(k) < len(spanKindNames) {
		return spanKindNames[k]
	}
	return fmt.Sprintf("SpanKind(%d)", k)
}

// MarshalText encodes the kind by name.
func (k SpanKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name produced by MarshalText.
func (k *SpanKind) UnmarshalText(text []byte) error {
	for i, name := range spanKindNames {
		if name == string(text) {
			*k = SpanKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown span kind %q", text)
}

// Span is one inline run of a block's content.
// Text holds the visible text for every kind; Href is set only for links.
type Span struct {
	Kind SpanKind `json:"kind"`
	Text string   `json:"text"`
	Href string   `json:"href,omitempty"`
}

// Plain returns a Text span.
func Plain(text string) Span { return Span{Kind: SpanText, Text: text} }

// Code returns an inline code span.
func Code(text string) Span { return Span{Kind: SpanCode, Text: text} }

// Bold returns a bold span.
func Bold(text string) Span { return Span{Kind: SpanBold, Text: text} }

// Italic returns an italic span.
func Italic(text string) Span { return Span{Kind: SpanItalic, Text: text} }

// Link returns a link span.
func Link(text, href string) Span { return Span{Kind: SpanLink, Text: text, Href: href} }

// Block is one display block. Which fields are meaningful depends on Kind:
//
//	Heading        Level (1..3), Spans
//	Blockquote     Spans
//	ListItem       Ordered, Index (ordered only), Nested, Spans
//	Paragraph      Spans
//	CodeBlock      Language, Body
//	HorizontalRule none
//	Blank          none
//
// Line is the 1-based source line the block starts on.
type Block struct {
	Kind     BlockKind `json:"kind"`
	Line     int       `json:"line"`
	Level    int       `json:"level,omitempty"`
	Ordered  bool      `json:"ordered,omitempty"`
	Index    string    `json:"index,omitempty"`
	Nested   bool      `json:"nested,omitempty"`
	Spans    []Span    `json:"spans,omitempty"`
	Language string    `json:"language,omitempty"`
	Body     string    `json:"body,omitempty"`
}

// Text concatenates the visible text of the block's spans.
// For code blocks it returns the body.
func (b Block) Text() string {
	if b.Kind == BlockCodeBlock {
		return b.Body
	}
	return SpansText(b.Spans)
}

// SpansText concatenates the visible text of spans.
func SpansText(spans []Span) string {
	switch len(spans) {
	case 0:
		return ""
	case 1:
		return spans[0].Text
	}
	n := 0
	for _, s := range spans {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range spans {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}
