package chatmd

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ClassifyLine turns one ordinary line into a block. It reports false only for
// a bare fence marker, which Split never hands to the classifier.
//
// Precedence, first match wins:
//
//	"### ", "## ", "# "      heading 3, 2, 1
//	"---", "***", "___"      horizontal rule (whole line)
//	"> "                     blockquote
//	2+ spaces or a tab, -/*  nested list item
//	"- ", "* "               list item
//	digits ". "              ordered list item
//	whitespace only          blank
//	anything else            paragraph
//
// Indentation is tested before the flat list marker so an indented item is
// never mistaken for a top-level one.
func ClassifyLine(line string) (Block, bool) {
	if _, fence := openingFence(line); fence {
		return Block{}, false
	}

	switch {
	case strings.HasPrefix(line, "### "):
		return heading(3, line[4:]), true
	case strings.HasPrefix(line, "## "):
		return heading(2, line[3:]), true
	case strings.HasPrefix(line, "# "):
		return heading(1, line[2:]), true
	case line == "---" || line == "***" || line == "___":
		return Block{Kind: BlockHorizontalRule}, true
	case strings.HasPrefix(line, "> "):
		return Block{Kind: BlockBlockquote, Spans: Tokenize(line[2:])}, true
	}

	if rest, ok := nestedItem(line); ok {
		return Block{Kind: BlockListItem, Nested: true, Spans: Tokenize(rest)}, true
	}
	if rest, ok := listMarker(line); ok {
		return Block{Kind: BlockListItem, Spans: Tokenize(rest)}, true
	}
	if index, rest, ok := orderedItem(line); ok {
		return Block{Kind: BlockListItem, Ordered: true, Index: index, Spans: Tokenize(rest)}, true
	}

	if strings.TrimSpace(line) == "" {
		return Block{Kind: BlockBlank}, true
	}
	return Block{Kind: BlockParagraph, Spans: Tokenize(line)}, true
}

func heading(level int, text string) Block {
	return Block{Kind: BlockHeading, Level: level, Spans: Tokenize(text)}
}

// listMarker matches "-" or "*" at column 0 followed by one whitespace rune.
func listMarker(line string) (string, bool) {
	if line == "" || (line[0] != '-' && line[0] != '*') {
		return "", false
	}
	return afterSpace(line[1:])
}

// nestedItem matches two or more leading whitespace runes, or a single tab,
// followed by a list marker.
func nestedItem(line string) (string, bool) {
	indent := 0
	pos := 0
	for pos < len(line) {
		r, size := utf8.DecodeRuneInString(line[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		indent++
		pos += size
	}
	if indent < 2 && !(indent == 1 && line[0] == '\t') {
		return "", false
	}
	return listMarker(line[pos:])
}

// orderedItem matches one or more ASCII digits, a dot and one whitespace rune.
func orderedItem(line string) (index, rest string, ok bool) {
	n := 0
	for n < len(line) && '0' <= line[n] && line[n] <= '9' {
		n++
	}
	if n == 0 || n >= len(line) || line[n] != '.' {
		return "", "", false
	}
	rest, ok = afterSpace(line[n+1:])
	if !ok {
		return "", "", false
	}
	return line[:n], rest, true
}

// afterSpace consumes exactly one leading whitespace rune.
func afterSpace(s string) (string, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || !unicode.IsSpace(r) {
		return "", false
	}
	return s[size:], true
}
