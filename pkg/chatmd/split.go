package chatmd

import "strings"

const fenceMarker = "```"

// Region is a contiguous part of a document: either a fenced code block or a
// run of ordinary lines.
type Region struct {
	// Code reports whether this is a fenced code region.
	Code bool

	// StartLine is the 1-based line of the first line in the region
	// (the opening fence for code regions).
	StartLine int

	// Lines holds the ordinary lines of a text region, without terminators.
	Lines []string

	// Language is the tag written after the opening fence, empty if none.
	Language string

	// Body is the text between the fences with surrounding whitespace trimmed.
	Body string

	// Closed is false when the input ended before a closing fence.
	Closed bool
}

// Split partitions src into code and text regions in document order.
//
// A fence opens on a line that starts with three backticks, optionally
// followed by a language tag of word characters, with nothing but whitespace
// after it. The body begins on the next line and ends at the next three
// backticks anywhere, even mid-line; text resumes right after them. A fence
// that never closes runs to the end of input. Text between fences that is
// only whitespace produces no region.
func Split(src string) []Region {
	var regions []Region
	pos, line := 0, 1 // pos is at the start of line number line, or mid-line after a closing fence

	for pos < len(src) {
		start, bodyStart, lang, ok := nextFence(src, pos)
		if !ok {
			regions = appendText(regions, src[pos:], line)
			break
		}
		regions = appendText(regions, src[pos:start], line)
		line += strings.Count(src[pos:start], "\n")

		code := Region{Code: true, StartLine: line, Language: lang}
		end := strings.Index(src[bodyStart:], fenceMarker)
		if end < 0 {
			code.Body = strings.TrimSpace(src[bodyStart:])
			regions = append(regions, code)
			break
		}
		end += bodyStart
		code.Body = strings.TrimSpace(src[bodyStart:end])
		code.Closed = true
		regions = append(regions, code)

		pos = end + len(fenceMarker)
		line += strings.Count(src[start:pos], "\n")
	}

	return regions
}

// nextFence finds the first opening fence on a line starting at or after pos.
// It returns the fence offset, the offset where its body begins and its tag.
func nextFence(src string, pos int) (start, bodyStart int, lang string, ok bool) {
	if pos > 0 && src[pos-1] != '\n' {
		nl := strings.IndexByte(src[pos:], '\n')
		if nl < 0 {
			return 0, 0, "", false
		}
		pos += nl + 1
	}

	for pos < len(src) {
		lineEnd := len(src)
		next := len(src)
		if nl := strings.IndexByte(src[pos:], '\n'); nl >= 0 {
			lineEnd = pos + nl
			next = lineEnd + 1
		}
		if tag, isFence := openingFence(src[pos:lineEnd]); isFence {
			return pos, next, tag, true
		}
		pos = next
	}
	return 0, 0, "", false
}

// appendText adds a text region for text starting on line, unless text is
// only whitespace.
func appendText(regions []Region, text string, line int) []Region {
	if strings.TrimSpace(text) == "" {
		return regions
	}
	return append(regions, Region{StartLine: line, Lines: splitLines(text)})
}

// splitLines splits src on "\n". A terminating newline ends the last line
// rather than starting an empty one.
func splitLines(src string) []string {
	if src == "" {
		return nil
	}
	lines := strings.Split(src, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// openingFence reports whether line opens a code fence and returns its tag.
func openingFence(line string) (string, bool) {
	if !strings.HasPrefix(line, fenceMarker) {
		return "", false
	}
	rest := line[len(fenceMarker):]
	n := 0
	for n < len(rest) && isWordByte(rest[n]) {
		n++
	}
	if strings.TrimSpace(rest[n:]) != "" {
		return "", false
	}
	return rest[:n], true
}

func isWordByte(c byte) bool {
	return c == '_' ||
		('0' <= c && c <= '9') ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z')
}
