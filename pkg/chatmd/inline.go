package chatmd

import "strings"

// specialChars are the bytes that may start an inline construct.
const specialChars = "`*_["

// inlineRule recognizes one construct at the start of s. On success it returns
// the span and the number of bytes consumed, which is always positive.
type inlineRule struct {
	name  string
	match func(s string) (Span, int, bool)
}

// inlineRules is tried in order at every scan position; the first match wins.
// Code binds tighter than emphasis, and bold is tried before italic so a
// doubled marker is never read as two single ones.
//
//nolint:gochecknoglobals // Read-only dispatch table.
var inlineRules = []inlineRule{
	{name: "code", match: matchCode},
	{name: "bold", match: matchBold},
	{name: "italic", match: matchItalic},
	{name: "link", match: matchLink},
}

// Tokenize scans text left to right and returns its inline spans.
// Every byte of text ends up in exactly one span, either as visible text or as
// a consumed marker. An unmatched marker stays literal text; since adjacent
// plain runs are merged, "a * b" yields the single span "a * b" rather than
// "a ", "*", " b". An empty text yields nil.
func Tokenize(text string) []Span {
	spans, _ := scan(text)
	return spans
}

// scanStats describes one scan. Each step consumes at least one byte, so
// steps never exceed the input length. markers counts bytes consumed by
// inline rules without appearing in span text: delimiters and link targets.
type scanStats struct {
	steps   int
	markers int
}

// scan is Tokenize that also reports scanStats.
func scan(text string) ([]Span, scanStats) {
	var (
		spans []Span
		stats scanStats
	)

	for pos := 0; pos < len(text); {
		stats.steps++
		rest := text[pos:]

		span, n, ok := matchRules(rest)
		if ok {
			spans = appendSpan(spans, span)
			stats.markers += n - len(span.Text)
			pos += n
			continue
		}

		next := strings.IndexAny(rest, specialChars)
		switch {
		case next < 0:
			spans = appendSpan(spans, Plain(rest))
			pos = len(text)
		case next == 0:
			// Unmatched marker: keep it as literal text.
			spans = appendSpan(spans, Plain(rest[:1]))
			pos++
		default:
			spans = appendSpan(spans, Plain(rest[:next]))
			pos += next
		}
	}

	return spans, stats
}

func matchRules(s string) (Span, int, bool) {
	for _, rule := range inlineRules {
		if span, n, ok := rule.match(s); ok {
			return span, n, true
		}
	}
	return Span{}, 0, false
}

// appendSpan appends span, merging it into a preceding plain run.
func appendSpan(spans []Span, span Span) []Span {
	if span.Kind == SpanText {
		if last := len(spans) - 1; last >= 0 && spans[last].Kind == SpanText {
			spans[last].Text += span.Text
			return spans
		}
	}
	return append(spans, span)
}

// matchCode matches `text` where text is non-empty and has no backtick.
func matchCode(s string) (Span, int, bool) {
	inner, n, ok := delimited(s, "`")
	if !ok {
		return Span{}, 0, false
	}
	return Code(inner), n, true
}

// matchBold matches **text** or __text__, closing at the first delimiter that
// leaves a non-empty inner text.
func matchBold(s string) (Span, int, bool) {
	for _, delim := range [...]string{"**", "__"} {
		if !strings.HasPrefix(s, delim) || len(s) < 2*len(delim)+1 {
			continue
		}
		start := len(delim)
		end := strings.Index(s[start+1:], delim)
		if end < 0 {
			continue
		}
		end += start + 1
		return Bold(s[start:end]), end + len(delim), true
	}
	return Span{}, 0, false
}

// matchItalic matches *text* or _text_ where text is non-empty and does not
// contain the delimiter. A doubled marker never matches because the inner
// text would be empty.
func matchItalic(s string) (Span, int, bool) {
	for _, delim := range [...]string{"*", "_"} {
		if inner, n, ok := delimited(s, delim); ok {
			return Italic(inner), n, true
		}
	}
	return Span{}, 0, false
}

// matchLink matches [text](href) with non-empty text and href. The text may not
// contain "]" and the href may not contain ")".
func matchLink(s string) (Span, int, bool) {
	if !strings.HasPrefix(s, "[") {
		return Span{}, 0, false
	}
	closeText := strings.IndexByte(s, ']')
	if closeText < 2 || closeText+1 >= len(s) || s[closeText+1] != '(' {
		return Span{}, 0, false
	}
	hrefStart := closeText + 2
	closeHref := strings.IndexByte(s[hrefStart:], ')')
	if closeHref < 1 {
		return Span{}, 0, false
	}
	closeHref += hrefStart
	return Link(s[1:closeText], s[hrefStart:closeHref]), closeHref + 1, true
}

// delimited matches delim, a non-empty run without delim, then delim again.
// delim must be a single byte.
func delimited(s, delim string) (string, int, bool) {
	if !strings.HasPrefix(s, delim) {
		return "", 0, false
	}
	end := strings.Index(s[1:], delim)
	if end < 1 {
		return "", 0, false
	}
	end++
	return s[1:end], end + 1, true
}
