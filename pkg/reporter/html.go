package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/Torykoon/Safeagent/pkg/chatmd"
	"github.com/Torykoon/Safeagent/pkg/runner"
)

// HTMLReporter writes each document as an <article> fragment. Headings are
// shifted down one level so a page title can keep <h1>.
type HTMLReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter(opts Options) *HTMLReporter {
	return &HTMLReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *HTMLReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	for _, doc := range result.Documents {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("report cancelled: %w", err)
		}

		r.write(`<article class="chat-answer" data-path="` + escape(doc.Path) + `"`)
		if doc.Error != nil {
			r.write(` data-error="` + escape(doc.Error.Error()) + `"></article>`)
			r.newline()
			continue
		}
		r.write(">")
		r.newline()
		r.blocks(doc.Blocks)
		r.write("</article>")
		r.newline()
	}

	return reportedBlocks(result), nil
}

// blocks writes blocks, wrapping runs of list items in <ul> or <ol>.
func (r *HTMLReporter) blocks(blocks []chatmd.Block) {
	list := "" // "ul", "ol" or "" when no list is open.

	for _, block := range blocks {
		want := ""
		if block.Kind == chatmd.BlockListItem {
			want = "ul"
			if block.Ordered {
				want = "ol"
			}
		}
		if list != want {
			if list != "" {
				r.write("</" + list + ">")
				r.newline()
			}
			if want != "" {
				r.write("<" + want + ">")
				r.newline()
			}
			list = want
		}
		r.block(block)
		r.newline()
	}

	if list != "" {
		r.write("</" + list + ">")
		r.newline()
	}
}

func (r *HTMLReporter) block(block chatmd.Block) {
	switch block.Kind {
	case chatmd.BlockHeading:
		tag := "h" + strconv.Itoa(block.Level+1)
		r.wrap(tag, "", block.Spans)
	case chatmd.BlockHorizontalRule:
		r.write("<hr>")
	case chatmd.BlockBlockquote:
		r.wrap("blockquote", "", block.Spans)
	case chatmd.BlockListItem:
		attrs := ""
		switch {
		case block.Ordered:
			attrs = ` value="` + escape(block.Index) + `"`
		case block.Nested:
			attrs = ` class="nested"`
		}
		r.wrap("li", attrs, block.Spans)
	case chatmd.BlockBlank:
		r.write(`<div class="spacer"></div>`)
	case chatmd.BlockCodeBlock:
		r.write(`<figure class="code-block"><figcaption>` + escape(block.Language) + `</figcaption>`)
		r.write(`<pre><code class="language-` + escape(block.Language) + `">` + escape(block.Body) + `</code></pre></figure>`)
	default:
		r.wrap("p", "", block.Spans)
	}
}

func (r *HTMLReporter) wrap(tag, attrs string, spans []chatmd.Span) {
	r.write("<" + tag + attrs + ">")
	r.spans(spans)
	r.write("</" + tag + ">")
}

func (r *HTMLReporter) spans(spans []chatmd.Span) {
	for _, span := range spans {
		text := escape(span.Text)
		switch span.Kind {
		case chatmd.SpanBold:
			r.write("<strong>" + text + "</strong>")
		case chatmd.SpanItalic:
			r.write("<em>" + text + "</em>")
		case chatmd.SpanCode:
			r.write("<code>" + text + "</code>")
		case chatmd.SpanLink:
			r.link(span)
		default:
			r.write(text)
		}
	}
}

// link writes an anchor opening in a new tab. Dangerous targets such as
// javascript: URLs are dropped and only the label is kept.
func (r *HTMLReporter) link(span chatmd.Span) {
	href := []byte(span.Href)
	if html.IsDangerousURL(href) {
		r.write(escape(span.Text))
		return
	}
	r.write(`<a href="` + string(util.EscapeHTML(util.URLEscape(href, false))) +
		`" target="_blank" rel="noopener noreferrer">` + escape(span.Text) + "</a>")
}

func (r *HTMLReporter) write(s string) { _, _ = r.bw.WriteString(s) }

func (r *HTMLReporter) newline() {
	if !r.opts.Compact {
		_ = r.bw.WriteByte('\n')
	}
}

func escape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}
