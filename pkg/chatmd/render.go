package chatmd

// DefaultLanguage labels code blocks whose fence carries no language tag.
const DefaultLanguage = "text"

// Options configures a Renderer.
type Options struct {
	// DefaultLanguage labels untagged code blocks. Empty means DefaultLanguage.
	DefaultLanguage string

	// DetectLanguage, if set, is asked for a label for untagged code blocks
	// before DefaultLanguage is used. It receives the trimmed body and returns
	// "" when it cannot tell.
	DetectLanguage func(body string) string
}

// Renderer turns documents into display blocks. The zero value is ready to
// use. A Renderer holds no per-call state and is safe for concurrent use.
type Renderer struct {
	opts Options
}

// New creates a Renderer with the given options.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render renders src with default options.
func Render(src string) []Block {
	var r Renderer
	return r.Render(src)
}

// Render converts src into blocks in document order. Code regions become
// CodeBlock blocks; every other line becomes exactly one block.
func (r *Renderer) Render(src string) []Block {
	regions := Split(src)
	if len(regions) == 0 {
		return nil
	}

	blocks := make([]Block, 0, countBlocks(regions))
	for _, region := range regions {
		if region.Code {
			blocks = append(blocks, Block{
				Kind:     BlockCodeBlock,
				Line:     region.StartLine,
				Language: r.language(region),
				Body:     region.Body,
			})
			continue
		}

		for i, line := range region.Lines {
			block, ok := ClassifyLine(line)
			if !ok {
				continue
			}
			block.Line = region.StartLine + i
			blocks = append(blocks, block)
		}
	}

	return blocks
}

func (r *Renderer) language(region Region) string {
	if region.Language != "" {
		return region.Language
	}
	if r.opts.DetectLanguage != nil && region.Body != "" {
		if lang := r.opts.DetectLanguage(region.Body); lang != "" {
			return lang
		}
	}
	if r.opts.DefaultLanguage != "" {
		return r.opts.DefaultLanguage
	}
	return DefaultLanguage
}

func countBlocks(regions []Region) int {
	n := 0
	for _, region := range regions {
		if region.Code {
			n++
		} else {
			n += len(region.Lines)
		}
	}
	return n
}

// Count tallies blocks by kind.
func Count(blocks []Block) map[BlockKind]int {
	counts := make(map[BlockKind]int)
	for _, b := range blocks {
		counts[b.Kind]++
	}
	return counts
}
