package parse

const (
	// MaxErrors bounds the number of errors recorded on a Document.
	MaxErrors = 4096
	// MaxDepth bounds element nesting. Tags opened deeper than this are kept
	// as text.
	MaxDepth = 256
)

type parseOpts struct {
	frontmatter bool
	maxErrors   int
	maxDepth    int
}

func defaultOpts() *parseOpts {
	return &parseOpts{
		frontmatter: true,
		maxErrors:   MaxErrors,
		maxDepth:    MaxDepth,
	}
}

type ParseOption func(*parseOpts)

// ParseFrontmatter controls whether a leading yaml block or hnmd fence is
// lifted into a frontmatter node. It is on by default.
func ParseFrontmatter(v bool) ParseOption {
	return func(o *parseOpts) {
		o.frontmatter = v
	}
}

func ParseMaxErrors(n int) ParseOption {
	return func(o *parseOpts) {
		o.maxErrors = max(n, 0)
	}
}

func ParseMaxDepth(n int) ParseOption {
	return func(o *parseOpts) {
		o.maxDepth = max(n, 0)
	}
}
