package glbuild

import (
	"regexp"
	"strings"
)

// requireDirective matches a whole `#require <path>` line. A trailing carriage
// return is accepted so CRLF sources parse the same as LF sources.
var requireDirective = regexp.MustCompile(`(?m)^#require <([a-zA-Z0-9/\-_]+)>\r?$`)

// Chunk is a parsed shader source fragment. A Chunk is never modified after
// [ParseChunk] returns it so it may be shared freely.
type Chunk struct {
	// Required lists the identifiers named by #require directives in the order
	// they appear in the source. Duplicates are kept.
	Required []string
	// Body is the source with every directive line removed and surrounding
	// whitespace trimmed.
	Body string
}

// ParseChunk extracts the #require directives from src. Lines that look like
// directives but do not match the grammar exactly are left in the body.
func ParseChunk(src string) Chunk {
	var required []string
	for _, match := range requireDirective.FindAllStringSubmatch(src, -1) {
		required = append(required, match[1])
	}
	body := requireDirective.ReplaceAllLiteralString(src, "")
	return Chunk{
		Required: required,
		Body:     strings.TrimSpace(body),
	}
}
