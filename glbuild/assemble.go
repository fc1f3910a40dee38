package glbuild

import (
	"strings"
)

// sectionOrder lists identifier prefixes in the order their chunks are
// rendered. Chunks matching none of the prefixes are rendered last.
var sectionOrder = [...]string{"attributes/", "uniforms/", "structs/"}

// ChunkLookup returns the parsed chunk for an identifier.
type ChunkLookup interface {
	Chunk(id string) (*Chunk, error)
}

// Define is a preprocessor macro emitted right after the version header.
type Define struct {
	Name  string
	Value string
}

// Assembler renders resolved chunks and a stage body into a single
// self-contained stage source. The zero value is not usable, Version must be set.
type Assembler struct {
	// Version is written verbatim after #version.
	Version string
	// Defines are emitted after the version header. May be empty.
	Defines []Define
	order   []string
}

// AppendStage appends the complete source of a shading stage to dst and
// returns the result. resolved is the ordered chunk set of the stage and body
// the stage's own directive-free source, which is appended last as is.
func (asm *Assembler) AppendStage(dst []byte, chunks ChunkLookup, resolved []string, body string) ([]byte, error) {
	dst = AppendVersionHeader(dst, asm.Version)
	if len(asm.Defines) > 0 {
		for _, def := range asm.Defines {
			dst = AppendDefineDecl(dst, def.Name, def.Value)
		}
		dst = append(dst, '\n')
	}
	asm.order = AppendSectionOrder(asm.order[:0], resolved)
	for _, id := range asm.order {
		chunk, err := chunks.Chunk(id)
		if err != nil {
			return dst, err
		}
		dst = append(dst, chunk.Body...)
		dst = append(dst, "\n\n"...)
	}
	dst = append(dst, body...)
	return dst, nil
}

// AppendSectionOrder appends the identifiers of resolved to dst in rendering
// order: attributes, uniforms, structs and then everything else. Relative
// order within each section is preserved.
func AppendSectionOrder(dst, resolved []string) []string {
	for i := 0; i <= len(sectionOrder); i++ {
		for _, id := range resolved {
			if sectionOf(id) == i {
				dst = append(dst, id)
			}
		}
	}
	return dst
}

func sectionOf(id string) int {
	for i, prefix := range sectionOrder {
		if strings.HasPrefix(id, prefix) {
			return i
		}
	}
	return len(sectionOrder)
}
