// Package glbuild implements the text level of GLSL program composition.
// It parses #require directives out of shader chunks and assembles stage
// sources from a resolved set of chunks.
package glbuild

// Ext is the file extension of shader sources, chunks and material stages alike.
const Ext = ".glsl"

// AppendVersionHeader appends the #version line followed by a blank line.
func AppendVersionHeader(b []byte, version string) []byte {
	b = append(b, "#version "...)
	b = append(b, version...)
	b = append(b, '\n', '\n')
	return b
}

func AppendDefineDecl(b []byte, aliasToDefine, aliasReplace string) []byte {
	b = append(b, "#define "...)
	b = append(b, aliasToDefine...)
	if aliasReplace != "" {
		b = append(b, ' ')
		b = append(b, aliasReplace...)
	}
	b = append(b, '\n')
	return b
}
