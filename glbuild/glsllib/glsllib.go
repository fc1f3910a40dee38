// Package glsllib embeds a library of reusable GLSL chunks. The tree can be
// used directly as a chunk tree or copied into a project's own.
//
// Chunks provided:
//
//	attributes/common        in vec3 position; in vec3 normal;
//	uniforms/common          matrix_to_{world,local,view,projection}, camera_position_{world,local}
//	structs/light            struct Light { vec3 direction; vec3 color; }
//	lambert                  vec3 lambert(Light light, vec3 normal, vec3 albedo)
//	blinn_phong              vec3 blinn_phong(Light light, vec3 normal, vec3 view, vec3 specular, float shininess)
//	default_light            Light default_light()
//	gamma                    vec3 gamma_correct(vec3 c)
//	rim                      float rim(vec3 normal, vec3 view, float power)
package glsllib

import (
	"embed"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/soypat/glcompose/glbuild"
)

//go:embed chunks
var chunks embed.FS

// Chunks returns the embedded chunk tree.
func Chunks() fs.FS {
	fsys, err := fs.Sub(chunks, "chunks")
	if err != nil {
		panic(err) // Unreachable, directory is embedded.
	}
	return fsys
}

// IDs returns the chunk identifiers of the library in lexical order.
// Chunks under functions/ are identified without the directory prefix.
func IDs() []string { return chunkIDs(Chunks()) }

// chunkIDs lists the identifiers a chunk tree can resolve. Version specific
// files such as common.330core.glsl share the identifier of their plain
// counterpart, identifiers never contain dots.
func chunkIDs(fsys fs.FS) []string {
	var ids []string
	fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path.Ext(name) != glbuild.Ext {
			return err
		}
		id := strings.TrimSuffix(name, glbuild.Ext)
		dir, base := path.Split(id)
		if dot := strings.IndexByte(base, '.'); dot >= 0 {
			base = base[:dot]
		}
		ids = append(ids, strings.TrimPrefix(dir+base, "functions/"))
		return nil
	})
	slices.Sort(ids)
	return slices.Compact(ids)
}
