package glbuild_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/soypat/glcompose/glbuild"
)

func TestParseChunk(t *testing.T) {
	var tests = []struct {
		name     string
		src      string
		required []string
		body     string
	}{
		{
			name: "empty",
		},
		{
			name: "no directives",
			src:  "\n  uniform mat4 u;\n\n",
			body: "uniform mat4 u;",
		},
		{
			name:     "order and duplicates kept",
			src:      "#require <uniforms/common>\n#require <functions/lighting>\nvoid main() {}\n#require <uniforms/common>\n",
			required: []string{"uniforms/common", "functions/lighting", "uniforms/common"},
			body:     "void main() {}",
		},
		{
			name:     "crlf line endings",
			src:      "#require <structs/light>\r\n#require <a_b-c/9>\r\nfloat x;\r\n",
			required: []string{"structs/light", "a_b-c/9"},
			body:     "float x;",
		},
		{
			name:     "malformed directives stay in body",
			src:      " #require <indented>\n#require <has space>\n#require uniforms/common\n#require <x.y>\n#require <ok>",
			required: []string{"ok"},
			body:     "#require <indented>\n#require <has space>\n#require uniforms/common\n#require <x.y>",
		},
		{
			name:     "trailing content on directive line",
			src:      "#require <a> // comment\n#require <b>",
			required: []string{"b"},
			body:     "#require <a> // comment",
		},
		{
			name:     "directive between code keeps blank line",
			src:      "float a;\n#require <a>\nfloat b;",
			required: []string{"a"},
			body:     "float a;\n\nfloat b;",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := glbuild.ParseChunk(test.src)
			if diff := cmp.Diff(test.required, got.Required); diff != "" {
				t.Errorf("required mismatch (-want +got):\n%s", diff)
			}
			if got.Body != test.body {
				t.Errorf("body mismatch:\nwant %q\ngot  %q", test.body, got.Body)
			}
		})
	}
}

func TestParseChunkIdempotent(t *testing.T) {
	sources := []string{
		"#require <uniforms/common>\n\nvoid main() {\n\tgl_Position = vec4(0);\n}\n",
		"  \n#require <a>\r\n#require <b>\r\n  float f;  \n",
		"#require <a>\n#require <a>\n",
		"#version 330\n#require <bad path>\n",
	}
	for _, src := range sources {
		first := glbuild.ParseChunk(src)
		second := glbuild.ParseChunk(first.Body)
		if len(second.Required) != 0 {
			t.Errorf("reparse of %q found requirements %q", src, second.Required)
		}
		if second.Body != first.Body {
			t.Errorf("reparse changed body:\nfirst  %q\nsecond %q", first.Body, second.Body)
		}
	}
}

func TestAppendSectionOrder(t *testing.T) {
	resolved := []string{"x", "attributes/a", "uniforms/u", "y", "structs/s"}
	got := glbuild.AppendSectionOrder(nil, resolved)
	want := []string{"attributes/a", "uniforms/u", "structs/s", "x", "y"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("section order mismatch (-want +got):\n%s", diff)
	}

	resolved = []string{"uniforms/b", "functions/f", "attributes/2", "uniforms/a", "attributes/1", "structsx", "structs/z"}
	got = glbuild.AppendSectionOrder(got[:0], resolved)
	want = []string{"attributes/2", "attributes/1", "uniforms/b", "uniforms/a", "structs/z", "functions/f", "structsx"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("intra-section order mismatch (-want +got):\n%s", diff)
	}
}

type mapLookup map[string]*glbuild.Chunk

func (m mapLookup) Chunk(id string) (*glbuild.Chunk, error) {
	c, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("no chunk %q", id)
	}
	return c, nil
}

func TestAssemblerAppendStage(t *testing.T) {
	chunks := mapLookup{
		"attributes/common": {Body: "in vec3 position;"},
		"uniforms/common":   {Body: "uniform mat4 u;"},
		"structs/light":     {Body: "struct Light { vec3 dir; };"},
		"lighting":          {Body: "float lambert(vec3 n) { return 1.0; }"},
	}
	asm := glbuild.Assembler{Version: "330 core"}
	resolved := []string{"lighting", "uniforms/common", "structs/light", "attributes/common"}
	got, err := asm.AppendStage(nil, chunks, resolved, "void main() {}")
	if err != nil {
		t.Fatal(err)
	}
	want := "#version 330 core\n\n" +
		"in vec3 position;\n\n" +
		"uniform mat4 u;\n\n" +
		"struct Light { vec3 dir; };\n\n" +
		"float lambert(vec3 n) { return 1.0; }\n\n" +
		"void main() {}"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("stage source mismatch (-want +got):\n%s", diff)
	}

	// Scratch reuse must not leak ordering between calls.
	got, err = asm.AppendStage(got[:0], chunks, []string{"uniforms/common"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if want := "#version 330 core\n\nuniform mat4 u;\n\n"; string(got) != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestAssemblerDefines(t *testing.T) {
	chunks := mapLookup{"uniforms/common": {Body: "uniform mat4 u;"}}
	asm := glbuild.Assembler{
		Version: "410",
		Defines: []glbuild.Define{{Name: "MAX_LIGHTS", Value: "4"}, {Name: "USE_FOG"}},
	}
	got, err := asm.AppendStage(nil, chunks, []string{"uniforms/common"}, "void main() {}")
	if err != nil {
		t.Fatal(err)
	}
	want := "#version 410\n\n#define MAX_LIGHTS 4\n#define USE_FOG\n\nuniform mat4 u;\n\nvoid main() {}"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("stage source mismatch (-want +got):\n%s", diff)
	}
}

func TestAssemblerMissingChunk(t *testing.T) {
	asm := glbuild.Assembler{Version: "330"}
	_, err := asm.AppendStage(nil, mapLookup{}, []string{"uniforms/common"}, "")
	if err == nil {
		t.Fatal("expected error for missing chunk")
	}
}
