package glcompose_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/soypat/glcompose"
)

func file(s string) *fstest.MapFile { return &fstest.MapFile{Data: []byte(s)} }

func TestChunkStoreCandidatePrecedence(t *testing.T) {
	chunks := fstest.MapFS{
		"uniforms/common.330core.glsl":    file("uniform mat4 versioned;"),
		"uniforms/common.glsl":            file("uniform mat4 plain;"),
		"lighting.glsl":                   file("float root;"),
		"functions/lighting.330core.glsl": file("float functions_versioned;"),
		"shading.glsl":                    file("float shading_plain;"),
		"functions/shading.330core.glsl":  file("float functions_versioned;"),
		"noise.glsl/readme":               file("a directory, not a chunk"),
		"functions/noise.glsl":            file("float noise;"),
		"functions/fog.330core.glsl":      file("float fog_versioned;"),
		"functions/fog.glsl":              file("float fog_plain;"),
	}
	store := glcompose.NewChunkStore(chunks, "330 core")
	var tests = []struct {
		id   string
		body string
	}{
		{id: "uniforms/common", body: "uniform mat4 versioned;"},
		{id: "lighting", body: "float root;"},
		{id: "shading", body: "float shading_plain;"},
		{id: "noise", body: "float noise;"},
		{id: "fog", body: "float fog_versioned;"},
	}
	for _, test := range tests {
		chunk, err := store.Chunk(test.id)
		if err != nil {
			t.Fatalf("%s: %s", test.id, err)
		}
		if chunk.Body != test.body {
			t.Errorf("%s: want body %q, got %q", test.id, test.body, chunk.Body)
		}
	}
	if store.Len() != len(tests) {
		t.Errorf("want %d chunks stored, got %d", len(tests), store.Len())
	}
}

func TestChunkStoreMemoizes(t *testing.T) {
	chunks := fstest.MapFS{
		"structs/light.glsl": file("#require <uniforms/common>\nstruct Light { vec3 dir; };"),
	}
	store := glcompose.NewChunkStore(chunks, "330")
	first, err := store.Chunk("structs/light")
	if err != nil {
		t.Fatal(err)
	}
	// Removing the backing file must not matter once the chunk is cached.
	delete(chunks, "structs/light.glsl")
	second, err := store.Chunk("structs/light")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected the same cached chunk on second lookup")
	}
	if diff := cmp.Diff([]string{"uniforms/common"}, second.Required); diff != "" {
		t.Errorf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestChunkStoreMissing(t *testing.T) {
	store := glcompose.NewChunkStore(fstest.MapFS{}, "330")
	_, err := store.Chunk("functions/missing")
	var missing *glcompose.MissingChunkError
	if !errors.As(err, &missing) {
		t.Fatalf("want MissingChunkError, got %v", err)
	}
	if missing.ID != "functions/missing" {
		t.Errorf("want missing ID %q, got %q", "functions/missing", missing.ID)
	}
	wantTried := []string{
		"functions/missing.330.glsl",
		"functions/missing.glsl",
		"functions/functions/missing.330.glsl",
		"functions/functions/missing.glsl",
	}
	if diff := cmp.Diff(wantTried, missing.Tried); diff != "" {
		t.Errorf("tried mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(err.Error(), `"functions/missing"`) {
		t.Errorf("diagnostic does not name chunk: %s", err)
	}
}

func TestChunkStoreInvalidUTF8(t *testing.T) {
	store := glcompose.NewChunkStore(fstest.MapFS{
		"bad.glsl": &fstest.MapFile{Data: []byte{0xff, 0xfe, 'x'}},
	}, "330")
	_, err := store.Chunk("bad")
	if !errors.Is(err, glcompose.ErrInvalidUTF8) {
		t.Fatalf("want ErrInvalidUTF8, got %v", err)
	}
	var missing *glcompose.MissingChunkError
	if errors.As(err, &missing) {
		t.Error("invalid file should not be reported as missing")
	}
}

func TestChunkStoreVersion(t *testing.T) {
	store := glcompose.NewChunkStore(fstest.MapFS{}, "300 es")
	if store.Version() != "300 es" {
		t.Errorf("version should be kept verbatim, got %q", store.Version())
	}
}

func TestChunkStoreVersionFileName(t *testing.T) {
	for _, test := range []struct {
		version string
		want    string
	}{
		{version: "330 core", want: "light.330core.glsl"},
		{version: " 300  es ", want: "light.300es.glsl"},
		// Only spaces are removed from file names.
		{version: "330\tcore", want: "light.330\tcore.glsl"},
	} {
		store := glcompose.NewChunkStore(fstest.MapFS{}, test.version)
		_, err := store.Chunk("light")
		var missing *glcompose.MissingChunkError
		if !errors.As(err, &missing) {
			t.Fatalf("version %q: want MissingChunkError, got %v", test.version, err)
		}
		if missing.Tried[0] != test.want {
			t.Errorf("version %q: first candidate %q, want %q", test.version, missing.Tried[0], test.want)
		}
	}
}
