package glcompose_test

import (
	"errors"
	"strconv"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/soypat/glcompose"
	"github.com/soypat/glcompose/glbuild"
)

// countingLookup wraps a ChunkStore and counts lookups per identifier.
type countingLookup struct {
	store *glcompose.ChunkStore
	calls map[string]int
}

func (c *countingLookup) Chunk(id string) (*glbuild.Chunk, error) {
	c.calls[id]++
	return c.store.Chunk(id)
}

func newCounting(fsys fstest.MapFS) *countingLookup {
	return &countingLookup{store: glcompose.NewChunkStore(fsys, "330"), calls: make(map[string]int)}
}

func TestResolveCycle(t *testing.T) {
	lookup := newCounting(fstest.MapFS{
		"a.glsl": file("#require <b>\nfloat a;"),
		"b.glsl": file("#require <a>\nfloat b;"),
	})
	root := glbuild.ParseChunk("#require <a>\nvoid main() {}")
	got, err := glcompose.Resolve(lookup, []string{"uniforms/common"}, &root)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"uniforms/common", "a", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved mismatch (-want +got):\n%s", diff)
	}
	if lookup.calls["a"] != 1 || lookup.calls["b"] != 1 {
		t.Errorf("cycle members should be expanded once, got %v", lookup.calls)
	}
}

func TestResolveSelfRequire(t *testing.T) {
	lookup := newCounting(fstest.MapFS{
		"self.glsl": file("#require <self>\nfloat s;"),
	})
	root := glbuild.ParseChunk("#require <self>\n#require <self>")
	got, err := glcompose.Resolve(lookup, nil, &root)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"self"}, got); diff != "" {
		t.Errorf("resolved mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveDiscoveryOrder(t *testing.T) {
	// root requires x and y. x requires shared which requires deep.
	// y requires shared and z. shared is only expanded through x.
	lookup := newCounting(fstest.MapFS{
		"x.glsl":      file("#require <shared>\nfloat x;"),
		"y.glsl":      file("#require <shared>\n#require <z>\nfloat y;"),
		"shared.glsl": file("#require <deep>\nfloat shared;"),
		"deep.glsl":   file("float deep;"),
		"z.glsl":      file("#require <x>\nfloat z;"),
	})
	root := glbuild.ParseChunk("#require <x>\n#require <y>\n#require <x>\nvoid main() {}")
	got, err := glcompose.Resolve(lookup, []string{"attributes/common", "uniforms/common"}, &root)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"attributes/common", "uniforms/common", "x", "shared", "deep", "y", "z"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved mismatch (-want +got):\n%s", diff)
	}
	for id, n := range lookup.calls {
		if n != 1 {
			t.Errorf("chunk %q looked up %d times, want once", id, n)
		}
	}
}

func TestResolveDefaultsNotExpanded(t *testing.T) {
	lookup := newCounting(fstest.MapFS{
		"uniforms/common.glsl": file("#require <structs/light>\nuniform mat4 u;"),
		"structs/light.glsl":   file("struct Light { vec3 d; };"),
	})
	root := glbuild.ParseChunk("#require <uniforms/common>\nvoid main() {}")
	got, err := glcompose.Resolve(lookup, []string{"uniforms/common"}, &root)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"uniforms/common"}, got); diff != "" {
		t.Errorf("resolved mismatch (-want +got):\n%s", diff)
	}
	if len(lookup.calls) != 0 {
		t.Errorf("defaults should not be looked up during resolution, got %v", lookup.calls)
	}
}

func TestResolveNoDuplicates(t *testing.T) {
	// Dense graph: every chunk requires every other chunk, in varying order.
	ids := []string{"c0", "c1", "c2", "c3", "c4", "c5"}
	fsys := fstest.MapFS{}
	for i := range ids {
		var src string
		for j := range ids {
			src += "#require <" + ids[(i*j+j)%len(ids)] + ">\n"
		}
		fsys[ids[i]+".glsl"] = file(src + "float f;")
	}
	root := glbuild.ParseChunk("#require <c3>\n#require <c0>\n#require <c3>")
	got, err := glcompose.Resolve(newCounting(fsys), []string{"c0", "c0"}, &root)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]bool)
	for _, id := range got {
		if seen[id] {
			t.Fatalf("duplicate %q in %q", id, got)
		}
		seen[id] = true
	}
	if got[0] != "c0" || got[1] != "c3" {
		t.Errorf("unexpected leading order %q", got)
	}
}

func TestResolveDeepChain(t *testing.T) {
	// Long chains must not depend on call stack depth.
	const depth = 2000
	fsys := fstest.MapFS{}
	for i := 0; i < depth; i++ {
		fsys[chainID(i)+".glsl"] = file("#require <" + chainID(i+1) + ">")
	}
	fsys[chainID(depth)+".glsl"] = file("float end;")
	root := glbuild.ParseChunk("#require <" + chainID(0) + ">")
	got, err := glcompose.Resolve(glcompose.NewChunkStore(fsys, "330"), nil, &root)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != depth+1 || got[depth] != chainID(depth) {
		t.Fatalf("want %d chunks ending in %q, got %d", depth+1, chainID(depth), len(got))
	}
}

func chainID(i int) string { return "chain/" + strconv.Itoa(i) }

func TestResolveMissing(t *testing.T) {
	lookup := newCounting(fstest.MapFS{
		"a.glsl": file("#require <nowhere>"),
	})
	root := glbuild.ParseChunk("#require <a>")
	_, err := glcompose.Resolve(lookup, nil, &root)
	var missing *glcompose.MissingChunkError
	if !errors.As(err, &missing) || missing.ID != "nowhere" {
		t.Fatalf("want missing chunk %q, got %v", "nowhere", err)
	}
}
