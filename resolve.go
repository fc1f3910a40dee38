package glcompose

import (
	"github.com/soypat/glcompose/glbuild"
)

// Resolve returns the ordered transitive closure of the requirements of root.
// The result starts with defaults in the given order, followed by every chunk
// in order of first discovery in a depth-first, left-to-right walk of root's
// requirements. No identifier appears twice.
//
// An identifier is marked as resolved before its own requirements are
// visited, which terminates requirement cycles. Since the check is made
// against the whole result, a chunk required from two branches is expanded
// only by the branch that reaches it first. Requirements of defaults are not
// walked.
func Resolve(chunks glbuild.ChunkLookup, defaults []string, root *glbuild.Chunk) ([]string, error) {
	resolved := make([]string, 0, len(defaults)+len(root.Required))
	seen := make(map[string]struct{}, cap(resolved))
	add := func(id string) bool {
		if _, ok := seen[id]; ok {
			return false
		}
		seen[id] = struct{}{}
		resolved = append(resolved, id)
		return true
	}
	for _, id := range defaults {
		add(id)
	}
	// Explicit stack of pending requirement lists in place of recursion.
	stack := [][]string{root.Required}
	for len(stack) > 0 {
		top := len(stack) - 1
		pending := stack[top]
		if len(pending) == 0 {
			stack = stack[:top]
			continue
		}
		id := pending[0]
		stack[top] = pending[1:]
		if !add(id) {
			continue
		}
		chunk, err := chunks.Chunk(id)
		if err != nil {
			return nil, err
		}
		stack = append(stack, chunk.Required)
	}
	return resolved, nil
}
