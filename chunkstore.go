package glcompose

import (
	"fmt"
	"io/fs"
	"strings"
	"unicode/utf8"

	"github.com/soypat/glcompose/glbuild"
	"go.uber.org/zap"
)

var _ glbuild.ChunkLookup = (*ChunkStore)(nil) // Interface implementation compile-time check.

// ChunkStore lazily parses and memoizes chunks read from a read-only file tree.
// Once a chunk is stored it is never replaced or evicted.
//
// ChunkStore is not safe for concurrent use while chunks are still being
// resolved. After a build completes it is only read.
type ChunkStore struct {
	fsys fs.FS
	// version as given by the user, used for the #version header.
	version string
	// fileVersion is version with spaces removed, used in file names.
	fileVersion string
	chunks      map[string]*glbuild.Chunk
	log         *zap.Logger
}

// NewChunkStore returns a store reading chunk files from fsys. version selects
// version specific chunk files, i.e: version "330 core" prefers "uniforms/common.330core.glsl"
// over "uniforms/common.glsl".
func NewChunkStore(fsys fs.FS, version string) *ChunkStore {
	return &ChunkStore{
		fsys:        fsys,
		version:     version,
		fileVersion: strings.ReplaceAll(version, " ", ""),
		chunks:      make(map[string]*glbuild.Chunk),
		log:         zap.NewNop(),
	}
}

// Version returns the version tag the store was created with.
func (cs *ChunkStore) Version() string { return cs.version }

// SetLogger sets the logger receiving chunk resolution diagnostics. Loaders
// created from the store afterwards share it. A nil log disables logging.
func (cs *ChunkStore) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	cs.log = log
}

// Len returns the number of chunks parsed so far.
func (cs *ChunkStore) Len() int { return len(cs.chunks) }

// Chunk returns the parsed chunk for id, reading it from the backing tree on
// first use. The candidates tried in order are:
//
//	<id>.<version>.glsl
//	<id>.glsl
//	functions/<id>.<version>.glsl
//	functions/<id>.glsl
//
// A [*MissingChunkError] is returned if none exist.
func (cs *ChunkStore) Chunk(id string) (*glbuild.Chunk, error) {
	if chunk, ok := cs.chunks[id]; ok {
		return chunk, nil
	}
	candidates := cs.candidates(id)
	src, name, err := readFirst(cs.fsys, candidates[:])
	if err == errNotFound {
		return nil, &MissingChunkError{ID: id, Tried: candidates[:]}
	} else if err != nil {
		return nil, fmt.Errorf("reading chunk %q: %w", id, err)
	}
	parsed := glbuild.ParseChunk(src)
	cs.chunks[id] = &parsed
	cs.log.Debug("chunk resolved", zap.String("id", id), zap.String("file", name), zap.Strings("requires", parsed.Required))
	return &parsed, nil
}

func (cs *ChunkStore) candidates(id string) [4]string {
	return [4]string{
		id + "." + cs.fileVersion + glbuild.Ext,
		id + glbuild.Ext,
		"functions/" + id + "." + cs.fileVersion + glbuild.Ext,
		"functions/" + id + glbuild.Ext,
	}
}

// readFirst reads the first of names that exists as a regular file in fsys.
// It returns errNotFound if none exist.
func readFirst(fsys fs.FS, names []string) (src, name string, err error) {
	for _, name = range names {
		info, err := fs.Stat(fsys, name)
		if err != nil || info.IsDir() {
			continue
		}
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return "", name, err
		}
		if !utf8.Valid(b) {
			return "", name, fmt.Errorf("%s: %w", name, ErrInvalidUTF8)
		}
		return string(b), name, nil
	}
	return "", "", errNotFound
}
