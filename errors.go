package glcompose

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidUTF8 is returned when a chunk or stage file is not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("shader source is not valid UTF-8")

// errNotFound is returned by readFirst when no candidate file exists.
var errNotFound = errors.New("no candidate file found")

// MissingChunkError is returned when a required chunk identifier has no
// backing file under any of its candidate names.
type MissingChunkError struct {
	ID string
	// Tried lists the candidate file names in the order they were tried.
	Tried []string
}

func (e *MissingChunkError) Error() string {
	return fmt.Sprintf("chunk %q not found (tried %s)", e.ID, strings.Join(e.Tried, ", "))
}

// MissingStageFileError is returned when a material lacks a source file for one of its stages.
type MissingStageFileError struct {
	Material string
	Stage    Stage
	Tried    []string
}

func (e *MissingStageFileError) Error() string {
	return fmt.Sprintf("no %s shader file found for %q material (tried %s)", e.Stage, e.Material, strings.Join(e.Tried, ", "))
}

// CompileError is returned when the compiler rejects a material's assembled
// sources. The error message carries both sources in full since they are
// generated and never seen by the user otherwise.
type CompileError struct {
	Material string
	Vertex   string
	Fragment string
	Err      error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling %q material: %v\nSource code:\n\nVertex:\n%s\n\n\nFragment:\n%s\n\n", e.Material, e.Err, e.Vertex, e.Fragment)
}

func (e *CompileError) Unwrap() error { return e.Err }
