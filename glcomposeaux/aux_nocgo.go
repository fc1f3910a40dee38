//go:build tinygo || !cgo

package glcomposeaux

import (
	"errors"
	"image"

	"github.com/soypat/glcompose"
	"github.com/soypat/glcompose/glcompile"
)

var errNoCGO = errors.New("require cgo for material rendering")

func Preview(cfg PreviewConfig) error {
	return errNoCGO
}

func Snapshot(cat *glcompose.Catalog[*glcompile.Program], name string, cfg SnapshotConfig) (*image.RGBA, error) {
	return nil, errNoCGO
}
