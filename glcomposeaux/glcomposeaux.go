// Package glcomposeaux provides auxiliary tooling to look at composed
// materials: an interactive preview window and offscreen PNG snapshots.
// Both need CGo and a working OpenGL driver.
package glcomposeaux

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/golang/freetype/truetype"
	"github.com/soypat/glcompose"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// PreviewConfig configures [Preview].
type PreviewConfig struct {
	// Catalog is built inside the preview window's GL context.
	Catalog glcompose.CatalogConfig
	// Material is the first material shown. If empty the first material by name is shown.
	// The space key cycles through the catalog.
	Material string
	Width    int
	Height   int
	// Context cancellation closes the window.
	Context context.Context
}

// SnapshotConfig configures [Snapshot].
type SnapshotConfig struct {
	Width  int
	Height int
	// Yaw and Pitch orient the camera around the model, in radians.
	Yaw   float32
	Pitch float32
	// Background is the clear color. Nil means black.
	Background color.Color
	// Label stamps the material name on the top-left corner when set.
	Label bool
	// LabelColor defaults to white.
	LabelColor color.Color
	// LabelSize is the font size in points. Defaults to 14.
	LabelSize float64
}

func (cfg *SnapshotConfig) validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.New("snapshot requires positive width and height")
	}
	if cfg.Background == nil {
		cfg.Background = color.Black
	}
	if cfg.LabelColor == nil {
		cfg.LabelColor = color.White
	}
	if cfg.LabelSize <= 0 {
		cfg.LabelSize = 14
	}
	return nil
}

// WritePNG encodes img as PNG to w.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// DrawLabel draws text in the top-left corner of img using the Go Regular font.
func DrawLabel(img draw.Image, text string, c color.Color, size float64) error {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()
	pad := int(size / 2)
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(img.Bounds().Min.X+pad, img.Bounds().Min.Y+pad+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
	return nil
}

// rgbaf returns the non-premultiplied components of c in 0..1.
func rgbaf(c color.Color) (r, g, b, a float32) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return float32(nc.R) / 255, float32(nc.G) / 255, float32(nc.B) / 255, float32(nc.A) / 255
}

// flipRows mirrors img vertically in place. GL reads pixels bottom row first.
func flipRows(img *image.RGBA) {
	h := img.Bounds().Dy()
	rowlen := img.Bounds().Dx() * 4
	tmp := make([]byte, rowlen)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : y*img.Stride+rowlen]
		bot := img.Pix[(h-1-y)*img.Stride : (h-1-y)*img.Stride+rowlen]
		copy(tmp, top)
		copy(top, bot)
		copy(bot, tmp)
	}
}
