package slidedeck

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/go-logr/logr"
	_ "golang.org/x/image/webp" // registers WebP decoding for imaging.Open

	"github.com/ceresimaging/daq-slide-deck/internal/fileutil"
)

// Transcoded describes the file an asset was written to.
type Transcoded struct {
	Path   string
	Size   int64
	Status Status
	Err    error // cause of degradation, if any
}

// AssetTranscoder copies data assets and re-encodes images.
type AssetTranscoder struct {
	encoder  Encoder
	quality  int
	maxWidth int
}

// NewAssetTranscoder creates an AssetTranscoder that encodes images with enc
// at quality, downscaling anything wider than maxWidth.
func NewAssetTranscoder(enc Encoder, quality, maxWidth int) *AssetTranscoder {
	return &AssetTranscoder{encoder: enc, quality: quality, maxWidth: maxWidth}
}

// Encoder returns the image encoder in use.
func (t *AssetTranscoder) Encoder() Encoder { return t.encoder }

// Transcode writes the asset at src to dst.
//
// Data assets are copied byte for byte. Images are flattened onto white,
// downscaled to the maximum width and encoded; if decoding or encoding fails
// the original file is copied instead, keeping its own extension, and the
// result is marked degraded. An error is returned only when nothing could be
// written.
func (t *AssetTranscoder) Transcode(ctx context.Context, src, dst string, kind AssetKind) (Transcoded, error) {
	if kind != KindImage {
		n, err := fileutil.CopyFile(src, dst)
		if err != nil {
			return Transcoded{}, fmt.Errorf("copying %s: %w", src, err)
		}
		return Transcoded{Path: dst, Size: n, Status: StatusProcessed}, nil
	}

	log := logr.FromContextOrDiscard(ctx)

	size, err := t.transcodeImage(ctx, src, dst)
	if err == nil {
		return Transcoded{Path: dst, Size: size, Status: StatusProcessed}, nil
	}

	log.Error(err, "image processing failed, copying original", "source", src)
	fallback := fileutil.ReplaceExt(dst, filepath.Ext(src))
	n, copyErr := fileutil.CopyFile(src, fallback)
	if copyErr != nil {
		return Transcoded{}, fmt.Errorf("%w (raw copy: %v)", err, copyErr)
	}
	return Transcoded{Path: fallback, Size: n, Status: StatusDegraded, Err: err}, nil
}

func (t *AssetTranscoder) transcodeImage(ctx context.Context, src, dst string) (int64, error) {
	log := logr.FromContextOrDiscard(ctx)

	info, err := os.Stat(src)
	if err != nil {
		return 0, err
	}

	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrDecodeImage, filepath.Base(src), err)
	}

	out := flatten(img)
	if w := out.Bounds().Dx(); w > t.maxWidth {
		out = imaging.Resize(out, t.maxWidth, 0, imaging.Lanczos)
		log.V(1).Info("resized image", "source", filepath.Base(src), "from", w, "to", t.maxWidth)
	}

	var buf bytes.Buffer
	if err := t.encoder.Encode(&buf, out, t.quality); err != nil {
		return 0, err
	}
	if err := fileutil.WriteFile(dst, buf.Bytes()); err != nil {
		return 0, err
	}

	before, after := info.Size(), int64(buf.Len())
	log.Info("processed image",
		"source", filepath.Base(src),
		"output", filepath.Base(dst),
		"before", fileutil.HumanSize(before),
		"after", fileutil.HumanSize(after),
		"saved", savedPercent(before, after))
	return after, nil
}

// flatten returns an opaque NRGBA copy of img. Images with an alpha channel
// or a palette are composited onto white first.
func flatten(img image.Image) *image.NRGBA {
	if !hasTransparency(img) {
		return imaging.Clone(img)
	}
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

func hasTransparency(img image.Image) bool {
	switch m := img.(type) {
	case *image.Paletted:
		return true
	case interface{ Opaque() bool }:
		return !m.Opaque()
	}
	return false
}

func savedPercent(before, after int64) string {
	if before <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(before-after)*100/float64(before))
}
