package slidedeck

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// Supported image formats.
const (
	FormatWebP = "webp"
	FormatJPEG = "jpeg"
)

// Encoder writes an image in one target format.
type Encoder interface {
	// Encode writes img to w at the given quality (1..100).
	Encode(w io.Writer, img image.Image, quality int) error
	// Extension returns the file extension including the dot.
	Extension() string
	// MediaType returns the MIME type of the encoded output.
	MediaType() string
}

// NewEncoder returns the Encoder for a format name.
func NewEncoder(format string) (Encoder, error) {
	switch strings.ToLower(format) {
	case FormatWebP, "":
		return WebPEncoder{}, nil
	case FormatJPEG, "jpg":
		return JPEGEncoder{}, nil
	}
	return nil, fmt.Errorf("%w: %q (use %s or %s)", ErrUnsupportedFormat, format, FormatWebP, FormatJPEG)
}

// WebPEncoder encodes lossy WebP through libwebp.
type WebPEncoder struct{}

func (WebPEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(quality))
	if err != nil {
		return fmt.Errorf("%w: webp options: %v", ErrEncodeImage, err)
	}
	if err := webp.Encode(w, img, opts); err != nil {
		return fmt.Errorf("%w: webp: %v", ErrEncodeImage, err)
	}
	return nil
}

func (WebPEncoder) Extension() string { return ".webp" }
func (WebPEncoder) MediaType() string { return "image/webp" }

// JPEGEncoder encodes baseline JPEG.
type JPEGEncoder struct{}

func (JPEGEncoder) Encode(w io.Writer, img image.Image, quality int) error {
	if err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("%w: jpeg: %v", ErrEncodeImage, err)
	}
	return nil
}

func (JPEGEncoder) Extension() string { return ".jpg" }
func (JPEGEncoder) MediaType() string { return "image/jpeg" }

// Compile-time interface checks.
var (
	_ Encoder = WebPEncoder{}
	_ Encoder = JPEGEncoder{}
)
