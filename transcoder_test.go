package slidedeck

// Notes:
// - Image fixtures are generated PNGs; outputs are decoded back with x/image/webp
// - Degradation is exercised with an undecodable file and with a failing encoder
// - Log assertions use the zap observer through zapr

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/webp"
)

// failingEncoder always fails to encode.
type failingEncoder struct{}

func (failingEncoder) Encode(io.Writer, image.Image, int) error {
	return errors.New("encoder unavailable")
}
func (failingEncoder) Extension() string { return ".webp" }
func (failingEncoder) MediaType() string { return "image/webp" }

func decodeWebP(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := webp.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

// ---------------------------------------------------------------------------
// TestAssetTranscoder_Image - Resize, Flatten, Encode
// ---------------------------------------------------------------------------

func TestAssetTranscoder_Image(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		width     int
		height    int
		alpha     bool
		maxWidth  int
		wantWidth int
		wantH     int
	}{
		{"wide image is downscaled", 3000, 1500, false, 1920, 1920, 960},
		{"narrow image keeps size", 400, 300, false, 1920, 400, 300},
		{"exact max width keeps size", 800, 100, false, 800, 800, 100},
		{"alpha image is flattened", 200, 100, true, 1920, 200, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			src := filepath.Join(dir, "in.png")
			dst := filepath.Join(dir, "out", "in-0123456789.webp")
			writePNG(t, src, tt.width, tt.height, tt.alpha)

			tr := NewAssetTranscoder(WebPEncoder{}, 90, tt.maxWidth)
			res, err := tr.Transcode(context.Background(), src, dst, KindImage)
			if err != nil {
				t.Fatalf("Transcode() error: %v", err)
			}
			if res.Status != StatusProcessed || res.Path != dst {
				t.Fatalf("Transcode() = %+v, want processed at %s", res, dst)
			}

			info, err := os.Stat(dst)
			if err != nil {
				t.Fatalf("stat output: %v", err)
			}
			if info.Size() != res.Size {
				t.Errorf("Size = %d, file has %d bytes", res.Size, info.Size())
			}

			img := decodeWebP(t, dst)
			b := img.Bounds()
			if b.Dx() != tt.wantWidth || b.Dy() != tt.wantH {
				t.Errorf("output size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantWidth, tt.wantH)
			}
			if b.Dx() > tt.maxWidth {
				t.Errorf("output width %d exceeds max %d", b.Dx(), tt.maxWidth)
			}

			if tt.alpha {
				// The transparent half must come out white, not black.
				r, g, bl, _ := img.At(b.Dx()/8, b.Dy()/2).RGBA()
				if r>>8 < 235 || g>>8 < 235 || bl>>8 < 235 {
					t.Errorf("transparent area = (%d,%d,%d), want near white", r>>8, g>>8, bl>>8)
				}
			}
		})
	}
}

func TestAssetTranscoder_PalettedImage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "anim.gif")
	pal := image.NewPaletted(image.Rect(0, 0, 40, 20), color.Palette{color.Transparent, color.Black})
	var buf bytes.Buffer
	if err := gif.Encode(&buf, pal, nil); err != nil {
		t.Fatal(err)
	}
	writeFile(t, src, buf.String())

	dst := filepath.Join(dir, "anim.webp")
	res, err := NewAssetTranscoder(WebPEncoder{}, 80, 1920).Transcode(context.Background(), src, dst, KindImage)
	if err != nil {
		t.Fatalf("Transcode() error: %v", err)
	}
	if res.Status != StatusProcessed {
		t.Fatalf("Status = %s, want processed", res.Status)
	}
	if b := decodeWebP(t, dst).Bounds(); b.Dx() != 40 {
		t.Errorf("width = %d, want 40", b.Dx())
	}
}

// ---------------------------------------------------------------------------
// TestAssetTranscoder_Data - Byte Copy
// ---------------------------------------------------------------------------

func TestAssetTranscoder_Data(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "table.csv")
	content := "name,value\nalpha,1\n\xff\xfe binary tail"
	writeFile(t, src, content)

	dst := filepath.Join(dir, "assets", "table-abc.csv")
	res, err := NewAssetTranscoder(WebPEncoder{}, 90, 1920).Transcode(context.Background(), src, dst, KindData)
	if err != nil {
		t.Fatalf("Transcode() error: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != content {
		t.Errorf("copy differs from source")
	}
	if res.Size != int64(len(content)) || res.Status != StatusProcessed {
		t.Errorf("Transcode() = %+v", res)
	}
}

// ---------------------------------------------------------------------------
// TestAssetTranscoder_Degrade - Raw Copy Fallback
// ---------------------------------------------------------------------------

func TestAssetTranscoder_Degrade(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		enc     Encoder
		corrupt bool
		wantErr error
	}{
		{"undecodable image", WebPEncoder{}, true, ErrDecodeImage},
		{"encoder failure", failingEncoder{}, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			src := filepath.Join(dir, "broken.png")
			if tt.corrupt {
				writeFile(t, src, "definitely not a png")
			} else {
				writePNG(t, src, 10, 10, false)
			}
			want, _ := os.ReadFile(src)

			ctx, logs := observedContext(t)
			dst := filepath.Join(dir, "assets", "broken-0123456789.webp")
			res, err := NewAssetTranscoder(tt.enc, 90, 1920).Transcode(ctx, src, dst, KindImage)
			if err != nil {
				t.Fatalf("Transcode() error: %v", err)
			}

			if res.Status != StatusDegraded {
				t.Errorf("Status = %s, want degraded", res.Status)
			}
			if !strings.HasSuffix(res.Path, "broken-0123456789.png") {
				t.Errorf("Path = %s, want original extension", res.Path)
			}
			if tt.wantErr != nil && !errors.Is(res.Err, tt.wantErr) {
				t.Errorf("Err = %v, want %v", res.Err, tt.wantErr)
			}
			got, err := os.ReadFile(res.Path)
			if err != nil {
				t.Fatalf("reading fallback: %v", err)
			}
			if !bytes.Equal(got, want) {
				t.Error("fallback is not a raw copy")
			}
			if _, err := os.Stat(dst); err == nil {
				t.Error("encoded output written despite failure")
			}

			if n := logs.FilterMessage("image processing failed, copying original").Len(); n != 1 {
				t.Errorf("logged %d degradation errors, want 1", n)
			}
		})
	}
}

func TestAssetTranscoder_MissingSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := NewAssetTranscoder(WebPEncoder{}, 90, 1920).Transcode(
		context.Background(), filepath.Join(dir, "gone.png"), filepath.Join(dir, "out.webp"), KindImage)
	if err == nil {
		t.Fatal("expected error when the source cannot be read at all")
	}
}
