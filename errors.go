package slidedeck

import "errors"

// Sentinel errors for build operations.
var (
	// ErrNoSlides indicates no slide could be read. The build still writes
	// an empty presentation.
	ErrNoSlides = errors.New("no slides found")

	ErrSlideNotFound     = errors.New("slide file not found")
	ErrInvalidConfig     = errors.New("invalid build config")
	ErrOutputSetup       = errors.New("output directory setup failed")
	ErrTemplateRender    = errors.New("template rendering failed")
	ErrArchive           = errors.New("archive creation failed")
	ErrManifest          = errors.New("manifest write failed")
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// Image processing errors. These degrade an asset to a raw copy instead
	// of failing the build.
	ErrDecodeImage = errors.New("image decode failed")
	ErrEncodeImage = errors.New("image encode failed")
)
