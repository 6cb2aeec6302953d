// Package slidedeck builds a static slide presentation from HTML and Markdown
// slide files.
//
// A build reads the configured slides, finds every image and data file they
// reference, copies those assets under content-hashed names (transcoding
// raster images to WebP or JPEG on the way) and rewrites the references. Two
// outputs can be produced from the same slides:
//
//   - a single self-contained index.html with every asset inlined as a data URI
//   - a bundle directory with separate CSS, JavaScript and assets, plus a ZIP
//
// An assets_manifest.json describing every processed asset is written next to
// the outputs.
//
// Basic usage:
//
//	b, err := slidedeck.NewBuilder(slidedeck.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	report, err := b.Build(ctx)
//
// Progress and warnings are logged through the logr.Logger carried in ctx
// (see logr.NewContext); without one, the build is silent.
package slidedeck
