package slidedeck

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/go-logr/logr"

	"github.com/ceresimaging/daq-slide-deck/internal/pipeline"
)

// DefaultSlideTitle is used for slides whose first <h1> is missing or empty.
const DefaultSlideTitle = "Untitled Slide"

// SlideCollector reads slides in order and processes their assets.
type SlideCollector struct {
	slidesDir  string
	resolver   *AssetResolver
	namer      *AssetNamer
	transcoder *AssetTranscoder
	markdown   pipeline.FragmentRenderer
}

// NewSlideCollector creates a SlideCollector reading slide files from
// slidesDir. Slide names can never escape slidesDir.
func NewSlideCollector(slidesDir string, namer *AssetNamer, transcoder *AssetTranscoder) *SlideCollector {
	return &SlideCollector{
		slidesDir:  slidesDir,
		resolver:   NewAssetResolver(),
		namer:      namer,
		transcoder: transcoder,
		markdown:   pipeline.NewGoldmarkRenderer(),
	}
}

// Collect reads every slide in order, writes each referenced asset under
// assetsDir and rewrites the references for mode.
//
// Missing slides and missing assets are logged and skipped. When no slide
// could be read the returned Collection is empty and the error is
// ErrNoSlides. Any other error is a cancellation or an I/O failure.
func (c *SlideCollector) Collect(ctx context.Context, slides []string, mode Mode, assetsDir string) (*Collection, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("mode", mode.String())
	coll := &Collection{Mode: mode}

	if len(slides) == 0 {
		log.Error(ErrNoSlides, "no slides configured")
		return coll, ErrNoSlides
	}

	root, err := filepath.Abs(c.slidesDir)
	if err != nil {
		return coll, fmt.Errorf("resolving slides directory: %w", err)
	}

	run := &collectRun{
		SlideCollector: c,
		rewriter:       NewReferenceRewriter(mode),
		assetsDir:      assetsDir,
		coll:           coll,
		cache:          make(map[string]AssetRecord),
	}

	for i, name := range slides {
		if err := ctx.Err(); err != nil {
			return coll, err
		}

		rec, err := run.slide(ctx, root, i+1, name)
		if errors.Is(err, ErrSlideNotFound) {
			log.Info("slide not found, skipping", "slide", name, "error", err.Error())
			continue
		}
		if err != nil {
			return coll, fmt.Errorf("slide %s: %w", name, err)
		}
		coll.Slides = append(coll.Slides, rec)
	}

	if len(coll.Slides) == 0 {
		log.Error(ErrNoSlides, "none of the configured slides could be read", "slidesDir", c.slidesDir)
		return coll, ErrNoSlides
	}
	return coll, nil
}

// collectRun holds the state of one Collect call. The asset cache makes an
// asset referenced from several slides be processed once.
type collectRun struct {
	*SlideCollector
	rewriter  *ReferenceRewriter
	assetsDir string
	coll      *Collection
	cache     map[string]AssetRecord
}

func (r *collectRun) slide(ctx context.Context, root string, number int, name string) (SlideRecord, error) {
	log := logr.FromContextOrDiscard(ctx).WithValues("slide", name)

	slidePath, err := securejoin.SecureJoin(root, name)
	if err != nil {
		return SlideRecord{}, fmt.Errorf("%w: %s: %v", ErrSlideNotFound, name, err)
	}
	raw, err := os.ReadFile(slidePath)
	if errors.Is(err, fs.ErrNotExist) {
		return SlideRecord{}, fmt.Errorf("%w: %s", ErrSlideNotFound, slidePath)
	}
	if err != nil {
		return SlideRecord{}, err
	}

	content := string(raw)
	if isMarkdown(slidePath) {
		content, err = r.markdown.RenderFragment(ctx, content)
		if err != nil {
			return SlideRecord{}, err
		}
	}

	title, ok := pipeline.FirstHeading(content)
	if !ok {
		title = DefaultSlideTitle
	}

	var (
		assets   []AssetRecord
		rewrites []Rewrite
	)
	for _, ref := range r.resolver.Resolve(content, slidePath) {
		if !ref.Exists {
			log.Info("asset not found, reference left unchanged", "path", ref.Path, "resolved", ref.Resolved)
			r.record(name, ref, StatusSkipped, nil)
			continue
		}

		rec, err := r.asset(ctx, name, ref)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return SlideRecord{}, ctxErr
			}
			log.Error(err, "asset processing failed", "path", ref.Path)
			r.record(name, ref, StatusFailed, err)
			continue
		}

		rw, ok, err := r.rewriter.Plan(ref, rec)
		if err != nil {
			log.Error(err, "rewriting reference failed", "path", ref.Path)
			r.record(name, ref, StatusFailed, err)
			continue
		}
		if ok {
			rewrites = append(rewrites, rw)
		}
		assets = append(assets, rec)
		r.record(name, ref, rec.Status, nil)
	}

	content, err = r.rewriter.Apply(content, rewrites)
	if err != nil {
		return SlideRecord{}, err
	}

	log.V(1).Info("collected slide", "number", number, "title", title, "assets", len(assets))
	return SlideRecord{
		SourcePath: slidePath,
		Name:       name,
		Number:     number,
		Title:      title,
		Content:    content,
		Assets:     assets,
	}, nil
}

// asset processes the file behind ref once per run. Later references to the
// same file reuse the first result, attributed to their own slide.
func (r *collectRun) asset(ctx context.Context, slide string, ref Reference) (AssetRecord, error) {
	if rec, ok := r.cache[ref.Resolved]; ok {
		rec.Slide = slide
		rec.Match = ref.Match
		return rec, nil
	}

	local, err := r.namer.Name(ref.Resolved, ref.Kind)
	if err != nil {
		return AssetRecord{}, err
	}

	res, err := r.transcoder.Transcode(ctx, ref.Resolved, filepath.Join(r.assetsDir, local), ref.Kind)
	if err != nil {
		return AssetRecord{}, err
	}

	rec := AssetRecord{
		OriginalPath:  ref.Resolved,
		LocalName:     filepath.Base(res.Path),
		ProcessedPath: res.Path,
		Kind:          ref.Kind,
		Slide:         slide,
		Match:         ref.Match,
		Size:          res.Size,
		Status:        res.Status,
	}
	r.cache[ref.Resolved] = rec
	r.coll.Assets = append(r.coll.Assets, rec)
	return rec, nil
}

func (r *collectRun) record(slide string, ref Reference, status Status, err error) {
	r.coll.Outcomes = append(r.coll.Outcomes, Outcome{
		Slide:     slide,
		Reference: ref.Path,
		Status:    status,
		Err:       err,
	})
}

func isMarkdown(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
