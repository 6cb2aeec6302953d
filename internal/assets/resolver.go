package assets

import "errors"

// Resolver combines custom and embedded loaders. When a custom loader is
// configured it is tried first, and the embedded loader serves anything the
// custom directory does not provide.
type Resolver struct {
	custom   Loader // nil if no template directory configured
	embedded Loader
}

// NewResolver creates a Resolver. An empty customBasePath means embedded only.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}

	return r, nil
}

// LoadStyle loads a CSS style, custom first.
func (r *Resolver) LoadStyle(name string) (string, error) {
	return r.loadWithFallback(func(l Loader) (string, error) {
		return l.LoadStyle(name)
	})
}

// LoadTemplate loads a template, custom first.
func (r *Resolver) LoadTemplate(name string) (string, error) {
	return r.loadWithFallback(func(l Loader) (string, error) {
		return l.LoadTemplate(name)
	})
}

// HasCustomLoader returns true if a template directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

func (r *Resolver) loadWithFallback(load func(Loader) (string, error)) (string, error) {
	if r.custom == nil {
		return load(r.embedded)
	}

	content, err := load(r.custom)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found"; validation and I/O errors surface.
	if !errors.Is(err, ErrStyleNotFound) && !errors.Is(err, ErrTemplateNotFound) {
		return "", err
	}
	return load(r.embedded)
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
