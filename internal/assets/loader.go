package assets

// Built-in template names.
const (
	TemplateSingleFile   = "single.html"
	TemplateBundleIndex  = "bundle_index.html"
	TemplatePresentation = "presentation.js"
	TemplateNavigation   = "navigation.js"

	// DefaultStyle is used when the deck has no stylesheet of its own.
	DefaultStyle = "default"
)

// Loader defines the contract for loading page templates and styles.
type Loader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads a template by file name (with extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}
