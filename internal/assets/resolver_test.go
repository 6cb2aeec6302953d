package assets

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewResolver(t *testing.T) {
	t.Parallel()

	r, err := NewResolver("")
	if err != nil {
		t.Fatalf("NewResolver(\"\") error: %v", err)
	}
	if r.HasCustomLoader() {
		t.Error("embedded-only resolver reports a custom loader")
	}

	if _, err := NewResolver(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("NewResolver(missing) error = %v, want ErrInvalidBasePath", err)
	}
}

func TestResolver_CustomFirstWithFallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "templates/"+TemplateNavigation, "// deck navigation")
	writeAsset(t, dir, "styles/"+DefaultStyle+".css", "body{margin:0}")

	r, err := NewResolver(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !r.HasCustomLoader() {
		t.Error("HasCustomLoader() = false")
	}

	if js, _ := r.LoadTemplate(TemplateNavigation); js != "// deck navigation" {
		t.Errorf("custom navigation not used, got %q", js)
	}
	if css, _ := r.LoadStyle(DefaultStyle); css != "body{margin:0}" {
		t.Errorf("custom style not used, got %q", css)
	}

	single, err := r.LoadTemplate(TemplateSingleFile)
	if err != nil {
		t.Fatalf("fallback LoadTemplate() error: %v", err)
	}
	if !strings.Contains(single, "{{.SlidesJSON}}") {
		t.Error("fallback did not return the embedded single-file template")
	}

	if _, err := r.LoadTemplate("nowhere.html"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("missing everywhere: error = %v, want ErrTemplateNotFound", err)
	}
}

func TestResolver_ValidationErrorsNotFallenBack(t *testing.T) {
	t.Parallel()

	r, err := NewResolver(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.LoadTemplate("../single.html"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("error = %v, want ErrInvalidAssetName", err)
	}
}
