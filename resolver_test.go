package slidedeck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestAssetResolver_Resolve - Reference Discovery and Resolution
// ---------------------------------------------------------------------------

func TestAssetResolver_Resolve(t *testing.T) {
	t.Parallel()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	slidesDir := filepath.Join(dir, "slides")
	slidePath := filepath.Join(slidesDir, "intro.html")
	writeFile(t, filepath.Join(slidesDir, "fig", "plot.png"), "png")
	writeFile(t, filepath.Join(slidesDir, "data", "table.csv"), "a,b\n")
	writeFile(t, filepath.Join(dir, "shared", "logo.JPG"), "jpg")

	type ref struct {
		Kind     AssetKind
		Path     string
		Resolved string
		Exists   bool
	}

	tests := []struct {
		name    string
		content string
		want    []ref
	}{
		{
			name:    "double-quoted src",
			content: `<img src="fig/plot.png">`,
			want:    []ref{{KindImage, "fig/plot.png", filepath.Join(slidesDir, "fig", "plot.png"), true}},
		},
		{
			name:    "single-quoted src with dot segment",
			content: `<img src='./fig/plot.png'>`,
			want:    []ref{{KindImage, "./fig/plot.png", filepath.Join(slidesDir, "fig", "plot.png"), true}},
		},
		{
			name:    "unquoted css url",
			content: `<div style="background: url(fig/plot.png)"></div>`,
			want:    []ref{{KindImage, "fig/plot.png", filepath.Join(slidesDir, "fig", "plot.png"), true}},
		},
		{
			name:    "parent directory and uppercase extension",
			content: `<img src="../shared/logo.JPG">`,
			want:    []ref{{KindImage, "../shared/logo.JPG", filepath.Join(dir, "shared", "logo.JPG"), true}},
		},
		{
			name:    "data href",
			content: `<a href="data/table.csv">table</a>`,
			want:    []ref{{KindData, "data/table.csv", filepath.Join(slidesDir, "data", "table.csv"), true}},
		},
		{
			name:    "absolute path",
			content: `<img src="` + filepath.ToSlash(filepath.Join(dir, "shared", "logo.JPG")) + `">`,
			want: []ref{{
				KindImage,
				filepath.ToSlash(filepath.Join(dir, "shared", "logo.JPG")),
				filepath.Join(dir, "shared", "logo.JPG"),
				true,
			}},
		},
		{
			name:    "missing file is returned but does not exist",
			content: `<img src="fig/missing.png">`,
			want:    []ref{{KindImage, "fig/missing.png", filepath.Join(slidesDir, "fig", "missing.png"), false}},
		},
		{
			name:    "urls and data uris are ignored",
			content: `<img src="https://example.com/a.png"><img src="//cdn.example.com/b.png"><img src="data:image/png;base64,AAAA.png">`,
			want:    nil,
		},
		{
			name:    "non-asset href is ignored",
			content: `<a href="next.pdf">next</a>`,
			want:    nil,
		},
		{
			name:    "order of appearance",
			content: `<a href="data/table.csv"></a><img src="fig/plot.png">`,
			want: []ref{
				{KindData, "data/table.csv", filepath.Join(slidesDir, "data", "table.csv"), true},
				{KindImage, "fig/plot.png", filepath.Join(slidesDir, "fig", "plot.png"), true},
			},
		},
	}

	r := NewAssetResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got []ref
			for _, rf := range r.Resolve(tt.content, slidePath) {
				got = append(got, ref{rf.Kind, rf.Path, rf.Resolved, rf.Exists})
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAssetResolver_Resolve_Rescans(t *testing.T) {
	t.Parallel()

	content := `<img src="a.png"> <img src="b.png">`
	r := NewAssetResolver()

	first := r.Resolve(content, "slide.html")
	second := r.Resolve(content, "slide.html")
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("got %d and %d references, want 2 each", len(first), len(second))
	}
	if first[0].Offset() >= first[1].Offset() {
		t.Errorf("offsets not increasing: %d, %d", first[0].Offset(), first[1].Offset())
	}
	if first[1].Match != `src="b.png"` {
		t.Errorf("Match = %q, want %q", first[1].Match, `src="b.png"`)
	}
}

func TestAssetResolver_Resolve_DirectoryIsNotAnAsset(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "odd.png"), 0o750); err != nil {
		t.Fatal(err)
	}

	refs := NewAssetResolver().Resolve(`<img src="odd.png">`, filepath.Join(dir, "s.html"))
	if len(refs) != 1 {
		t.Fatalf("got %d references, want 1", len(refs))
	}
	if refs[0].Exists {
		t.Error("directory reported as existing asset")
	}
}
