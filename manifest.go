package slidedeck

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ceresimaging/daq-slide-deck/internal/fileutil"
)

// Manifest is the JSON document describing a build's assets.
type Manifest struct {
	BuildInfo BuildInfo       `json:"build_info"`
	Assets    []ManifestAsset `json:"assets"`
}

// BuildInfo holds deck metadata and image settings. It has no build
// timestamp: unchanged input must produce an identical manifest.
type BuildInfo struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Date          string `json:"date"`
	TotalAssets   int    `json:"total_assets"`
	ImageFormat   string `json:"image_format"`
	Quality       int    `json:"quality"`
	MaxImageWidth int    `json:"max_image_width"`
}

// ManifestAsset is one manifest entry.
type ManifestAsset struct {
	Local       string    `json:"local"`
	Original    string    `json:"original"`
	Type        AssetKind `json:"type"`
	UsedInSlide string    `json:"used_in_slide"`
	Status      Status    `json:"status"`
	SizeBytes   int64     `json:"size_bytes"`
	SizeHuman   string    `json:"size_human"`
}

// NewManifest builds the manifest for records.
func (a *OutputAssembler) NewManifest(records []AssetRecord) Manifest {
	m := Manifest{
		BuildInfo: BuildInfo{
			Title:         a.cfg.Title,
			Author:        a.cfg.Author,
			Date:          a.date,
			TotalAssets:   len(records),
			ImageFormat:   strings.TrimPrefix(a.encoder.Extension(), "."),
			Quality:       a.cfg.Quality,
			MaxImageWidth: a.cfg.MaxImageWidth,
		},
		Assets: make([]ManifestAsset, len(records)),
	}
	for i, rec := range records {
		m.Assets[i] = ManifestAsset{
			Local:       rec.LocalName,
			Original:    rec.OriginalPath,
			Type:        rec.Kind,
			UsedInSlide: rec.Slide,
			Status:      rec.Status,
			SizeBytes:   rec.Size,
			SizeHuman:   fileutil.HumanSize(rec.Size),
		}
	}
	return m
}

// WriteManifest writes OutputDir/assets_manifest.json.
func (a *OutputAssembler) WriteManifest(records []AssetRecord) (Artifact, error) {
	b, err := json.MarshalIndent(a.NewManifest(records), "", "  ")
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: %v", ErrManifest, err)
	}
	art, err := writeArtifact(filepath.Join(a.cfg.OutputDir, ManifestFile), append(b, '\n'))
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: %v", ErrManifest, err)
	}
	return art, nil
}
