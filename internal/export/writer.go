package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestName is the file the writer describes a bundle in.
const ManifestName = "manifest.yaml"

// Manifest describes an export bundle for the asset exporter.
type Manifest struct {
	Asset     string         `yaml:"asset"`
	Binary    bool           `yaml:"binary"`
	TRS       bool           `yaml:"trs"`
	Positions [][3]float32   `yaml:"positions,flow"`
	UVs       [][2]float32   `yaml:"uvs,flow"`
	Indices   []uint32       `yaml:"indices,flow"`
	Faces     []FaceManifest `yaml:"faces"`
}

// FaceManifest is one face entry in the manifest.
type FaceManifest struct {
	Index   int        `yaml:"index"`
	Normal  [3]float32 `yaml:"normal,flow"`
	Color   string     `yaml:"color"`
	Texture string     `yaml:"texture,omitempty"`
}

// Writer writes export bundles to a directory.
type Writer struct {
	outputDir string
}

// NewWriter creates a writer for outputDir.
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// Write stores every face texture as face_<index>.png and a manifest
// describing the mesh and materials. It returns the manifest written.
func (w *Writer) Write(snap *Snapshot) (*Manifest, error) {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	m := &Manifest{
		Asset:   snap.Options.AssetName(),
		Binary:  snap.Options.Binary,
		TRS:     snap.Options.TRS,
		Indices: snap.Indices,
	}
	for _, p := range snap.Positions {
		m.Positions = append(m.Positions, [3]float32{p.X, p.Y, p.Z})
	}
	for _, uv := range snap.UVs {
		m.UVs = append(m.UVs, [2]float32{uv.X, uv.Y})
	}

	for _, fm := range snap.Materials {
		entry := FaceManifest{
			Index:  fm.Index,
			Normal: [3]float32{fm.Normal.X, fm.Normal.Y, fm.Normal.Z},
			Color:  fm.Color,
		}
		if fm.Texture != nil {
			entry.Texture = fmt.Sprintf("face_%d.png", fm.Index)
			if err := w.writePNG(entry.Texture, fm.Texture); err != nil {
				return nil, err
			}
		}
		m.Faces = append(m.Faces, entry)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.outputDir, ManifestName), data, 0644); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}
	return m, nil
}

func (w *Writer) writePNG(name string, img image.Image) error {
	file, err := os.Create(filepath.Join(w.outputDir, name))
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest previously written to dir.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	return &m, nil
}
