package docbook

import (
	"cmp"
	"slices"
)

// ImageRef is a single image referenced from a generated document.
type ImageRef struct {
	// Page is the name of the document that references the image.
	Page string `yaml:"page"`

	// Name is the name of the image as written in the documentation.
	Name string `yaml:"name"`

	// Path is the path used for the image in the document.
	// It's the same as Name if the image couldn't be resolved.
	Path string `yaml:"path"`

	// Owner is the qualified name of the documented entity.
	Owner string `yaml:"owner,omitempty"`
}

// ImageManifest lists the images that the generated documents need,
// so that they can be copied next to the output.
type ImageManifest struct {
	Images []ImageRef `yaml:"images"`
}

func (m *ImageManifest) add(ref ImageRef) {
	if slices.Contains(m.Images, ref) {
		return
	}
	m.Images = append(m.Images, ref)
}

func (m *ImageManifest) clone() ImageManifest {
	return ImageManifest{Images: slices.Clone(m.Images)}
}

// Paths returns the distinct image paths in the manifest, sorted.
func (m ImageManifest) Paths() []string {
	paths := make([]string, 0, len(m.Images))
	for _, img := range m.Images {
		paths = append(paths, img.Path)
	}
	slices.SortFunc(paths, cmp.Compare[string])
	return slices.Compact(paths)
}
