// Package history keeps a local record of generated roadmaps: a metadata
// sidecar next to each PDF and a rebuilt index over the output directory.
package history

import "time"

const (
	// SidecarSuffix is appended to a PDF's base name for its metadata file.
	SidecarSuffix = ".roadmap.json"
	// IndexFile is the index written at the root of the output directory.
	IndexFile = ".roadmap-index.json"
	// IndexVersion is the current index format.
	IndexVersion = "1.0.0"
)

// Entry describes one generated roadmap.
type Entry struct {
	FileName    string    `json:"file_name"`
	Path        string    `json:"path"`
	FullName    string    `json:"full_name"`
	Field       string    `json:"field"`
	Curated     bool      `json:"curated"`
	DreamRole   string    `json:"dream_role"`
	GeneratedAt time.Time `json:"generated_at"`
	Size        int       `json:"size"`
	Sections    []string  `json:"sections"`
	Overflowed  bool      `json:"overflowed"`
}

// Index is the searchable list of all generated roadmaps, newest first.
type Index struct {
	Entries   []Entry   `json:"entries"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   string    `json:"version"`
}
