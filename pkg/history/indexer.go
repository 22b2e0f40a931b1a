package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// SidecarPath returns the metadata path for a PDF path.
func SidecarPath(pdfPath string) (path string) {
	path = strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + SidecarSuffix
	return path
}

// WriteSidecar stores entry next to the PDF it describes.
func WriteSidecar(entry Entry) (path string, err error) {
	if entry.Path == "" {
		err = errors.New("entry has no PDF path")
		return path, err
	}

	path = SidecarPath(entry.Path)

	var data []byte
	data, err = json.MarshalIndent(entry, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal history entry")
		return path, err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write history entry: %s", path)
		return path, err
	}

	return path, err
}

// Indexer indexes sidecar files under an output directory.
type Indexer struct {
	outputPath string
	indexPath  string
}

// NewIndexer creates a new indexer instance.
func NewIndexer(outputPath string) (indexer *Indexer, err error) {
	if outputPath == "" {
		err = errors.New("output path is required")
		return indexer, err
	}

	indexer = &Indexer{
		outputPath: outputPath,
		indexPath:  filepath.Join(outputPath, IndexFile),
	}

	return indexer, err
}

// Index scans all sidecar files and rewrites the index. Unreadable sidecars
// are skipped.
func (idx *Indexer) Index(ctx context.Context) (count int, err error) {
	entries := []Entry{}

	walkErr := filepath.Walk(idx.outputPath, func(path string, info os.FileInfo, walkErr error) (walkFuncErr error) {
		if walkErr != nil {
			walkFuncErr = walkErr
			return walkFuncErr
		}

		walkFuncErr = ctx.Err()
		if walkFuncErr != nil {
			return walkFuncErr
		}

		if info.IsDir() || !strings.HasSuffix(info.Name(), SidecarSuffix) {
			return walkFuncErr
		}

		entry, loadErr := loadEntry(path)
		if loadErr != nil {
			//nolint:nilerr // Intentionally skipping bad sidecars
			return walkFuncErr
		}

		entries = append(entries, entry)
		return walkFuncErr
	})

	if walkErr != nil {
		err = errors.Wrap(walkErr, "failed to walk output directory")
		return count, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].GeneratedAt.After(entries[j].GeneratedAt)
	})

	index := Index{
		Entries:   entries,
		UpdatedAt: time.Now().UTC(),
		Version:   IndexVersion,
	}

	err = idx.writeIndex(index)
	if err != nil {
		err = errors.Wrap(err, "failed to write index")
		return count, err
	}

	count = len(entries)
	return count, err
}

// Load reads the index from disk. A missing index is an empty one.
func (idx *Indexer) Load() (index Index, err error) {
	var data []byte
	data, err = os.ReadFile(idx.indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			index = Index{
				Entries: []Entry{},
				Version: IndexVersion,
			}
			err = nil
			return index, err
		}
		err = errors.Wrap(err, "failed to read index file")
		return index, err
	}

	err = json.Unmarshal(data, &index)
	if err != nil {
		err = errors.Wrap(err, "failed to parse index JSON")
		return index, err
	}

	return index, err
}

func (idx *Indexer) writeIndex(index Index) (err error) {
	var data []byte
	data, err = json.MarshalIndent(index, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal index")
		return err
	}

	err = os.WriteFile(idx.indexPath, data, 0600)
	if err != nil {
		err = errors.Wrap(err, "failed to write index file")
		return err
	}

	return err
}

func loadEntry(path string) (entry Entry, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrap(err, "failed to read history entry")
		return entry, err
	}

	err = json.Unmarshal(data, &entry)
	if err != nil {
		err = errors.Wrap(err, "failed to parse history entry")
		return entry, err
	}

	if entry.FileName == "" {
		err = errors.Errorf("history entry missing file name: %s", path)
		return entry, err
	}

	return entry, err
}
