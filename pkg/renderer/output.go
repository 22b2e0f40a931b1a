package renderer

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WritePDF writes rendered bytes to outputPath, creating the directory.
func WritePDF(data []byte, outputPath string) (err error) {
	if len(data) == 0 {
		err = errors.Errorf("refusing to write empty document: %s", outputPath)
		return err
	}

	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	err = os.WriteFile(outputPath, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write PDF file: %s", outputPath)
		return err
	}

	return err
}

// CleanupFiles removes generated files.
func CleanupFiles(paths ...string) (err error) {
	for _, path := range paths {
		err = os.Remove(path)
		if err != nil {
			err = errors.Wrapf(err, "failed to remove file: %s", path)
			return err
		}
	}
	return err
}
