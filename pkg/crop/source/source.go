// Package source reads crop lists and profile overrides from files. Loading is
// best-effort: Load never fails, it logs and falls back to an empty layer so the
// built-in crops stay in effect.
package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"soilai/pkg/crop"
)

var ErrUnsupportedFormat = errors.New("unsupported crop source format")

// Read parses the crop source at path, choosing the format by file extension.
func Read(path string) (crop.Overlay, error) {
	var (
		ov  crop.Overlay
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		ov, err = readJSON(path)
	case ".yaml", ".yml":
		ov, err = readYAML(path)
	case ".csv":
		ov, err = readCSV(path)
	case ".xlsx":
		ov, err = readXLSX(path)
	case ".html", ".htm":
		ov, err = readHTML(path)
	default:
		return crop.Overlay{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return crop.Overlay{}, fmt.Errorf("read crop source %s: %w", path, err)
	}
	ov.Name = path
	return ov, nil
}

// Load is Read that degrades to an empty layer on any problem.
func Load(path string, logger *zap.Logger) crop.Overlay {
	if strings.TrimSpace(path) == "" {
		return crop.Overlay{}
	}
	ov, err := Read(path)
	if err != nil {
		logger.Warn("crop source ignored, keeping defaults", zap.String("path", path), zap.Error(err))
		return crop.Overlay{}
	}
	logger.Info("crop source loaded",
		zap.String("path", path),
		zap.Int("crops", len(ov.Crops)),
		zap.Int("profiles", len(ov.Profiles)))
	return ov
}
