// Package catalog assembles the crop registry the server and CLI run with: built-in
// crops, then the CROP_SOURCE file, then the CROP_DB_PATH store.
package catalog

import (
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"soilai/config"
	"soilai/database"
	"soilai/pkg/crop"
	"soilai/pkg/crop/repositoryImp"
	"soilai/pkg/crop/source"
)

// Catalog is the loaded registry plus the crop store it read from, if any.
type Catalog struct {
	Registry *crop.Registry
	DB       *gorm.DB
}

// Load never fails: an unreadable source or store is logged and skipped.
func Load(cfg config.AppConfig, logger *zap.Logger) Catalog {
	var layers []crop.Overlay
	if ov := source.Load(cfg.CropSource, logger); !ov.Empty() {
		layers = append(layers, ov)
	}

	db := OpenStore(cfg.CropDBPath, logger)
	if db != nil {
		ov, err := repositoryImp.Overlay(repositoryImp.New(db))
		if err != nil {
			logger.Warn("crop store ignored, keeping defaults", zap.String("path", cfg.CropDBPath), zap.Error(err))
		} else if !ov.Empty() {
			logger.Info("crop store loaded", zap.String("path", cfg.CropDBPath), zap.Int("crops", len(ov.Crops)))
			layers = append(layers, ov)
		}
	}

	reg := crop.NewRegistry(layers...)
	logger.Info("crop registry ready", zap.Int("crops", reg.Len()), zap.Strings("layers", LayerNames(layers)))
	return Catalog{Registry: reg, DB: db}
}

// LayerNames lists the layers a registry is built from, the built-in one first.
func LayerNames(layers []crop.Overlay) []string {
	names := []string{crop.Builtin().Name}
	for _, l := range layers {
		names = append(names, l.Name)
	}
	return names
}

// OpenStore opens the crop store at path, or returns nil when unset or unusable.
func OpenStore(path string, logger *zap.Logger) *gorm.DB {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	db, err := database.OpenSQLite(path)
	if err != nil {
		logger.Warn("crop store unavailable", zap.String("path", path), zap.Error(err))
		return nil
	}
	return db
}

func (c Catalog) Close() error { return database.Close(c.DB) }
