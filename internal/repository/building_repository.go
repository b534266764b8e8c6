package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	apperrors "github.com/stwalsh4118/building/internal/errors"
	"github.com/stwalsh4118/building/internal/locator"
	"github.com/stwalsh4118/building/internal/logger"
	"github.com/stwalsh4118/building/internal/models"
)

// File permissions for created data directories and files
const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// BuildingRepository defines the persistence operations for the building.
type BuildingRepository interface {
	// Load reads the building from the default data file.
	// It never fails: any discovery, read or parse problem is logged and an
	// empty Building is returned instead.
	Load(ctx context.Context) *models.Building

	// LoadFrom is Load for a custom data file name.
	LoadFrom(ctx context.Context, name string) *models.Building

	// Save writes the building to the default data file.
	// Unlike Load, every failure is returned to the caller.
	Save(ctx context.Context, b *models.Building) error

	// SaveTo is Save for a custom target. Absolute targets are written as is;
	// relative targets are placed under the data directory of the main directory.
	SaveTo(ctx context.Context, b *models.Building, target string) error
}

// fileRepository is the file-backed implementation of BuildingRepository.
type fileRepository struct {
	fs       afero.Fs
	locator  *locator.Locator
	codec    Codec
	dataFile string
	log      *logger.Logger
}

// NewFileRepository creates a BuildingRepository storing dataFile on fs.
func NewFileRepository(fs afero.Fs, loc *locator.Locator, codec Codec, dataFile string, log *logger.Logger) BuildingRepository {
	return &fileRepository{
		fs:       fs,
		locator:  loc,
		codec:    codec,
		dataFile: dataFile,
		log:      log,
	}
}

func (r *fileRepository) Load(ctx context.Context) *models.Building {
	return r.LoadFrom(ctx, r.dataFile)
}

func (r *fileRepository) LoadFrom(ctx context.Context, name string) *models.Building {
	building, err := r.load(ctx, name)
	if err != nil {
		r.log.Warn("Falling back to default building", map[string]interface{}{
			"data_file": name,
			"reason":    err.Error(),
			"kind":      string(apperrors.KindOf(err)),
		})
		return &models.Building{}
	}
	return building
}

// load runs the discovery chain and reads the data file, returning the first
// failure encountered. LoadFrom reports it.
func (r *fileRepository) load(ctx context.Context, name string) (*models.Building, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load cancelled: %w", err)
	}

	path := name
	if !filepath.IsAbs(name) {
		mainDir, err := r.locator.FindMainDirectory()
		if err != nil {
			return nil, err
		}
		r.log.Info("Main directory", map[string]interface{}{"dir": mainDir})

		path, err = r.locator.ResolveDataFile(mainDir, name)
		if err != nil {
			return nil, err
		}
	}

	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, apperrors.IOFailure("load", fmt.Sprintf("data file '%s'", path), "read file failed", err)
	}

	building, err := r.codec.Unmarshal(data)
	if err != nil {
		return nil, apperrors.ParseFailure("load", fmt.Sprintf("data file '%s'", path), "parse file failed", err)
	}

	r.log.Debug("Building loaded", map[string]interface{}{
		"path":   path,
		"floors": len(building.Floors),
	})

	return building, nil
}

func (r *fileRepository) Save(ctx context.Context, b *models.Building) error {
	return r.SaveTo(ctx, b, r.dataFile)
}

func (r *fileRepository) SaveTo(ctx context.Context, b *models.Building, target string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("save cancelled: %w", err)
	}

	path := target
	if !filepath.IsAbs(target) {
		mainDir, err := r.locator.FindMainDirectory()
		if err != nil {
			return apperrors.NotFound("save",
				fmt.Sprintf("data file '%s'", target),
				"main directory cannot be found",
				err)
		}
		r.log.Info("Main directory", map[string]interface{}{"dir": mainDir})

		path = filepath.Join(mainDir, r.locator.DataDir(), target)
		if err := r.ensureDir(filepath.Dir(path), target); err != nil {
			return err
		}
	}

	data, err := r.codec.Marshal(b)
	if err != nil {
		return apperrors.IOFailure("save", "building", "conversion to YAML failed", err)
	}

	if err := afero.WriteFile(r.fs, path, data, filePerm); err != nil {
		return apperrors.IOFailure("save",
			fmt.Sprintf("data file '%s'", path),
			"write file failed",
			err)
	}

	r.log.Debug("Building saved", map[string]interface{}{
		"path":  path,
		"bytes": len(data),
	})

	return nil
}

// ensureDir creates dir and any missing ancestors.
func (r *fileRepository) ensureDir(dir, target string) error {
	exists, err := afero.DirExists(r.fs, dir)
	if err == nil && exists {
		return nil
	}

	if err := r.fs.MkdirAll(dir, dirPerm); err != nil {
		return apperrors.IOFailure("save",
			fmt.Sprintf("data directory '%s'", dir),
			fmt.Sprintf("directory for data file '%s' could not be created", filepath.Base(target)),
			err)
	}

	r.log.Info("Data directory was created", map[string]interface{}{"dir": dir})
	return nil
}
