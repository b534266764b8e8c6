package locator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	apperrors "github.com/stwalsh4118/building/internal/errors"
	"github.com/stwalsh4118/building/internal/logger"
)

// Locator finds the main directory of the project by its marker file and
// resolves data files beneath it.
type Locator struct {
	fs         afero.Fs
	markerFile string
	dataDir    string
	getwd      func() (string, error)
	executable func() (string, error)
	log        *logger.Logger
}

// Option customises a Locator.
type Option func(*Locator)

// WithWorkingDir overrides how the current working directory is obtained.
func WithWorkingDir(getwd func() (string, error)) Option {
	return func(l *Locator) {
		l.getwd = getwd
	}
}

// WithExecutable overrides how the running program's canonical path is obtained.
func WithExecutable(executable func() (string, error)) Option {
	return func(l *Locator) {
		l.executable = executable
	}
}

// New creates a Locator searching fs for markerFile, with data files expected
// under the dataDir subdirectory of the main directory.
func New(fs afero.Fs, markerFile, dataDir string, log *logger.Logger, opts ...Option) *Locator {
	l := &Locator{
		fs:         fs,
		markerFile: markerFile,
		dataDir:    dataDir,
		getwd:      os.Getwd,
		executable: canonicalExecutable,
		log:        log,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DataDir returns the data subdirectory name.
func (l *Locator) DataDir() string {
	return l.dataDir
}

// canonicalExecutable returns the running program's path with symlinks resolved.
func canonicalExecutable() (string, error) {
	path, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(path)
}

// FindUpward looks for name in startDir and then in each ancestor directory,
// returning the path of the first match.
func (l *Locator) FindUpward(startDir, name string) (string, error) {
	dir := filepath.Clean(startDir)

	for {
		l.log.Debug("Searching directory", map[string]interface{}{
			"dir":  dir,
			"file": name,
		})

		candidate := filepath.Join(dir, name)
		exists, err := afero.Exists(l.fs, candidate)
		if err == nil && exists {
			return candidate, nil
		}
		// Stat errors other than not-exist are treated as a miss at this level

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", apperrors.NotFound("find",
		fmt.Sprintf("file '%s'", name),
		fmt.Sprintf("file does not exist in '%s' or any parent directory", startDir),
		nil)
}

// FindMainDirectory returns the directory holding the marker file, searching
// upward from the working directory first and from the executable's
// directory second.
func (l *Locator) FindMainDirectory() (string, error) {
	var searched []string

	cwd, err := l.getwd()
	if err != nil {
		l.log.Warn("Working directory could not be determined", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		l.log.Debug("Working directory", map[string]interface{}{"dir": cwd})
		searched = append(searched, cwd)

		if marker, err := l.FindUpward(cwd, l.markerFile); err == nil {
			return filepath.Dir(marker), nil
		}
	}

	// Fall back to the location of the running program
	exe, err := l.executable()
	if err != nil {
		l.log.Warn("Executable path could not be determined", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		exeDir := filepath.Dir(exe)
		l.log.Debug("Module directory", map[string]interface{}{"dir": exeDir})
		searched = append(searched, exeDir)

		if marker, err := l.FindUpward(exeDir, l.markerFile); err == nil {
			return filepath.Dir(marker), nil
		}
	}

	return "", apperrors.NotFound("find",
		"main directory",
		fmt.Sprintf("marker file '%s' does not exist above %v", l.markerFile, searched),
		nil)
}

// ResolveDataFile finds name upward from the data subdirectory of mainDir,
// then upward from mainDir itself.
func (l *Locator) ResolveDataFile(mainDir, name string) (string, error) {
	if path, err := l.FindUpward(filepath.Join(mainDir, l.dataDir), name); err == nil {
		return path, nil
	}

	path, err := l.FindUpward(mainDir, name)
	if err != nil {
		return "", apperrors.NotFound("resolve",
			fmt.Sprintf("data file '%s'", name),
			fmt.Sprintf("file does not exist under '%s'", mainDir),
			err)
	}
	return path, nil
}
