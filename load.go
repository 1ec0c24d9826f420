package twconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// ConfigFileNames are the file names Discover looks for, in priority order.
var ConfigFileNames = []string{
	"tailwind.config.ts",
	"tailwind.config.js",
	"tailwind.config.mjs",
	"tailwind.config.cjs",
	"tailwind.config.yaml",
	"tailwind.config.yml",
	"tailwind.config.json",
}

// ErrNotFound is returned by Discover when no config file exists.
var ErrNotFound = errors.New("no tailwind config file found")

// Load reads a record from path, picking the format from its extension.
// Validation issues come back as *ValidationError stamped with path.
func Load(path string) (*Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	// #nosec G304 - path is chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c, err := Unmarshal(data, format)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return nil, verr.withFilename(path)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Discover returns the path of the first config file found in dir.
func Discover(dir string) (string, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNotFound, dir)
}

// Save writes the record to path atomically. An empty format is inferred
// from the extension.
func Save(path string, c *Config, format Format) error {
	if format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return err
		}
		format = f
	}

	data, err := Marshal(c, format)
	if err != nil {
		return err
	}

	// renameio handles temp file, fsync and atomic rename
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// FileName returns the conventional file name for a record in format f.
func FileName(f Format) string {
	return "tailwind.config." + string(f)
}
