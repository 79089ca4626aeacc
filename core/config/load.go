package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load reads the configuration file under dir. When the file doesn't exist
// the embedded defaults are returned so a fresh install works without
// running init first.
func Load(vfs afero.Fs, dir string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(dir) == ConfigurationName {
		dir = filepath.Dir(dir)
	}

	contents, err := afero.ReadFile(vfs, filepath.Join(dir, ConfigurationName))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	var out Configuration
	if err := yaml.UnmarshalStrict(contents, &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

// Init writes the embedded default configuration into dir, refusing to
// clobber an existing file.
func Init(vfs afero.Fs, dir string) (string, error) {
	if err := vfs.MkdirAll(dir, 0700); err != nil {
		return "", err
	}

	path := filepath.Join(dir, ConfigurationName)
	if _, err := vfs.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists, refusing to overwrite", path)
	}

	if err := afero.WriteFile(vfs, path, defaultConfigData, 0600); err != nil {
		return "", err
	}
	return path, nil
}
