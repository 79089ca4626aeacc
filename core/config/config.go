// Package config loads and validates the rshell configuration file.
package config

import (
	_ "embed"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	// ConfigDirName is the directory under $HOME holding rshell state.
	ConfigDirName = ".rshell"
	// ConfigurationName is the name of the configuration file.
	ConfigurationName = "config.yaml"
)

type Configuration struct {
	// Prompt is the prompt template. \u, \h and \w expand to the username,
	// hostname and abbreviated working directory.
	Prompt string `json:"prompt" validate:"required"`

	// HistoryFile is the path of the durable history file. A leading ~ is
	// expanded to the user's home directory.
	HistoryFile string `json:"history_file" validate:"required"`

	// HistorySize caps the number of entries held in memory.
	HistorySize int `json:"history_size" validate:"gt=0"`

	// HistoryFileSize caps the number of entries written to HistoryFile.
	// It must be at least HistorySize so a persist never loses buffered
	// entries.
	HistoryFileSize int `json:"history_file_size" validate:"gtefield=HistorySize"`

	// LogFile is the path of the JSON-lines session log. Empty disables
	// logging.
	LogFile string `json:"log_file"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Default returns the embedded default configuration.
func Default() *Configuration {
	var out Configuration
	// Will panic() on failure because the embedded config is fixed at build
	// time and should never be invalid.
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// ExpandPath resolves a leading ~ in a configured path against home.
func ExpandPath(path, home string) string {
	switch {
	case path == "~":
		return home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:])
	default:
		return path
	}
}
