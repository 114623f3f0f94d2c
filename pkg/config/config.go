// Package config loads the optional YAML project file.
//
// Example .fcat.yaml:
//
//	ignore:
//	  - target
//	  - "*.lock"
//	output: context.txt
//	clipboard: false
//	gitignore: true
//	ignore_file: .fcatignore
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = ".fcat.yaml"

// File is the content of a project config file. Zero values mean "not set".
type File struct {
	Ignore     []string `yaml:"ignore"`
	Output     string   `yaml:"output"`
	Clipboard  bool     `yaml:"clipboard"`
	Gitignore  bool     `yaml:"gitignore"`
	IgnoreFile string   `yaml:"ignore_file"`
}

// Load reads path. A missing file is not an error when optional is true;
// an empty File is returned instead.
func Load(path string, optional bool) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML config data. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	f := &File{}
	if len(data) == 0 {
		return f, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil {
		if errors.Is(err, io.EOF) {
			return f, nil
		}
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return f, nil
}
