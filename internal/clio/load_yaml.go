// Package clio reads command input from a named file or, for "-", from a
// reader standing in for stdin.
package clio

import (
	"io"
	"os"

	"sigs.k8s.io/yaml"
)

// Open returns filename opened for reading. "-" and "" mean stdin.
func Open(filename string, stdin io.Reader) (io.ReadCloser, error) {
	if filename == "-" || filename == "" {
		return io.NopCloser(stdin), nil
	}
	return os.Open(filename)
}

// LoadYAML unmarshals YAML (or JSON) from filename into a new T.
func LoadYAML[T any](filename string, stdin io.Reader) (*T, error) {
	in, err := Open(filename, stdin)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}

	var t T
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
