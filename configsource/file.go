package configsource

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/giantswarm/social-connector/providers"
)

// Compile-time checks
var (
	_ providers.ConfigProvider  = (*File)(nil)
	_ providers.TimeoutProvider = (*File)(nil)
)

// fileContents is the YAML layout read by File:
//
//	requestTimeout: 10s
//	connectors:
//	  github-universal:
//	    clientId: Iv1.0123456789abcdef
//	    clientSecret: s3cr3t
type fileContents struct {
	RequestTimeout string                    `yaml:"requestTimeout"`
	Connectors     map[string]map[string]any `yaml:"connectors"`
}

// File serves configs and the request timeout from a YAML file.
// The file is read on every call.
type File struct {
	path string
}

// NewFile creates a File provider for path.
func NewFile(path string) *File {
	return &File{path: path}
}

// GetConfig implements providers.ConfigProvider.
func (f *File) GetConfig(_ context.Context, connectorID string) (any, error) {
	contents, err := f.load()
	if err != nil {
		return nil, err
	}

	raw, ok := contents.Connectors[connectorID]
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrConfigNotFound, connectorID, f.path)
	}
	return raw, nil
}

// RequestTimeout implements providers.TimeoutProvider.
func (f *File) RequestTimeout(context.Context) (time.Duration, error) {
	contents, err := f.load()
	if err != nil {
		return 0, err
	}

	if contents.RequestTimeout == "" {
		return 0, fmt.Errorf("requestTimeout is not set in %s", f.path)
	}
	timeout, err := time.ParseDuration(contents.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid requestTimeout in %s: %w", f.path, err)
	}
	if timeout < 0 {
		return 0, fmt.Errorf("requestTimeout in %s must not be negative, got %s", f.path, timeout)
	}
	return timeout, nil
}

func (f *File) load() (*fileContents, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var contents fileContents
	if err := yaml.Unmarshal(data, &contents); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", f.path, err)
	}
	return &contents, nil
}
