package configsource

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/giantswarm/social-connector/providers"
)

// ErrConfigNotFound is returned when no config is stored for a connector.
var ErrConfigNotFound = errors.New("connector config not found")

// Compile-time checks
var (
	_ providers.ConfigProvider  = (*Static)(nil)
	_ providers.TimeoutProvider = FixedTimeout(0)
)

// Static serves configs from memory. It is safe for concurrent use.
type Static struct {
	mu      sync.RWMutex
	configs map[string]any
}

// NewStatic creates a Static provider holding a copy of configs.
func NewStatic(configs map[string]any) *Static {
	s := &Static{configs: make(map[string]any, len(configs))}
	maps.Copy(s.configs, configs)
	return s
}

// Set stores raw as the config of connectorID, replacing any previous value.
func (s *Static) Set(connectorID string, raw any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[connectorID] = raw
}

// Delete removes the config of connectorID.
func (s *Static) Delete(connectorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.configs, connectorID)
}

// GetConfig implements providers.ConfigProvider.
func (s *Static) GetConfig(_ context.Context, connectorID string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.configs[connectorID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, connectorID)
	}
	return raw, nil
}

// FixedTimeout is a TimeoutProvider returning a constant duration.
type FixedTimeout time.Duration

// RequestTimeout implements providers.TimeoutProvider.
func (f FixedTimeout) RequestTimeout(context.Context) (time.Duration, error) {
	return time.Duration(f), nil
}
