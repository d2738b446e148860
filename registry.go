package connector

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/giantswarm/social-connector/providers"
)

var (
	// ErrConnectorNotFound is returned for IDs that were never registered.
	ErrConnectorNotFound = errors.New("connector not found")

	// ErrDuplicateConnector is returned when an ID is registered twice.
	ErrDuplicateConnector = errors.New("connector already registered")
)

// Registry holds connectors by ID. It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	connectors map[string]providers.Connector
	logger     *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		connectors: make(map[string]providers.Connector),
		logger:     logger,
	}
}

// Register adds conn under its metadata ID.
func (r *Registry) Register(conn providers.Connector) error {
	if conn == nil {
		return fmt.Errorf("connector is required")
	}

	md := conn.Metadata()
	if strings.TrimSpace(md.ID) == "" {
		return fmt.Errorf("connector metadata has no id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.connectors[md.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateConnector, md.ID)
	}
	r.connectors[md.ID] = conn

	r.logger.Debug("Registered connector", "connector_id", md.ID, "target", md.Target)
	return nil
}

// Get returns the connector registered under id.
func (r *Registry) Get(id string) (providers.Connector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conn, ok := r.connectors[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrConnectorNotFound, id)
	}
	return conn, nil
}

// List returns the metadata of all registered connectors, sorted by ID.
func (r *Registry) List() []providers.Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]providers.Metadata, 0, len(r.connectors))
	for _, conn := range r.connectors {
		list = append(list, conn.Metadata())
	}
	slices.SortFunc(list, func(a, b providers.Metadata) int {
		return strings.Compare(a.ID, b.ID)
	})
	return list
}

// ValidateConfig validates raw with the connector registered under id.
func (r *Registry) ValidateConfig(id string, raw any) error {
	conn, err := r.Get(id)
	if err != nil {
		return err
	}
	return conn.ValidateConfig(raw)
}
