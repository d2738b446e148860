package configsource

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/giantswarm/social-connector/providers"
	"github.com/giantswarm/social-connector/security"
)

// Compile-time check
var _ providers.ConfigProvider = (*Sealed)(nil)

// Sealed serves configs stored as AES-256-GCM ciphertexts, for hosts that keep
// connector secrets encrypted at rest. Each connector gets its own key,
// derived from the master key with HKDF using the connector ID as info.
//
// Configs are decrypted on every GetConfig call and never cached in clear text.
type Sealed struct {
	masterKey []byte

	mu     sync.RWMutex
	sealed map[string]string
	keysMu sync.Mutex
	enc    map[string]*security.Encryptor
}

// NewSealed creates a Sealed provider. masterKey must be at least
// security.KeySize bytes.
func NewSealed(masterKey []byte) (*Sealed, error) {
	if len(masterKey) < security.KeySize {
		return nil, fmt.Errorf("master key must be at least %d bytes, got %d", security.KeySize, len(masterKey))
	}
	key := make([]byte, len(masterKey))
	copy(key, masterKey)

	return &Sealed{
		masterKey: key,
		sealed:    make(map[string]string),
		enc:       make(map[string]*security.Encryptor),
	}, nil
}

// Seal encrypts cfg for connectorID and returns the ciphertext for storage.
// cfg is serialized as JSON; it is not validated.
func (s *Sealed) Seal(connectorID string, cfg any) (string, error) {
	enc, err := s.encryptor(connectorID)
	if err != nil {
		return "", err
	}

	plaintext, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Encrypt(string(plaintext))
}

// Set stores the ciphertext of connectorID, as returned by Seal.
func (s *Sealed) Set(connectorID, ciphertext string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sealed[connectorID] = ciphertext
}

// GetConfig implements providers.ConfigProvider. The config is returned as a
// json.RawMessage.
func (s *Sealed) GetConfig(_ context.Context, connectorID string) (any, error) {
	s.mu.RLock()
	ciphertext, ok := s.sealed[connectorID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, connectorID)
	}

	enc, err := s.encryptor(connectorID)
	if err != nil {
		return nil, err
	}

	plaintext, err := enc.Decrypt(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt %s config: %w", connectorID, err)
	}
	return json.RawMessage(plaintext), nil
}

// encryptor returns the encryptor keyed for connectorID.
func (s *Sealed) encryptor(connectorID string) (*security.Encryptor, error) {
	s.keysMu.Lock()
	defer s.keysMu.Unlock()

	if enc, ok := s.enc[connectorID]; ok {
		return enc, nil
	}

	key, err := security.DeriveKey(s.masterKey, connectorID)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key for %s: %w", connectorID, err)
	}
	enc, err := security.NewEncryptor(key)
	if err != nil {
		return nil, err
	}
	s.enc[connectorID] = enc
	return enc, nil
}
