package providers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
)

// ClientConfig holds the OAuth client credentials stored for a connector.
type ClientConfig struct {
	// ClientID is the OAuth App client ID.
	ClientID string `json:"clientId"`

	// ClientSecret is the OAuth App client secret.
	ClientSecret string `json:"clientSecret"`
}

// ParseClientConfig validates raw against the client config schema and returns it typed.
//
// raw may be anything that serializes to a JSON object: a map, a struct, a
// json.RawMessage or a []byte holding JSON. The object must have exactly the
// clientId and clientSecret keys, both non-empty strings. Every violation is
// reported as an InvalidConfig error.
func ParseClientConfig(raw any) (ClientConfig, error) {
	var data []byte
	switch v := raw.(type) {
	case nil:
		return ClientConfig{}, invalidConfig("config is required", nil)
	case ClientConfig:
		return v, v.validate()
	case *ClientConfig:
		if v == nil {
			return ClientConfig{}, invalidConfig("config is required", nil)
		}
		return *v, v.validate()
	case json.RawMessage:
		data = v
	case []byte:
		data = v
	default:
		var err error
		data, err = json.Marshal(v)
		if err != nil {
			return ClientConfig{}, invalidConfig("config is not serializable", err)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		return ClientConfig{}, invalidConfig(err.Error(), err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return ClientConfig{}, invalidConfig("unexpected data after config object", err)
	}

	// Keys are matched exactly; encoding/json would fold case.
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		if key != "clientId" && key != "clientSecret" {
			return ClientConfig{}, invalidConfig(fmt.Sprintf("unknown field %q", key), nil)
		}
	}

	var cfg ClientConfig
	for _, field := range []struct {
		key string
		dst *string
	}{
		{"clientId", &cfg.ClientID},
		{"clientSecret", &cfg.ClientSecret},
	} {
		value, ok := fields[field.key]
		if !ok {
			return ClientConfig{}, invalidConfig(field.key+" is required", nil)
		}
		if err := json.Unmarshal(value, field.dst); err != nil {
			return ClientConfig{}, invalidConfig(fmt.Sprintf("%s: %v", field.key, err), err)
		}
	}
	return cfg, cfg.validate()
}

func (c ClientConfig) validate() error {
	if c.ClientID == "" {
		return invalidConfig("clientId must not be empty", nil)
	}
	if c.ClientSecret == "" {
		return invalidConfig("clientSecret must not be empty", nil)
	}
	return nil
}

func invalidConfig(reason string, cause error) *Error {
	return WrapError(ErrorCodeInvalidConfig, fmt.Sprintf("invalid connector config: %s", reason), cause)
}
