package providers

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseClientConfig(t *testing.T) {
	tests := []struct {
		name       string
		raw        any
		want       ClientConfig
		wantReason string
	}{
		{
			name: "map",
			raw:  map[string]any{"clientId": "id", "clientSecret": "secret"},
			want: ClientConfig{ClientID: "id", ClientSecret: "secret"},
		},
		{
			name: "struct",
			raw:  ClientConfig{ClientID: "id", ClientSecret: "secret"},
			want: ClientConfig{ClientID: "id", ClientSecret: "secret"},
		},
		{
			name: "struct pointer",
			raw:  &ClientConfig{ClientID: "id", ClientSecret: "secret"},
			want: ClientConfig{ClientID: "id", ClientSecret: "secret"},
		},
		{
			name: "raw JSON",
			raw:  json.RawMessage(`{"clientId":"id","clientSecret":"secret"}`),
			want: ClientConfig{ClientID: "id", ClientSecret: "secret"},
		},
		{
			name: "bytes",
			raw:  []byte(`{"clientId":"id","clientSecret":"secret"}`),
			want: ClientConfig{ClientID: "id", ClientSecret: "secret"},
		},
		{
			name:       "nil",
			raw:        nil,
			wantReason: "config is required",
		},
		{
			name:       "nil pointer",
			raw:        (*ClientConfig)(nil),
			wantReason: "config is required",
		},
		{
			name:       "missing clientId",
			raw:        map[string]any{"clientSecret": "secret"},
			wantReason: "clientId is required",
		},
		{
			name:       "missing clientSecret",
			raw:        map[string]any{"clientId": "id"},
			wantReason: "clientSecret is required",
		},
		{
			name:       "empty clientId",
			raw:        map[string]any{"clientId": "", "clientSecret": "secret"},
			wantReason: "clientId must not be empty",
		},
		{
			name:       "empty clientSecret",
			raw:        map[string]any{"clientId": "id", "clientSecret": ""},
			wantReason: "clientSecret must not be empty",
		},
		{
			name:       "null clientSecret",
			raw:        json.RawMessage(`{"clientId":"id","clientSecret":null}`),
			wantReason: "clientSecret must not be empty",
		},
		{
			name:       "keys in other case",
			raw:        map[string]any{"CLIENTID": "id", "ClientSecret": "secret"},
			wantReason: `unknown field "CLIENTID"`,
		},
		{
			name:       "one key in other case",
			raw:        map[string]any{"clientId": "id", "clientsecret": "secret"},
			wantReason: `unknown field "clientsecret"`,
		},
		{
			name:       "trailing JSON value",
			raw:        json.RawMessage(`{"clientId":"id","clientSecret":"secret"} {"x":1}`),
			wantReason: "unexpected data after config object",
		},
		{
			name:       "trailing garbage",
			raw:        []byte(`{"clientId":"id","clientSecret":"secret"}]`),
			wantReason: "unexpected data after config object",
		},
		{
			name:       "not an object",
			raw:        []byte(`["id","secret"]`),
			wantReason: "cannot unmarshal array",
		},
		{
			name: "trailing whitespace",
			raw:  []byte("{\"clientId\":\"id\",\"clientSecret\":\"secret\"}\n\t "),
			want: ClientConfig{ClientID: "id", ClientSecret: "secret"},
		},
		{
			name:       "empty struct secret",
			raw:        ClientConfig{ClientID: "id"},
			wantReason: "clientSecret must not be empty",
		},
		{
			name:       "numeric clientSecret",
			raw:        map[string]any{"clientId": "id", "clientSecret": 1},
			wantReason: "cannot unmarshal number",
		},
		{
			name:       "unknown field",
			raw:        map[string]any{"clientId": "id", "clientSecret": "secret", "extra": true},
			wantReason: "unknown field",
		},
		{
			name:       "malformed JSON",
			raw:        []byte(`{"clientId":`),
			wantReason: "invalid connector config",
		},
		{
			name:       "unserializable",
			raw:        map[string]any{"clientId": make(chan int)},
			wantReason: "config is not serializable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClientConfig(tt.raw)

			if tt.wantReason != "" {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Fatalf("ParseClientConfig() error = %v, want InvalidConfig", err)
				}
				if !strings.Contains(err.Error(), tt.wantReason) {
					t.Errorf("ParseClientConfig() error = %v, want reason %q", err, tt.wantReason)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseClientConfig() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseClientConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
