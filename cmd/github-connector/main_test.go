package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/giantswarm/social-connector/configsource"
	"github.com/giantswarm/social-connector/providers"
	"github.com/giantswarm/social-connector/security"
)

const testConfigFile = `
requestTimeout: 5s
connectors:
  github-universal:
    clientId: Iv1.test
    clientSecret: s3cr3t
`

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "connectors.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestMetadataCmd(t *testing.T) {
	out, err := runCmd(t, "metadata")
	if err != nil {
		t.Fatalf("metadata error = %v", err)
	}

	var md providers.Metadata
	if err := json.Unmarshal([]byte(out), &md); err != nil {
		t.Fatalf("metadata output is not JSON: %v", err)
	}
	if md.ID != "github-universal" {
		t.Errorf("ID = %q, want github-universal", md.ID)
	}
	if md.LogoURL != "./logo.svg" {
		t.Errorf("logo = %q, want ./logo.svg", md.LogoURL)
	}
}

func TestMetadataCmd_Locale(t *testing.T) {
	out, err := runCmd(t, "metadata", "--locale", "zh-CN")
	if err != nil {
		t.Fatalf("metadata error = %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("metadata output is not JSON: %v", err)
	}
	if !strings.Contains(got["description"], "GitHub 是") {
		t.Errorf("description = %q, want the zh-CN text", got["description"])
	}

	if _, err := runCmd(t, "metadata", "--locale", "not a locale!"); err == nil {
		t.Error("metadata with an invalid locale should fail")
	}
}

func TestValidateCmd(t *testing.T) {
	path := writeConfigFile(t, testConfigFile)

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "from file", args: []string{"validate", "--config-file", path}},
		{name: "valid argument", args: []string{"validate", "--config-file", path, `{"clientId":"a","clientSecret":"b"}`}},
		{name: "invalid argument", args: []string{"validate", "--config-file", path, `{"clientId":"a"}`}, wantErr: true},
		{name: "unknown key", args: []string{"validate", "--config-file", path, `{"clientId":"a","clientSecret":"b","x":1}`}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCmd(t, tt.args...)
			if tt.wantErr {
				if !errors.Is(err, providers.ErrInvalidConfig) {
					t.Errorf("validate error = %v, want InvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("validate error = %v", err)
			}
			if !strings.Contains(out, "config is valid") {
				t.Errorf("validate output = %q", out)
			}
		})
	}
}

func TestValidateCmd_InvalidStoredConfig(t *testing.T) {
	path := writeConfigFile(t, "connectors:\n  github-universal:\n    clientId: only-id\n")

	_, err := runCmd(t, "validate", "--config-file", path)
	if providers.Classify(err) != providers.ErrorCodeInvalidConfig {
		t.Errorf("validate error = %v, want InvalidConfig", err)
	}
}

func TestAuthorizeURLCmd(t *testing.T) {
	path := writeConfigFile(t, testConfigFile)

	out, err := runCmd(t, "authorize-url", "--config-file", path,
		"--redirect-uri", "https://example.com/callback", "--state", "a b&c")
	if err != nil {
		t.Fatalf("authorize-url error = %v", err)
	}

	uri, err := url.Parse(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("authorize-url printed an invalid URL: %v", err)
	}
	query := uri.Query()
	if query.Get("client_id") != "Iv1.test" {
		t.Errorf("client_id = %q, want Iv1.test", query.Get("client_id"))
	}
	if query.Get("state") != "a b&c" {
		t.Errorf("state = %q, want %q", query.Get("state"), "a b&c")
	}
	if query.Get("scope") != "read:user" {
		t.Errorf("scope = %q, want read:user", query.Get("scope"))
	}
}

func TestAuthorizeURLCmd_RequiresFlags(t *testing.T) {
	if _, err := runCmd(t, "authorize-url", "--state", "x"); err == nil {
		t.Error("authorize-url without --redirect-uri should fail")
	}
}

func TestAuthorizeURLCmd_FromEnv(t *testing.T) {
	t.Setenv("CLITEST_GITHUB_UNIVERSAL_CLIENT_ID", "env-client")
	t.Setenv("CLITEST_GITHUB_UNIVERSAL_CLIENT_SECRET", "env-secret")

	out, err := runCmd(t, "authorize-url", "--env-prefix", "CLITEST_",
		"--redirect-uri", "https://example.com/callback", "--state", "s")
	if err != nil {
		t.Fatalf("authorize-url error = %v", err)
	}
	if !strings.Contains(out, "client_id=env-client") {
		t.Errorf("authorize-url output = %q, want env client ID", out)
	}
}

func TestExchangeCmd_MissingConfig(t *testing.T) {
	_, err := runCmd(t, "exchange", "--env-prefix", "CLITEST_EMPTY_", "--code", "abc")
	if !errors.Is(err, configsource.ErrConfigNotFound) {
		t.Errorf("exchange error = %v, want ErrConfigNotFound", err)
	}
}

func TestUserInfoCmd_RequiresToken(t *testing.T) {
	if _, err := runCmd(t, "userinfo"); err == nil {
		t.Error("userinfo without --access-token should fail")
	}
}

func TestSealCmd_RoundTrip(t *testing.T) {
	key, err := security.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error = %v", err)
	}
	t.Setenv("SEALTEST_MASTER_KEY", base64.StdEncoding.EncodeToString(key))

	out, err := runCmd(t, "seal", "--env-prefix", "SEALTEST_", "--client-id", "sealed-client", "--client-secret", "sealed-secret")
	if err != nil {
		t.Fatalf("seal error = %v", err)
	}
	ciphertext := strings.TrimSpace(out)
	if strings.Contains(ciphertext, "sealed-secret") {
		t.Fatal("seal output contains the clear-text secret")
	}

	out, err = runCmd(t, "authorize-url", "--env-prefix", "SEALTEST_", "--sealed-config", ciphertext,
		"--redirect-uri", "https://example.com/callback", "--state", "s")
	if err != nil {
		t.Fatalf("authorize-url with sealed config error = %v", err)
	}
	if !strings.Contains(out, "client_id=sealed-client") {
		t.Errorf("authorize-url output = %q, want sealed client ID", out)
	}
}

func TestSealCmd_Errors(t *testing.T) {
	if _, err := runCmd(t, "seal", "--env-prefix", "SEALTEST_UNSET_", "--client-id", "a", "--client-secret", "b"); err == nil {
		t.Error("seal without a master key should fail")
	}

	t.Setenv("SEALTEST_MASTER_KEY", base64.StdEncoding.EncodeToString(make([]byte, security.KeySize)))
	_, err := runCmd(t, "seal", "--env-prefix", "SEALTEST_", "--client-id", "a", "--client-secret", "")
	if !errors.Is(err, providers.ErrInvalidConfig) {
		t.Errorf("seal with empty secret error = %v, want InvalidConfig", err)
	}
}

func TestLogLevel(t *testing.T) {
	if _, err := runCmd(t, "authorize-url", "--log-level", "loud", "--redirect-uri", "x", "--state", "y"); err == nil {
		t.Error("an invalid --log-level should fail")
	}
}
