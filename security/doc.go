// Package security provides security-related functionality for social connectors,
// including audit logging and encryption of stored connector secrets.
//
// # Audit Logging
//
// The Auditor writes security_audit records through log/slog. User identifiers
// are never logged in clear text; they are replaced by a truncated SHA-256 hash.
// Authorization codes, access tokens and client secrets are never logged at all.
//
//	auditor := security.NewAuditor(logger, true)
//	auditor.LogAuthCodeRejected(ctx, "github-universal", clientID, "bad_verification_code")
//
// A nil *Auditor is valid and discards every event.
//
// # Encryption
//
// The Encryptor seals stored secrets with AES-256-GCM. DeriveKey uses HKDF-SHA256
// to derive a separate key per connector from one master key:
//
//	key, err := security.DeriveKey(masterKey, "github-universal")
//	enc, err := security.NewEncryptor(key)
//	sealed, err := enc.Encrypt(`{"clientId":"…","clientSecret":"…"}`)
//
// The storage format is base64([nonce][ciphertext]).
package security
