// Package configsource provides ConfigProvider and TimeoutProvider
// implementations for hosting social connectors.
//
// Every provider reads its source on each call, so credential rotation takes
// effect on the next operation without restarting the host:
//
//   - Static: in-memory configs, updated with Set
//   - Env: <PREFIX><CONNECTOR>_CLIENT_ID and _CLIENT_SECRET variables
//   - File: a YAML file holding connectors and the request timeout
//   - Sealed: AES-GCM encrypted configs with one derived key per connector
//   - FixedTimeout: a constant request timeout
//
// Providers return configs untyped. Validation is left to the connector, so a
// malformed stored config surfaces as an InvalidConfig error from the
// connector operation that used it.
package configsource
