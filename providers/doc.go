// Package providers defines the social connector interface and the types shared by
// every connector implementation.
//
// This package contains the Connector interface that a host registry uses to treat
// all identity providers uniformly, the injected ConfigProvider and TimeoutProvider
// strategies, the strict client config schema, and the connector error taxonomy.
//
// Implementations are provided in subpackages:
//   - providers/github: GitHub OAuth App connector
//   - providers/mock: Mock connector for testing
//
// Connector implementations handle:
//   - Config validation (standalone, independent of a live OAuth flow)
//   - Authorization URL generation
//   - Authorization code exchange
//   - Normalized user info retrieval
//
// # Errors
//
// Only two OAuth failures get a domain error kind besides config validation:
//   - ErrSocialAuthCodeInvalid: the token endpoint returned no access token
//   - ErrSocialAccessTokenInvalid: the user info endpoint answered 401
//
// Everything else (timeouts, network failures, unexpected status codes) is returned
// unmodified. Classify maps any error onto the taxonomy:
//
//	switch providers.Classify(err) {
//	case providers.ErrorCodeSocialAuthCodeInvalid:
//	    // ask the user to log in again
//	case providers.ErrorCodeSocialAccessTokenInvalid:
//	    // re-authenticate
//	case providers.ErrorCodeUnmapped:
//	    // inspect err, e.g. *httpclient.RequestError
//	}
package providers
