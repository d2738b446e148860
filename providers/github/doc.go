// Package github implements the social connector for GitHub OAuth Apps.
//
// The connector drives the three steps of the OAuth authorization code flow:
// building the authorization URI, exchanging the returned code for an access
// token and fetching the token owner's public profile from the GitHub API.
//
// GitHub OAuth differs from OIDC providers in several ways:
//   - No OIDC discovery: endpoints are fixed constants
//   - The token endpoint may answer 200 OK with an error payload
//   - The user ID is numeric; the connector always reports it as a string
//
// # Configuration
//
// Credentials are never passed to the constructor. The connector asks its
// ConfigProvider for them on every call, so rotated secrets take effect
// without a restart:
//
//	conn, err := github.NewConnector(&github.Options{
//	    ConfigProvider:  configsource.NewFile("connectors.yaml"),
//	    TimeoutProvider: configsource.FixedTimeout(10 * time.Second),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	uri, err := conn.AuthorizationURI(ctx, "https://example.com/callback", state)
//
// # Errors
//
// Only two provider failures get domain error kinds:
//   - a token response without access_token is SocialAuthCodeInvalid
//   - a 401 from the user endpoint is SocialAccessTokenInvalid
//
// Every other failure (network errors, timeouts, other status codes,
// malformed bodies) is returned unmodified.
package github
