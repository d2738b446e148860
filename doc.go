// Package connector hosts social login connectors behind one registry.
//
// A connector implements providers.Connector: it builds the provider's
// authorization URI, exchanges the returned code for an access token and
// fetches a normalized user profile. The Registry lets a host treat every
// registered connector uniformly:
//
//	gh, err := github.NewConnector(&github.Options{
//	    ConfigProvider:  configsource.NewFile("connectors.yaml"),
//	    TimeoutProvider: configsource.NewFile("connectors.yaml"),
//	    Logger:          logger,
//	})
//	if err != nil {
//	    return err
//	}
//
//	registry := connector.NewRegistry(logger)
//	if err := registry.Register(gh); err != nil {
//	    return err
//	}
//
//	conn, err := registry.Get("github-universal")
//	uri, err := conn.AuthorizationURI(ctx, callbackURL, state)
//
// # Errors
//
// Connector operations fail with *providers.Error for the three domain kinds
// (InvalidConfig, SocialAuthCodeInvalid, SocialAccessTokenInvalid). Any other
// error is the unmodified transport or provider failure. Use providers.Classify
// to branch on the kind.
package connector
