// Package httpclient provides the HTTP collaborator used by social connectors
// to talk to identity provider endpoints.
//
// A Requester sends JSON requests and decodes JSON responses. Non-2xx
// responses are reported as *RequestError so callers can map specific status
// codes onto their own error kinds:
//
//	err := client.Get(ctx, httpclient.Request{URL: userURL, Timeout: timeout}, &user)
//	if httpclient.IsStatus(err, http.StatusUnauthorized) {
//	    // token expired or revoked
//	}
//
// Client performs exactly one attempt per call. It never retries; an optional
// rate limiter only delays requests and gives up when the context is done.
package httpclient
