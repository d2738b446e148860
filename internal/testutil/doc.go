// Package testutil provides test doubles shared by the connector packages:
// a recording fake of httpclient.Requester and a fake GitHub server built on
// net/http/httptest.
//
//	server := testutil.NewGitHubServer("client-id", "client-secret")
//	defer server.Close()
//	server.AddCode("code-1", "token-1")
//	server.AddUser("token-1", `{"id": 12345}`)
package testutil
