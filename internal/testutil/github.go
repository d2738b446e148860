package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
)

// GitHubServer is a fake of the GitHub token and user endpoints.
//
// Codes registered with AddCode are single-use, as on GitHub. Unknown codes
// are answered with 200 OK and a bad_verification_code payload; unknown
// tokens with 401.
type GitHubServer struct {
	*httptest.Server

	ClientID     string
	ClientSecret string

	mu     sync.Mutex
	codes  map[string]string
	users  map[string]string
	status map[string]int

	tokenRequests atomic.Int64
	userRequests  atomic.Int64
}

// NewGitHubServer starts a fake GitHub accepting the given client credentials.
// Callers must Close it.
func NewGitHubServer(clientID, clientSecret string) *GitHubServer {
	s := &GitHubServer{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		codes:        make(map[string]string),
		users:        make(map[string]string),
		status:       make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login/oauth/access_token", s.handleToken)
	mux.HandleFunc("GET /user", s.handleUser)
	s.Server = httptest.NewServer(mux)

	return s
}

// TokenURL returns the URL of the access token endpoint
func (s *GitHubServer) TokenURL() string {
	return s.URL + "/login/oauth/access_token"
}

// UserURL returns the URL of the user endpoint
func (s *GitHubServer) UserURL() string {
	return s.URL + "/user"
}

// AddCode registers an authorization code that exchanges to token
func (s *GitHubServer) AddCode(code, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code] = token
}

// AddUser registers the user JSON returned for token
func (s *GitHubServer) AddUser(token, userJSON string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[token] = userJSON
}

// FailUser makes the user endpoint answer status for token
func (s *GitHubServer) FailUser(token string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[token] = status
}

// TokenRequests returns the number of requests to the token endpoint
func (s *GitHubServer) TokenRequests() int {
	return int(s.tokenRequests.Load())
}

// UserRequests returns the number of requests to the user endpoint
func (s *GitHubServer) UserRequests() int {
	return int(s.userRequests.Load())
}

func (s *GitHubServer) handleToken(w http.ResponseWriter, r *http.Request) {
	s.tokenRequests.Add(1)

	var body struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
		Code         string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if body.ClientID != s.ClientID || body.ClientSecret != s.ClientSecret {
		writeJSON(w, map[string]string{
			"error":             "incorrect_client_credentials",
			"error_description": "The client_id and/or client_secret passed are incorrect.",
		})
		return
	}

	s.mu.Lock()
	token, ok := s.codes[body.Code]
	delete(s.codes, body.Code)
	s.mu.Unlock()

	if !ok {
		writeJSON(w, map[string]string{
			"error":             "bad_verification_code",
			"error_description": "The code passed is incorrect or expired.",
		})
		return
	}

	writeJSON(w, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
		"scope":        "read:user",
	})
}

func (s *GitHubServer) handleUser(w http.ResponseWriter, r *http.Request) {
	s.userRequests.Add(1)

	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "token ")

	s.mu.Lock()
	user, known := s.users[token]
	status := s.status[token]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch {
	case status != 0:
		w.WriteHeader(status)
		writeJSON(w, map[string]string{"message": http.StatusText(status)})
	case !ok || !known:
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(w, map[string]string{"message": "Bad credentials"})
	default:
		_, _ = w.Write([]byte(user))
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}
