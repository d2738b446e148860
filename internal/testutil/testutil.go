package testutil

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/giantswarm/social-connector/httpclient"
)

// Call is one request seen by a FakeRequester.
type Call struct {
	Method  string
	Request httpclient.Request
}

// Response is the canned outcome of a FakeRequester operation.
// Err takes precedence over Body, which must be a JSON document.
type Response struct {
	Body string
	Err  error
}

// FakeRequester is an httpclient.Requester that records calls and answers
// from canned responses keyed by Request.Operation.
type FakeRequester struct {
	mu        sync.Mutex
	calls     []Call
	responses map[string]Response
}

// Compile-time check that FakeRequester implements httpclient.Requester.
var _ httpclient.Requester = (*FakeRequester)(nil)

// NewFakeRequester creates a FakeRequester with no canned responses
func NewFakeRequester() *FakeRequester {
	return &FakeRequester{responses: make(map[string]Response)}
}

// Respond sets the response for operation
func (f *FakeRequester) Respond(operation string, resp Response) *FakeRequester {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[operation] = resp
	return f
}

// Get records the call and returns the canned response
func (f *FakeRequester) Get(ctx context.Context, req httpclient.Request, out any) error {
	return f.do("GET", req, out)
}

// Post records the call and returns the canned response
func (f *FakeRequester) Post(ctx context.Context, req httpclient.Request, out any) error {
	return f.do("POST", req, out)
}

func (f *FakeRequester) do(method string, req httpclient.Request, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Method: method, Request: req})
	resp, ok := f.responses[req.Operation]
	f.mu.Unlock()

	if !ok {
		return fmt.Errorf("no response configured for operation %q", req.Operation)
	}
	if resp.Err != nil {
		return resp.Err
	}
	if out == nil || resp.Body == "" {
		return nil
	}
	return json.Unmarshal([]byte(resp.Body), out)
}

// Calls returns a copy of the recorded calls
func (f *FakeRequester) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	calls := make([]Call, len(f.calls))
	copy(calls, f.calls)
	return calls
}

// CallCount returns the number of recorded calls
func (f *FakeRequester) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// GenerateRandomString generates a random string of the given length
func GenerateRandomString(length int) string {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("failed to generate random string: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(b)[:length]
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error but got nil")
	}
}

// AssertEqual fails the test if got != want
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

// AssertStringContains fails the test if s doesn't contain substr
func AssertStringContains(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Errorf("string %q does not contain %q", s, substr)
	}
}
