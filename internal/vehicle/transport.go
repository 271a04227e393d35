package vehicle

import "net/http"

// basicAuthTransport attaches Basic credentials to every outbound request.
type basicAuthTransport struct {
	username string
	password string
	next     http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request
	clone := req.Clone(req.Context())
	clone.SetBasicAuth(t.username, t.password)
	return t.next.RoundTrip(clone)
}

// newTransport wraps next with Basic auth when a username is configured.
func newTransport(username, password string, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if username == "" {
		return next
	}
	return &basicAuthTransport{username: username, password: password, next: next}
}
