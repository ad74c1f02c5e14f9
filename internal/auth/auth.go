// Package auth provides Vision One bearer token authentication.
package auth

import (
	"net/http"
	"regexp"
)

var bearerPattern = regexp.MustCompile(`Bearer [^\s'"\]]+`)

// Credentials holds the Vision One API authentication token.
type Credentials struct {
	Token string
}

// Apply adds the Authorization header to an HTTP request.
func (c *Credentials) Apply(req *http.Request) {
	if c == nil {
		return
	}
	req.Header.Set("Authorization", c.Header())
}

// Header returns the Authorization header value.
func (c *Credentials) Header() string {
	return "Bearer " + c.Token
}

// Valid reports whether a token is configured.
func (c *Credentials) Valid() bool {
	return c != nil && c.Token != ""
}

// Redact replaces every bearer token in s with a mask.
func Redact(s string) string {
	return bearerPattern.ReplaceAllString(s, "*****")
}
