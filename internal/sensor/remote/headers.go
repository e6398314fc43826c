package remote

import (
	"encoding/base64"
	"net/http"
)

// DefaultAPIKeyHeader is used when an API key is configured without a header name.
const DefaultAPIKeyHeader = "X-API-Key"

// Auth holds the credentials sent to the station API. Any combination may be
// set; a bearer token wins over basic auth for the Authorization header.
type Auth struct {
	APIKey      string
	HeaderName  string
	BearerToken string
	Username    string
	Password    string
}

// BuildHeaders returns the request headers for every API call.
func BuildHeaders(auth Auth) http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")

	if auth.APIKey != "" {
		name := auth.HeaderName
		if name == "" {
			name = DefaultAPIKeyHeader
		}
		h.Set(name, auth.APIKey)
	}

	switch {
	case auth.BearerToken != "":
		h.Set("Authorization", "Bearer "+auth.BearerToken)
	case auth.Username != "":
		creds := base64.StdEncoding.EncodeToString([]byte(auth.Username + ":" + auth.Password))
		h.Set("Authorization", "Basic "+creds)
	}
	return h
}
