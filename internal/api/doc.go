package api

// Package api is the HTTP client for the Calm Kids backend. Each call is a
// single attempt: no retry, no backoff, no response caching. Authenticated
// calls read the bearer token from the token store and fail fast with
// ErrUnauthenticated when it is missing.
