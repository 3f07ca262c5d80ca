package auth

// Package auth holds the client side of authentication: the persisted bearer
// token and the form validation that runs before any auth request is sent.
