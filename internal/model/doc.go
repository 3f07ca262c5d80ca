package model

// Package model defines domain data structures used across the app: content
// items and their files, the child's profile, download tasks and status enums.
// Values fetched from the API are treated as immutable snapshots.
