package ui

// Package ui contains the Fyne user interface. It wires the content library,
// viewer, profile and account screens to the API client, the per-screen
// loaders and the download dispatcher. All UI strings are localized via
// Localization.
