package platform

// Package platform contains OS/platform integration: documents directory
// resolution, file naming, the share/open actions, and hosted playlist lookup.
