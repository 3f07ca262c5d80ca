package download

// Package download implements the user-triggered file download. On the web the
// file URL is opened directly; on native platforms the file is saved into the
// documents directory and handed to the platform share action. Tasks are kept
// in memory and reported to the UI through an update callback.
