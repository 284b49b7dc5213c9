// Package file provides the TOML settings file behind driven.ConfigStore.
// Keys are addressed in dot notation ("embedding.model") and stored as
// nested tables on disk.
package file
