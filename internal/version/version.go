// Package version holds the build version, set with
// -ldflags "-X keymap/internal/version.AppVersion=...".
package version

var AppVersion = "dev"
