package ui

import "os"

// nfEnabled reports whether Nerd Font icons should be rendered.
// Default to enabled; allow disabling via NERDFONT=0
func nfEnabled() bool {
	return os.Getenv("NERDFONT") != "0"
}

func nf(icon, fallback string) string {
	if nfEnabled() {
		return icon
	}
	return fallback
}

func IconOK() string   { return nf("\uf00c", "✓") } // fa-check
func IconFail() string { return nf("\uf00d", "✗") } // fa-times
func IconWarn() string { return nf("\uf071", "!") } // fa-warning
func IconSkip() string { return nf("\uf10c", "·") } // fa-circle-o
