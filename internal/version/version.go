package version

import "fmt"

const (
	Version = "v0.1.0"

	colorReset    = "\033[0m"
	colorCyanBold = "\033[36;1m"
)

// Banner returns the colored banner printed at startup and by the
// --version flag.
func Banner() string {
	return fmt.Sprintf(
		"%ssafelite %s%s — guarded SQLite handles",
		colorCyanBold, Version, colorReset,
	)
}
