package version

import (
	"encoding/json"
	"fmt"
	"runtime"
)

// These variables are set at build time via ldflags, e.g.:
//
//	go build -ldflags "\
//	  -X github.com/feedkit/feedkit/version.Version=1.2.3 \
//	  -X github.com/feedkit/feedkit/version.Revision=abc123 \
//	  -X 'github.com/feedkit/feedkit/version.BuiltAt=$(date)'"
var (
	// Version is the semantic version, from git tags.
	Version = "0.0.0"

	// Revision is the short commit hash of the source tree.
	Revision = "unknown"

	// BuiltAt is the build timestamp.
	BuiltAt = "unknown"
)

// Info contains version information.
type Info struct {
	Version   string `json:"version"`
	Revision  string `json:"revision"`
	BuiltAt   string `json:"builtAt"`
	GoVersion string `json:"goVersion"`
}

// Get returns the build's version information.
func Get() Info {
	return Info{
		Version:   Version,
		Revision:  Revision,
		BuiltAt:   BuiltAt,
		GoVersion: runtime.Version(),
	}
}

// String returns a human-readable representation.
func (i Info) String() string {
	return fmt.Sprintf("Version: %s\nRevision: %s\nBuilt At: %s\nGo Version: %s",
		i.Version, i.Revision, i.BuiltAt, i.GoVersion)
}

// JSON returns a JSON representation.
func (i Info) JSON() (string, error) {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
