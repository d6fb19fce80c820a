package remote

import (
	"fmt"
	"strings"

	"github.com/sozarusac/callaudio/internal/shared"
)

// BaseMonitorDir is where Asterisk drops finished call recordings on
// every server of the fleet.
const BaseMonitorDir = "/var/spool/asterisk/monitorDONE"

// allowedAbsolutePrefixes are alternate root directories a caller may
// address directly. Currently only the fast-path results tree.
var allowedAbsolutePrefixes = []string{"/BUSQUEDA"}

// BuildPath turns a caller-supplied sub-path into the absolute remote
// path to operate on. It is pure string validation, evaluated before any
// remote I/O:
//
//   - blank sub-path: base unchanged
//   - backslashes normalized to forward slashes
//   - allow-listed absolute prefixes returned verbatim
//   - a leading ".." is rejected
//   - any other absolute path returned as-is
//   - otherwise base + "/" + sub, duplicate slashes collapsed
func BuildPath(base, subPath string) (string, error) {
	if strings.TrimSpace(subPath) == "" {
		return base, nil
	}

	normalized := strings.TrimSpace(strings.ReplaceAll(subPath, "\\", "/"))

	for _, prefix := range allowedAbsolutePrefixes {
		if strings.HasPrefix(normalized, prefix) {
			return normalized, nil
		}
	}

	if strings.HasPrefix(normalized, "..") {
		return "", fmt.Errorf("%q: %w", subPath, shared.ErrorInvalidPath)
	}

	if strings.HasPrefix(normalized, "/") {
		return normalized, nil
	}

	joined := base + "/" + normalized
	for strings.Contains(joined, "//") {
		joined = strings.ReplaceAll(joined, "//", "/")
	}
	return joined, nil
}
