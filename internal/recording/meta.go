// Package recording knows the filename convention of the call-recording
// servers and derives metadata from it. Recordings are named
//
//	{extension}{number}-{agent}-{DD}-{MM}-{YYYY}-{HH}-{MM}-{SS}.gsm
//
// e.g. "022606358444-8007-16-10-2025-13-49-28.gsm". Not every server
// follows the convention exactly, so every parse is best-effort: a field
// that cannot be extracted is returned empty, never as an error.
package recording

import (
	"fmt"
	"regexp"
	"strings"
)

// agentPattern captures the digit run immediately preceding the
// DD-MM-YYYY date triplet.
var agentPattern = regexp.MustCompile(`\d+-(\d+)-\d{2}-\d{2}-\d{4}`)

// GSM codec runs at 13 kbps, roughly 1625 bytes per second of audio.
const gsmBytesPerSecond = 1625

// ParseAgentAndExtension extracts the agent code and the extension
// prefix from a recording filename. matchedNumber is the candidate
// number the filename was matched against; the extension is whatever
// precedes its first occurrence.
func ParseAgentAndExtension(filename, matchedNumber string) (agent, extension string) {
	if m := agentPattern.FindStringSubmatch(filename); m != nil {
		agent = m[1]
	}

	if idx := strings.Index(filename, matchedNumber); idx > 0 {
		extension = filename[:idx]
	}

	return agent, extension
}

// AgentCodesEqual reports whether two agent codes identify the same
// agent. Servers disagree on whether codes carry a leading "8"
// ("011" vs "8011"), so a code and the same code with the prefix added
// on either side are treated as equal.
func AgentCodesEqual(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || a == "8"+b || "8"+a == b
}

// FormatSize renders a byte count the way the frontend expects it.
func FormatSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return fmt.Sprintf("%.2f KB", float64(bytes)/1024.0)
	default:
		return fmt.Sprintf("%.2f MB", float64(bytes)/(1024.0*1024.0))
	}
}

// EstimateDuration converts a recording's size into an approximate
// "m:ss" duration using the GSM codec bitrate.
func EstimateDuration(bytes int64) string {
	totalSeconds := float64(bytes) / gsmBytesPerSecond
	minutes := int(totalSeconds / 60)
	seconds := int(totalSeconds) % 60
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
