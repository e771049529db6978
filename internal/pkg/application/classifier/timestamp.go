package classifier

import (
	"strings"
	"time"
)

const vendorNone = "none"

// NormalizeTimestamp interprets a vendor timestamp as UTC. The legacy API reports
// naive timestamps which are in UTC, so a zone marker is added when absent. A missing,
// sentinel or unparsable value falls back to pollTime.
func NormalizeTimestamp(raw string, pollTime time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if isMissing(raw) {
		return pollTime.UTC()
	}

	if !hasZone(raw) {
		raw = raw + "Z"
	}

	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return pollTime.UTC()
	}

	return ts.UTC()
}

func isMissing(raw string) bool {
	return raw == "" || strings.EqualFold(raw, vendorNone)
}

func hasZone(raw string) bool {
	if strings.HasSuffix(raw, "Z") || strings.HasSuffix(raw, "z") {
		return true
	}

	_, clock, found := strings.Cut(raw, "T")
	if !found {
		return false
	}

	return strings.ContainsAny(clock, "+-")
}
