// Package export renders the match collection as downloadable XML and HTML
// documents. The JSON export is the stored document itself and is served by
// the export service without a renderer. Renderers are pure: the same input
// (including order and the supplied generation time) always yields
// byte-identical output.
package export

import (
	"strconv"
	"time"
)

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatTimestamp matches the encoding/json representation of stored times.
func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
