package sink

import (
	"strings"
	"time"
)

// UnknownIdentifier is used when the operator supplies no name.
const UnknownIdentifier = "Unknown"

// TimestampFormat is the layout of capture timestamps in the log and in
// timestamped filenames.
const TimestampFormat = "2006-01-02-15-04-05"

// NormalizeIdentifier trims raw and substitutes UnknownIdentifier for blank input.
func NormalizeIdentifier(raw string) string {
	id := strings.TrimSpace(raw)
	if id == "" {
		return UnknownIdentifier
	}
	return id
}

// filenameReplacer turns spaces and path separators into underscores so the
// image always lands directly in the output directory.
var filenameReplacer = strings.NewReplacer(
	" ", "_",
	"/", "_",
	`\`, "_",
)

// Filename derives the image filename for an identifier. Without timestamped
// the name depends on the identifier alone, so a repeated identifier replaces
// the earlier image. With timestamped set the capture time is appended.
func Filename(identifier string, ts time.Time, timestamped bool) string {
	base := "selfie_" + filenameReplacer.Replace(identifier)
	if timestamped {
		base += "_" + ts.Format(TimestampFormat)
	}
	return base + ".png"
}
