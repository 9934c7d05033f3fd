package report

import (
	"time"

	"github.com/dustin/go-humanize"
)

// FormatUploadTime renders an epoch-milliseconds upload stamp in the
// day-first form the listing shows.
func FormatUploadTime(millis int64) string {
	if millis <= 0 {
		return ""
	}
	return time.UnixMilli(millis).Format("02.01.2006 15:04:05")
}

// FormatSize renders a byte count for the listing.
func FormatSize(n int64) string {
	if n < 0 {
		return ""
	}
	return humanize.IBytes(uint64(n))
}
