package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatDuration renders milliseconds as "850ms", "1.5s" or "2m5.5s".
func FormatDuration(ms int) string {
	d := time.Duration(ms) * time.Millisecond
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", ms)
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := d / time.Minute
	return fmt.Sprintf("%dm%.1fs", int(mins), (d - mins*time.Minute).Seconds())
}

// FormatBytes renders a size in IEC units ("1.5 KiB").
func FormatBytes(n int64) string {
	if n < 0 {
		return fmt.Sprintf("%d B", n)
	}
	return humanize.IBytes(uint64(n))
}

// FormatBytesInt is FormatBytes for int sizes.
func FormatBytesInt(n int) string {
	return FormatBytes(int64(n))
}
