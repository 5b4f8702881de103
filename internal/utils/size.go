package utils

import (
	"fmt"
	"strings"
)

var binaryUnits = []string{"B", "KiB", "MiB", "GiB", "TiB"}

// FormatFileSize converts a byte length into a human-readable binary-unit string such as "1.5 KiB".
func FormatFileSize(bytes int64) string {
	if bytes < 0 {
		return "0 B"
	}
	value := float64(bytes)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(binaryUnits)-1 {
		value /= 1024
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	if value < 10 {
		formatted := strings.TrimSuffix(fmt.Sprintf("%.1f", value), ".0")
		return formatted + " " + binaryUnits[unitIndex]
	}
	return fmt.Sprintf("%.0f %s", value, binaryUnits[unitIndex])
}
