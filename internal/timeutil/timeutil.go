// Package timeutil provides time formatting helpers shared by the report
// and script generators.
package timeutil

import "fmt"

// FormatSeconds converts seconds to HH:MM:SS.MS format.
//
// The format matches FFmpeg time parameters and doubles as the
// human-readable total in the corpus report.
//
// Example:
//
//	FormatSeconds(0)      // "00:00:00.00"
//	FormatSeconds(90)     // "00:01:30.00"
//	FormatSeconds(3661)   // "01:01:01.00"
//	FormatSeconds(30.53)  // "00:00:30.53"
func FormatSeconds(seconds float64) string {
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := seconds - float64(hours*3600) - float64(minutes*60)
	return fmt.Sprintf("%02d:%02d:%05.2f", hours, minutes, secs)
}
