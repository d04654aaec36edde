package shift

import "fmt"

// FormatClock renders seconds as HH:MM:SS. Hours are not wrapped at 24.
func FormatClock(seconds uint) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatMinutes renders whole minutes, truncating, e.g. "3 min".
func FormatMinutes(seconds uint) string {
	return fmt.Sprintf("%d min", seconds/60)
}
