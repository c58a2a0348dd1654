package classify

import "fmt"

var sizeUnits = []string{"KB", "MB", "GB", "TB"}

// HumanSize renders a byte count for end users: "512 B", "10.0 KB",
// "1.9 MB". Units are 1024-based with one decimal place.
func HumanSize(n int64) string {
	if n < 0 {
		n = 0
	}
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	value := float64(n)
	unit := ""
	for _, u := range sizeUnits {
		value /= 1024
		unit = u
		if value < 1024 {
			break
		}
	}
	return fmt.Sprintf("%.1f %s", value, unit)
}
