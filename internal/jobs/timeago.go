package jobs

import (
	"fmt"
	"time"
)

// FormatTimeAgo renders how long ago a listing was created, the way the
// listing cards show it: "Just now", "5h ago", "2d 5h ago".
func FormatTimeAgo(createdAt, now time.Time) string {
	diff := now.Sub(createdAt)
	if diff < 0 {
		diff = 0
	}

	days := int(diff / (24 * time.Hour))
	hours := int((diff % (24 * time.Hour)) / time.Hour)

	if days < 1 && hours < 1 {
		return "Just now"
	}
	if days < 1 {
		return fmt.Sprintf("%dh ago", hours)
	}
	return fmt.Sprintf("%dd %dh ago", days, hours)
}
