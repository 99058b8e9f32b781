package utils

import (
	"fmt"
	"time"
)

// FormatTime formats time.Duration output to a human readable value.
func FormatTime(d time.Duration) string {
	s := int64(d.Seconds())
	switch {
	case s < 60:
		return fmt.Sprintf("%ds", s)
	case s < 3600:
		return fmt.Sprintf("%dm:%ds", s/60, s%60)
	case s < 86400:
		return fmt.Sprintf("%dh:%dm:%ds", s/3600, s%3600/60, s%60)
	}
	return fmt.Sprintf("%dd:%dh:%dm:%ds",
		s/86400, s%86400/3600, s%3600/60, s%60)
}
