package attempt

import (
	"strconv"
	"strings"
	"time"
)

// DefaultTimeLimit applies when a quiz carries no usable duration.
const DefaultTimeLimit = 30 * time.Minute

// TimeLimit resolves a quiz's time limit. An explicit minutes value wins;
// otherwise the "HH:MM" duration string is parsed; anything unusable falls
// back to DefaultTimeLimit. The result is always a positive duration.
func TimeLimit(minutes int, duration string) time.Duration {
	if minutes > 0 {
		return time.Duration(minutes) * time.Minute
	}
	if d, ok := parseHHMM(duration); ok {
		return d
	}
	return DefaultTimeLimit
}

func parseHHMM(s string) (time.Duration, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 {
		return 0, false
	}
	mins, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || mins < 0 {
		return 0, false
	}
	d := time.Duration(hours)*time.Hour + time.Duration(mins)*time.Minute
	if d <= 0 {
		return 0, false
	}
	return d, true
}

// FormatElapsed renders a wall-clock span as HH:MM:SS for the time_taken field.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return pad2(h) + ":" + pad2(m) + ":" + pad2(s)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
