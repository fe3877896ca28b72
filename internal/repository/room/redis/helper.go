package redis

import (
	"strconv"
	"time"
)

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

func parseSeconds(field string) (time.Duration, bool) {
	seconds, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, false
	}

	return time.Duration(seconds * float64(time.Second)), true
}

func formatUnixSeconds(t time.Time) string {
	return strconv.FormatFloat(float64(t.UnixNano())/float64(time.Second), 'f', 6, 64)
}

func parseUnixSeconds(field string) (time.Time, bool) {
	seconds, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return time.Time{}, false
	}

	return time.Unix(0, int64(seconds*float64(time.Second))), true
}
