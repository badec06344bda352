package aws

import "time"

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// msTime converts epoch milliseconds to time, zero when absent
func msTime(ms *int64) time.Time {
	if ms == nil {
		return time.Time{}
	}
	return time.UnixMilli(*ms)
}
