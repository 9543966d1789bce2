// Package clock normalizes user-entered clock strings and converts
// time-of-day pairs into video-timestamp offsets.
package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrFormat reports an unparseable clock string.
var ErrFormat = errors.New("invalid time format")

// Normalize canonicalizes a free-form clock string into zero-padded
// 24-hour HH:MM:SS.
//
// Three-component input is validated strictly and returned unchanged.
// Two-component input is first tried as zero-padded 24-hour HH:MM; if
// that fails it is reinterpreted as evening shorthand: a literal hour
// below 12 is treated as PM ("7:30" means 19:30). Raid sessions start
// in the evening; this is not general 12-hour parsing and AM/PM
// suffixes are never consulted.
func Normalize(input string) (string, error) {
	s := strings.TrimSpace(input)
	parts := strings.Split(s, ":")

	switch len(parts) {
	case 3:
		if _, ok := SecondsOfDay(s); !ok {
			return "", fmt.Errorf("%w: %q", ErrFormat, input)
		}
		return s, nil

	case 2:
		if h, m, ok := parseHHMM(s); ok {
			return fmt.Sprintf("%02d:%02d:00", h, m), nil
		}
		h, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || m < 0 || m > 59 {
			return "", fmt.Errorf("%w: %q", ErrFormat, input)
		}
		if h < 12 {
			h += 12
		}
		if h < 0 || h > 23 {
			return "", fmt.Errorf("%w: %q", ErrFormat, input)
		}
		return fmt.Sprintf("%02d:%02d:00", h, m), nil

	default:
		return "", fmt.Errorf("%w: %q", ErrFormat, input)
	}
}

// ComputeOffset returns the signed difference pull − reference in
// seconds. A negative difference is wrapped forward across midnight
// (+86400) unconditionally; the converter never stores a date, so a
// pull "earlier" than the reference is always read as next-day.
func ComputeOffset(reference, pull string) (int, error) {
	ref, ok := SecondsOfDay(reference)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrFormat, reference)
	}
	p, ok := SecondsOfDay(pull)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrFormat, pull)
	}
	diff := p - ref
	if diff < 0 {
		diff += 86400
	}
	return diff, nil
}

// FormatVideoTimestamp renders a duration in seconds as a video
// chapter timestamp: H:MM:SS with at least one whole hour, MM:SS
// otherwise. Hours are not padded; minutes and seconds always are.
func FormatVideoTimestamp(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// SecondsOfDay parses strict zero-padded HH:MM:SS into seconds since
// midnight. The second return is false for anything else.
func SecondsOfDay(s string) (int, bool) {
	if len(s) != 8 || s[2] != ':' || s[5] != ':' {
		return 0, false
	}
	h := parseInt2(s[0:2])
	m := parseInt2(s[3:5])
	sec := parseInt2(s[6:8])
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, false
	}
	return h*3600 + m*60 + sec, true
}

func parseHHMM(s string) (int, int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, false
	}
	h := parseInt2(s[0:2])
	m := parseInt2(s[3:5])
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// parseInt2 parses a 2-digit decimal string. Returns -1 on error.
func parseInt2(s string) int {
	if len(s) != 2 {
		return -1
	}
	d1, d2 := s[0]-'0', s[1]-'0'
	if d1 > 9 || d2 > 9 {
		return -1
	}
	return int(d1)*10 + int(d2)
}
