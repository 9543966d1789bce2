package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/raidmarks/backend/internal/models"
)

var reBareTime = regexp.MustCompile(`(\d{1,2}):(\d{2}):(\d{2})(?:\s*(AM|PM))?`)

// bareTimeStrategy handles logs that carry full HH:MM:SS tokens with
// freeform text around them, e.g. "Nidhogg wipe 21:03:47 (pull 12)".
// The name comes from the text before the time when it fits, else the
// text after, else a generated placeholder.
type bareTimeStrategy struct{}

func (s *bareTimeStrategy) Name() string { return "bare-time" }

func (s *bareTimeStrategy) scan(lines []string, rules *Rules, ids *idGen) []models.PullEntry {
	var entries []models.PullEntry

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		loc := reBareTime.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		m := reBareTime.FindStringSubmatch(line)

		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		second, _ := strconv.Atoi(m[3])
		if m[4] != "" {
			hour = to24Hour(hour, m[4])
		}
		if hour > 23 || minute > 59 || second > 59 {
			continue
		}

		placeholder := fmt.Sprintf("Pull %d", len(entries)+1)
		before := strings.TrimSpace(line[:loc[0]])
		after := strings.TrimSpace(line[loc[1]:])

		candidate := placeholder
		if before != "" && len(before) <= rules.MaxNameLength {
			candidate = before
		} else if after != "" && len(after) <= rules.MaxNameLength {
			candidate = after
		}

		name := rules.stripNoise(candidate)
		if len(name) < 2 {
			name = candidate
		}

		entries = append(entries, models.PullEntry{
			ID:       ids.next(),
			Name:     name,
			PullTime: fmt.Sprintf("%02d:%02d:%02d", hour, minute, second),
		})
	}

	return entries
}
