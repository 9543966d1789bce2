package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/raidmarks/backend/internal/models"
)

// Line patterns for the analytics site's pull listing. A pull block
// looks like:
//
//	1  (3:24)
//	48%
//	P2
//	7:46 PM
var (
	rePullLine = regexp.MustCompile(`^(\d+)\s+\((\d{1,2}):(\d{2})\)`)
	reHealth   = regexp.MustCompile(`^(\d+)%`)
	rePhase    = regexp.MustCompile(`\b([PI]\d+)\b`)
	reClock12  = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\s*(AM|PM)\b`)
)

// structuredStrategy accumulates pull number, duration, boss health
// and phase across lines and emits an entry the moment a 12-hour
// clock token appears while a pull number is known. All running
// fields reset after each emission.
type structuredStrategy struct{}

func (s *structuredStrategy) Name() string { return "structured" }

func (s *structuredStrategy) scan(lines []string, rules *Rules, ids *idGen) []models.PullEntry {
	var entries []models.PullEntry
	var pullNumber, duration, phase, health string

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := rePullLine.FindStringSubmatch(line); m != nil {
			pullNumber = m[1]
			duration = fmt.Sprintf("%s:%s", m[2], m[3])
		}
		if m := reHealth.FindStringSubmatch(line); m != nil {
			health = m[1]
		}
		if m := rePhase.FindStringSubmatch(line); m != nil {
			phase = m[1]
		}

		m := reClock12.FindStringSubmatch(line)
		if m == nil || pullNumber == "" {
			continue
		}

		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		hour = to24Hour(hour, m[3])
		if hour > 23 || minute > 59 {
			continue
		}

		entries = append(entries, models.PullEntry{
			ID:       ids.next(),
			Name:     buildPullName(pullNumber, phase, health, duration),
			PullTime: fmt.Sprintf("%02d:%02d:00", hour, minute),
		})
		pullNumber, duration, phase, health = "", "", "", ""
	}

	return entries
}

// buildPullName assembles "Pull <n>[: <phase>][ - <health>%][ (<duration>)]",
// each bracketed part only when present.
func buildPullName(number, phase, health, duration string) string {
	name := "Pull " + number
	if phase != "" {
		name += ": " + phase
	}
	if health != "" {
		name += " - " + health + "%"
	}
	if duration != "" {
		name += " (" + duration + ")"
	}
	return name
}
