// Package parser scrapes pull entries out of pasted raid-log text.
//
// Two line-oriented strategies run in a fixed order: the structured
// strategy first (pull number + duration + phase + health lines,
// emitted on a 12-hour clock match), then the bare-time strategy
// (any embedded HH:MM:SS token with adjacent text as the name).
// The first strategy to produce entries wins, so a given input
// always takes the same path.
package parser

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/raidmarks/backend/internal/models"
)

type strategy interface {
	Name() string
	scan(lines []string, rules *Rules, ids *idGen) []models.PullEntry
}

var strategies = []strategy{
	&structuredStrategy{},
	&bareTimeStrategy{},
}

// Parse scrapes pull entries from text. It never returns an error:
// failures, including internal panics, come back as an invalid
// ParseResult with a human-readable message. A nil rules uses
// DefaultRules.
func Parse(text string, rules *Rules) (result models.ParseResult) {
	defer func() {
		if r := recover(); r != nil {
			result = models.Invalid("could not parse log text")
		}
	}()

	if rules == nil {
		rules = DefaultRules()
	}
	if strings.TrimSpace(text) == "" {
		return models.Invalid("log text is empty")
	}

	lines := strings.Split(text, "\n")
	ids := newIDGen()
	for _, st := range strategies {
		entries := st.scan(lines, rules, ids)
		if len(entries) > 0 {
			return models.ParseResult{Valid: true, Entries: entries}
		}
	}
	return models.Invalid("no pull times found in the pasted text")
}

// idGen hands out entry IDs unique within one parse call: a random
// per-call seed plus a counter.
type idGen struct {
	seed string
	n    int
}

func newIDGen() *idGen {
	return &idGen{seed: uuid.New().String()[:8]}
}

func (g *idGen) next() string {
	g.n++
	return fmt.Sprintf("%s-%d", g.seed, g.n)
}

// to24Hour applies standard AM/PM rules: PM adds 12 unless the hour
// already is 12 or more, 12 AM maps to 0.
func to24Hour(hour int, meridiem string) int {
	switch strings.ToUpper(meridiem) {
	case "PM":
		if hour < 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}
	return hour
}
