// Package export renders pull entries as video-description chapter
// marker lines.
package export

import (
	"strings"

	"github.com/raidmarks/backend/internal/clock"
	"github.com/raidmarks/backend/internal/models"
)

// ErrorPlaceholder stands in for the offset of an entry whose pull
// time could not be parsed. The rest of the batch still renders.
const ErrorPlaceholder = "--:--"

// Render produces one "<offset> <name>" line per entry, in list
// order, against the given reference start time. The reference is
// normalized first ("19:30" and "7:30" both work); a bad reference
// aborts, since nothing can be rendered without it. A malformed
// entry pull time only poisons its own line.
func Render(referenceTime string, entries []models.PullEntry) (string, error) {
	ref, err := clock.Normalize(referenceTime)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		offset, err := clock.ComputeOffset(ref, e.PullTime)
		if err != nil {
			lines = append(lines, ErrorPlaceholder+" "+e.Name)
			continue
		}
		lines = append(lines, clock.FormatVideoTimestamp(offset)+" "+e.Name)
	}

	return strings.Join(lines, "\n"), nil
}
