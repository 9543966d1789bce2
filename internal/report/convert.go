package report

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/raidmarks/backend/internal/models"
)

// ConvertFights shapes a report's boss fights into pull entries.
// Trash fights (Boss == 0) are skipped; the remaining fights get a
// 1-based sequential pull index, a local time-of-day pull time, an
// M:SS duration, the boss health remaining, and a P<n>/I<n> phase
// label when the report carries one.
func ConvertFights(rep *models.Report) []models.PullEntry {
	seed := uuid.New().String()[:8]
	var entries []models.PullEntry

	index := 0
	for _, fight := range rep.Fights {
		if fight.Boss == 0 {
			continue
		}
		index++

		pullTime := time.UnixMilli(rep.Start + fight.StartTime).Local().Format("15:04:05")
		durationSecs := (fight.EndTime - fight.StartTime) / 1000
		duration := fmt.Sprintf("%d:%02d", durationSecs/60, durationSecs%60)

		name := "Pull " + strconv.Itoa(index)
		if fight.LastPhaseForPercentageDisplay != nil {
			tag := "P"
			if fight.LastPhaseIsIntermission {
				tag = "I"
			}
			name += fmt.Sprintf(": %s%d", tag, *fight.LastPhaseForPercentageDisplay)
		}
		if fight.BossPercentage != nil {
			// The API reports the inverse percentage scaled by 100.
			health := int(math.Floor(100 - float64(*fight.BossPercentage)/100))
			name += fmt.Sprintf(" - %d%%", health)
		}
		name += " (" + duration + ")"

		entries = append(entries, models.PullEntry{
			ID:       fmt.Sprintf("%s-%d", seed, index),
			Name:     name,
			PullTime: pullTime,
		})
	}

	return entries
}
