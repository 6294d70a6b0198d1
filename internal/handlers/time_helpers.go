package handlers

import (
	"time"

	"github.com/salonsuite/salon-scheduler/internal/models"
	"github.com/salonsuite/salon-scheduler/internal/timezone"
)

// resolves the official timezone of the branch
func locationFromBranch(branch *models.Branch) *time.Location {
	if branch != nil {
		return timezone.Location(branch.Timezone)
	}
	return timezone.Location("")
}

func parseDateInBranch(branch *models.Branch, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromBranch(branch),
	)
}
