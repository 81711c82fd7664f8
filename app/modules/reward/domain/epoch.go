package rewarddomain

import (
	"strconv"
	"time"

	"github.com/ridgeline-games/arenarank/config"
)

// PeriodLabel derives the label a reset's archive snapshot is stored under.
//
// Rules:
//   - "epoch" policy labels by the epoch the archive closes out, i.e. the
//     number the counter advances to.
//   - "month" policy labels by the calendar month the reset ran in (YYYY-MM).
func PeriodLabel(policy string, newEpoch int64, at time.Time) string {
	if policy == config.ArchivePeriodMonth {
		return at.Format("2006-01")
	}
	return strconv.FormatInt(newEpoch, 10)
}
