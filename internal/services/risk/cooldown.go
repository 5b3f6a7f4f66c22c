package risk

import (
	"time"

	"github.com/redbayou/outpost/internal/models"
)

// Action keys recorded on a record's cooldown map
const (
	ActionHeist   = "heist"
	ActionRob     = "rob"
	ActionLaunder = "launder"
	ActionWork    = "work"
)

// cooldownLeft returns how long until the action may run again, zero when no
// prior use is recorded or the period has elapsed
func cooldownLeft(rec *models.Record, action string, period time.Duration, now time.Time) time.Duration {
	last, ok := rec.Cooldowns[action]
	if !ok || last == 0 {
		return 0
	}

	left := time.Unix(last, 0).Add(period).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// touchCooldown marks the action as used at now. The caller persists the
// record in the same save as the action's own mutation.
func touchCooldown(rec *models.Record, action string, now time.Time) {
	rec.EnsureMaps()
	rec.Cooldowns[action] = now.Unix()
}
