package risk

import (
	"time"

	"github.com/redbayou/outpost/internal/common/clock"
	"github.com/redbayou/outpost/internal/common/keymutex"
	recordRepo "github.com/redbayou/outpost/internal/repositories/record"
	"github.com/redbayou/outpost/internal/rng"
)

// Heist target categories
const (
	HeistTargetStagecoach = "stagecoach"
	HeistTargetBusiness   = "business"
	HeistTargetTrain      = "train"
	HeistTargetBank       = "bank"
)

// DefaultCooldown is the period shared by all four actions unless configured
// per action
const DefaultCooldown = 4 * time.Hour

// Config holds configuration for the risk service
type Config struct {
	// Repository dependencies
	RecordRepo recordRepo.Repository

	// Locks serializes load-mutate-save cycles per record; must be the same
	// instance the economy and profile services use
	Locks *keymutex.KeyedMutex

	// Service dependencies
	Roller rng.Roller
	Clock  clock.Clock

	// HeistTargets maps target category to its maximum payout
	HeistTargets map[string]int64

	// HeistLossOdds: one heist in N lands the draw as a loss
	HeistLossOdds int

	// RobberyMaxPercent is the upper bound of the cash percentage drawn
	RobberyMaxPercent int

	// RobberyBackfireOdds: one robbery in N costs the robber instead
	RobberyBackfireOdds int

	// LaunderBustOdds: one laundering in N forfeits the whole dirty balance
	LaunderBustOdds int

	// LaunderMinRate and LaunderMaxRate bound the laundering rate percentage
	LaunderMinRate int
	LaunderMaxRate int

	// WorkMin and WorkMax bound the wage credited by Work
	WorkMin int64
	WorkMax int64

	// Cooldown periods per action; zero values fall back to DefaultCooldown
	HeistCooldown   time.Duration
	RobCooldown     time.Duration
	LaunderCooldown time.Duration
	WorkCooldown    time.Duration
}

// HeistInput contains parameters for a heist
type HeistInput struct {
	ActorID string

	// Target is the heist category (stagecoach, business, train, bank)
	Target string
}

// HeistOutput contains the result of a heist
type HeistOutput struct {
	Target string

	// Amount applied to the dirty wallet; negative on a loss
	Amount int64
	Loss   bool
	Dirty  int64
}

// RobInput contains parameters for robbing another player
type RobInput struct {
	ActorID  string
	VictimID string
}

// RobOutput contains the result of a robbery
type RobOutput struct {
	// Percent of the victim's cash that was drawn
	Percent int

	// Amount moved (or lost on a backfire); zero when the victim had no cash
	// or the draw came up empty
	Amount int64

	Backfired bool

	// VictimHadCash is false when the attempt found nothing to steal
	VictimHadCash bool

	ActorDirty int64
	VictimCash int64
}

// LaunderInput contains parameters for laundering dirty money
type LaunderInput struct {
	ActorID string
}

// LaunderOutput contains the result of a laundering attempt
type LaunderOutput struct {
	Busted bool

	// Forfeited is the dirty balance lost on a bust
	Forfeited int64

	// Rate and Gain describe a successful conversion
	Rate int
	Gain int64

	Dirty int64
	Cash  int64
}

// WorkInput contains parameters for working a wage
type WorkInput struct {
	ActorID string
}

// WorkOutput contains the result of working
type WorkOutput struct {
	Wage int64
	Bank int64
}
