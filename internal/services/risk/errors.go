package risk

import (
	"errors"
	"fmt"
	"time"
)

// Define errors
var (
	ErrSelfTarget         = errors.New("cannot target yourself")
	ErrUnknownHeistTarget = errors.New("unknown heist target")
	ErrNothingToLaunder   = errors.New("no dirty money to launder")
)

// CooldownError reports a gated action attempted before its period elapsed
type CooldownError struct {
	Action    string
	Remaining time.Duration
}

// Error implements the error interface
func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s is on cooldown for another %s", e.Action, e.Remaining)
}
