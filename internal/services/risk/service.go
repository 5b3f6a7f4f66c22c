package risk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redbayou/outpost/internal/common/clock"
	"github.com/redbayou/outpost/internal/common/keymutex"
	"github.com/redbayou/outpost/internal/models"
	recordRepo "github.com/redbayou/outpost/internal/repositories/record"
	"github.com/redbayou/outpost/internal/rng"
)

// service implements the Service interface
type service struct {
	config *Config
	repo   recordRepo.Repository
	locks  *keymutex.KeyedMutex
	roller rng.Roller
	clock  clock.Clock
}

// New creates a new risk service. Unset policy knobs take the original
// game-balance defaults.
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RecordRepo == nil {
		return nil, errors.New("record repository cannot be nil")
	}

	if cfg.Locks == nil {
		return nil, errors.New("keyed mutex cannot be nil")
	}

	if cfg.Roller == nil {
		return nil, errors.New("roller cannot be nil")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	if cfg.HeistTargets == nil {
		cfg.HeistTargets = map[string]int64{
			HeistTargetStagecoach: 300,
			HeistTargetBusiness:   500,
			HeistTargetTrain:      600,
			HeistTargetBank:       700,
		}
	}
	if cfg.HeistLossOdds == 0 {
		cfg.HeistLossOdds = 4
	}
	if cfg.RobberyMaxPercent == 0 {
		cfg.RobberyMaxPercent = 70
	}
	if cfg.RobberyBackfireOdds == 0 {
		cfg.RobberyBackfireOdds = 3
	}
	if cfg.LaunderBustOdds == 0 {
		cfg.LaunderBustOdds = 3
	}
	if cfg.LaunderMinRate == 0 {
		cfg.LaunderMinRate = 50
	}
	if cfg.LaunderMaxRate == 0 {
		cfg.LaunderMaxRate = 100
	}
	if cfg.WorkMin == 0 {
		cfg.WorkMin = 100
	}
	if cfg.WorkMax == 0 {
		cfg.WorkMax = 500
	}

	return &service{
		config: cfg,
		repo:   cfg.RecordRepo,
		locks:  cfg.Locks,
		roller: cfg.Roller,
		clock:  clk,
	}, nil
}

// Heist robs a target category for a uniform draw in [0, max]; one draw in
// four is applied as a loss. The result lands in the dirty wallet.
func (s *service) Heist(ctx context.Context, input *HeistInput) (*HeistOutput, error) {
	if input == nil || input.ActorID == "" {
		return nil, errors.New("input and actor ID cannot be empty")
	}

	max, ok := s.config.HeistTargets[input.Target]
	if !ok {
		return nil, ErrUnknownHeistTarget
	}

	s.locks.Lock(input.ActorID)
	defer s.locks.Unlock(input.ActorID)

	rec, err := s.loadOrInit(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if left := cooldownLeft(rec, ActionHeist, s.period(s.config.HeistCooldown), now); left > 0 {
		return nil, &CooldownError{Action: ActionHeist, Remaining: left}
	}

	draw := int64(s.roller.Between(0, int(max)))
	loss := s.roller.OneIn(s.config.HeistLossOdds)

	amount := draw
	if loss {
		amount = -draw
	}

	rec.Dirty += amount
	touchCooldown(rec, ActionHeist, now)

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}

	return &HeistOutput{
		Target: input.Target,
		Amount: amount,
		Loss:   loss,
		Dirty:  rec.Dirty,
	}, nil
}

// Rob draws a percentage in [0, max] of the victim's cash. One attempt in
// three backfires: the robber's dirty wallet pays the amount and the victim
// is untouched. A penniless victim or an empty draw still consumes the
// attempt: the cooldown is recorded either way.
func (s *service) Rob(ctx context.Context, input *RobInput) (*RobOutput, error) {
	if input == nil || input.ActorID == "" || input.VictimID == "" {
		return nil, errors.New("input, actor ID and victim ID cannot be empty")
	}

	if input.ActorID == input.VictimID {
		return nil, ErrSelfTarget
	}

	s.locks.LockPair(input.ActorID, input.VictimID)
	defer s.locks.UnlockPair(input.ActorID, input.VictimID)

	actor, err := s.loadOrInit(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	victim, err := s.loadOrInit(ctx, input.VictimID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if left := cooldownLeft(actor, ActionRob, s.period(s.config.RobCooldown), now); left > 0 {
		return nil, &CooldownError{Action: ActionRob, Remaining: left}
	}

	if victim.Cash <= 0 {
		touchCooldown(actor, ActionRob, now)
		if err := s.save(ctx, actor); err != nil {
			return nil, err
		}

		return &RobOutput{
			VictimHadCash: false,
			ActorDirty:    actor.Dirty,
			VictimCash:    victim.Cash,
		}, nil
	}

	percent := s.roller.Between(0, s.config.RobberyMaxPercent)
	amount := victim.Cash * int64(percent) / 100
	backfired := s.roller.OneIn(s.config.RobberyBackfireOdds)

	touchCooldown(actor, ActionRob, now)

	if amount <= 0 {
		// Empty draw; nothing moves but the attempt is spent
		if err := s.save(ctx, actor); err != nil {
			return nil, err
		}

		return &RobOutput{
			Percent:       percent,
			VictimHadCash: true,
			ActorDirty:    actor.Dirty,
			VictimCash:    victim.Cash,
		}, nil
	}

	if backfired {
		actor.Dirty -= amount
		if err := s.save(ctx, actor); err != nil {
			return nil, err
		}

		return &RobOutput{
			Percent:       percent,
			Amount:        amount,
			Backfired:     true,
			VictimHadCash: true,
			ActorDirty:    actor.Dirty,
			VictimCash:    victim.Cash,
		}, nil
	}

	victim.Cash -= amount
	actor.Dirty += amount

	if err := s.savePair(ctx, actor, victim); err != nil {
		return nil, err
	}

	return &RobOutput{
		Percent:       percent,
		Amount:        amount,
		VictimHadCash: true,
		ActorDirty:    actor.Dirty,
		VictimCash:    victim.Cash,
	}, nil
}

// Launder converts the dirty balance to cash at a uniform rate in
// [min, max]%. One attempt in three is busted and forfeits the whole dirty
// balance. With nothing to launder the attempt is rejected without touching
// the cooldown.
func (s *service) Launder(ctx context.Context, input *LaunderInput) (*LaunderOutput, error) {
	if input == nil || input.ActorID == "" {
		return nil, errors.New("input and actor ID cannot be empty")
	}

	s.locks.Lock(input.ActorID)
	defer s.locks.Unlock(input.ActorID)

	rec, err := s.loadOrInit(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if left := cooldownLeft(rec, ActionLaunder, s.period(s.config.LaunderCooldown), now); left > 0 {
		return nil, &CooldownError{Action: ActionLaunder, Remaining: left}
	}

	if rec.Dirty <= 0 {
		return nil, ErrNothingToLaunder
	}

	if s.roller.OneIn(s.config.LaunderBustOdds) {
		forfeited := rec.Dirty
		rec.Dirty = 0
		touchCooldown(rec, ActionLaunder, now)

		if err := s.save(ctx, rec); err != nil {
			return nil, err
		}

		return &LaunderOutput{
			Busted:    true,
			Forfeited: forfeited,
			Dirty:     rec.Dirty,
			Cash:      rec.Cash,
		}, nil
	}

	rate := s.roller.Between(s.config.LaunderMinRate, s.config.LaunderMaxRate)
	gain := rec.Dirty * int64(rate) / 100

	rec.Dirty -= gain
	rec.Cash += gain
	touchCooldown(rec, ActionLaunder, now)

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}

	return &LaunderOutput{
		Rate:  rate,
		Gain:  gain,
		Dirty: rec.Dirty,
		Cash:  rec.Cash,
	}, nil
}

// Work credits a uniform wage in [min, max] to the bank
func (s *service) Work(ctx context.Context, input *WorkInput) (*WorkOutput, error) {
	if input == nil || input.ActorID == "" {
		return nil, errors.New("input and actor ID cannot be empty")
	}

	s.locks.Lock(input.ActorID)
	defer s.locks.Unlock(input.ActorID)

	rec, err := s.loadOrInit(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if left := cooldownLeft(rec, ActionWork, s.period(s.config.WorkCooldown), now); left > 0 {
		return nil, &CooldownError{Action: ActionWork, Remaining: left}
	}

	wage := int64(s.roller.Between(int(s.config.WorkMin), int(s.config.WorkMax)))
	rec.Bank += wage
	touchCooldown(rec, ActionWork, now)

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}

	return &WorkOutput{
		Wage: wage,
		Bank: rec.Bank,
	}, nil
}

// period falls back to the shared default when an action's cooldown is unset
func (s *service) period(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultCooldown
	}
	return d
}

// loadOrInit returns the stored record for id or a fresh default
func (s *service) loadOrInit(ctx context.Context, id string) (*models.Record, error) {
	rec, err := s.repo.GetRecord(ctx, &recordRepo.GetRecordInput{RecordID: id})
	if err != nil {
		if errors.Is(err, recordRepo.ErrRecordNotFound) {
			rec = models.New(id)
			rec.CreatedAt = s.clock.Now()
			return rec, nil
		}
		return nil, fmt.Errorf("failed to load record %s: %w", id, err)
	}

	return rec, nil
}

// save stamps and persists a single record
func (s *service) save(ctx context.Context, rec *models.Record) error {
	rec.UpdatedAt = s.clock.Now()
	return s.repo.SaveRecord(ctx, &recordRepo.SaveRecordInput{Record: rec})
}

// savePair stamps and persists two records as one atomic unit
func (s *service) savePair(ctx context.Context, a, b *models.Record) error {
	now := s.clock.Now()
	a.UpdatedAt = now
	b.UpdatedAt = now
	return s.repo.SaveRecords(ctx, &recordRepo.SaveRecordsInput{
		Records: []*models.Record{a, b},
	})
}
