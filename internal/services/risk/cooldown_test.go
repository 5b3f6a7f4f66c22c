package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/redbayou/outpost/internal/models"
)

func TestCooldownLeft(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	period := 4 * time.Hour

	t.Run("no prior use", func(t *testing.T) {
		rec := models.New("a")
		assert.Zero(t, cooldownLeft(rec, ActionWork, period, now))
	})

	t.Run("zero stamp", func(t *testing.T) {
		rec := models.New("a")
		rec.Cooldowns[ActionWork] = 0
		assert.Zero(t, cooldownLeft(rec, ActionWork, period, now))
	})

	t.Run("inside the period", func(t *testing.T) {
		rec := models.New("a")
		rec.Cooldowns[ActionWork] = now.Add(-90 * time.Minute).Unix()
		assert.Equal(t, 150*time.Minute, cooldownLeft(rec, ActionWork, period, now))
	})

	t.Run("exactly elapsed", func(t *testing.T) {
		rec := models.New("a")
		rec.Cooldowns[ActionWork] = now.Add(-period).Unix()
		assert.Zero(t, cooldownLeft(rec, ActionWork, period, now))
	})

	t.Run("long elapsed", func(t *testing.T) {
		rec := models.New("a")
		rec.Cooldowns[ActionWork] = now.Add(-48 * time.Hour).Unix()
		assert.Zero(t, cooldownLeft(rec, ActionWork, period, now))
	})

	t.Run("actions are independent", func(t *testing.T) {
		rec := models.New("a")
		rec.Cooldowns[ActionHeist] = now.Unix()
		assert.Zero(t, cooldownLeft(rec, ActionWork, period, now))
	})
}

func TestTouchCooldown(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	rec := &models.Record{ID: "a"}
	touchCooldown(rec, ActionLaunder, now)

	assert.Equal(t, now.Unix(), rec.Cooldowns[ActionLaunder])
	assert.Equal(t, 4*time.Hour, cooldownLeft(rec, ActionLaunder, 4*time.Hour, now))
}
