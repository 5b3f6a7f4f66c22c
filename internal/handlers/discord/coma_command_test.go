package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	rngMocks "github.com/redbayou/outpost/internal/rng/mocks"
)

func TestComaRollCoversEveryOutcome(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	roller := rngMocks.NewMockRoller(ctrl)
	cmd := NewComaCommand(roller)

	tests := []struct {
		name      string
		draw      int
		wantTitle string
		wantText  string
	}{
		{
			name:      "thirty minute memory loss",
			draw:      0,
			wantTitle: "🧠 Memory Loss",
			wantText:  "30 minutes",
		},
		{
			name:      "fifteen minute memory loss",
			draw:      1,
			wantTitle: "🧠 Memory Loss",
			wantText:  "15 minutes",
		},
		{
			name:      "clean wake up",
			draw:      2,
			wantTitle: "✅ Awake",
			wantText:  "remembers everything",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller.EXPECT().IntN(len(comaOutcomes)).Return(tt.draw)

			outcome := cmd.roll()
			assert.Equal(t, tt.wantTitle, outcome.Title)
			assert.Contains(t, outcome.Text, tt.wantText)
		})
	}
}

func TestComaCommandDefinition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cmd := NewComaCommand(rngMocks.NewMockRoller(ctrl))
	def := cmd.GetCommand()

	assert.Equal(t, "coma", def.Name)
	assert.Empty(t, def.Options)
}
