package entity

import (
	"testing"
	"time"

	"ourlittleworld/pkg/money"
)

func TestSavingsGoalProgress(t *testing.T) {
	tests := []struct {
		name        string
		target      money.Cents
		current     money.Cents
		wantRaw     float64
		wantDisplay float64
	}{
		{name: "halfway", target: 100000, current: 50000, wantRaw: 50, wantDisplay: 50},
		{name: "complete", target: 100000, current: 100000, wantRaw: 100, wantDisplay: 100},
		{name: "overshoot clamps for display only", target: 100000, current: 150000, wantRaw: 150, wantDisplay: 100},
		{name: "zero target reports zero", target: 0, current: 50000, wantRaw: 0, wantDisplay: 0},
		{name: "nothing saved", target: 100000, current: 0, wantRaw: 0, wantDisplay: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := SavingsGoal{TargetAmount: tt.target, CurrentAmount: tt.current}

			if got := g.Progress(); got != tt.wantRaw {
				t.Errorf("Progress() = %v, want %v", got, tt.wantRaw)
			}
			if got := g.DisplayProgress(); got != tt.wantDisplay {
				t.Errorf("DisplayProgress() = %v, want %v", got, tt.wantDisplay)
			}
		})
	}
}

func TestSavingsGoalValidate(t *testing.T) {
	base := SavingsGoal{
		Title:        "Trip to Kyoto",
		TargetAmount: 500000,
		Priority:     GoalPriorityHigh,
	}

	t.Run("valid", func(t *testing.T) {
		g := base
		if err := g.Validate(); err != nil {
			t.Fatalf("Validate() = %v, want nil", err)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		g := base
		g.Title = ""
		if err := g.Validate(); err == nil {
			t.Fatal("Validate() = nil, want error")
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		g := base
		g.CurrentAmount = -1
		if err := g.Validate(); err == nil {
			t.Fatal("Validate() = nil, want error")
		}
	})

	t.Run("unknown priority", func(t *testing.T) {
		g := base
		g.Priority = "urgent"
		if err := g.Validate(); err == nil {
			t.Fatal("Validate() = nil, want error")
		}
	})
}

func TestSavingsGoalMarkCompleted(t *testing.T) {
	g := SavingsGoal{Title: "Emergency fund", TargetAmount: 100, CurrentAmount: 100, Priority: GoalPriorityLow}

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	g.MarkCompleted(now)

	if !g.IsCompleted {
		t.Error("IsCompleted = false after MarkCompleted")
	}
	if g.CompletedAt == nil || !g.CompletedAt.Equal(now) {
		t.Errorf("CompletedAt = %v, want %v", g.CompletedAt, now)
	}
}
