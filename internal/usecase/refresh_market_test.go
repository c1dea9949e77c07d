package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pitchside/scoutd/internal/domain"
	mockrepo "github.com/pitchside/scoutd/internal/repository/mock"
)

func refreshPayload(taskID string, ids []int64) *domain.TaskPayload {
	return &domain.TaskPayload{
		TaskID:     taskID,
		Kind:       domain.KindMarketRefresh,
		PlayerIDs:  ids,
		EnqueuedAt: time.Now().UTC(),
	}
}

func TestRefreshMarket_SelectedPlayers(t *testing.T) {
	players := mockrepo.NewMockPlayerRepository()
	tasks := mockrepo.NewMockTaskStatusStore()
	guard := mockrepo.NewMockGuardStore()

	p1 := seedPlayer(t, players, "antoine griezmann")
	p2 := seedPlayer(t, players, "marcus rashford")

	uc := NewRefreshMarketUsecase(players, tasks, guard, testStatusTTL, zap.NewNop())
	dup, err := uc.Execute(context.Background(), refreshPayload("refresh-1", []int64{p1.ID, p2.ID}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dup {
		t.Fatal("first delivery is not a duplicate")
	}

	rec, err := tasks.Get(context.Background(), "refresh-1")
	if err != nil {
		t.Fatalf("expected status record: %v", err)
	}
	if rec.Status != domain.TaskCompleted {
		t.Errorf("expected completed, got %s", rec.Status)
	}
	if !strings.Contains(rec.Result, "updated 2 of 2") {
		t.Errorf("expected result summary, got %q", rec.Result)
	}

	// Values moved but stayed within bounds.
	for _, id := range []int64{p1.ID, p2.ID} {
		got, _ := players.GetByID(context.Background(), id)
		if got.MarketValue == nil {
			t.Fatalf("player %d lost its market value", id)
		}
		if *got.MarketValue < domain.MinMarketValue || *got.MarketValue > domain.MaxMarketValue {
			t.Errorf("player %d value %d out of bounds", id, *got.MarketValue)
		}
	}
}

func TestRefreshMarket_AllPlayersWhenEmpty(t *testing.T) {
	players := mockrepo.NewMockPlayerRepository()
	tasks := mockrepo.NewMockTaskStatusStore()
	guard := mockrepo.NewMockGuardStore()

	seedPlayer(t, players, "romelu lukaku")
	seedPlayer(t, players, "victor osimhen")
	seedPlayer(t, players, "rafael leao")

	uc := NewRefreshMarketUsecase(players, tasks, guard, testStatusTTL, zap.NewNop())
	if _, err := uc.Execute(context.Background(), refreshPayload("refresh-all", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, _ := tasks.Get(context.Background(), "refresh-all")
	if !strings.Contains(rec.Result, "updated 3 of 3") {
		t.Errorf("expected all players refreshed, got %q", rec.Result)
	}
}

func TestRefreshMarket_DailyIdempotency(t *testing.T) {
	players := mockrepo.NewMockPlayerRepository()
	tasks := mockrepo.NewMockTaskStatusStore()
	guard := mockrepo.NewMockGuardStore()

	p := seedPlayer(t, players, "federico valverde")

	uc := NewRefreshMarketUsecase(players, tasks, guard, testStatusTTL, zap.NewNop())
	if _, err := uc.Execute(context.Background(), refreshPayload("refresh-a", []int64{p.ID})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after, _ := players.GetByID(context.Background(), p.ID)
	valueAfterFirst := *after.MarketValue

	// A second refresh the same day skips the player.
	if _, err := uc.Execute(context.Background(), refreshPayload("refresh-b", []int64{p.ID})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec, _ := tasks.Get(context.Background(), "refresh-b")
	if !strings.Contains(rec.Result, "updated 0 of 1") {
		t.Errorf("expected no updates on second daily run, got %q", rec.Result)
	}

	final, _ := players.GetByID(context.Background(), p.ID)
	if *final.MarketValue != valueAfterFirst {
		t.Error("value must not change twice in the same day")
	}
}

func TestRefreshMarket_RetriesPlayerAfterUpdateFailure(t *testing.T) {
	players := mockrepo.NewMockPlayerRepository()
	tasks := mockrepo.NewMockTaskStatusStore()
	guard := mockrepo.NewMockGuardStore()

	p := seedPlayer(t, players, "bruno fernandes")

	// First run fails the write. The daily key must be released so the
	// player is not locked out for the rest of the day.
	players.UpdateMarketValueFunc = func(ctx context.Context, id int64, value int64) error {
		return errors.New("db unavailable")
	}
	uc := NewRefreshMarketUsecase(players, tasks, guard, testStatusTTL, zap.NewNop())
	if _, err := uc.Execute(context.Background(), refreshPayload("refresh-fail", []int64{p.ID})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec, _ := tasks.Get(context.Background(), "refresh-fail")
	if !strings.Contains(rec.Result, "updated 0 of 1") {
		t.Errorf("expected no updates on failed run, got %q", rec.Result)
	}

	players.UpdateMarketValueFunc = nil
	if _, err := uc.Execute(context.Background(), refreshPayload("refresh-retry", []int64{p.ID})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec, _ = tasks.Get(context.Background(), "refresh-retry")
	if !strings.Contains(rec.Result, "updated 1 of 1") {
		t.Errorf("expected retry to update the player, got %q", rec.Result)
	}

	after, _ := players.GetByID(context.Background(), p.ID)
	if *after.MarketValue < domain.MinMarketValue || *after.MarketValue > domain.MaxMarketValue {
		t.Errorf("value %d out of bounds", *after.MarketValue)
	}
}

func TestRefreshMarket_UnknownIDsSkipped(t *testing.T) {
	players := mockrepo.NewMockPlayerRepository()
	tasks := mockrepo.NewMockTaskStatusStore()
	guard := mockrepo.NewMockGuardStore()

	p := seedPlayer(t, players, "declan rice")

	uc := NewRefreshMarketUsecase(players, tasks, guard, testStatusTTL, zap.NewNop())
	if _, err := uc.Execute(context.Background(), refreshPayload("refresh-mixed", []int64{p.ID, 9999})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, _ := tasks.Get(context.Background(), "refresh-mixed")
	if rec.Status != domain.TaskCompleted {
		t.Errorf("expected completed, got %s", rec.Status)
	}
	if !strings.Contains(rec.Result, "of 1") {
		t.Errorf("unknown ids should not count as targets, got %q", rec.Result)
	}
}

func TestRefreshMarket_DuplicateDelivery(t *testing.T) {
	players := mockrepo.NewMockPlayerRepository()
	tasks := mockrepo.NewMockTaskStatusStore()
	guard := mockrepo.NewMockGuardStore()

	uc := NewRefreshMarketUsecase(players, tasks, guard, testStatusTTL, zap.NewNop())
	if _, err := uc.Execute(context.Background(), refreshPayload("refresh-dup", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dup, err := uc.Execute(context.Background(), refreshPayload("refresh-dup", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dup {
		t.Error("redelivery of the same task id must be flagged duplicate")
	}
}

func TestFluctuate_DeterministicAndBounded(t *testing.T) {
	day := "2026-08-29"
	value := int64(40_000_000)

	a := fluctuate(7, value, day)
	b := fluctuate(7, value, day)
	if a != b {
		t.Errorf("same inputs must give the same value: %d vs %d", a, b)
	}

	// Stays within 10 percent of the original.
	diff := a - value
	if diff < 0 {
		diff = -diff
	}
	if diff > value/10+1 {
		t.Errorf("fluctuation %d exceeds 10%% of %d", diff, value)
	}

	// Different day produces an independent draw with the same bounds.
	c := fluctuate(7, value, "2026-08-30")
	if c < domain.MinMarketValue || c > domain.MaxMarketValue {
		t.Errorf("value %d out of bounds", c)
	}
}
