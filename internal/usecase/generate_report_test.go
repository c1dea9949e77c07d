package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pitchside/scoutd/internal/domain"
	mockgen "github.com/pitchside/scoutd/internal/reportgen/mock"
	mockrepo "github.com/pitchside/scoutd/internal/repository/mock"
)

func scoutPayload(taskID string, playerID int64) *domain.TaskPayload {
	return &domain.TaskPayload{
		TaskID:     taskID,
		Kind:       domain.KindScoutReport,
		PlayerID:   playerID,
		EnqueuedAt: time.Now().UTC(),
	}
}

func seedPlayer(t *testing.T, players *mockrepo.MockPlayerRepository, name string) *domain.Player {
	t.Helper()
	uc := NewPlayerUsecase(players, zap.NewNop())
	p, err := uc.Create(context.Background(), newPlayerInput(name))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestGenerateReport_Success(t *testing.T) {
	players := mockrepo.NewMockPlayerRepository()
	tasks := mockrepo.NewMockTaskStatusStore()
	guard := mockrepo.NewMockGuardStore()
	gen := mockgen.NewMockGenerator()
	gen.GenerateFn = func(ctx context.Context, p *domain.Player) (string, error) {
		return "A generational talent with elite finishing.", nil
	}

	player := seedPlayer(t, players, "lamine yamal")
	uc := NewGenerateReportUsecase(players, tasks, guard, gen, testStatusTTL, zap.NewNop())

	dup, err := uc.Execute(context.Background(), scoutPayload("task-1", player.ID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dup {
		t.Fatal("first delivery is not a duplicate")
	}

	// Report persisted on the player.
	got, _ := players.GetByID(context.Background(), player.ID)
	if got.ScoutingReport == nil || *got.ScoutingReport != "A generational talent with elite finishing." {
		t.Error("expected report stored on player")
	}

	// Status record moved to completed with a result summary.
	rec, err := tasks.Get(context.Background(), "task-1")
	if err != nil {
		t.Fatalf("expected status record: %v", err)
	}
	if rec.Status != domain.TaskCompleted {
		t.Errorf("expected completed, got %s", rec.Status)
	}
	if rec.Result == "" {
		t.Error("expected non-empty result")
	}
	if rec.Error != "" {
		t.Errorf("expected empty error, got %q", rec.Error)
	}
}

func TestGenerateReport_DuplicateDelivery(t *testing.T) {
	players := mockrepo.NewMockPlayerRepository()
	tasks := mockrepo.NewMockTaskStatusStore()
	guard := mockrepo.NewMockGuardStore()
	gen := mockgen.NewMockGenerator()

	player := seedPlayer(t, players, "joao felix")
	uc := NewGenerateReportUsecase(players, tasks, guard, gen, testStatusTTL, zap.NewNop())

	if _, err := uc.Execute(context.Background(), scoutPayload("task-dup", player.ID)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dup, err := uc.Execute(context.Background(), scoutPayload("task-dup", player.ID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dup {
		t.Error("redelivery of the same task id must be flagged duplicate")
	}
	if len(gen.Calls) != 1 {
		t.Errorf("expected exactly 1 generator call, got %d", len(gen.Calls))
	}
}

func TestGenerateReport_PlayerVanished(t *testing.T) {
	players := mockrepo.NewMockPlayerRepository()
	tasks := mockrepo.NewMockTaskStatusStore()
	guard := mockrepo.NewMockGuardStore()
	gen := mockgen.NewMockGenerator()

	uc := NewGenerateReportUsecase(players, tasks, guard, gen, testStatusTTL, zap.NewNop())

	// The player was deleted between submission and execution. That is a
	// domain failure: recorded as failed, no error returned (message ACKs).
	dup, err := uc.Execute(context.Background(), scoutPayload("task-gone", 123))
	if err != nil {
		t.Fatalf("expected nil error for vanished player, got %v", err)
	}
	if dup {
		t.Fatal("not a duplicate")
	}

	rec, getErr := tasks.Get(context.Background(), "task-gone")
	if getErr != nil {
		t.Fatalf("expected status record: %v", getErr)
	}
	if rec.Status != domain.TaskFailed {
		t.Errorf("expected failed, got %s", rec.Status)
	}
	if rec.Error == "" {
		t.Error("expected failure detail")
	}
	if len(gen.Calls) != 0 {
		t.Error("generator must not run for a vanished player")
	}
}

func TestGenerateReport_GeneratorFailure(t *testing.T) {
	players := mockrepo.NewMockPlayerRepository()
	tasks := mockrepo.NewMockTaskStatusStore()
	guard := mockrepo.NewMockGuardStore()
	gen := mockgen.NewMockGenerator()
	gen.GenerateFn = func(ctx context.Context, p *domain.Player) (string, error) {
		return "", errors.New("upstream timeout")
	}

	player := seedPlayer(t, players, "bukayo saka")
	uc := NewGenerateReportUsecase(players, tasks, guard, gen, testStatusTTL, zap.NewNop())

	// A generator error is terminal. No retry happens and the message ACKs.
	dup, err := uc.Execute(context.Background(), scoutPayload("task-genfail", player.ID))
	if err != nil {
		t.Fatalf("expected nil error for generator failure, got %v", err)
	}
	if dup {
		t.Fatal("not a duplicate")
	}
	if len(gen.Calls) != 1 {
		t.Errorf("expected exactly 1 generator call, got %d", len(gen.Calls))
	}

	rec, getErr := tasks.Get(context.Background(), "task-genfail")
	if getErr != nil {
		t.Fatalf("expected status record: %v", getErr)
	}
	if rec.Status != domain.TaskFailed {
		t.Errorf("expected failed, got %s", rec.Status)
	}
	if !strings.Contains(rec.Error, "upstream timeout") {
		t.Errorf("expected failure detail in error, got %q", rec.Error)
	}

	// No partial report on the player.
	got, _ := players.GetByID(context.Background(), player.ID)
	if got.ScoutingReport != nil {
		t.Error("failed generation must not store a report")
	}
}

func TestGenerateReport_StatusStoreDown(t *testing.T) {
	players := mockrepo.NewMockPlayerRepository()
	tasks := mockrepo.NewMockTaskStatusStore()
	tasks.PutFunc = func(ctx context.Context, rec *domain.TaskRecord, ttl time.Duration) error {
		return errors.New("redis unavailable")
	}
	guard := mockrepo.NewMockGuardStore()
	gen := mockgen.NewMockGenerator()

	player := seedPlayer(t, players, "phil foden")
	uc := NewGenerateReportUsecase(players, tasks, guard, gen, testStatusTTL, zap.NewNop())

	// Infrastructure failure surfaces as an error so the message NACKs.
	_, err := uc.Execute(context.Background(), scoutPayload("task-infra", player.ID))
	if err == nil {
		t.Fatal("expected error when the status store is down")
	}
}

func TestGenerateReport_ExpiredPendingRecordRebuilt(t *testing.T) {
	players := mockrepo.NewMockPlayerRepository()
	tasks := mockrepo.NewMockTaskStatusStore()
	guard := mockrepo.NewMockGuardStore()
	gen := mockgen.NewMockGenerator()

	player := seedPlayer(t, players, "gavi paez")
	uc := NewGenerateReportUsecase(players, tasks, guard, gen, testStatusTTL, zap.NewNop())

	// No pending record exists (it expired before the worker picked the
	// task up). Execution still runs and writes a fresh record.
	payload := scoutPayload("task-expired", player.ID)
	if _, err := uc.Execute(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, err := tasks.Get(context.Background(), "task-expired")
	if err != nil {
		t.Fatalf("expected rebuilt record: %v", err)
	}
	if rec.Status != domain.TaskCompleted {
		t.Errorf("expected completed, got %s", rec.Status)
	}
	if rec.PlayerID != player.ID {
		t.Errorf("expected player id %d, got %d", player.ID, rec.PlayerID)
	}
}

func TestSummarize(t *testing.T) {
	short := "Short report."
	if summarize(short) != short {
		t.Errorf("short reports pass through unchanged")
	}

	long := strings.Repeat("x", resultSummaryLen+50)
	got := summarize(long)
	if len(got) != resultSummaryLen+3 {
		t.Errorf("expected %d chars, got %d", resultSummaryLen+3, len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("expected ellipsis suffix")
	}

	// A multi-byte rune straddling the cut point must not be split. The
	// leading byte offsets every two-byte rune so one crosses the cut.
	multibyte := "x" + strings.Repeat("é", resultSummaryLen)
	got = summarize(multibyte)
	if !utf8.ValidString(got) {
		t.Errorf("expected valid UTF-8, got %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("expected ellipsis suffix")
	}
}
