package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pitchside/scoutd/internal/domain"
	mockrepo "github.com/pitchside/scoutd/internal/repository/mock"
)

func TestGetTask_Success(t *testing.T) {
	tasks := mockrepo.NewMockTaskStatusStore()
	rec := &domain.TaskRecord{
		TaskID:    "0191d5a0-0000-7000-8000-000000000001",
		Kind:      domain.KindScoutReport,
		PlayerID:  7,
		Status:    domain.TaskRunning,
		CreatedAt: time.Now().UTC(),
	}
	if err := tasks.Put(context.Background(), rec, testStatusTTL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uc := NewGetTaskUsecase(tasks, zap.NewNop())
	got, err := uc.Execute(context.Background(), rec.TaskID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != domain.TaskRunning {
		t.Errorf("expected running, got %s", got.Status)
	}
	if got.PlayerID != 7 {
		t.Errorf("expected player id 7, got %d", got.PlayerID)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	tasks := mockrepo.NewMockTaskStatusStore()
	uc := NewGetTaskUsecase(tasks, zap.NewNop())

	_, err := uc.Execute(context.Background(), "0191d5a0-0000-7000-8000-00000000dead")
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestGetTask_ExpiredRecord(t *testing.T) {
	tasks := mockrepo.NewMockTaskStatusStore()
	now := time.Now().UTC()
	tasks.Now = func() time.Time { return now }

	rec := &domain.TaskRecord{
		TaskID:    "0191d5a0-0000-7000-8000-000000000002",
		Kind:      domain.KindScoutReport,
		Status:    domain.TaskCompleted,
		Result:    "done",
		CreatedAt: now,
	}
	if err := tasks.Put(context.Background(), rec, time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uc := NewGetTaskUsecase(tasks, zap.NewNop())

	if _, err := uc.Execute(context.Background(), rec.TaskID); err != nil {
		t.Fatalf("record should be visible before expiry: %v", err)
	}

	// After the TTL elapses the record reads as not found, completed or not.
	now = now.Add(time.Hour + time.Second)
	_, err := uc.Execute(context.Background(), rec.TaskID)
	if !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound after expiry, got %v", err)
	}
}
