package domain

import "testing"

func TestTaskStatus_IsTerminal(t *testing.T) {
	if TaskPending.IsTerminal() {
		t.Error("pending is not terminal")
	}
	if TaskRunning.IsTerminal() {
		t.Error("running is not terminal")
	}
	if !TaskCompleted.IsTerminal() {
		t.Error("completed is terminal")
	}
	if !TaskFailed.IsTerminal() {
		t.Error("failed is terminal")
	}
}
