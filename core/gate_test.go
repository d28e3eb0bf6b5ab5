package orchestration

import "testing"

func TestGateRejectsWhileHeld(t *testing.T) {
	gate := turnGate{}

	if !gate.tryAcquire() {
		t.Fatalf("expected first acquire to succeed")
	}
	if gate.tryAcquire() {
		t.Fatalf("expected second acquire to fail while held")
	}
}

func TestGateReacquiresAfterRelease(t *testing.T) {
	gate := turnGate{}

	if !gate.tryAcquire() {
		t.Fatalf("expected acquire to succeed")
	}
	gate.release()
	if !gate.tryAcquire() {
		t.Fatalf("expected acquire to succeed after release")
	}
}

func TestGateReleaseIsIdempotent(t *testing.T) {
	gate := turnGate{}

	gate.release()
	gate.release()

	if !gate.tryAcquire() {
		t.Fatalf("expected acquire to succeed on an unheld gate")
	}
	gate.release()
	gate.release()
	if gate.isHeld() {
		t.Fatalf("expected gate to be free after repeated releases")
	}
}
