package game

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGateOpenByDefault(t *testing.T) {
	g := NewGate()
	if g.Paused() {
		t.Fatal("Paused() = true for a new gate")
	}
	if err := g.Wait(context.Background()); err != nil {
		t.Errorf("Wait() = %v, want nil", err)
	}
}

func TestGatePauseResume(t *testing.T) {
	g := NewGate()
	if !g.Pause() {
		t.Fatal("Pause() = false, want true")
	}
	if g.Pause() {
		t.Error("second Pause() = true, want false")
	}

	released := make(chan error, 1)
	go func() { released <- g.Wait(context.Background()) }()

	select {
	case <-released:
		t.Fatal("Wait returned while paused")
	case <-time.After(20 * time.Millisecond):
	}

	if !g.Resume() {
		t.Fatal("Resume() = false, want true")
	}
	select {
	case err := <-released:
		if err != nil {
			t.Errorf("Wait() = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Resume")
	}
	if g.Resume() {
		t.Error("second Resume() = true, want false")
	}
}

func TestGateWaitCanceled(t *testing.T) {
	g := NewGate()
	g.Pause()

	ctx, cancel := context.WithCancel(context.Background())
	released := make(chan error, 1)
	go func() { released <- g.Wait(ctx) }()
	cancel()

	select {
	case err := <-released:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Wait() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after cancel")
	}
}
