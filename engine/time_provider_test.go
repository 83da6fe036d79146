package engine

import (
	"testing"
	"time"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(10 * time.Millisecond)
	t2 := provider.Now()

	if !t2.After(t1) {
		t.Errorf("Expected t2 to be after t1, but got t1=%v, t2=%v", t1, t2)
	}
	if diff := t2.Sub(t1); diff < 10*time.Millisecond {
		t.Errorf("Expected at least 10ms difference, got %v", diff)
	}
}

func TestMockTimeProvider(t *testing.T) {
	startTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(startTime)

	if now := mock.Now(); !now.Equal(startTime) {
		t.Errorf("Expected initial time to be %v, got %v", startTime, now)
	}

	got := mock.Advance(16 * time.Millisecond)
	expected := startTime.Add(16 * time.Millisecond)
	if !got.Equal(expected) || !mock.Now().Equal(expected) {
		t.Errorf("Expected time to be %v after Advance, got %v", expected, got)
	}

	mock.Advance(time.Second)
	mock.Advance(time.Second)
	if now := mock.Now(); !now.Equal(expected.Add(2 * time.Second)) {
		t.Errorf("Expected multiple advances to accumulate, got %v", now)
	}
}
