package tui

import (
	"testing"
	"time"
)

func TestRepeatFilter(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("first press is fresh", func(t *testing.T) {
		f := NewRepeatFilter(200 * time.Millisecond)
		if !f.Accept(base) {
			t.Error("first press should be accepted")
		}
	})

	t.Run("held key is filtered", func(t *testing.T) {
		f := NewRepeatFilter(200 * time.Millisecond)
		f.Accept(base)
		for i := 1; i <= 20; i++ {
			if f.Accept(base.Add(time.Duration(i) * 30 * time.Millisecond)) {
				t.Fatalf("repeat %d should be filtered", i)
			}
		}
	})

	t.Run("held key with a long initial delay is filtered", func(t *testing.T) {
		f := NewRepeatFilter(DefaultRepeatWindow)
		f.Accept(base)
		held := base.Add(660 * time.Millisecond)
		for i := 0; i < 10; i++ {
			if f.Accept(held.Add(time.Duration(i) * 33 * time.Millisecond)) {
				t.Fatalf("repeat %d should be filtered", i)
			}
		}
		if !f.Accept(held.Add(9*33*time.Millisecond + DefaultRepeatWindow)) {
			t.Error("a press after release should be accepted")
		}
	})

	t.Run("press after the window is fresh", func(t *testing.T) {
		f := NewRepeatFilter(200 * time.Millisecond)
		f.Accept(base)
		if !f.Accept(base.Add(250 * time.Millisecond)) {
			t.Error("press after the window should be accepted")
		}
	})

	t.Run("zero window accepts everything", func(t *testing.T) {
		f := NewRepeatFilter(0)
		f.Accept(base)
		if !f.Accept(base.Add(time.Millisecond)) {
			t.Error("zero window should accept every press")
		}
	})
}
