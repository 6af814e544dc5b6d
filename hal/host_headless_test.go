//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"io"
	"testing"
)

func TestRunHeadlessStopsAfterScript(t *testing.T) {
	var presses int
	newApp := func(h HAL) func() error {
		kbd := h.Input().Keyboard()
		return func() error {
			ev, err := kbd.Poll()
			if err != nil {
				return err
			}
			if ev.Press {
				presses++
			}
			return nil
		}
	}

	err := RunHeadless(context.Background(), newApp, HeadlessConfig{
		Hz:   1000,
		Host: HostConfig{Keys: "ab<enter>", LogOutput: io.Discard},
	})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if presses != 3 {
		t.Fatalf("presses=%d, want 3", presses)
	}
}

func TestRunHeadlessTickLimit(t *testing.T) {
	var ticks int
	newApp := func(HAL) func() error {
		return func() error {
			ticks++
			return nil
		}
	}

	err := RunHeadless(context.Background(), newApp, HeadlessConfig{
		Hz:    1000,
		Ticks: 5,
		Host:  HostConfig{LogOutput: io.Discard},
	})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if ticks != 5 {
		t.Fatalf("ticks=%d, want 5", ticks)
	}
}

func TestRunHeadlessStepError(t *testing.T) {
	boom := errors.New("boom")
	newApp := func(HAL) func() error {
		return func() error { return boom }
	}

	err := RunHeadless(context.Background(), newApp, HeadlessConfig{
		Hz:   1000,
		Host: HostConfig{LogOutput: io.Discard},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v, want %v", err, boom)
	}
}

func TestRunHeadlessRejectsHz(t *testing.T) {
	err := RunHeadless(context.Background(), func(HAL) func() error { return nil }, HeadlessConfig{Hz: 5000})
	if err == nil {
		t.Fatal("expected error for hz > 1000")
	}
}
