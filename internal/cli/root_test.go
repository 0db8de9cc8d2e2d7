package cli

import (
	"testing"
	"time"
)

func TestReportWindow(t *testing.T) {
	restore := func() { flagStart, flagEnd = "", "" }
	defer restore()

	t.Run("defaults to open start and now", func(t *testing.T) {
		restore()
		start, end, err := reportWindow()
		if err != nil {
			t.Fatalf("reportWindow() error = %v", err)
		}
		if start != nil {
			t.Errorf("start = %v, want nil", start)
		}
		if time.Since(end) > time.Minute {
			t.Errorf("end = %v, want roughly now", end)
		}
	})

	t.Run("parses explicit bounds", func(t *testing.T) {
		restore()
		flagStart, flagEnd = "2025-01-01", "2025-06-30"
		start, end, err := reportWindow()
		if err != nil {
			t.Fatalf("reportWindow() error = %v", err)
		}
		if start == nil || !start.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("start = %v", start)
		}
		if !end.Equal(time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("end = %v", end)
		}
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		restore()
		flagStart = "January 1st"
		if _, _, err := reportWindow(); err == nil {
			t.Error("reportWindow() should reject malformed --start")
		}
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		restore()
		flagStart, flagEnd = "2025-06-30", "2025-01-01"
		if _, _, err := reportWindow(); err == nil {
			t.Error("reportWindow() should reject start after end")
		}
	})
}

func TestRequireUser(t *testing.T) {
	defer func() { flagUser = "" }()

	flagUser = ""
	if _, err := requireUser(); err == nil {
		t.Error("requireUser() should fail without --user")
	}

	flagUser = "user-1"
	user, err := requireUser()
	if err != nil {
		t.Fatalf("requireUser() error = %v", err)
	}
	if user != "user-1" {
		t.Errorf("user = %q", user)
	}
}
