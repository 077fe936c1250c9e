package migrate

import (
	"strings"
	"testing"
)

func TestRun_EmptyDSN(t *testing.T) {
	err := Run("", "up")
	if err == nil {
		t.Fatal("Run with empty DSN should return error")
	}
	if !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Errorf("error = %q, should mention DATABASE_URL", err.Error())
	}
}

func TestRun_InvalidDirection(t *testing.T) {
	for _, direction := range []string{"", "sideways", "UP", "Down"} {
		t.Run(direction, func(t *testing.T) {
			err := Run("postgres://localhost/notely", direction)
			if err == nil {
				t.Fatalf("Run with direction %q should return error", direction)
			}
			if !strings.Contains(err.Error(), "direction") {
				t.Errorf("error = %q, should mention direction", err.Error())
			}
		})
	}
}

func TestRun_UnknownScheme(t *testing.T) {
	err := Run("nosuchdb://localhost/notely", "up")
	if err == nil {
		t.Fatal("Run with unregistered database scheme should return error")
	}
	if !strings.HasPrefix(err.Error(), "migrate:") {
		t.Errorf("error = %q, want migrate: prefix", err.Error())
	}
}
