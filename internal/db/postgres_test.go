package db

import (
	"context"
	"io/fs"
	"strings"
	"testing"
)

func TestConnect_EmptyDSN(t *testing.T) {
	pool, err := Connect(context.Background(), "")
	if err == nil {
		pool.Close()
		t.Fatal("Connect with empty DSN should return error")
	}
	if !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Errorf("error = %q, should mention DATABASE_URL", err.Error())
	}
}

func TestConnect_InvalidDSN(t *testing.T) {
	pool, err := Connect(context.Background(), "://not-a-dsn")
	if err == nil {
		pool.Close()
		t.Fatal("Connect with malformed DSN should return error")
	}
}

func TestMigrationFS_PairsUpAndDown(t *testing.T) {
	ups, err := fs.Glob(MigrationFS, "migrations/*.up.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(ups) == 0 {
		t.Fatal("no up migrations embedded")
	}
	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		if _, err := fs.Stat(MigrationFS, down); err != nil {
			t.Errorf("%s has no matching down migration", up)
		}
	}
}
