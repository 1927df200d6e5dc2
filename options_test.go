package geodb

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWithConfigDir(t *testing.T) {
	t.Run("creates the directory and writes defaults", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "geodb")

		svc, err := New(WithConfigDir(dir))
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if svc.ConfigDir != dir {
			t.Fatalf("\nwanted:\n%s\ngot:\n%s", dir, svc.ConfigDir)
		}
		if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
			t.Fatalf("\nwanted:\nconfig.yaml on disk\ngot:\n%v", err)
		}
		if svc.Config.DBFile != "geocache.db" {
			t.Fatalf("\nwanted:\ngeocache.db\ngot:\n%s", svc.Config.DBFile)
		}
		if svc.Config.MaxLogs != 5 {
			t.Fatalf("\nwanted:\n5\ngot:\n%d", svc.Config.MaxLogs)
		}
		if svc.Config.IncludeWaypoints || svc.Config.StrictImport {
			t.Fatalf("\nwanted:\nfalse/false\ngot:\n%v/%v", svc.Config.IncludeWaypoints, svc.Config.StrictImport)
		}
	})

	t.Run("persists settings across services", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "geodb")

		svc, err := New(WithConfigDir(dir))
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if err := svc.Config.SetMaxLogs(10); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		reloaded, err := New(WithConfigDir(dir))
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if reloaded.Config.MaxLogs != 10 {
			t.Fatalf("\nwanted:\n10\ngot:\n%d", reloaded.Config.MaxLogs)
		}
	})

	t.Run("rejects a negative logs cap", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "geodb")

		svc, err := New(WithConfigDir(dir))
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if err := svc.Config.SetMaxLogs(-1); err == nil {
			t.Fatalf("\nwanted:\nerror\ngot:\nnil")
		}
	})
}

func TestWithStrictImport(t *testing.T) {
	t.Run("overrides the configured mode", func(t *testing.T) {
		svc, err := New(WithStrictImport(true))
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if !svc.Config.StrictImport {
			t.Fatalf("\nwanted:\ntrue\ngot:\nfalse")
		}
	})
}
