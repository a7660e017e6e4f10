package config

import (
	"path/filepath"
	"testing"

	"github.com/coalition-freeware/xplib-go/internal/testutil"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	testutil.MustWriteFile(t, filepath.Join(dir, name), content)
}

func TestLoadDiscoversYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".xplib.yml", "xp_root: /xp\nactive_package: /xp/Custom Scenery/Active\ncustom_packages:\n  - /xp/Custom Scenery/P1\n  - /xp/Custom Scenery/P2\ndefault_season: w\n")

	values, path, err := Load(dir, "", Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if values.XPRoot != "/xp" {
		t.Fatalf("XPRoot = %q, want /xp", values.XPRoot)
	}
	if len(values.CustomPackages) != 2 {
		t.Fatalf("expected 2 custom packages, got %d", len(values.CustomPackages))
	}
	if values.DefaultSeason != 'w' {
		t.Fatalf("DefaultSeason = %q, want 'w'", values.DefaultSeason)
	}
	if filepath.Base(path) != ".xplib.yml" {
		t.Fatalf("config path = %q, want .xplib.yml", path)
	}
}

func TestLoadDiscoversJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".xplib.json", `{"xp_root": "/xp", "active_package": "/xp/Active"}`)

	values, _, err := Load(dir, "", Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if values.XPRoot != "/xp" || values.ActivePackage != "/xp/Active" {
		t.Fatalf("unexpected values: %+v", values)
	}
}

func TestLoadDiscoversTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".xplib.toml", "xp_root = \"/xp\"\nactive_package = \"/xp/Active\"\nrng_seed = 42\n")

	values, _, err := Load(dir, "", Overrides{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !values.HasSeed || values.RNGSeed != 42 {
		t.Fatalf("expected seed 42 from TOML, got %+v", values)
	}
}

func TestLoadOverridesWinOverFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".xplib.yml", "xp_root: /xp\nactive_package: /xp/Active\n")

	seed := int64(7)
	values, _, err := Load(dir, "", Overrides{XPRoot: "/other-xp", RNGSeed: &seed})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if values.XPRoot != "/other-xp" {
		t.Fatalf("expected override XPRoot to win, got %q", values.XPRoot)
	}
	if values.ActivePackage != "/xp/Active" {
		t.Fatalf("expected file ActivePackage to survive, got %q", values.ActivePackage)
	}
	if !values.HasSeed || values.RNGSeed != 7 {
		t.Fatalf("expected override seed to win, got %+v", values)
	}
}

func TestLoadMissingRequiredFieldsFails(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".xplib.yml", "default_season: w\n")

	if _, _, err := Load(dir, "", Overrides{}); err == nil {
		t.Fatal("expected validation error for missing xp_root/active_package")
	}
}

func TestLoadNoConfigFileFallsBackToOverridesOnly(t *testing.T) {
	dir := t.TempDir()
	values, path, err := Load(dir, "", Overrides{XPRoot: "/xp", ActivePackage: "/xp/Active"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if path != "" {
		t.Fatalf("expected empty config path when none discovered, got %q", path)
	}
	if values.XPRoot != "/xp" {
		t.Fatalf("expected override-only values, got %+v", values)
	}
}
