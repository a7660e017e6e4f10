package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coalition-freeware/xplib-go/internal/report"
	"github.com/coalition-freeware/xplib-go/internal/testutil"
)

// setupFixture builds a minimal X-Plane layout: an xp root with a
// stock scenery manifest, an active package with one loose asset, and
// one custom package manifest exporting a library path.
func setupFixture(t *testing.T) (xpRoot, activePackage, customPackage string) {
	t.Helper()
	root := t.TempDir()

	xpRoot = filepath.Join(root, "xp")
	stockDir := filepath.Join(xpRoot, "Resources", "default scenery", "stock1")
	testutil.MustWriteFile(t, filepath.Join(stockDir, "library.txt"), "EXPORT lib/stock.obj stock.obj")

	activePackage = filepath.Join(root, "active")
	testutil.MustWriteFile(t, filepath.Join(activePackage, "loose.obj"), "binary")

	customPackage = filepath.Join(root, "custom", "P1")
	testutil.MustWriteFile(t, filepath.Join(customPackage, "library.txt"), "EXPORT lib/custom.obj custom.obj")

	return xpRoot, activePackage, customPackage
}

func TestExecuteBuildReportsDefinitionCount(t *testing.T) {
	xpRoot, activePackage, customPackage := setupFixture(t)
	a := New()
	req := DefaultRequest()
	req.Mode = ModeBuild
	req.XPRoot = xpRoot
	req.ActivePackage = activePackage
	req.CustomPackages = []string{customPackage}

	out, err := a.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out, "3 definitions") {
		t.Fatalf("expected 3 definitions reported, got %q", out)
	}
}

func TestExecuteResolveFindsCustomExport(t *testing.T) {
	xpRoot, activePackage, customPackage := setupFixture(t)
	a := New()
	req := DefaultRequest()
	req.Mode = ModeResolve
	req.XPRoot = xpRoot
	req.ActivePackage = activePackage
	req.CustomPackages = []string{customPackage}
	req.Resolve.VirtualPath = "lib/custom.obj"
	req.Resolve.Season = "x"
	req.Resolve.Format = report.FormatJSON

	out, err := a.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out, `"found": true`) {
		t.Fatalf("expected found=true, got %q", out)
	}
	if !strings.Contains(out, "custom.obj") {
		t.Fatalf("expected custom.obj in resolved path, got %q", out)
	}
}

func TestExecuteResolveMiss(t *testing.T) {
	xpRoot, activePackage, customPackage := setupFixture(t)
	a := New()
	req := DefaultRequest()
	req.Mode = ModeResolve
	req.XPRoot = xpRoot
	req.ActivePackage = activePackage
	req.CustomPackages = []string{customPackage}
	req.Resolve.VirtualPath = "lib/does-not-exist.obj"

	out, err := a.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out, "no match") {
		t.Fatalf("expected no-match output, got %q", out)
	}
}

func TestExecuteResolveRequiresVirtualPath(t *testing.T) {
	xpRoot, activePackage, customPackage := setupFixture(t)
	a := New()
	req := DefaultRequest()
	req.Mode = ModeResolve
	req.XPRoot = xpRoot
	req.ActivePackage = activePackage
	req.CustomPackages = []string{customPackage}

	if _, err := a.Execute(context.Background(), req); err != ErrVirtualPathEmpty {
		t.Fatalf("expected ErrVirtualPathEmpty, got %v", err)
	}
}

func TestExecuteExportListsAllDefinitions(t *testing.T) {
	xpRoot, activePackage, customPackage := setupFixture(t)
	a := New()
	req := DefaultRequest()
	req.Mode = ModeExport
	req.XPRoot = xpRoot
	req.ActivePackage = activePackage
	req.CustomPackages = []string{customPackage}
	req.Export.Format = report.FormatJSON
	req.Export.ValidateSchema = true

	out, err := a.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, want := range []string{"lib/stock.obj", "lib/custom.obj", "loose.obj"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected export to mention %q, got %q", want, out)
		}
	}
}

func TestExecuteUnknownMode(t *testing.T) {
	xpRoot, activePackage, customPackage := setupFixture(t)
	a := New()
	req := DefaultRequest()
	req.Mode = Mode("bogus")
	req.XPRoot = xpRoot
	req.ActivePackage = activePackage
	req.CustomPackages = []string{customPackage}

	if _, err := a.Execute(context.Background(), req); err != ErrUnknownMode {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}
