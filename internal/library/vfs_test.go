package library

import "testing"

func TestGetDefinitionMissReturnsEmptyDefinition(t *testing.T) {
	defs := NewDefinitionIndex()
	vfs := &VirtualFileSystem{definitions: defs.sorted(), regions: map[string]Region{}}
	def := vfs.GetDefinition("lib/missing.obj")
	if def.VirtualPath != "lib/missing.obj" {
		t.Fatalf("expected virtual path echoed back, got %q", def.VirtualPath)
	}
	if len(def.RegionalDef) != 0 {
		t.Fatalf("expected no regional definitions on miss, got %d", len(def.RegionalDef))
	}
}

func TestGetRegionMissReturnsZeroRegion(t *testing.T) {
	vfs := &VirtualFileSystem{regions: map[string]Region{}}
	region := vfs.GetRegion("does-not-exist")
	if region.CompatibleWith(0, 0) {
		t.Fatal("expected zero-value region to be incompatible with every coordinate")
	}
}

func TestDefinitionCountReflectsIndexSize(t *testing.T) {
	defs := NewDefinitionIndex()
	defs.GetOrCreate("a")
	defs.GetOrCreate("b")
	vfs := &VirtualFileSystem{definitions: defs.sorted(), regions: map[string]Region{}}
	if vfs.DefinitionCount() != 2 {
		t.Fatalf("expected 2, got %d", vfs.DefinitionCount())
	}
}

func TestDefinitionsReturnsAllInVirtualPathOrder(t *testing.T) {
	defs := NewDefinitionIndex()
	defs.GetOrCreate("b")
	defs.GetOrCreate("a")
	vfs := &VirtualFileSystem{definitions: defs.sorted(), regions: map[string]Region{}}
	all := vfs.Definitions()
	if len(all) != 2 || all[0].VirtualPath != "a" || all[1].VirtualPath != "b" {
		t.Fatalf("expected sorted [a, b], got %+v", all)
	}
}

func TestRegionNamesReflectsInsertionOrder(t *testing.T) {
	def := NewDefinition("lib/x.obj")
	def.RegionalDefinitionsFor("RB")
	def.RegionalDefinitionsFor("RA")
	names := def.RegionNames()
	if len(names) != 2 || names[0] != "RB" || names[1] != "RA" {
		t.Fatalf("expected insertion order [RB, RA], got %v", names)
	}
}

func TestResolveOnEmptyVFSReturnsEmptyPath(t *testing.T) {
	vfs := &VirtualFileSystem{regions: map[string]Region{regionAllName: NewRegion()}}
	got := vfs.Resolve("lib/missing.obj", 0, 0, 'd', NewSeededRand(1))
	if !got.IsEmpty() {
		t.Fatalf("expected empty result, got %+v", got)
	}
}
