package library

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/coalition-freeware/xplib-go/internal/safeio"
)

// assetExtensions is the set of file extensions recognized during the
// active-package scan, compared against the path's extension
// including the leading dot. Raw case is preserved; callers that want
// case-insensitive matching should lowercase before calling
// LoadFileSystem.
var assetExtensions = map[string]bool{
	".lin": true, ".pol": true, ".str": true, ".ter": true,
	".net": true, ".obj": true, ".agb": true, ".ags": true,
	".agp": true, ".bch": true, ".fac": true, ".for": true,
}

const manifestFileName = "library.txt"

// BuildOptions configures LoadFileSystem.
type BuildOptions struct {
	// Parallel, when true, reads the discovered manifests concurrently
	// (bounded by Workers). The deterministic ordering guarantees in
	// the spec's ordering section still hold: the contents are parsed
	// and merged one after another in discovery order, not completion
	// order.
	Parallel bool
	// Workers bounds concurrent manifest ingestion when Parallel is
	// true. Zero or negative defaults to 4.
	Workers int
	Sink    Sink
}

// manifestJob is one (package root, manifest path) pair discovered
// during the manifest-discovery step.
type manifestJob struct {
	packageRoot   string
	packagePrefix string
	manifestPath  string
}

// LoadFileSystem builds a VirtualFileSystem from an X-Plane root, an
// active package whose own asset tree is scanned directly, and an
// ordered list of custom scenery packages (highest priority first).
func LoadFileSystem(xpRoot, activePackage string, customPackages []string, opts BuildOptions) (*VirtualFileSystem, error) {
	sink := opts.Sink
	if sink == nil {
		sink = DiscardSink{}
	}

	regions := map[string]Region{regionAllName: NewRegion()}
	defs := NewDefinitionIndex()

	if err := scanActivePackage(activePackage, defs); err != nil {
		return nil, err
	}

	jobs, err := discoverManifests(xpRoot, customPackages)
	if err != nil {
		return nil, err
	}

	if opts.Parallel {
		ingestParallel(jobs, defs, regions, sink, opts.Workers)
	} else {
		for _, job := range jobs {
			ingestOne(job, defs, regions, sink)
		}
	}

	return &VirtualFileSystem{
		definitions: defs.sorted(),
		regions:     regions,
	}, nil
}

// scanActivePackage recursively walks activePackage, synthesizing a
// region_all Definition for every recognized asset file found.
func scanActivePackage(activePackage string, defs *DefinitionIndex) error {
	if activePackage == "" {
		return nil
	}
	return filepath.WalkDir(activePackage, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				return nil
			}
			if path == activePackage {
				return err
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if !assetExtensions[ext] {
			return nil
		}
		rel, err := filepath.Rel(activePackage, path)
		if err != nil {
			return nil
		}
		virtualPath := filepath.ToSlash(rel)
		def := defs.GetOrCreate(virtualPath)
		rd := def.RegionalDefinitionsFor(regionAllName)
		rd.Default.Add(NewDefinitionPath(activePackage, rel, false), 1)
		return nil
	})
}

// discoverManifests collects (package_root, manifest_path) pairs in
// priority order: custom packages first (highest priority first, as
// given), then stock scenery under xpRoot's default scenery tree.
func discoverManifests(xpRoot string, customPackages []string) ([]manifestJob, error) {
	var jobs []manifestJob
	for _, pkg := range customPackages {
		found, err := findManifests(pkg)
		if err != nil {
			return nil, err
		}
		prefix := packagePrefixFor(pkg)
		for _, m := range found {
			jobs = append(jobs, manifestJob{packageRoot: pkg, packagePrefix: prefix, manifestPath: m})
		}
	}

	if xpRoot != "" {
		stockRoot := filepath.Join(xpRoot, "Resources", "default scenery")
		found, err := findManifests(stockRoot)
		if err != nil {
			return nil, err
		}
		for _, m := range found {
			jobs = append(jobs, manifestJob{
				packageRoot:   filepath.Dir(m),
				packagePrefix: "stock:" + filepath.Base(filepath.Dir(m)),
				manifestPath:  m,
			})
		}
	}
	return jobs, nil
}

func packagePrefixFor(pkg string) string {
	base := filepath.Base(pkg)
	if base == "" || base == "." {
		base = pkg
	}
	return base
}

// findManifests recursively walks root looking for library.txt files.
// Permission-denied entries are skipped, not fatal; a missing root is
// likewise skipped (an optional custom package or absent stock
// scenery tree is not an error).
func findManifests(root string) ([]string, error) {
	if root == "" {
		return nil, nil
	}
	if _, err := os.Stat(root); err != nil {
		return nil, nil
	}
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				return nil
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(d.Name(), manifestFileName) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ingestOne reads and parses a single manifest, mutating the shared
// definition index and region map directly. Used only by the
// sequential path; the parallel path merges through ingestParallel
// instead.
func ingestOne(job manifestJob, defs *DefinitionIndex, regions map[string]Region, sink Sink) {
	content, err := safeio.ReadFile(job.manifestPath)
	if err != nil {
		sink.Diagnose(Diagnostic{
			Severity: SeverityWarning,
			Stage:    StageBuild,
			Source:   job.manifestPath,
			Message:  "could not read manifest: " + err.Error(),
		})
		return
	}
	ParseManifest(string(content), job.manifestPath, job.packageRoot, job.packagePrefix, defs, regions, sink)
}

// ingestParallel reads manifests concurrently on worker goroutines,
// then parses and merges them on the calling goroutine once every
// read has finished, so the shared Definition and Region maps are
// never mutated by two goroutines at once while disk I/O across
// packages still overlaps.
func ingestParallel(jobs []manifestJob, defs *DefinitionIndex, regions map[string]Region, sink Sink, workers int) {
	if workers <= 0 {
		workers = 4
	}
	type loaded struct {
		job     manifestJob
		content string
		err     error
	}

	in := make(chan manifestJob)
	out := make(chan loaded)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range in {
				content, err := safeio.ReadFile(job.manifestPath)
				out <- loaded{job: job, content: string(content), err: err}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	go func() {
		for _, job := range jobs {
			in <- job
		}
		close(in)
	}()

	results := make(map[string]loaded, len(jobs))
	for l := range out {
		results[l.job.manifestPath] = l
	}

	// Merge sequentially in discovery order regardless of completion
	// order, so the insertion-order priority guarantee holds. Disk
	// reads overlapped above; only the cheap in-memory parse/merge is
	// serialized here.
	for _, job := range jobs {
		l := results[job.manifestPath]
		if l.err != nil {
			sink.Diagnose(Diagnostic{
				Severity: SeverityWarning,
				Stage:    StageBuild,
				Source:   job.manifestPath,
				Message:  "could not read manifest: " + l.err.Error(),
			})
			continue
		}
		ParseManifest(l.content, job.manifestPath, job.packageRoot, job.packagePrefix, defs, regions, sink)
	}
}
