package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/coalition-freeware/xplib-go/internal/config"
	"github.com/coalition-freeware/xplib-go/internal/library"
	"github.com/coalition-freeware/xplib-go/internal/report"
	"github.com/coalition-freeware/xplib-go/internal/workspace"
)

var (
	ErrUnknownMode      = errors.New("unknown mode")
	ErrVirtualPathEmpty = errors.New("virtual path is required for resolve")
)

// App wires configuration loading, VirtualFileSystem construction and
// report formatting behind the three subcommands xplib exposes.
type App struct {
	Formatter *report.Formatter
	Sink      *library.SliceSink
}

// New returns an App that reports diagnostics to a fresh SliceSink;
// callers read App.Sink.Items() after Execute to print warnings.
func New() *App {
	return &App{
		Formatter: report.NewFormatter(),
		Sink:      library.NewSliceSink(),
	}
}

// Execute loads configuration, builds the VirtualFileSystem and
// carries out req.Mode, returning the formatted result.
func (a *App) Execute(ctx context.Context, req Request) (string, error) {
	values, err := a.loadConfig(req)
	if err != nil {
		return "", err
	}

	vfs, err := a.build(values, req)
	if err != nil {
		return "", err
	}

	switch req.Mode {
	case ModeBuild:
		return a.executeBuild(vfs), nil
	case ModeResolve:
		return a.executeResolve(vfs, values, req.Resolve)
	case ModeExport:
		return a.executeExport(vfs, req.Export)
	default:
		return "", ErrUnknownMode
	}
}

func (a *App) loadConfig(req Request) (config.Values, error) {
	var seedOverride *int64
	if req.RNGSeed != nil {
		seedOverride = req.RNGSeed
	}
	values, _, err := config.Load(req.RepoPath, req.ConfigPath, config.Overrides{
		XPRoot:         req.XPRoot,
		ActivePackage:  req.ActivePackage,
		CustomPackages: req.CustomPackages,
		DefaultSeason:  req.DefaultSeason,
		RNGSeed:        seedOverride,
	})
	if err != nil {
		return config.Values{}, err
	}
	return values, nil
}

func (a *App) build(values config.Values, req Request) (*library.VirtualFileSystem, error) {
	xpRoot, err := workspace.ResolveRoot(values.XPRoot)
	if err != nil {
		return nil, err
	}
	activePackage, err := workspace.ResolveRoot(values.ActivePackage)
	if err != nil {
		return nil, err
	}
	customPackages, err := workspace.ResolveRoots(values.CustomPackages)
	if err != nil {
		return nil, err
	}

	return library.LoadFileSystem(xpRoot, activePackage, customPackages, library.BuildOptions{
		Parallel: req.Parallel,
		Workers:  req.Workers,
		Sink:     a.Sink,
	})
}

func (a *App) newRand(values config.Values) library.Rand {
	if values.HasSeed {
		return library.NewSeededRand(values.RNGSeed)
	}
	return library.NewRand()
}

func (a *App) executeBuild(vfs *library.VirtualFileSystem) string {
	return fmt.Sprintf("built virtual file system: %d definitions indexed\n", vfs.DefinitionCount())
}

func (a *App) executeResolve(vfs *library.VirtualFileSystem, values config.Values, req ResolveRequest) (string, error) {
	if req.VirtualPath == "" {
		return "", ErrVirtualPathEmpty
	}
	season := values.DefaultSeason
	if req.Season != "" {
		season = req.Season[0]
	}

	resolved := vfs.Resolve(req.VirtualPath, req.Latitude, req.Longitude, season, a.newRand(values))
	result := report.ResolveResult{
		VirtualPath: req.VirtualPath,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Season:      string(season),
		RealPath:    resolved.RealPath,
		Found:       !resolved.IsEmpty(),
	}
	return a.Formatter.FormatResolve(result, req.Format)
}

func (a *App) executeExport(vfs *library.VirtualFileSystem, req ExportRequest) (string, error) {
	definitions := vfs.Definitions()
	index := report.ExportedIndex{
		SchemaVersion: report.SchemaVersion,
		Definitions:   make([]report.ExportedDefinition, 0, len(definitions)),
	}
	for _, def := range definitions {
		index.Definitions = append(index.Definitions, report.ExportedDefinition{
			VirtualPath: def.VirtualPath,
			IsPrivate:   def.IsPrivate,
			Regions:     def.RegionNames(),
		})
	}

	if req.ValidateSchema {
		encoded, err := report.MarshalAndValidate(index)
		if err != nil {
			return "", err
		}
		if req.Format == report.FormatJSON {
			return encoded, nil
		}
	}

	return a.Formatter.FormatIndex(index, req.Format)
}
