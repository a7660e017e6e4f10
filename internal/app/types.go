package app

import "github.com/coalition-freeware/xplib-go/internal/report"

// Mode selects which xplib subcommand Execute runs.
type Mode string

const (
	ModeBuild   Mode = "build"
	ModeResolve Mode = "resolve"
	ModeExport  Mode = "export"
)

// Request bundles a command's configuration path/overrides with the
// mode-specific arguments Execute needs to carry it out.
type Request struct {
	Mode           Mode
	RepoPath       string
	ConfigPath     string
	XPRoot         string
	ActivePackage  string
	CustomPackages []string
	DefaultSeason  string
	RNGSeed        *int64
	Parallel       bool
	Workers        int

	Resolve ResolveRequest
	Export  ExportRequest
}

// ResolveRequest is the `xplib resolve` subcommand's arguments.
type ResolveRequest struct {
	VirtualPath string
	Latitude    float64
	Longitude   float64
	Season      string
	Format      report.Format
}

// ExportRequest is the `xplib export` subcommand's arguments.
type ExportRequest struct {
	Format         report.Format
	ValidateSchema bool
}

// DefaultRequest returns the baseline every layer of flag parsing
// merges onto.
func DefaultRequest() Request {
	return Request{
		Mode:     ModeBuild,
		RepoPath: ".",
		Resolve: ResolveRequest{
			Format: report.FormatTable,
		},
		Export: ExportRequest{
			Format: report.FormatTable,
		},
	}
}
