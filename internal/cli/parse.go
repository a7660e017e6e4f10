package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/coalition-freeware/xplib-go/internal/app"
	"github.com/coalition-freeware/xplib-go/internal/report"
)

var ErrHelpRequested = errors.New("help requested")

func ParseArgs(args []string) (app.Request, error) {
	req := app.DefaultRequest()
	if len(args) == 0 {
		return req, ErrHelpRequested
	}

	if isHelpArg(args[0]) {
		return req, ErrHelpRequested
	}

	switch args[0] {
	case "build":
		return parseBuild(args[1:], req)
	case "resolve":
		return parseResolve(args[1:], req)
	case "export":
		return parseExport(args[1:], req)
	default:
		return req, fmt.Errorf("unknown command: %s", args[0])
	}
}

func buildFlagSet(name string, req app.Request) (*flag.FlagSet, func() (app.Request, error)) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	repoPath := fs.String("repo", req.RepoPath, "repository path")
	configPath := fs.String("config", req.ConfigPath, "config file path")
	xpRoot := fs.String("xp-root", req.XPRoot, "X-Plane installation root")
	activePackage := fs.String("active-package", req.ActivePackage, "active scenery package path")
	customPackages := fs.String("custom-packages", "", "comma-separated custom package paths, highest priority first")
	season := fs.String("season", req.DefaultSeason, "default season: s, w, f, p, or d")
	seedFlag := fs.String("seed", "", "deterministic RNG seed")
	parallel := fs.Bool("parallel", false, "ingest custom package manifests concurrently")

	finish := func() (app.Request, error) {
		req.RepoPath = strings.TrimSpace(*repoPath)
		req.ConfigPath = strings.TrimSpace(*configPath)
		req.XPRoot = strings.TrimSpace(*xpRoot)
		req.ActivePackage = strings.TrimSpace(*activePackage)
		req.DefaultSeason = strings.TrimSpace(*season)
		req.Parallel = *parallel
		if trimmed := strings.TrimSpace(*customPackages); trimmed != "" {
			req.CustomPackages = splitAndTrim(trimmed)
		}
		if trimmed := strings.TrimSpace(*seedFlag); trimmed != "" {
			seed, err := strconv.ParseInt(trimmed, 10, 64)
			if err != nil {
				return req, fmt.Errorf("--seed: %w", err)
			}
			req.RNGSeed = &seed
		}
		return req, nil
	}
	return fs, finish
}

func parseBuild(args []string, req app.Request) (app.Request, error) {
	args = normalizeArgs(args)
	fs, finish := buildFlagSet("build", req)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return req, ErrHelpRequested
		}
		return req, err
	}
	if fs.NArg() > 0 {
		return req, fmt.Errorf("unexpected arguments for build")
	}
	req.Mode = app.ModeBuild
	return finish()
}

func parseResolve(args []string, req app.Request) (app.Request, error) {
	args = normalizeArgs(args)
	fs, finish := buildFlagSet("resolve", req)
	formatFlag := fs.String("format", string(req.Resolve.Format), "output format: table|json")
	lat := fs.Float64("lat", 0, "latitude")
	lon := fs.Float64("lon", 0, "longitude")
	seasonOverride := fs.String("resolve-season", "", "season override for this query (falls back to --season)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return req, ErrHelpRequested
		}
		return req, err
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		return req, fmt.Errorf("resolve requires exactly one virtual path argument")
	}

	format, err := report.ParseFormat(*formatFlag)
	if err != nil {
		return req, err
	}

	req.Mode = app.ModeResolve
	req, err = finish()
	if err != nil {
		return req, err
	}
	req.Resolve = app.ResolveRequest{
		VirtualPath: strings.TrimSpace(remaining[0]),
		Latitude:    *lat,
		Longitude:   *lon,
		Season:      strings.TrimSpace(*seasonOverride),
		Format:      format,
	}
	return req, nil
}

func parseExport(args []string, req app.Request) (app.Request, error) {
	args = normalizeArgs(args)
	fs, finish := buildFlagSet("export", req)
	formatFlag := fs.String("format", string(req.Export.Format), "output format: table|json")
	validateSchema := fs.Bool("validate-schema", false, "validate JSON export against the schema before returning it")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return req, ErrHelpRequested
		}
		return req, err
	}
	if fs.NArg() > 0 {
		return req, fmt.Errorf("unexpected arguments for export")
	}

	format, err := report.ParseFormat(*formatFlag)
	if err != nil {
		return req, err
	}

	req.Mode = app.ModeExport
	req, err = finish()
	if err != nil {
		return req, err
	}
	req.Export = app.ExportRequest{
		Format:         format,
		ValidateSchema: *validateSchema,
	}
	return req, nil
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func normalizeArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}

	flags := make([]string, 0, len(args))
	positionals := make([]string, 0, 1)

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
			if flagNeedsValue(arg) && i+1 < len(args) {
				flags = append(flags, args[i+1])
				i++
			}
			continue
		}
		positionals = append(positionals, arg)
	}

	return append(flags, positionals...)
}

func flagNeedsValue(arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	switch arg {
	case "--repo", "--config", "--xp-root", "--active-package", "--custom-packages",
		"--season", "--seed", "--format", "--lat", "--lon", "--resolve-season":
		return true
	default:
		return false
	}
}
