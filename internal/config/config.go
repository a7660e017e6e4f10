// Package config loads the layered settings xplib needs to build a
// VirtualFileSystem: the X-Plane root, the active package, the
// ordered list of custom scenery packages, and query defaults. It
// mirrors the host repo's config package in shape (file discovery,
// YAML/JSON/TOML decode, defaults-then-file-then-flags layering) but
// drops the remote policy-pack resolver: there is no equivalent
// "shared pack" concept in a per-machine scenery layout.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/coalition-freeware/xplib-go/internal/safeio"
)

const (
	readConfigFileErrFmt  = "read config file %s: %w"
	parseConfigFileErrFmt = "parse config file %s: %w"
)

// configFileNames lists the discovery candidates, checked in order,
// when no explicit path is given.
var configFileNames = []string{".xplib.yml", ".xplib.yaml", ".xplib.json", ".xplib.toml"}

// Values holds the resolved configuration a build/resolve/export
// command runs with.
type Values struct {
	XPRoot         string
	ActivePackage  string
	CustomPackages []string
	DefaultSeason  byte
	RNGSeed        int64
	HasSeed        bool
}

// Defaults returns the zero-ish baseline every layer merges onto.
func Defaults() Values {
	return Values{DefaultSeason: 'd'}
}

// rawConfig is the on-disk shape, decoded from whichever format the
// discovered (or explicit) config file uses.
type rawConfig struct {
	XPRoot         string   `yaml:"xp_root" json:"xp_root" toml:"xp_root"`
	ActivePackage  string   `yaml:"active_package" json:"active_package" toml:"active_package"`
	CustomPackages []string `yaml:"custom_packages" json:"custom_packages" toml:"custom_packages"`
	DefaultSeason  string   `yaml:"default_season" json:"default_season" toml:"default_season"`
	RNGSeed        *int64   `yaml:"rng_seed" json:"rng_seed" toml:"rng_seed"`
}

// Overrides carries CLI-flag-supplied values; a nil/empty field means
// "not set on the command line" and the file value (or default)
// applies instead.
type Overrides struct {
	XPRoot         string
	ActivePackage  string
	CustomPackages []string
	DefaultSeason  string
	RNGSeed        *int64
}

// Load resolves configuration by layering, in increasing priority:
// Defaults() < discovered/explicit config file < overrides.
func Load(repoPath, explicitPath string, overrides Overrides) (Values, string, error) {
	repoAbs, err := filepath.Abs(repoPath)
	if err != nil {
		return Values{}, "", fmt.Errorf("resolve repo path: %w", err)
	}

	configPath, found, err := resolveConfigPath(repoAbs, strings.TrimSpace(explicitPath))
	if err != nil {
		return Values{}, "", err
	}

	values := Defaults()
	if found {
		data, err := readConfigFile(repoAbs, configPath, explicitPath != "")
		if err != nil {
			return Values{}, "", fmt.Errorf(readConfigFileErrFmt, configPath, err)
		}
		cfg, err := parseConfig(configPath, data)
		if err != nil {
			return Values{}, "", fmt.Errorf(parseConfigFileErrFmt, configPath, err)
		}
		values = mergeFile(values, cfg)
	}

	values = mergeOverrides(values, overrides)
	if err := values.validate(); err != nil {
		return Values{}, "", err
	}
	return values, configPath, nil
}

func resolveConfigPath(repoPath, explicitPath string) (string, bool, error) {
	if explicitPath != "" {
		candidate := explicitPath
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(repoPath, candidate)
		}
		candidate = filepath.Clean(candidate)
		if _, err := os.Stat(candidate); err != nil {
			if os.IsNotExist(err) {
				return "", false, fmt.Errorf("config file not found: %s", candidate)
			}
			return "", false, fmt.Errorf(readConfigFileErrFmt, candidate, err)
		}
		return candidate, true, nil
	}

	for _, name := range configFileNames {
		candidate := filepath.Join(repoPath, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !os.IsNotExist(err) {
			return "", false, fmt.Errorf(readConfigFileErrFmt, candidate, err)
		}
	}
	return "", false, nil
}

func readConfigFile(repoPath, path string, explicitProvided bool) ([]byte, error) {
	if !explicitProvided || isPathUnderRoot(repoPath, path) {
		return safeio.ReadFileUnder(repoPath, path)
	}
	return safeio.ReadFile(path)
}

func isPathUnderRoot(rootPath, targetPath string) bool {
	relative, err := filepath.Rel(rootPath, targetPath)
	if err != nil {
		return false
	}
	return relative != ".." && !strings.HasPrefix(relative, ".."+string(os.PathSeparator))
}

func parseConfig(path string, data []byte) (rawConfig, error) {
	var cfg rawConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return rawConfig{}, fmt.Errorf("invalid JSON config: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return rawConfig{}, fmt.Errorf("invalid TOML config: %w", err)
		}
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return rawConfig{}, fmt.Errorf("invalid YAML config: %w", err)
		}
	}
	return cfg, nil
}

func mergeFile(base Values, cfg rawConfig) Values {
	if cfg.XPRoot != "" {
		base.XPRoot = cfg.XPRoot
	}
	if cfg.ActivePackage != "" {
		base.ActivePackage = cfg.ActivePackage
	}
	if len(cfg.CustomPackages) > 0 {
		base.CustomPackages = append([]string{}, cfg.CustomPackages...)
	}
	if season, ok := normalizeSeason(cfg.DefaultSeason); ok {
		base.DefaultSeason = season
	}
	if cfg.RNGSeed != nil {
		base.RNGSeed = *cfg.RNGSeed
		base.HasSeed = true
	}
	return base
}

func mergeOverrides(base Values, o Overrides) Values {
	if o.XPRoot != "" {
		base.XPRoot = o.XPRoot
	}
	if o.ActivePackage != "" {
		base.ActivePackage = o.ActivePackage
	}
	if len(o.CustomPackages) > 0 {
		base.CustomPackages = append([]string{}, o.CustomPackages...)
	}
	if season, ok := normalizeSeason(o.DefaultSeason); ok {
		base.DefaultSeason = season
	}
	if o.RNGSeed != nil {
		base.RNGSeed = *o.RNGSeed
		base.HasSeed = true
	}
	return base
}

func normalizeSeason(s string) (byte, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	return s[0], true
}

func (v Values) validate() error {
	if v.XPRoot == "" {
		return fmt.Errorf("xp_root must be set")
	}
	if v.ActivePackage == "" {
		return fmt.Errorf("active_package must be set")
	}
	return nil
}
