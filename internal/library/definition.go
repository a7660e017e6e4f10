package library

import "path/filepath"

// DefinitionPath is a concrete real-file mapping: an owning package
// root plus a path relative to it. RealPath is derived once at
// construction and cached; the three fields are set atomically by
// NewDefinitionPath so no caller can observe a stale combination.
type DefinitionPath struct {
	PackagePath string
	Path        string
	RealPath    string
	FromLibrary bool
}

// NewDefinitionPath builds a DefinitionPath, deriving RealPath as
// packagePath joined with path.
func NewDefinitionPath(packagePath, path string, fromLibrary bool) DefinitionPath {
	return DefinitionPath{
		PackagePath: packagePath,
		Path:        path,
		RealPath:    filepath.Join(packagePath, path),
		FromLibrary: fromLibrary,
	}
}

// IsEmpty reports whether d is the zero-value sentinel returned when
// resolution finds no matching option.
func (d DefinitionPath) IsEmpty() bool {
	return d == DefinitionPath{}
}

// Season names the six bucket kinds a RegionalDefinitions carries.
type Season string

const (
	SeasonSummer  Season = "summer"
	SeasonWinter  Season = "winter"
	SeasonSpring  Season = "spring"
	SeasonFall    Season = "fall"
	SeasonDefault Season = "default"
	SeasonBackup  Season = "backup"
)

// RegionalDefinitions is one virtual path's variant set bound to a
// single named region: six independent WeightedOptions buckets, one
// per season plus the unconditional default and the last-resort
// backup.
type RegionalDefinitions struct {
	RegionName string
	Summer     WeightedOptions
	Winter     WeightedOptions
	Spring     WeightedOptions
	Fall       WeightedOptions
	Default    WeightedOptions
	Backup     WeightedOptions
}

// Bucket returns the WeightedOptions for the named season.
func (rd *RegionalDefinitions) Bucket(s Season) *WeightedOptions {
	switch s {
	case SeasonSummer:
		return &rd.Summer
	case SeasonWinter:
		return &rd.Winter
	case SeasonSpring:
		return &rd.Spring
	case SeasonFall:
		return &rd.Fall
	case SeasonBackup:
		return &rd.Backup
	default:
		return &rd.Default
	}
}

// Definition is the resolver's per-virtual-path record: an ordered
// list of region-scoped variants plus a sticky privacy flag.
type Definition struct {
	VirtualPath string
	RegionalDef []*RegionalDefinitions
	IsPrivate   bool
}

// NewDefinition returns an empty Definition for the given virtual
// path.
func NewDefinition(virtualPath string) *Definition {
	return &Definition{VirtualPath: virtualPath}
}

// RegionalDefinitionsFor returns the RegionalDefinitions bound to
// regionName, creating and appending a new tail entry on miss. Lookup
// is first-match: if a manifest intentionally layers repeated region
// names, only the first entry is ever returned or mutated by this
// method.
func (d *Definition) RegionalDefinitionsFor(regionName string) *RegionalDefinitions {
	for _, rd := range d.RegionalDef {
		if rd.RegionName == regionName {
			return rd
		}
	}
	rd := &RegionalDefinitions{RegionName: regionName}
	d.RegionalDef = append(d.RegionalDef, rd)
	return rd
}

// MarkPrivate sets IsPrivate to true. It never clears it: privacy is
// sticky for the lifetime of the Definition.
func (d *Definition) MarkPrivate() {
	d.IsPrivate = true
}
