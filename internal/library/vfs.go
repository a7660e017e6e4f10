package library

import "sort"

// VirtualFileSystem is the top-level index produced by LoadFileSystem:
// an immutable, binary-searchable sequence of Definitions plus the
// named Region predicates they reference.
type VirtualFileSystem struct {
	definitions []*Definition
	regions     map[string]Region
}

func sortDefinitionsByVirtualPath(defs []*Definition) {
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].VirtualPath < defs[j].VirtualPath
	})
}

// GetDefinition returns the Definition for virtualPath, or an empty
// Definition on miss.
func (v *VirtualFileSystem) GetDefinition(virtualPath string) *Definition {
	i := sort.Search(len(v.definitions), func(i int) bool {
		return v.definitions[i].VirtualPath >= virtualPath
	})
	if i < len(v.definitions) && v.definitions[i].VirtualPath == virtualPath {
		return v.definitions[i]
	}
	return NewDefinition(virtualPath)
}

// GetRegion returns the named Region, or an empty (all-zero) Region on
// miss. An all-zero Region is never compatible with any coordinate,
// so a missing reference is observably non-matching at resolution
// time.
func (v *VirtualFileSystem) GetRegion(name string) Region {
	return v.regions[name]
}

// DefinitionCount reports how many distinct virtual paths are indexed.
func (v *VirtualFileSystem) DefinitionCount() int {
	return len(v.definitions)
}

// Definitions returns every indexed Definition in virtual-path order.
// Used by export tooling; callers must not mutate the returned slice
// or its elements.
func (v *VirtualFileSystem) Definitions() []*Definition {
	return v.definitions
}

// RegionNames returns the names of the RegionalDefinitions entries
// attached to d, in insertion (priority) order.
func (d *Definition) RegionNames() []string {
	names := make([]string, 0, len(d.RegionalDef))
	for _, rd := range d.RegionalDef {
		names = append(names, rd.RegionName)
	}
	return names
}

// Resolve looks up virtualPath and returns the concrete real path
// selected for (lat, lon, season) by the first compatible
// RegionalDefinitions entry, in priority (insertion) order. It
// returns an empty DefinitionPath when nothing matches.
func (v *VirtualFileSystem) Resolve(virtualPath string, lat, lon float64, season byte, r Rand) DefinitionPath {
	def := v.GetDefinition(virtualPath)
	return def.Resolve(v.regions, lat, lon, season, r)
}

// Resolve implements the per-Definition half of resolution: walk
// regional_defs in insertion order, returning the first entry whose
// region is both known and compatible with (lat, lon).
func (d *Definition) Resolve(regions map[string]Region, lat, lon float64, season byte, r Rand) DefinitionPath {
	for _, rd := range d.RegionalDef {
		region, ok := regions[rd.RegionName]
		if !ok {
			continue
		}
		if !region.CompatibleWith(lat, lon) {
			continue
		}
		return selectSeason(rd, season, r)
	}
	return DefinitionPath{}
}

// selectSeason implements the bucket-selection half of resolution,
// including the carried-forward quirk that an empty seasonal bucket
// returns empty rather than falling back to default/backup.
func selectSeason(rd *RegionalDefinitions, season byte, r Rand) DefinitionPath {
	switch season {
	case 's', 'd':
		return sampleBucket(&rd.Summer, r)
	case 'w':
		return sampleBucket(&rd.Winter, r)
	case 'f':
		return sampleBucket(&rd.Fall, r)
	case 'p':
		return sampleBucket(&rd.Spring, r)
	default:
		if rd.Default.Count() > 0 {
			return sampleBucket(&rd.Default, r)
		}
		return sampleBucket(&rd.Backup, r)
	}
}

func sampleBucket(w *WeightedOptions, r Rand) DefinitionPath {
	path, ok := w.Sample(r)
	if !ok {
		return DefinitionPath{}
	}
	return path
}
