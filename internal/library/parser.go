package library

import (
	"strconv"
	"strings"
)

// seasonSubstrings maps each recognized literal substring to the
// season bucket it selects. EXPORT_SEASON's `seasons` argument is
// matched by substring, not exact token equality.
var seasonSubstrings = map[string]Season{
	"sum": SeasonSummer,
	"win": SeasonWinter,
	"spr": SeasonSpring,
	"fal": SeasonFall,
}

// parseState is the mutable state threaded through one manifest's
// ingestion: the current and pending region, the open REGION_DEFINE
// block (if any), and whether PRIVATE or PUBLIC is in effect.
type parseState struct {
	packagePath   string
	packagePrefix string

	currentRegion string
	inPrivate     bool

	pendingRegion     Region
	pendingRegionName string
	lastCmdWasRegion  bool
	thisCmdWasRegion  bool
}

// newParseState returns a parseState ready to ingest one manifest
// contributed by the package rooted at packagePath, named prefix for
// namespacing REGION_DEFINE/REGION references.
func newParseState(packagePath, packagePrefix string) *parseState {
	return &parseState{
		packagePath:   packagePath,
		packagePrefix: packagePrefix,
		currentRegion: regionAllName,
	}
}

// ParseManifest runs the directive language over content (the full
// text of one library.txt), mutating defs and regions in place.
// source names the manifest for diagnostics; sink receives every
// recoverable condition encountered. ParseManifest never returns an
// error: malformed input degrades to a diagnostic plus best-effort
// continuation, per the core's sentinel-result policy.
func ParseManifest(content, source, packagePath, packagePrefix string, defs *DefinitionIndex, regions map[string]Region, sink Sink) {
	if sink == nil {
		sink = DiscardSink{}
	}
	ps := newParseState(packagePath, packagePrefix)

	lines := strings.Split(content, "\n")
	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSuffix(raw, "\r")
		trimmed := TrimWhitespace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		ps.thisCmdWasRegion = false
		processManifestLine(trimmed, line, lineNo, source, ps, defs, sink)
		closeRegionBlockIfNeeded(ps, regions)
		ps.lastCmdWasRegion = ps.thisCmdWasRegion
	}
	// A manifest that ends mid REGION_DEFINE block still finalizes it:
	// there is no further line to observe the close on, so flush here.
	if ps.lastCmdWasRegion && ps.pendingRegionName != "" {
		regions[ps.pendingRegionName] = ps.pendingRegion
		ps.pendingRegionName = ""
	}
}

func closeRegionBlockIfNeeded(ps *parseState, regions map[string]Region) {
	if ps.lastCmdWasRegion && !ps.thisCmdWasRegion && ps.pendingRegionName != "" {
		regions[ps.pendingRegionName] = ps.pendingRegion
		ps.pendingRegionName = ""
	}
}

func processManifestLine(trimmed, rawLine string, lineNo int, source string, ps *parseState, defs *DefinitionIndex, sink Sink) {
	tokens := Tokenize(trimmed, DefaultDelimiters)
	if len(tokens) == 0 {
		return
	}
	directive := tokens[0]

	handler, ok := directiveHandlers[directive]
	if !ok {
		return // unknown directives are silently ignored
	}
	handler(directiveCall{
		tokens:  tokens,
		rawLine: rawLine,
		lineNo:  lineNo,
		source:  source,
		ps:      ps,
		defs:    defs,
		sink:    sink,
	})
}

// directiveCall bundles everything a directive handler needs. Passing
// one struct instead of seven positional arguments keeps the dispatch
// table below readable. Region-map finalization happens outside the
// handler dispatch, in closeRegionBlockIfNeeded, so handlers never
// touch the regions map directly.
type directiveCall struct {
	tokens  []string
	rawLine string
	lineNo  int
	source  string
	ps      *parseState
	defs    *DefinitionIndex
	sink    Sink
}

func (c directiveCall) warn(message string) {
	c.sink.Diagnose(Diagnostic{
		Severity: SeverityWarning,
		Stage:    StageParse,
		Source:   c.source,
		Line:     c.lineNo,
		Message:  message,
	})
}

// realPathFrom returns the remainder of the raw line after skipping
// the first skip whitespace-delimited tokens, with leading whitespace
// trimmed. This is deliberately not tokens[last]: a real path may
// itself contain spaces.
func (c directiveCall) realPathFrom(skip int) string {
	rest := c.rawLine
	for i := 0; i < skip; i++ {
		rest = TrimWhitespace(rest)
		idx := indexOfDelimiter(rest)
		if idx < 0 {
			return ""
		}
		rest = rest[idx:]
	}
	return TrimWhitespace(rest)
}

func indexOfDelimiter(s string) int {
	for i := 0; i < len(s); i++ {
		if isWhitespaceByte(s[i]) {
			return i
		}
	}
	return -1
}

func (c directiveCall) regionalDefs(virtualPath string) *RegionalDefinitions {
	def := c.defs.GetOrCreate(virtualPath)
	if c.ps.inPrivate {
		def.MarkPrivate()
	}
	return def.RegionalDefinitionsFor(c.ps.currentRegion)
}

func (c directiveCall) newDefinitionPath(realPath string) DefinitionPath {
	return NewDefinitionPath(c.ps.packagePath, realPath, true)
}

var directiveHandlers = map[string]func(directiveCall){
	"EXPORT":                  handleExport,
	"EXPORT_EXTEND":           handleExport,
	"EXPORT_BACKUP":           handleExportBackup,
	"EXPORT_RATIO":            handleExportRatio,
	"EXPORT_EXCLUDE":          handleExportExclude,
	"EXPORT_SEASON":           handleExportSeason,
	"EXPORT_EXTEND_SEASON":    handleExportSeason,
	"EXPORT_RATIO_SEASON":     handleExportRatioSeason,
	"EXPORT_EXCLUDE_SEASON":   handleExportExcludeSeason,
	"REGION_DEFINE":           handleRegionDefine,
	"REGION_ALL":              handleRegionAll,
	"REGION_RECT":             handleRegionRect,
	"REGION_BITMAP":           handleRegionBitmap,
	"REGION_DREF":             handleRegionDref,
	"REGION":                  handleRegion,
	"PUBLIC":                  handlePublic,
	"PRIVATE":                 handlePrivate,
}

func handleExport(c directiveCall) {
	if len(c.tokens) < 3 {
		return
	}
	virtualPath := c.tokens[1]
	real := c.realPathFrom(2)
	c.regionalDefs(virtualPath).Default.Add(c.newDefinitionPath(real), 1)
}

func handleExportBackup(c directiveCall) {
	if len(c.tokens) < 3 {
		return
	}
	virtualPath := c.tokens[1]
	real := c.realPathFrom(2)
	c.regionalDefs(virtualPath).Backup.Add(c.newDefinitionPath(real), 1)
}

// handleExportRatio implements the spec's corrected reading: the
// weight is tokens[1], not tokens[2] (the source reads the virtual
// path's position by mistake; see the design notes on EXPORT_RATIO).
func handleExportRatio(c directiveCall) {
	if len(c.tokens) < 4 {
		return
	}
	weight, err := strconv.ParseFloat(c.tokens[1], 64)
	if err != nil {
		weight = 1
		c.warn("EXPORT_RATIO: could not parse weight, defaulting to 1")
	}
	virtualPath := c.tokens[2]
	real := c.realPathFrom(3)
	c.regionalDefs(virtualPath).Backup.Add(c.newDefinitionPath(real), weight)
}

func handleExportExclude(c directiveCall) {
	if len(c.tokens) < 3 {
		return
	}
	virtualPath := c.tokens[1]
	real := c.realPathFrom(2)
	rd := c.regionalDefs(virtualPath)
	rd.Default.Reset()
	rd.Default.Add(c.newDefinitionPath(real), 1)
}

func matchingSeasons(token string) []Season {
	var matched []Season
	for substr, season := range seasonSubstrings {
		if strings.Contains(token, substr) {
			matched = append(matched, season)
		}
	}
	return matched
}

func handleExportSeason(c directiveCall) {
	if len(c.tokens) < 4 {
		return
	}
	seasons := matchingSeasons(c.tokens[1])
	virtualPath := c.tokens[2]
	real := c.realPathFrom(3)
	realPath := c.newDefinitionPath(real)
	rd := c.regionalDefs(virtualPath)
	for _, s := range seasons {
		rd.Bucket(s).Add(realPath, 1)
	}
}

func handleExportRatioSeason(c directiveCall) {
	if len(c.tokens) < 5 {
		return
	}
	seasons := matchingSeasons(c.tokens[1])
	weight, err := strconv.ParseFloat(c.tokens[2], 64)
	if err != nil {
		weight = 1
		c.warn("EXPORT_RATIO_SEASON: could not parse weight, defaulting to 1")
	}
	virtualPath := c.tokens[3]
	real := c.realPathFrom(4)
	realPath := c.newDefinitionPath(real)
	rd := c.regionalDefs(virtualPath)
	for _, s := range seasons {
		rd.Bucket(s).Add(realPath, weight)
	}
}

func handleExportExcludeSeason(c directiveCall) {
	if len(c.tokens) < 4 {
		return
	}
	seasons := matchingSeasons(c.tokens[1])
	virtualPath := c.tokens[2]
	real := c.realPathFrom(3)
	realPath := c.newDefinitionPath(real)
	rd := c.regionalDefs(virtualPath)
	rd.Default.Reset()
	for _, s := range seasons {
		rd.Bucket(s).Add(realPath, 1)
	}
}

func (ps *parseState) namespaced(name string) string {
	return ps.packagePrefix + ":" + name
}

func handleRegionDefine(c directiveCall) {
	if len(c.tokens) != 2 {
		return
	}
	c.ps.pendingRegion = NewRegion()
	c.ps.pendingRegionName = c.ps.namespaced(c.tokens[1])
	c.ps.thisCmdWasRegion = true
}

func handleRegionAll(c directiveCall) {
	c.ps.thisCmdWasRegion = true
}

func handleRegionRect(c directiveCall) {
	c.ps.thisCmdWasRegion = true
	if len(c.tokens) != 5 {
		return
	}
	w, errW := strconv.ParseFloat(c.tokens[1], 64)
	s, errS := strconv.ParseFloat(c.tokens[2], 64)
	e, errE := strconv.ParseFloat(c.tokens[3], 64)
	n, errN := strconv.ParseFloat(c.tokens[4], 64)
	if errW != nil || errS != nil || errE != nil || errN != nil {
		c.warn("REGION_RECT: could not parse bounds, leaving prior values")
		return
	}
	c.ps.pendingRegion.West = w
	c.ps.pendingRegion.South = s
	c.ps.pendingRegion.East = e
	c.ps.pendingRegion.North = n
}

func handleRegionBitmap(c directiveCall) {
	c.ps.thisCmdWasRegion = true
	// REGION_BITMAP is not interpreted: the bitmap is not stored and no
	// diagnostic is emitted; the line only counts as part of the
	// region block.
}

func handleRegionDref(c directiveCall) {
	c.ps.thisCmdWasRegion = true
	if len(c.tokens) != 4 {
		return
	}
	c.ps.pendingRegion.Conditions = append(c.ps.pendingRegion.Conditions, Condition{
		LHS: c.tokens[1],
		Op:  c.tokens[2],
		RHS: c.tokens[3],
	})
}

func handleRegion(c directiveCall) {
	if len(c.tokens) != 2 {
		return
	}
	name := c.tokens[1]
	if name == regionAllName {
		c.ps.currentRegion = regionAllName
		return
	}
	c.ps.currentRegion = c.ps.namespaced(name)
}

func handlePublic(c directiveCall) {
	c.ps.inPrivate = false
}

func handlePrivate(c directiveCall) {
	c.ps.inPrivate = true
}
