// Package report renders resolve and export results for xplib's CLI,
// and validates exported indexes against a JSON Schema. It follows the
// host repo's report package in shape: a Format enum, a Formatter with
// one method per output kind, and schema validation via gojsonschema.
package report

import (
	"errors"
	"fmt"
	"strings"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

var ErrUnknownFormat = errors.New("unknown format")

func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, value)
	}
}

// ResolveResult is what `xplib resolve` renders: one virtual-path
// lookup and the real path it resolved to (empty on miss).
type ResolveResult struct {
	VirtualPath string  `json:"virtualPath"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Season      string  `json:"season"`
	RealPath    string  `json:"realPath"`
	Found       bool    `json:"found"`
}

// ExportedDefinition is one virtual path's flattened view in an
// ExportedIndex: enough to audit what a build produced without
// exposing the full weighted-option internals.
type ExportedDefinition struct {
	VirtualPath string   `json:"virtualPath"`
	IsPrivate   bool     `json:"isPrivate"`
	Regions     []string `json:"regions"`
}

// ExportedIndex is what `xplib export` renders: the full definition
// list of a built VirtualFileSystem.
type ExportedIndex struct {
	SchemaVersion string                `json:"schemaVersion"`
	Definitions   []ExportedDefinition `json:"definitions"`
}

const SchemaVersion = "1.0.0"
