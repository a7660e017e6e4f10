package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"
)

type Formatter struct{}

func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) FormatResolve(result ResolveResult, format Format) (string, error) {
	switch format {
	case FormatTable:
		return formatResolveTable(result), nil
	case FormatJSON:
		return marshalIndented(result)
	default:
		return "", ErrUnknownFormat
	}
}

func (f *Formatter) FormatIndex(index ExportedIndex, format Format) (string, error) {
	switch format {
	case FormatTable:
		return formatIndexTable(index), nil
	case FormatJSON:
		return marshalIndented(index)
	default:
		return "", ErrUnknownFormat
	}
}

func marshalIndented(v interface{}) (string, error) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(payload) + "\n", nil
}

func formatResolveTable(result ResolveResult) string {
	var buffer bytes.Buffer
	fmt.Fprintf(&buffer, "virtual path: %s\n", result.VirtualPath)
	fmt.Fprintf(&buffer, "coordinates:  %.4f, %.4f\n", result.Latitude, result.Longitude)
	fmt.Fprintf(&buffer, "season:       %s\n", result.Season)
	if !result.Found {
		buffer.WriteString("real path:    (no match)\n")
		return buffer.String()
	}
	fmt.Fprintf(&buffer, "real path:    %s\n", result.RealPath)
	return buffer.String()
}

func formatIndexTable(index ExportedIndex) string {
	var buffer bytes.Buffer
	fmt.Fprintf(&buffer, "schema: %s\n", index.SchemaVersion)
	fmt.Fprintf(&buffer, "definitions: %d\n\n", len(index.Definitions))

	writer := tabwriter.NewWriter(&buffer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "Virtual Path\tPrivate\tRegions")
	for _, def := range index.Definitions {
		fmt.Fprintf(writer, "%s\t%t\t%s\n", def.VirtualPath, def.IsPrivate, joinOrDash(def.Regions))
	}
	writer.Flush()
	return buffer.String()
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	out := values[0]
	for _, v := range values[1:] {
		out += ", " + v
	}
	return out
}
