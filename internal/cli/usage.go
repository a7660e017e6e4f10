package cli

const usage = `Usage:
  xplib build [--xp-root PATH] [--active-package PATH] [--custom-packages P1,P2,...] [--config PATH] [--parallel] [--seed N]
  xplib resolve <virtual-path> [--lat N] [--lon N] [--resolve-season s|w|f|p|d] [--season s|w|f|p|d] [--format table|json] [--xp-root PATH] [--active-package PATH] [--custom-packages P1,P2,...]
  xplib export [--format table|json] [--validate-schema] [--xp-root PATH] [--active-package PATH] [--custom-packages P1,P2,...]

Options:
  --repo PATH               Repository path used for config discovery (default: .)
  --config PATH             Config file path (default: repo .xplib.yml/.xplib.yaml/.xplib.json/.xplib.toml)
  --xp-root PATH            X-Plane installation root (for stock scenery discovery)
  --active-package PATH     Active scenery package, scanned directly for loose assets
  --custom-packages LIST    Comma-separated custom package paths, highest priority first
  --season CHAR             Default season used when a query doesn't override it (default: d)
  --resolve-season CHAR     Season override for a single resolve query
  --seed N                  Deterministic RNG seed for weighted sampling
  --parallel                Ingest custom package manifests concurrently
  --lat N                   Query latitude for resolve
  --lon N                   Query longitude for resolve
  --format table|json       Output format (default: table)
  --validate-schema         Validate the exported index against its JSON Schema
  -h, --help                Show this help text
`

func Usage() string {
	return usage
}
