package assets

import "embed"

// AssetsFS holds the stylesheet, scripts and static images served under
// /assets/. css/output.css is generated by "go run ./cmd/do gen".
//
//go:embed css js images
var AssetsFS embed.FS
