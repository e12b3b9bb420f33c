// Package scripts embeds the bundled Risor fit-test scripts.
package scripts

import "embed"

// FS holds demo.risor and sequence.risor.
//
//go:embed *.risor
var FS embed.FS
