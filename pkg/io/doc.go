// Package io reads and writes arch compositions as TOML or JSON files.
//
// # File Format
//
// Both encodings share one schema. In TOML:
//
//	name = "lewitt"
//
//	[canvas]
//	width = 600
//	height = 800
//	background = "#ffffff"
//
//	[[arch]]
//	name = "blue"
//	width = 520
//	height = 760
//	offset = 0
//	color = "#2096CE"
//
// The JSON form uses the same keys with "arch" as an array of objects.
//
// Colors are strings understood by [arch.ParseColor]: "#rgb", "#rrggbb",
// "#rrggbbaa" or an SVG color name. A missing canvas width or height
// defaults to 600×800. Arches keep the order in which they appear in the
// file, which is their paint order.
//
// # Import and Export
//
// [ImportFile] picks the decoder from the file extension (.toml or .json);
// [ReadTOML] and [ReadJSON] decode from any io.Reader. [ExportFile],
// [WriteTOML] and [WriteJSON] are the inverse.
//
// Decoded compositions are validated with [arch.Composition.Validate], so
// an empty arch list or a bad canvas is rejected at load time. Degenerate
// arches (zero width, negative height) load fine and are skipped when
// painting.
//
// [arch.ParseColor]: github.com/matzehuels/archwall/pkg/arch.ParseColor
// [arch.Composition.Validate]: github.com/matzehuels/archwall/pkg/arch.Composition.Validate
package io
