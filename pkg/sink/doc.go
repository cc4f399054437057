// Package sink provides drawing surfaces and output format renderers for
// arch compositions.
//
// # Overview
//
// Every surface implements [arch.Surface], so a composition is painted the
// same way regardless of where the pixels end up:
//
//   - [Recorder]: in-memory list of filled shapes, for tests and inspection
//   - [SVGSurface]: one <path> element per fill
//   - [RasterSurface]: anti-aliased pixels via github.com/gogpu/gg
//   - [PDFSurface]: a single-page PDF via seehuhn.de/go/pdf
//
// The Render* helpers wrap the surfaces and return encoded bytes:
//
//	svg, stats, err := sink.RenderSVG(comp)
//	png, _, err := sink.RenderPNG(comp, sink.WithScale(2))
//	pdf, _, err := sink.RenderPDF(comp)
//	js, err := sink.RenderJSON(comp)
//
// [RenderJSON] does not paint; it exports the computed geometry of every
// arch so external tools can reproduce the drawing.
//
// # Coordinates
//
// All surfaces take y-down canvas coordinates. The PDF surface mirrors
// them into PDF's y-up user space, including arc angles, so the dome of
// every arch still points up on the page.
//
// [arch.Surface]: github.com/matzehuels/archwall/pkg/arch.Surface
package sink
