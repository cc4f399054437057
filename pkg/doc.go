// Package pkg holds the archwall libraries.
//
// archwall paints compositions of nested arches (a rectangle capped by a
// semicircle) in the manner of Sol LeWitt's wall drawings. The packages
// split into:
//
//  1. [arch] - Geometry, paint order and the drawing surface contract
//  2. [sink] - Surfaces and encoders: SVG, PNG, PDF, JSON, in-memory
//  3. [io] - TOML and JSON composition files
//  4. [pipeline] - Load → render with caching, shared by CLI and server
//  5. [cache], [observability], [errors], [buildinfo] - Infrastructure
//
// # Data Flow
//
//	composition file (TOML/JSON)
//	         ↓
//	    [io] package (decode + validate)
//	         ↓
//	    [arch] package (geometry + z-order)
//	         ↓
//	    [sink] package (surface)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	comp := arch.Reference()
//	svg, stats, err := sink.RenderSVG(comp)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(stats.Painted, "arches painted")
//	os.WriteFile("lewitt.svg", svg, 0o644)
//
// [arch]: github.com/matzehuels/archwall/pkg/arch
// [sink]: github.com/matzehuels/archwall/pkg/sink
// [io]: github.com/matzehuels/archwall/pkg/io
// [pipeline]: github.com/matzehuels/archwall/pkg/pipeline
// [cache]: github.com/matzehuels/archwall/pkg/cache
// [observability]: github.com/matzehuels/archwall/pkg/observability
// [errors]: github.com/matzehuels/archwall/pkg/errors
// [buildinfo]: github.com/matzehuels/archwall/pkg/buildinfo
package pkg
