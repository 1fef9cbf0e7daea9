// Package nodelink renders an analysis as a node-link dependency diagram.
//
// # Usage
//
// Convert a result to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(res, "octo/hello", nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The graph is laid out top to bottom (rankdir=TB). The project is the
// root, each dependency file is a child of the project, and each package
// is a child of every file that declares it. Edge style encodes the
// dependency type: solid for production, dashed for dev, dotted for peer
// and optional.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
