// Package render turns an analysis into pictures.
//
// The [nodelink] subpackage draws the declared dependencies as a Graphviz
// node-link diagram: the project at the top, one node per manifest below
// it, and the packages each manifest declares below that.
//
//	dot := nodelink.ToDOT(result, "octo/hello", nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg).
//
// [nodelink]: github.com/matzehuels/repolens/pkg/render/nodelink
package render
