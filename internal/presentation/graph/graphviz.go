package graph

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// RenderImage lays out DOT markup with the embedded Graphviz engine and
// returns the encoded image. Only FormatSVG and FormatPNG are accepted.
func RenderImage(ctx context.Context, dot string, format Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, fmt.Errorf("graph: %q is not an image format", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("graph: create graphviz: %w", err)
	}
	defer gv.Close()

	gv.SetLayout(graphviz.DOT)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("graph: parse dot: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("graph: render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
