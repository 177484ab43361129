package fsmgraph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/fsmgraph/internal/extract"
	"github.com/aretw0/fsmgraph/internal/presentation/graph"
	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/aretw0/fsmgraph/pkg/dsl"
)

// Format selects the diagram output.
type Format = graph.Format

const (
	FormatDOT     = graph.FormatDOT
	FormatMermaid = graph.FormatMermaid
	FormatSVG     = graph.FormatSVG
	FormatPNG     = graph.FormatPNG
)

// ParseFormat validates a format name such as "dot" or "svg".
func ParseFormat(s string) (Format, error) {
	return graph.ParseFormat(s)
}

// Generator turns state machine blocks into diagrams.
// It holds no state between calls and is safe for concurrent use.
type Generator struct {
	tag           string
	format        Format
	legend        bool
	gridThreshold int
	logger        *slog.Logger
}

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithTag sets the macro name that introduces a block (default: "state_machine").
func WithTag(tag string) Option {
	return func(g *Generator) {
		g.tag = tag
	}
}

// WithFormat sets the output format (default: FormatDOT).
func WithFormat(f Format) Option {
	return func(g *Generator) {
		g.format = f
	}
}

// WithLegend toggles the legend cluster in DOT output (default: on).
func WithLegend(enabled bool) Option {
	return func(g *Generator) {
		g.legend = enabled
	}
}

// WithGridThreshold sets the longest label list kept on one line (default: 3).
func WithGridThreshold(n int) Option {
	return func(g *Generator) {
		g.gridThreshold = n
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New creates a Generator.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		tag:           extract.DefaultTag,
		format:        FormatDOT,
		legend:        true,
		gridThreshold: graph.DefaultGridThreshold,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.tag == "" {
		return nil, fmt.Errorf("tag is required")
	}
	format, err := graph.ParseFormat(string(g.format))
	if err != nil {
		return nil, err
	}
	g.format = format
	if g.gridThreshold < 1 {
		return nil, fmt.Errorf("grid threshold must be at least 1, got %d", g.gridThreshold)
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g, nil
}

// Format returns the configured output format.
func (g *Generator) Format() Format {
	return g.format
}

// Diagram is the outcome of one block.
type Diagram struct {
	Block   string       // extractor name, e.g. "state_machine#1"
	Pos     dsl.Position // where the block starts in its host file
	Machine *domain.StateMachineDef
	Format  Format
	Content []byte // empty when the block was only parsed
}

// Name returns the machine name, used as the output file stem.
func (d Diagram) Name() string {
	return d.Machine.Name
}

// FileName returns "<name><ext>" for the diagram format.
func (d Diagram) FileName() string {
	return d.Machine.Name + d.Format.Extension()
}

// BlockError reports a block that could not be parsed or rendered.
type BlockError struct {
	Block string
	Pos   dsl.Position
	Err   error
}

func (e *BlockError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("%s (line %d): %v", e.Block, e.Pos.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Block, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

// Result collects the diagrams of one host file. A failed block does not
// stop its siblings: its *BlockError is appended to Errors instead.
type Result struct {
	Diagrams []Diagram
	Errors   []error
}

// Err joins the block errors, or returns nil when every block succeeded.
func (r *Result) Err() error {
	return errors.Join(r.Errors...)
}

// ParseBlock parses the tokens of one block. name only labels errors.
func (g *Generator) ParseBlock(name string, tokens []dsl.Token) (*domain.StateMachineDef, error) {
	def, err := dsl.Parse(tokens)
	if err != nil {
		return nil, &BlockError{Block: name, Err: err}
	}
	return def, nil
}

// GenerateBlock parses and renders the tokens of one block.
func (g *Generator) GenerateBlock(ctx context.Context, name string, tokens []dsl.Token) (Diagram, error) {
	def, err := g.ParseBlock(name, tokens)
	if err != nil {
		return Diagram{}, err
	}
	content, err := g.Render(ctx, def)
	if err != nil {
		return Diagram{}, &BlockError{Block: name, Err: err}
	}
	return Diagram{Block: name, Machine: def, Format: g.format, Content: content}, nil
}

// Render renders a parsed machine in the configured format.
func (g *Generator) Render(ctx context.Context, def *domain.StateMachineDef) ([]byte, error) {
	model := graph.Build(def,
		graph.WithLogger(g.logger),
		graph.WithLegend(g.legend),
		graph.WithGridThreshold(g.gridThreshold),
	)

	switch g.format {
	case FormatMermaid:
		return []byte(graph.RenderMermaid(model)), nil
	case FormatSVG, FormatPNG:
		return graph.RenderImage(ctx, graph.RenderDOT(model), g.format)
	default:
		return []byte(graph.RenderDOT(model)), nil
	}
}

// GenerateSource extracts, parses and renders every block of a host file.
// It fails as a whole only when src cannot be tokenized or holds no block.
func (g *Generator) GenerateSource(ctx context.Context, src []byte) (*Result, error) {
	return g.process(ctx, src, true)
}

// ParseSource is GenerateSource without rendering.
func (g *Generator) ParseSource(src []byte) (*Result, error) {
	return g.process(context.Background(), src, false)
}

// GenerateFile runs GenerateSource on the file at path.
func (g *Generator) GenerateFile(ctx context.Context, path string) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return g.GenerateSource(ctx, src)
}

// ParseFile runs ParseSource on the file at path.
func (g *Generator) ParseFile(path string) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return g.ParseSource(src)
}

func (g *Generator) process(ctx context.Context, src []byte, render bool) (*Result, error) {
	blocks, err := extract.Extract(src, g.tag)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w (tag %q)", domain.ErrNoBlocks, g.tag)
	}
	g.logger.Debug("Blocks extracted", "tag", g.tag, "count", len(blocks))

	res := &Result{}
	for _, block := range blocks {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		var d Diagram
		if render {
			d, err = g.GenerateBlock(ctx, block.Name, block.Tokens)
		} else {
			var def *domain.StateMachineDef
			def, err = g.ParseBlock(block.Name, block.Tokens)
			d = Diagram{Block: block.Name, Machine: def, Format: g.format}
		}
		if err != nil {
			var be *BlockError
			if errors.As(err, &be) {
				be.Pos = block.Pos
			}
			g.logger.Debug("Block failed", "block", block.Name, "line", block.Pos.Line, "error", err)
			res.Errors = append(res.Errors, err)
			continue
		}

		d.Pos = block.Pos
		g.logger.Debug("Block processed", "block", block.Name, "machine", d.Name())
		res.Diagrams = append(res.Diagrams, d)
	}
	return res, nil
}
