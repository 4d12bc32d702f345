// Package driver runs a generation: it loads the configured contracts, hands
// the merged document to each target's generator and writes or checks the
// resulting files.
package driver

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/contractgen/config"
	"github.com/teranos/contractgen/contract"
	"github.com/teranos/contractgen/errors"
	"github.com/teranos/contractgen/logger"
	"github.com/teranos/contractgen/typegen"
	"github.com/teranos/contractgen/typegen/util"
)

// Driver runs generation and drift checks for one configuration.
type Driver struct {
	cfg    *config.Config
	clock  typegen.Clock
	stdout io.Writer
	log    *zap.SugaredLogger
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock sets the clock used for generation timestamps.
func WithClock(clock typegen.Clock) Option {
	return func(d *Driver) {
		d.clock = clock
	}
}

// WithStdout sets where per-file progress lines are printed. Progress is
// discarded by default.
func WithStdout(w io.Writer) Option {
	return func(d *Driver) {
		d.stdout = w
	}
}

// New creates a driver for cfg.
func New(cfg *config.Config, opts ...Option) *Driver {
	d := &Driver{
		cfg:    cfg,
		clock:  time.Now,
		stdout: io.Discard,
		log:    logger.ComponentLogger("driver"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FileResult describes one written file.
type FileResult struct {
	Path    string `json:"path"`
	Target  string `json:"target"`
	Bytes   int    `json:"bytes"`
	Summary string `json:"summary,omitempty"`
}

// Summary reports what a generation run produced.
type Summary struct {
	RunID         string       `json:"run_id"`
	Types         int          `json:"types"`
	Endpoints     int          `json:"endpoints"`
	AuthEndpoints int          `json:"auth_endpoints"`
	Files         []FileResult `json:"files"`
	DurationMS    int64        `json:"duration_ms"`
}

// Load parses every configured contract file and merges them in order.
// Missing files are skipped with a warning; ErrNoContracts is returned when
// none could be read.
func (d *Driver) Load(ctx context.Context) (*contract.Document, error) {
	files := d.cfg.ContractFiles()
	doc := &contract.Document{Types: []contract.Type{}, Endpoints: []contract.Endpoint{}}
	loaded := 0

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "contract loading cancelled")
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			d.log.Warnw("Contract file not found, skipping", logger.FieldFile, path)
			continue
		}

		parsed, err := contract.ParseFile(path)
		if err != nil {
			return nil, err
		}
		d.log.Debugw("Parsed contract",
			logger.FieldFile, path,
			logger.FieldTypes, len(parsed.Types),
			logger.FieldEndpoints, len(parsed.Endpoints),
		)
		doc.Merge(parsed)
		loaded++
	}

	if loaded == 0 {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrNoContracts, "looked for %s", strings.Join(files, ", ")),
			"set contracts.files in contractgen.toml or run `contractgen init`")
	}

	d.report(doc)
	return doc, nil
}

// report logs skipped lines and dangling type names. Neither blocks
// generation; strict mode only raises their level.
func (d *Driver) report(doc *contract.Document) {
	logf := d.log.Debugw
	if d.cfg.Parser.Strict {
		logf = d.log.Warnw
	}

	for _, diag := range doc.Diagnostics {
		logf("Skipped contract line: "+diag.Message,
			logger.FieldFile, diag.Source.File,
			logger.FieldLine, diag.Source.Line,
			logger.FieldText, diag.Text,
		)
	}
	for _, ref := range doc.DanglingReferences(util.IsPrimitive) {
		logf("Undeclared type referenced",
			logger.FieldContract, ref.From,
			"type", ref.Name,
			logger.FieldFile, ref.Source.File,
			logger.FieldLine, ref.Source.Line,
		)
	}
}

// render runs each target's generator in memory.
func (d *Driver) render(ctx context.Context, doc *contract.Document, targets []Target) ([]typegen.Artifact, error) {
	opts := typegen.NewOptions(d.clock)

	var artifacts []typegen.Artifact
	for _, t := range expandTargets(targets) {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "generation cancelled")
		}
		gen, err := newGenerator(d.cfg, t)
		if err != nil {
			return nil, err
		}
		out, err := gen.Generate(doc, opts)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to generate %s", t)
		}
		artifacts = append(artifacts, out...)
	}
	return artifacts, nil
}

// Generate loads the contracts, renders the targets (all when none are
// given) and writes every file. A write failure aborts the run.
func (d *Driver) Generate(ctx context.Context, targets ...Target) (*Summary, error) {
	start := time.Now()
	runID := uuid.New().String()
	log := logger.ChildLogger(d.log, logger.FieldRunID, runID)

	doc, err := d.Load(ctx)
	if err != nil {
		return nil, err
	}

	artifacts, err := d.render(ctx, doc, targets)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:         runID,
		Types:         len(doc.Types),
		Endpoints:     len(doc.Endpoints),
		AuthEndpoints: doc.AuthEndpoints(),
		Files:         make([]FileResult, 0, len(artifacts)),
	}

	for _, a := range artifacts {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "generation cancelled")
		}
		if err := typegen.WriteArtifact(a); err != nil {
			return nil, err
		}
		log.Debugw("Wrote file",
			logger.FieldTarget, a.Target,
			logger.FieldPath, a.Path,
			logger.FieldBytes, len(a.Content),
		)
		fmt.Fprintf(d.stdout, "✓ Generated %s (%s)\n", a.Path, a.Summary)
		summary.Files = append(summary.Files, FileResult{
			Path:    a.Path,
			Target:  a.Target,
			Bytes:   len(a.Content),
			Summary: a.Summary,
		})
	}

	summary.DurationMS = time.Since(start).Milliseconds()
	log.Infow("Generation complete",
		logger.FieldTypes, summary.Types,
		logger.FieldEndpoints, summary.Endpoints,
		logger.FieldCount, len(summary.Files),
		logger.FieldDurationMS, summary.DurationMS,
	)
	return summary, nil
}

// Check renders the targets in memory and compares them with the files on
// disk. The returned error wraps ErrOutOfDate when anything differs.
func (d *Driver) Check(ctx context.Context, targets ...Target) (*typegen.CheckResult, error) {
	doc, err := d.Load(ctx)
	if err != nil {
		return nil, err
	}

	artifacts, err := d.render(ctx, doc, targets)
	if err != nil {
		return nil, err
	}

	result := typegen.CompareArtifacts(artifacts)
	if !result.UpToDate {
		return result, errors.WithHint(
			errors.Wrapf(errors.ErrOutOfDate, "%d of %d files differ", len(result.Differences), result.Checked),
			"run `contractgen all` to regenerate")
	}
	return result, nil
}
