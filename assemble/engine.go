// Package assemble runs the whole assembly pipeline: selection, placement,
// spread recombination, merging and extraction, producing ordered list of
// units ready for packaging.
package assemble

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"obc/catalog"
	"obc/common"
	"obc/config"
	"obc/diag"
	"obc/placement"
	"obc/selection"
	"obc/source"
)

// Sources gives access to source documents of volumes.
type Sources interface {
	Document(vol *catalog.Volume) (*source.Document, error)
}

// AssembledUnit is single output unit.
type AssembledUnit struct {
	Name    string
	Folder  string
	SortKey string
	Body    string
	// Base is source document directory relative references in Body are
	// resolved against.
	Base   string
	Styles []string
	Links  []catalog.LinkRewrite
	// Volume is ID of the volume unit content comes from.
	Volume string
	Class  common.Classification
}

// Result is everything packaging needs.
type Result struct {
	Title      string
	Author     string
	AuthorSort string
	Language   string
	Publisher  string
	Modified   time.Time
	Scope      catalog.ScopeInfo

	Units       []AssembledUnit
	Diagnostics []diag.Diagnostic
	// Documents are source documents by volume ID, resources referenced by
	// units are copied from them.
	Documents map[string]*source.Document
}

type Option func(*Engine)

// WithUnusedReport reports unused fragments of every volume, not only of
// volumes flagged in catalog.
func WithUnusedReport(report bool) Option {
	return func(e *Engine) {
		e.reportUnused = report
	}
}

// Engine is configured once and may be used for several runs.
type Engine struct {
	cfg          config.AssemblyConfig
	sources      Sources
	log          *zap.Logger
	reportUnused bool
	now          func() time.Time
}

func New(cfg config.AssemblyConfig, sources Sources, log *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		cfg:     cfg,
		sources: sources,
		log:     log.Named("assemble"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// job is a unit scheduled for processing with its resolved placement.
type job struct {
	unit *catalog.Unit
	res  placement.Resolution
	doc  *source.Document
}

type outcome struct {
	units []AssembledUnit
	diags []diag.Diagnostic
	used  []string
}

// Run assembles scope of the catalog. Only resolver preparation failure or
// context cancellation return error, all other problems are collected in
// result diagnostics.
func (e *Engine) Run(ctx context.Context, cat *catalog.Catalog, scope common.Scope) (*Result, error) {
	resolver, err := placement.New(e.cfg, cat, scope)
	if err != nil {
		return nil, err
	}

	var (
		diags diag.List
		jobs  []job
		docs  = make(map[*catalog.Volume]*source.Document)
	)
	for _, vol := range cat.Volumes {
		units, err := selection.Select(vol, scope, e.cfg)
		for _, err := range multierr.Errors(err) {
			diags.Add(diag.Diagnostic{Kind: diag.KindCollectionGap, Volume: vol.ID, Err: err})
		}
		if len(units) == 0 {
			continue
		}

		doc, err := e.sources.Document(vol)
		if err != nil {
			diags.Add(diag.Diagnostic{
				Kind:   diag.KindMissingSource,
				Volume: vol.ID,
				Detail: fmt.Sprintf("%d units omitted", len(units)),
				Err:    err,
			})
			continue
		}
		docs[vol] = doc

		for _, u := range units {
			res, ok := resolver.Resolve(u)
			if !ok {
				continue
			}
			jobs = append(jobs, job{unit: u, res: res, doc: doc})
		}
	}

	e.log.Debug("Units scheduled", zap.Int("units", len(jobs)), zap.Int("workers", e.cfg.WorkerCount()))

	outcomes := make([]outcome, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.WorkerCount())
	for i, j := range jobs {
		g.Go(func() error {
			outcomes[i] = e.process(gctx, resolver, j)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var units []AssembledUnit
	used := make(map[string]map[string]bool)
	for i, o := range outcomes {
		units = append(units, o.units...)
		diags.Add(o.diags...)

		vid := jobs[i].unit.VolumeID()
		if used[vid] == nil {
			used[vid] = make(map[string]bool)
		}
		for _, name := range o.used {
			used[vid][name] = true
		}
	}

	units = combine(units)
	diags.Add(order(units)...)

	for _, vol := range cat.Volumes {
		doc, ok := docs[vol]
		if !ok || !(vol.ReportUnused || e.reportUnused) {
			continue
		}
		unused := unusedFragments(doc, used[vol.ID])
		if len(unused) > 0 {
			e.log.Info("Unused fragments", zap.String("volume", vol.ID), zap.Strings("fragments", unused))
		}
		for _, name := range unused {
			diags.Add(diag.Diagnostic{Kind: diag.KindUnusedFragment, Volume: vol.ID, Fragment: name})
		}
	}

	si := cat.ScopeInfo(scope)
	res := &Result{
		Title:       cat.Series.Title,
		Author:      cat.Series.Author,
		AuthorSort:  cat.Series.AuthorSort,
		Language:    cat.Series.Language,
		Publisher:   cat.Series.Publisher,
		Modified:    e.now().UTC().Truncate(time.Second),
		Scope:       si,
		Units:       units,
		Diagnostics: diags.Items(),
		Documents:   make(map[string]*source.Document, len(docs)),
	}
	for vol, doc := range docs {
		res.Documents[vol.ID] = doc
	}
	if len(res.AuthorSort) == 0 {
		res.AuthorSort = res.Author
	}
	e.log.Info("Assembly completed",
		zap.Stringer("scope", scope), zap.Int("units", len(units)), zap.Int("diagnostics", len(res.Diagnostics)))
	return res, nil
}
