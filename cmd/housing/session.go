package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spektr-org/housing/engine"
	"github.com/spektr-org/housing/internal/config"
	"github.com/spektr-org/housing/loader"
	"github.com/spektr-org/housing/schema"
)

// session is the widget state of one CLI run: the loaded table, its facet
// options, and the current filter configuration.
type session struct {
	table  *engine.Table
	facets engine.FacetOptions
	preset *config.Config
	cfg    engine.FilterConfig
}

// openSession loads the dataset and seeds widgets from the preset.
// Load failures map to ExitLoadFailure; nothing downstream runs.
func openSession(opts *globalOptions) (*session, error) {
	table, err := loader.Load(opts.dataPath, schema.Housing())
	if err != nil {
		return nil, loadFailure(opts.dataPath, err)
	}

	s := &session{
		table:  table,
		facets: engine.Facets(table),
		preset: opts.preset,
		cfg: engine.FilterConfig{
			PriceThreshold: opts.preset.Price.Default,
			IncomeBand:     opts.preset.Band(),
		},
	}

	// Multiselect default: every label, unless the preset narrows it.
	if len(opts.preset.Proximities) == 0 {
		s.cfg.AllowedProximities = s.facets.Proximities
	} else if err := s.selectOnly(opts.preset.Proximities); err != nil {
		return nil, exitErr(ExitInvalidArgs, "config: %v", err)
	}
	return s, nil
}

func loadFailure(path string, err error) error {
	switch {
	case errors.Is(err, loader.ErrNotFound):
		return exitErr(ExitLoadFailure, "dataset %s not found; place the housing CSV (or housing.csv.zip) there or pass --data", path)
	case errors.Is(err, loader.ErrSchemaMismatch):
		return exitErr(ExitLoadFailure, "dataset %s has the wrong columns: %v", path, err)
	default:
		return exitErr(ExitLoadFailure, "%v", err)
	}
}

// run performs one full recomputation.
func (s *session) run() *engine.Result {
	return engine.Execute(s.table, s.cfg,
		engine.WithBins(s.preset.Bins),
		engine.WithWhisker(s.preset.Whisker),
		engine.WithLogger(slog.Default()),
	)
}

// setPrice snaps v to the slider grid.
func (s *session) setPrice(v float64) error {
	snapped, err := s.preset.Price.Snap(v)
	if err != nil {
		return err
	}
	s.cfg.PriceThreshold = snapped
	return nil
}

func (s *session) setBand(b engine.IncomeBand) {
	s.cfg.IncomeBand = b
}

// selectOnly replaces the proximity selection. Names match table labels
// case-insensitively; an unknown name leaves the selection unchanged.
func (s *session) selectOnly(names []string) error {
	next := engine.FilterConfig{AllowedProximities: make([]string, 0, len(names))}
	for _, name := range names {
		label, err := s.canonical(name)
		if err != nil {
			return err
		}
		if !next.Allows(label) {
			next.AllowedProximities = append(next.AllowedProximities, label)
		}
	}
	s.cfg.AllowedProximities = next.AllowedProximities
	return nil
}

func (s *session) add(name string) error {
	label, err := s.canonical(name)
	if err != nil {
		return err
	}
	if !s.cfg.Allows(label) {
		s.cfg.AllowedProximities = append(s.cfg.AllowedProximities, label)
	}
	return nil
}

func (s *session) drop(name string) error {
	label, err := s.canonical(name)
	if err != nil {
		return err
	}
	kept := s.cfg.AllowedProximities[:0:0]
	for _, p := range s.cfg.AllowedProximities {
		if p != label {
			kept = append(kept, p)
		}
	}
	s.cfg.AllowedProximities = kept
	return nil
}

func (s *session) selectAll() {
	s.cfg.AllowedProximities = s.table.Proximities()
}

func (s *session) selectNone() {
	s.cfg.AllowedProximities = []string{}
}

func (s *session) canonical(name string) (string, error) {
	name = strings.TrimSpace(name)
	for _, label := range s.facets.Proximities {
		if strings.EqualFold(label, name) {
			return label, nil
		}
	}
	return "", fmt.Errorf("unknown ocean proximity %q (have: %s)", name, strings.Join(s.facets.Proximities, ", "))
}

// splitList splits repeated and comma-separated values into one list.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
