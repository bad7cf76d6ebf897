package lint

import (
	"fmt"
	"sort"

	"sollint/internal/ast"
	"sollint/internal/diag"
	"sollint/internal/hir"
)

// EarlyFactory builds a fresh early pass instance. A new instance is
// created per file so passes may keep per-file state.
type EarlyFactory func() EarlyPass

// LateFactory builds a fresh late pass instance.
type LateFactory func() LatePass

type earlyEntry struct {
	factory EarlyFactory
	lints   []*Lint
	kinds   []ast.NodeKind
}

type lateEntry struct {
	factory LateFactory
	lints   []*Lint
	kinds   []hir.EntityKind
}

// Registry holds every known rule grouped into passes. Registration
// order is preserved and decides dispatch order within a node kind.
type Registry struct {
	lints map[diag.Code]*Lint
	early []earlyEntry
	late  []lateEntry
}

func NewRegistry() *Registry {
	return &Registry{lints: make(map[diag.Code]*Lint)}
}

// RegisterEarly adds a syntax-level pass. The factory is invoked once
// to discover the pass's lints and subscribed node kinds; those must
// be stable across instances.
func (r *Registry) RegisterEarly(factory EarlyFactory) error {
	probe := factory()
	lints := probe.Lints()
	if err := r.addLints(lints); err != nil {
		return err
	}
	r.early = append(r.early, earlyEntry{factory: factory, lints: lints, kinds: probe.Kinds()})
	return nil
}

// RegisterLate adds a semantic-level pass.
func (r *Registry) RegisterLate(factory LateFactory) error {
	probe := factory()
	lints := probe.Lints()
	if err := r.addLints(lints); err != nil {
		return err
	}
	r.late = append(r.late, lateEntry{factory: factory, lints: lints, kinds: probe.Entities()})
	return nil
}

func (r *Registry) addLints(lints []*Lint) error {
	for _, l := range lints {
		if l.ID == "" {
			return fmt.Errorf("rule with empty id")
		}
		if prev, ok := r.lints[l.ID]; ok {
			return fmt.Errorf("duplicate rule id %q (already registered with severity %s)", l.ID, prev.Severity)
		}
	}
	for _, l := range lints {
		r.lints[l.ID] = l
	}
	return nil
}

// Lint returns the metadata for id, or nil.
func (r *Registry) Lint(id diag.Code) *Lint {
	return r.lints[id]
}

// Lints returns all registered lints sorted by id.
func (r *Registry) Lints() []*Lint {
	out := make([]*Lint, 0, len(r.lints))
	for _, l := range r.lints {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RunSet is a registry narrowed by a Config, ready to drive files.
// Building it validates the config once so per-file work never fails
// on configuration.
type RunSet struct {
	registry *Registry
	active   map[diag.Code]bool

	// Dispatch tables: for each node/entity kind, the indices of the
	// pass entries subscribed to it, in registration order. Built only
	// from passes that have at least one active lint.
	earlyByKind [ast.NumNodeKinds][]int
	lateByKind  [hir.NumEntityKinds][]int

	earlyPasses []int
	latePasses  []int
}

// Finalize validates cfg against the registry and computes the active
// rule set and dispatch tables.
func (r *Registry) Finalize(cfg Config) (*RunSet, error) {
	if err := cfg.validate(r.lints); err != nil {
		return nil, err
	}
	rs := &RunSet{registry: r, active: cfg.effective(r.lints)}
	for i, e := range r.early {
		if !anyActive(e.lints, rs.active) {
			continue
		}
		rs.earlyPasses = append(rs.earlyPasses, i)
		for _, k := range e.kinds {
			rs.earlyByKind[k] = append(rs.earlyByKind[k], i)
		}
	}
	for i, e := range r.late {
		if !anyActive(e.lints, rs.active) {
			continue
		}
		rs.latePasses = append(rs.latePasses, i)
		for _, k := range e.kinds {
			rs.lateByKind[k] = append(rs.lateByKind[k], i)
		}
	}
	return rs, nil
}

func anyActive(lints []*Lint, active map[diag.Code]bool) bool {
	for _, l := range lints {
		if active[l.ID] {
			return true
		}
	}
	return false
}

// Active reports whether the rule id survived config filtering.
func (rs *RunSet) Active(id diag.Code) bool { return rs.active[id] }

// ActiveSet returns the active rule ids as a set for Context wiring.
func (rs *RunSet) ActiveSet() map[diag.Code]bool { return rs.active }

// HasLatePasses reports whether any semantic pass survived filtering,
// letting the driver skip lowering entirely when none did.
func (rs *RunSet) HasLatePasses() bool { return len(rs.latePasses) > 0 }

// newEarly instantiates fresh early passes for one file, indexed the
// same way as the dispatch tables.
func (rs *RunSet) newEarly() map[int]EarlyPass {
	out := make(map[int]EarlyPass, len(rs.earlyPasses))
	for _, i := range rs.earlyPasses {
		out[i] = rs.registry.early[i].factory()
	}
	return out
}

func (rs *RunSet) newLate() map[int]LatePass {
	out := make(map[int]LatePass, len(rs.latePasses))
	for _, i := range rs.latePasses {
		out[i] = rs.registry.late[i].factory()
	}
	return out
}
