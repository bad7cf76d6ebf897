package lint

import (
	"fmt"

	"sollint/internal/diag"
)

// Config narrows the registered rule set for one run.
type Config struct {
	// MinSeverity drops every lint below it. HasMinSeverity gates it so
	// the zero Config means "no severity floor".
	MinSeverity    diag.Severity
	HasMinSeverity bool

	// Include, when non-empty, whitelists rule ids. Exclude always wins
	// over Include for the same id.
	Include []diag.Code
	Exclude []diag.Code

	// EmitDescriptions asks renderers to append rule descriptions.
	EmitDescriptions bool
}

// validate checks that every referenced rule id exists in the registry.
// Unknown ids are a configuration error that aborts the run before any
// file is processed.
func (c Config) validate(known map[diag.Code]*Lint) error {
	for _, id := range c.Include {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("unknown rule id %q in include list", id)
		}
	}
	for _, id := range c.Exclude {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("unknown rule id %q in exclude list", id)
		}
	}
	return nil
}

// effective computes the active rule set:
// (all if no include list, else the include list) minus the exclude
// list, further filtered by the severity floor.
func (c Config) effective(known map[diag.Code]*Lint) map[diag.Code]bool {
	active := make(map[diag.Code]bool, len(known))
	if len(c.Include) == 0 {
		for id := range known {
			active[id] = true
		}
	} else {
		for _, id := range c.Include {
			active[id] = true
		}
	}
	for _, id := range c.Exclude {
		delete(active, id)
	}
	if c.HasMinSeverity {
		for id := range active {
			if known[id].Severity < c.MinSeverity {
				delete(active, id)
			}
		}
	}
	return active
}
