// Package rules holds the built-in lint rule implementations, grouped
// into passes and registered through DefaultRegistry.
package rules

import (
	"sollint/internal/lint"
)

// DefaultRegistry builds the registry with every built-in rule. The
// only error source is a duplicate rule id, which is a programming
// error in this package.
func DefaultRegistry() (*lint.Registry, error) {
	r := lint.NewRegistry()
	early := []lint.EarlyFactory{
		func() lint.EarlyPass { return newNamingPass() },
		func() lint.EarlyPass { return &constNamingPass{} },
		func() lint.EarlyPass { return &structNamingPass{} },
		func() lint.EarlyPass { return newUnusedImportPass() },
		func() lint.EarlyPass { return &incorrectShiftPass{} },
	}
	for _, f := range early {
		if err := r.RegisterEarly(f); err != nil {
			return nil, err
		}
	}
	late := []lint.LateFactory{
		func() lint.LatePass { return &asmKeccakPass{} },
		func() lint.LatePass { return &divideBeforeMultiplyPass{} },
		func() lint.LatePass { return &uncheckedCallPass{} },
	}
	for _, f := range late {
		if err := r.RegisterLate(f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry is DefaultRegistry for main wiring, panicking on the
// programming-error case.
func MustRegistry() *lint.Registry {
	r, err := DefaultRegistry()
	if err != nil {
		panic(err)
	}
	return r
}
