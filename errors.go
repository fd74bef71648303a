package gg

import "fmt"

// BuildError reports a malformed sub-tree the render-tree builder
// skipped rather than aborting on (spec §4.1 Errors, §7): a zero-size
// shape driving an object-bbox paint server, or a cyclic clip/mask
// reference the builder had to break. The rest of the tree is still
// produced.
type BuildError struct {
	NodePath string
	Reason   string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build: %s: %s", e.NodePath, e.Reason)
}

// RenderWarning reports a non-fatal compositor or filter condition
// that still produces a pixel result (spec §4.6 failure semantics,
// §9's legacy filter-input substitution): an out-of-range primitive
// parameter, a skipped empty filter region, a legacy input name
// substituted with SourceGraphic.
type RenderWarning struct {
	NodePath      string
	PrimitiveName string
	Reason        string
}

func (e *RenderWarning) Error() string {
	if e.PrimitiveName != "" {
		return fmt.Sprintf("render: %s: %s: %s", e.NodePath, e.PrimitiveName, e.Reason)
	}
	return fmt.Sprintf("render: %s: %s", e.NodePath, e.Reason)
}

// ResourceError reports an unrecoverable allocation failure (spec
// §4.6: "the caller's canvas is cleared on unrecoverable filter
// errors, for example out-of-memory when allocating an intermediate
// pixmap"). BuildError and RenderWarning make Status report a degraded
// result; a ResourceError makes it report a failed one.
type ResourceError struct {
	Reason string
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("resource: %s", e.Reason)
}

// Status summarizes a render call's outcome for the caller (spec §7:
// "the public entry point always returns a fully populated pixmap...
// and a status code").
type Status uint8

const (
	StatusOK Status = iota
	StatusDegraded
	StatusFailed
)

// Diagnostics accumulates warnings across one build-then-render call
// and reports the resulting status: OK if empty, Degraded if only
// BuildError/RenderWarning occurred, Failed if a ResourceError did.
type Diagnostics struct {
	Warnings []error
}

// Add appends a diagnostic and logs it at the level its taxonomy
// implies (§9's "Global logging" design note), using the package's
// shared logger so callers never need to pass one through.
func (d *Diagnostics) Add(err error) {
	if err == nil {
		return
	}
	d.Warnings = append(d.Warnings, err)
	switch err.(type) {
	case *BuildError:
		Logger().Info(err.Error())
	case *RenderWarning:
		Logger().Warn(err.Error())
	case *ResourceError:
		Logger().Error(err.Error())
	default:
		Logger().Warn(err.Error())
	}
}

// Status computes the aggregate status from the diagnostics
// collected so far.
func (d *Diagnostics) Status() Status {
	status := StatusOK
	for _, w := range d.Warnings {
		if _, ok := w.(*ResourceError); ok {
			return StatusFailed
		}
		status = StatusDegraded
	}
	return status
}
