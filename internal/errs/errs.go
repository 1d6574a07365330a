// Package errs implements the error taxonomy shared by the hss and sst
// packages: a small set of internally distinguishable failure kinds
// that collapse to one opaque error at the public API boundary.
//
// The Error interface shape (error + Locked() + Inner()) is grounded on
// bwesterb-go-xmssmt's context.go Error/errorImpl pair; "Locked" there
// flags a file-locking failure, which has no equivalent here (this
// library does no I/O), so it always reports false. HSS parameter list
// validation, where more than one level can be invalid at once,
// accumulates with hashicorp/go-multierror instead of returning only
// the first failure; the SST JoinSST input checks return the first
// failure they hit.
package errs

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Kind distinguishes failure reasons for logging; callers across the
// API boundary only ever see the opaque error.
type Kind int

const (
	Parse Kind = iota
	ParamMismatch
	Exhausted
	CallbackFailure
	AuxInvalid
	FastVerifyMisuse
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "parse"
	case ParamMismatch:
		return "param_mismatch"
	case Exhausted:
		return "exhausted"
	case CallbackFailure:
		return "callback_failure"
	case AuxInvalid:
		return "aux_invalid"
	case FastVerifyMisuse:
		return "fast_verify_misuse"
	default:
		return "unknown"
	}
}

// Error is the interface every error this package returns satisfies.
type Error interface {
	error
	Locked() bool // always false; no error here is ever caused by file locking
	Inner() error
	Kind() Kind
}

type errorImpl struct {
	kind  Kind
	msg   string
	inner error
}

func (e *errorImpl) Error() string {
	if e.inner != nil {
		return fmt.Sprintf("hbslms: %s: %s: %s", e.kind, e.msg, e.inner.Error())
	}
	return fmt.Sprintf("hbslms: %s: %s", e.kind, e.msg)
}

func (e *errorImpl) Locked() bool { return false }
func (e *errorImpl) Inner() error { return e.inner }
func (e *errorImpl) Kind() Kind   { return e.kind }

// New returns a new Error of the given kind.
func New(kind Kind, msg string) Error {
	return &errorImpl{kind: kind, msg: msg}
}

// Wrap returns a new Error of the given kind wrapping inner.
func Wrap(kind Kind, msg string, inner error) Error {
	return &errorImpl{kind: kind, msg: msg, inner: inner}
}

// KindOf reports the Kind of err, or false if err was not produced by
// this package.
func KindOf(err error) (Kind, bool) {
	if e, ok := err.(Error); ok {
		return e.Kind(), true
	}
	return 0, false
}

// Accumulator collects independent validation failures of the same
// kind (e.g. one HSS parameter list entry per level) and reports them
// together instead of stopping at the first.
type Accumulator struct {
	kind Kind
	err  *multierror.Error
}

// NewAccumulator returns an Accumulator that will tag any accumulated
// failure as kind once Err is called.
func NewAccumulator(kind Kind) *Accumulator {
	return &Accumulator{kind: kind}
}

// Add records a failure. A nil err is a no-op.
func (a *Accumulator) Add(err error) {
	if err == nil {
		return
	}
	a.err = multierror.Append(a.err, err)
}

// Err returns nil if nothing was added, otherwise an Error of the
// accumulator's kind wrapping every accumulated failure.
func (a *Accumulator) Err(msg string) error {
	if a.err == nil {
		return nil
	}
	return Wrap(a.kind, msg, a.err.ErrorOrNil())
}
