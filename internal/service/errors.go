package service

// Typed domain errors. Handlers discriminate them with errors.As to pick the
// HTTP status: ValidationError → 422, InvalidStateError → 409,
// PrecisionError → 500. Every rejection leaves state untouched — callers may
// correct the request and retry.

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError: the caller supplied a negative or malformed value, or an
// empty required field. Recoverable by resubmitting a corrected request.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidStateError: the caller attempted to mutate an aggregate whose
// lifecycle no longer permits it (e.g. a closed register session).
type InvalidStateError struct {
	Msg string
}

func (e *InvalidStateError) Error() string { return e.Msg }

func invalidStatef(format string, args ...interface{}) error {
	return &InvalidStateError{Msg: fmt.Sprintf(format, args...)}
}

// PrecisionError reports that a float64 shadow accumulation drifted from the
// decimal result beyond precisionEpsilon. All balances are computed in
// decimal; the shadow sum only exists to detect this class of defect.
type PrecisionError struct {
	Decimal decimal.Decimal
	Float   float64
}

func (e *PrecisionError) Error() string {
	return fmt.Sprintf("desvío de precisión aritmética: decimal=%s float=%f", e.Decimal, e.Float)
}

// precisionEpsilon is half a cent.
var precisionEpsilon = decimal.New(5, -3)
