package httperr

import "errors"

// Kind classifies a business error so the API boundary can pick a
// status code without inspecting individual codes.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindConflict          Kind = "conflict"
	KindSlotUnavailable   Kind = "slot_unavailable"
	KindInvalidTransition Kind = "invalid_transition"
	KindNotFound          Kind = "not_found"
)

// BusinessError is an expected domain outcome, not a system fault.
// Message carries the human-readable reason surfaced to clients.
type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func Validation(code, message string) error {
	return BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func Conflict(code, message string) error {
	return BusinessError{Kind: KindConflict, Code: code, Message: message}
}

// SlotUnavailable carries the specific availability reason (closed day,
// holiday, outside hours, staff on leave, slot taken).
func SlotUnavailable(code, reason string) error {
	return BusinessError{Kind: KindSlotUnavailable, Code: code, Message: reason}
}

func InvalidTransition(code, message string) error {
	return BusinessError{Kind: KindInvalidTransition, Code: code, Message: message}
}

func NotFoundErr(code, message string) error {
	return BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

func IsKind(err error, kind Kind) bool {
	if be, ok := AsBusiness(err); ok {
		return be.Kind == kind
	}
	return false
}

func IsCode(err error, code string) bool {
	if be, ok := AsBusiness(err); ok {
		return be.Code == code
	}
	return false
}
