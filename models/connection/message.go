package connection

import (
	"errors"

	cerr "github.com/saeidalz13/mech-backend/internal/error"
)

type NoPayload bool

type Message[T any] struct {
	Code    uint8    `json:"code"`
	Payload T        `json:"payload,omitempty"`
	Error   *RespErr `json:"error,omitempty"`
}

func NewMessage[T any](code uint8) Message[T] {
	return Message[T]{Code: code}
}

func (m *Message[T]) AddPayload(payload T) {
	m.Payload = payload
}

func (m *Message[T]) AddError(errorDetails, message string) {
	m.Error = NewRespErr(errorDetails, message)
}

// AddDomainError fills the error with the err text and a short reason
// the client can switch on.
func (m *Message[T]) AddDomainError(err error) {
	m.Error = NewRespErr(err.Error(), Reason(err))
}

var reasons = []struct {
	target error
	reason string
}{
	{cerr.ErrNoCockpit, "NoCockpit"},
	{cerr.ErrOverBudget, "OverBudget"},
	{cerr.ErrInvalidPlacement, "InvalidPlacement"},
	{cerr.ErrPartNotFound, "PartNotFound"},
	{cerr.ErrModuleNotFound, "ModuleNotFound"},
	{cerr.ErrInvalidActions, "InvalidActions"},
	{cerr.ErrBoutOver, "BoutOver"},
	{cerr.ErrNoPendingActions, "NoPendingActions"},
	{cerr.ErrBoutNotExist, "BoutNotExist"},
	{cerr.ErrMechNotExist, "MechNotExist"},
}

func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.target) {
			return r.reason
		}
	}
	return "Internal"
}
