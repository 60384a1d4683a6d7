package error

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCell         = errors.New("unknown cell type")
	ErrMissingConnector    = errors.New("missing joint connector")
	ErrMalformedDefinition = errors.New("malformed definition")
	ErrPartNotFound        = errors.New("part not found in catalog")
	ErrModuleNotFound      = errors.New("module not found in catalog")
	ErrInvalidPlacement    = errors.New("invalid module placement")
	ErrNoCockpit           = errors.New("no cockpit detected")
	ErrOverBudget          = errors.New("insufficient funds")
	ErrInvalidActions      = errors.New("invalid actions")
	ErrBoutOver            = errors.New("bout is over")
	ErrNoPendingActions    = errors.New("no pending player actions")
	ErrBoutNotExist        = errors.New("bout does not exist")
	ErrSessionNotFound     = errors.New("session not found")
	ErrMechNotExist        = errors.New("mech does not exist")
)

func ErrUnknownCellType(cell rune, key string) error {
	return fmt.Errorf("%w %q in %q", ErrUnknownCell, cell, key)
}

func ErrConnectorNotFound(connector, key string) error {
	return fmt.Errorf("%w: could not find valid %s joint in %q", ErrMissingConnector, connector, key)
}

func ErrDefinitionSections(key string, want, got int) error {
	return fmt.Errorf("%w: %q needs at least %d sections, got %d", ErrMalformedDefinition, key, want, got)
}

func ErrDefinitionPivot(key, pivot string) error {
	return fmt.Errorf("%w: invalid pivot %q in %q", ErrMalformedDefinition, pivot, key)
}

func ErrDefinitionKey(key string) error {
	return fmt.Errorf("%w: unrecognised key prefix %q", ErrMalformedDefinition, key)
}

func ErrDuplicateDefinition(key string) error {
	return fmt.Errorf("%w: %q defined twice", ErrMalformedDefinition, key)
}

func ErrPartNotExist(key string) error {
	return fmt.Errorf("%w: %q", ErrPartNotFound, key)
}

func ErrModuleNotExist(key string) error {
	return fmt.Errorf("%w: %q", ErrModuleNotFound, key)
}

func ErrPlacementRejected(module string, x, y, turns int) error {
	return fmt.Errorf("%w: %q at x: %d\ty: %d\tturns: %d", ErrInvalidPlacement, module, x, y, turns)
}

func ErrPlacementIndex(idx, count int) error {
	return fmt.Errorf("%w: index %d out of range, %d placed", ErrInvalidPlacement, idx, count)
}

func ErrMechNoCockpit() error {
	return fmt.Errorf("%w: at least one cockpit module must be placed", ErrNoCockpit)
}

func ErrMechOverBudget(cost, max int) error {
	return fmt.Errorf("%w: price %d exceeds %d", ErrOverBudget, cost, max)
}

func ErrTooManyActions(kind string, got, max int) error {
	return fmt.Errorf("%w: %d %s submitted, %d available", ErrInvalidActions, got, kind, max)
}

func ErrShieldUnavailable() error {
	return fmt.Errorf("%w: shield enabled without a live shield module", ErrInvalidActions)
}

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("%w: target is not a body cell\tx: %d\ty: %d", ErrInvalidActions, x, y)
}

func ErrBoutFinished(id string) error {
	return fmt.Errorf("%w: %s", ErrBoutOver, id)
}

func ErrActionsNotSubmitted(id string) error {
	return fmt.Errorf("%w: bout %s", ErrNoPendingActions, id)
}

func ErrBoutNotExists(boutUuid string) error {
	return fmt.Errorf("%w: bout with this uuid does not exist, uuid: %s", ErrBoutNotExist, boutUuid)
}

func ErrSessionNotExists(sessionId string) error {
	return fmt.Errorf("%w: session id %s", ErrSessionNotFound, sessionId)
}

func ErrMechNotExists(mechId string) error {
	return fmt.Errorf("%w: mech with this id does not exist, id: %s", ErrMechNotExist, mechId)
}

func ErrNilPayload() error {
	return fmt.Errorf("the payload is nil")
}
