package connection

import "fmt"

// LoopAction is what the session loop does after a connection error.
type LoopAction uint8

const (
	ConnLoopBreak LoopAction = iota
	ConnLoopRetry
	ConnLoopAbnormalClosureRetry
	ConnLoopContinue
)

var loopActionNames = [...]string{
	ConnLoopBreak:                "break",
	ConnLoopRetry:                "retry",
	ConnLoopAbnormalClosureRetry: "await reconnect",
	ConnLoopContinue:             "continue",
}

func (a LoopAction) String() string {
	if int(a) < len(loopActionNames) {
		return loopActionNames[a]
	}
	return "unknown"
}

// ConnErr ends a read or write on a session's connection and keeps the
// websocket error that caused it.
type ConnErr struct {
	action  LoopAction
	session string
	desc    string
	cause   error
}

func NewConnErr(action LoopAction) ConnErr {
	return ConnErr{action: action}
}

func (c ConnErr) AddDesc(desc string) ConnErr {
	c.desc = desc
	return c
}

func (c ConnErr) ForSession(sessionId string) ConnErr {
	c.session = sessionId
	return c
}

func (c ConnErr) Wrap(err error) ConnErr {
	c.cause = err
	return c
}

func (c ConnErr) Error() string {
	msg := fmt.Sprintf("session %s: %s", c.session, c.action)
	if c.desc != "" {
		msg += ": " + c.desc
	}
	if c.cause != nil {
		msg += ": " + c.cause.Error()
	}
	return msg
}

func (c ConnErr) Unwrap() error {
	return c.cause
}

func (c ConnErr) Action() LoopAction {
	return c.action
}
