package calc

import "time"

type CommandType string

const (
	CmdAdd      CommandType = "add"
	CmdMultiply CommandType = "multiply"
	CmdReset    CommandType = "reset"
)

type Command interface {
	Type() CommandType
	SessionID() string
	ReceivedAt() time.Time
}

type AddCommand struct {
	At      time.Time
	Session string
	Value   float64
}

func (c AddCommand) Type() CommandType     { return CmdAdd }
func (c AddCommand) SessionID() string     { return c.Session }
func (c AddCommand) ReceivedAt() time.Time { return c.At }

type MultiplyCommand struct {
	At      time.Time
	Session string
	Value   float64
}

func (c MultiplyCommand) Type() CommandType     { return CmdMultiply }
func (c MultiplyCommand) SessionID() string     { return c.Session }
func (c MultiplyCommand) ReceivedAt() time.Time { return c.At }

type ResetCommand struct {
	At      time.Time
	Session string
}

func (c ResetCommand) Type() CommandType     { return CmdReset }
func (c ResetCommand) SessionID() string     { return c.Session }
func (c ResetCommand) ReceivedAt() time.Time { return c.At }
