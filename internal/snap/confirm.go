package snap

// Confirmer is the port through which destructive operations request user
// confirmation. The core never performs terminal I/O itself; the CLI boundary
// supplies an implementation (or an always-yes one for -y).
type Confirmer interface {
	// Confirm presents a human-readable summary of what is about to happen
	// and returns whether to proceed.
	Confirm(summary string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(summary string) (bool, error)

func (f ConfirmFunc) Confirm(summary string) (bool, error) { return f(summary) }

// AutoConfirm always answers yes.
var AutoConfirm = ConfirmFunc(func(string) (bool, error) { return true, nil })
