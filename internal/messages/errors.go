package messages

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKind is returned for a node whose ItemType has no builder.
	ErrUnknownKind = errors.New("unknown message item type")
	// ErrMissingReference is returned when a cross-referenced record is absent.
	ErrMissingReference = errors.New("missing referenced record")
)

// LookupError identifies a failed cross-table lookup. Zero ids are omitted
// from the message.
type LookupError struct {
	Table     string
	Key       string
	NodeID    int
	ContactID int
	Err       error
}

func (e *LookupError) Error() string {
	msg := fmt.Sprintf("messages: %s[%s] not found", e.Table, e.Key)
	if e.NodeID != 0 {
		msg += fmt.Sprintf(" (node %d)", e.NodeID)
	}
	if e.ContactID != 0 {
		msg += fmt.Sprintf(" (contact %d)", e.ContactID)
	}
	return msg
}

// Unwrap lets errors.Is match both ErrMissingReference and the store error.
func (e *LookupError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMissingReference}
	}
	return []error{ErrMissingReference, e.Err}
}
