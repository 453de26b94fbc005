// Package policy holds the ownership decision shared by every enforcement
// layer: the REST handlers, the direct store client, and the repository's
// owner-guarded queries all answer to the same rule.
package policy

type Operation string

const (
	OpRead   Operation = "read"
	OpList   Operation = "list"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

type Decision int

const (
	Deny Decision = iota
	Allow
)

// Decide answers whether callerId may perform op on a note owned by ownerId.
//
// Create is always allowed for an authenticated caller; the owner of the new
// record must be forced to callerId by the writing layer, never taken from
// the request. List is decided per candidate record, which makes the
// query-level owner filter and a per-record re-check interchangeable.
func Decide(op Operation, ownerId, callerId string) Decision {
	if callerId == "" {
		return Deny
	}

	switch op {
	case OpCreate:
		return Allow
	case OpRead, OpList, OpUpdate, OpDelete:
		if ownerId == callerId {
			return Allow
		}
		return Deny
	default:
		return Deny
	}
}
