package mempool

import "fmt"

// RejectReason identifies why the mempool refused to accept a transaction.
type RejectReason int

// Reasons a transaction can be rejected from the mempool. These mirror the
// old wire.RejectCode taxonomy but are local to this package since nothing
// outside the mempool needs to serialize them onto the wire.
const (
	RejectInvalid RejectReason = iota
	RejectDuplicate
	RejectNonstandard
	RejectInsufficientFee
	RejectBadOrphan
	RejectImmatureSpend
)

func (r RejectReason) String() string {
	switch r {
	case RejectInvalid:
		return "invalid"
	case RejectDuplicate:
		return "duplicate"
	case RejectNonstandard:
		return "nonstandard"
	case RejectInsufficientFee:
		return "insufficient fee"
	case RejectBadOrphan:
		return "bad orphan"
	case RejectImmatureSpend:
		return "immature spend"
	default:
		return "unknown"
	}
}

// RuleError identifies a transaction that was refused admission into the
// mempool for a policy reason, as opposed to an infrastructure failure.
type RuleError struct {
	RejectReason RejectReason
	Message      string
}

func (e RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.RejectReason, e.Message)
}

// Is reports whether target is a RuleError with the same RejectReason, so
// errors.Is can test the rejection kind of a wrapped RuleError.
func (e RuleError) Is(target error) bool {
	t, ok := target.(RuleError)
	if !ok {
		return false
	}
	return e.RejectReason == t.RejectReason
}

// transactionRuleError creates a RuleError carrying reason and a message.
func transactionRuleError(reason RejectReason, message string) error {
	return RuleError{RejectReason: reason, Message: message}
}

// newRuleError wraps a lower-level consensus rule error as a mempool RuleError,
// preserving its message under RejectInvalid.
func newRuleError(err error) error {
	return RuleError{RejectReason: RejectInvalid, Message: err.Error()}
}
