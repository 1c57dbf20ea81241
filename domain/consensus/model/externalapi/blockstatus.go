package externalapi

// BlockStatus represents the validation state of a block in the DAG
type BlockStatus byte

// All supported block statuses
const (
	StatusInvalid BlockStatus = iota
	StatusHeaderOnly
	StatusUTXOPendingVerification
	StatusUTXOValid
	StatusUTXOValidOrDisqualified
	StatusDisqualifiedFromChain
)

var blockStatusStrings = map[BlockStatus]string{
	StatusInvalid:                 "StatusInvalid",
	StatusHeaderOnly:              "StatusHeaderOnly",
	StatusUTXOPendingVerification: "StatusUTXOPendingVerification",
	StatusUTXOValid:               "StatusUTXOValid",
	StatusUTXOValidOrDisqualified: "StatusUTXOValidOrDisqualified",
	StatusDisqualifiedFromChain:   "StatusDisqualifiedFromChain",
}

func (s BlockStatus) String() string {
	if str, ok := blockStatusStrings[s]; ok {
		return str
	}
	return "StatusUnknown"
}

// HasBlockBody returns whether the block status implies that the block body is stored
func (s BlockStatus) HasBlockBody() bool {
	switch s {
	case StatusUTXOPendingVerification, StatusUTXOValid, StatusUTXOValidOrDisqualified, StatusDisqualifiedFromChain:
		return true
	default:
		return false
	}
}

// IsInvalid returns whether the block is known to be invalid
func (s BlockStatus) IsInvalid() bool {
	return s == StatusInvalid
}
