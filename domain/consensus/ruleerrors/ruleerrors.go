package ruleerrors

import "fmt"

// ErrorCode identifies a kind of consensus rule violation.
type ErrorCode int

// These constants enumerate every consensus rule violation that can be
// carried on a RuleError.
const (
	ErrorCodeDuplicateBlock ErrorCode = iota
	ErrorCodeKnownInvalid
	ErrorCodeMissingBlockHeaderInIBD
	ErrorCodeNoParents
	ErrorCodeTooManyParents
	ErrorCodeMissingParents
	ErrorCodeInvalidParentsRelation
	ErrorCodeWrongParentsOrder
	ErrorCodeInvalidAncestorBlock
	ErrorCodePrunedBlock
	ErrorCodePruningPointViolation
	ErrorCodeUnexpectedPruningPoint
	ErrorCodeSuggestedPruningViolatesFinality
	ErrorCodeBadPruningPointUTXOSet
	ErrorCodeBadUTXOCommitment
	ErrorCodeBadMerkleRoot
	ErrorCodeNoTransactions
	ErrorCodeFirstTxNotCoinbase
	ErrorCodeMultipleCoinbases
	ErrorCodeBadCoinbaseTransaction
	ErrorCodeBadCoinbasePayloadLen
	ErrorCodeDuplicateTx
	ErrorCodeDuplicateTxInputs
	ErrorCodeNoTxInputs
	ErrorCodeBadTxOutValue
	ErrorCodeDoubleSpendInSameBlock
	ErrorCodeChainedTransactions
	ErrorCodeTransactionsNotSorted
	ErrorCodeUnfinalizedTx
	ErrorCodeImmatureSpend
	ErrorCodeInvalidSubnetwork
	ErrorCodeSubnetworkRegistry
	ErrorCodeInvalidPayload
	ErrorCodeInvalidPayloadHash
	ErrorCodeInvalidGas
	ErrorCodeMissingParentBody
	ErrorCodeBlockSizeTooHigh
	ErrorCodeTimeTooOld
	ErrorCodeUnexpectedDifficulty
	ErrorCodeViolatingMergeLimit
	ErrorCodeBadOrphan
	ErrorCodeOrphanPolicyViolation
	ErrorCodeMissingTxOut
)

// RuleError identifies a violation of one of the consensus validation rules,
// as distinct from a database or other infrastructure failure. Validation
// code that wants to mark a block or transaction invalid (rather than fail
// the call outright) returns one of these.
type RuleError struct {
	ErrorCode ErrorCode
	Message   string
}

func (e RuleError) Error() string {
	return e.Message
}

// Is reports whether target is a RuleError of the same ErrorCode, so that
// errors.Is can match a wrapped RuleError against one of the sentinels below.
func (e RuleError) Is(target error) bool {
	t, ok := target.(RuleError)
	if !ok {
		return false
	}
	return e.ErrorCode == t.ErrorCode
}

// Errorf creates a RuleError carrying the given error code and a formatted message.
func Errorf(code ErrorCode, format string, args ...interface{}) error {
	return RuleError{ErrorCode: code, Message: fmt.Sprintf(format, args...)}
}

// Sentinel RuleErrors. Code that only needs to test the error kind (via
// errors.Is) rather than carry a call-site-specific message uses these directly;
// Errorf above is for call sites that need to include specific detail.
var (
	ErrDuplicateBlock                   = RuleError{ErrorCodeDuplicateBlock, "block already exists"}
	ErrKnownInvalid                     = RuleError{ErrorCodeKnownInvalid, "block is a known invalid block"}
	ErrMissingBlockHeaderInIBD          = RuleError{ErrorCodeMissingBlockHeaderInIBD, "no block header is stored for this block"}
	ErrNoParents                        = RuleError{ErrorCodeNoParents, "block has no parents"}
	ErrTooManyParents                   = RuleError{ErrorCodeTooManyParents, "block has too many parents"}
	ErrMissingParents                   = RuleError{ErrorCodeMissingParents, "block is missing known parents"}
	ErrInvalidParentsRelation           = RuleError{ErrorCodeInvalidParentsRelation, "one of the parents is an ancestor of another parent"}
	ErrWrongParentsOrder                = RuleError{ErrorCodeWrongParentsOrder, "block parent hashes are not ordered"}
	ErrInvalidAncestorBlock             = RuleError{ErrorCodeInvalidAncestorBlock, "block has an invalid ancestor"}
	ErrPrunedBlock                      = RuleError{ErrorCodePrunedBlock, "block is in the past of the pruning point"}
	ErrPruningPointViolation            = RuleError{ErrorCodePruningPointViolation, "block doesn't have the pruning point in its past"}
	ErrUnexpectedPruningPoint           = RuleError{ErrorCodeUnexpectedPruningPoint, "block has an unexpected pruning point"}
	ErrSuggestedPruningViolatesFinality = RuleError{ErrorCodeSuggestedPruningViolatesFinality, "suggested pruning point violates finality"}
	ErrBadPruningPointUTXOSet           = RuleError{ErrorCodeBadPruningPointUTXOSet, "bad pruning point UTXO set"}
	ErrBadUTXOCommitment                = RuleError{ErrorCodeBadUTXOCommitment, "block UTXO commitment doesn't match the calculated one"}
	ErrBadMerkleRoot                    = RuleError{ErrorCodeBadMerkleRoot, "block merkle root doesn't match the transactions it contains"}
	ErrNoTransactions                   = RuleError{ErrorCodeNoTransactions, "block has no transactions"}
	ErrFirstTxNotCoinbase               = RuleError{ErrorCodeFirstTxNotCoinbase, "block's first transaction is not a coinbase transaction"}
	ErrMultipleCoinbases                = RuleError{ErrorCodeMultipleCoinbases, "block contains more than one coinbase transaction"}
	ErrBadCoinbaseTransaction           = RuleError{ErrorCodeBadCoinbaseTransaction, "coinbase transaction is invalid"}
	ErrBadCoinbasePayloadLen            = RuleError{ErrorCodeBadCoinbasePayloadLen, "coinbase transaction payload length is out of range"}
	ErrDuplicateTx                      = RuleError{ErrorCodeDuplicateTx, "block contains a duplicate transaction"}
	ErrDuplicateTxInputs                = RuleError{ErrorCodeDuplicateTxInputs, "transaction spends the same output more than once"}
	ErrNoTxInputs                       = RuleError{ErrorCodeNoTxInputs, "transaction has no inputs"}
	ErrBadTxOutValue                    = RuleError{ErrorCodeBadTxOutValue, "transaction output value is invalid"}
	ErrDoubleSpendInSameBlock           = RuleError{ErrorCodeDoubleSpendInSameBlock, "transaction double spends an output already spent in this block"}
	ErrChainedTransactions              = RuleError{ErrorCodeChainedTransactions, "block contains chained transactions"}
	ErrTransactionsNotSorted            = RuleError{ErrorCodeTransactionsNotSorted, "block transactions are not topologically sorted"}
	ErrUnfinalizedTx                    = RuleError{ErrorCodeUnfinalizedTx, "transaction is not finalized"}
	ErrImmatureSpend                    = RuleError{ErrorCodeImmatureSpend, "one of the transaction inputs spends an immature UTXO"}
	ErrInvalidSubnetwork                = RuleError{ErrorCodeInvalidSubnetwork, "transaction subnetwork is invalid in this context"}
	ErrSubnetworkRegistry               = RuleError{ErrorCodeSubnetworkRegistry, "subnetwork registry transaction is invalid"}
	ErrInvalidPayload                   = RuleError{ErrorCodeInvalidPayload, "transaction payload is invalid"}
	ErrInvalidPayloadHash               = RuleError{ErrorCodeInvalidPayloadHash, "transaction payload hash doesn't match its payload"}
	ErrInvalidGas                       = RuleError{ErrorCodeInvalidGas, "transaction gas is invalid for its subnetwork"}
	ErrMissingParentBody                = RuleError{ErrorCodeMissingParentBody, "block body is missing for one of the parents"}
	ErrBlockSizeTooHigh                 = RuleError{ErrorCodeBlockSizeTooHigh, "block size is higher than the maximum allowed"}
	ErrTimeTooOld                       = RuleError{ErrorCodeTimeTooOld, "block timestamp is too old"}
	ErrUnexpectedDifficulty             = RuleError{ErrorCodeUnexpectedDifficulty, "block difficulty bits are not the expected value"}
	ErrViolatingMergeLimit              = RuleError{ErrorCodeViolatingMergeLimit, "block merge set size violates the merge limit"}
	ErrMissingTxOut                     = RuleError{ErrorCodeMissingTxOut, "transaction spends an unknown UTXO"}
)
