package appmessage

import "github.com/kaspanet/kaspad/domain/consensus/model/externalapi"

// MaxInvPerTxInvMsg is the maximum number of transaction ids a single
// MsgInvTransaction may carry before it must be split across multiple messages.
const MaxInvPerTxInvMsg = 1 << 14

// MsgInvRelayBlock implements the Message interface and represents a kaspa
// inv message advertising a single block hash to peers
type MsgInvRelayBlock struct {
	baseMessage
	Hash *externalapi.DomainHash
}

// Command returns the protocol command string for the message
func (msg *MsgInvRelayBlock) Command() MessageCommand {
	return CmdInvRelayBlock
}

// NewMsgInvBlock returns a new kaspa inv message that advertises a single
// block hash
func NewMsgInvBlock(hash *externalapi.DomainHash) *MsgInvRelayBlock {
	return &MsgInvRelayBlock{Hash: hash}
}

// MsgInvTransaction implements the Message interface and represents a kaspa
// inv message advertising one or more transaction ids to peers
type MsgInvTransaction struct {
	baseMessage
	TxIDs []*externalapi.DomainTransactionID
}

// Command returns the protocol command string for the message
func (msg *MsgInvTransaction) Command() MessageCommand {
	return CmdInvTransaction
}

// NewMsgInvTransaction returns a new kaspa inv message that advertises the
// given transaction ids
func NewMsgInvTransaction(txIDs []*externalapi.DomainTransactionID) *MsgInvTransaction {
	return &MsgInvTransaction{TxIDs: txIDs}
}
