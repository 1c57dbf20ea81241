package appmessage

// MessageCommand is a number in the header of a message that represents
// which command the message represents
type MessageCommand uint32

// Commands used in message headers which identify the type of message.
const (
	CmdIBDBlocks MessageCommand = iota
	CmdGetBlockRequestMessage
	CmdGetBlockResponseMessage
	CmdSubmitBlockRequestMessage
	CmdSubmitBlockResponseMessage
	CmdSubmitTransactionRequestMessage
	CmdSubmitTransactionResponseMessage
	CmdInvRelayBlock
	CmdInvTransaction
)

// Message is an interface that every protocol and RPC message must implement
type Message interface {
	Command() MessageCommand
}

// baseMessage is the base struct embedded in every Message, reserved for
// fields shared across all message types.
type baseMessage struct{}
