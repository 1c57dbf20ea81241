package flowcontext

import "github.com/kaspanet/kaspad/app/appmessage"

// Broadcaster relays a message to every currently connected peer. It is
// satisfied by the network layer that owns the actual peer connections;
// FlowContext only depends on this narrow interface so it can be driven by a
// fake in tests without a live network.
type Broadcaster interface {
	Broadcast(message appmessage.Message) error
}

// Broadcast relays message to every connected peer through the configured Broadcaster.
// If none was configured (e.g. in a test FlowContext) it's a no-op.
func (f *FlowContext) Broadcast(message appmessage.Message) error {
	if f.broadcaster == nil {
		return nil
	}
	return f.broadcaster.Broadcast(message)
}
