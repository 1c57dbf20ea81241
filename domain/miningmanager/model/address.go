package model

import "github.com/kaspanet/kaspad/util"

// DomainAddress is the payment address a block template's coinbase
// transaction pays its reward to. It is the same address abstraction used
// throughout the wallet and RPC layers.
type DomainAddress = util.Address
