package blockprocessor

import "github.com/kaspanet/kaspad/infrastructure/logger"

var log = logger.RegisterSubSystem("BDAG")
