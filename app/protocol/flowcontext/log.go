package flowcontext

import "github.com/kaspanet/kaspad/infrastructure/logger"

var log = logger.RegisterSubSystem("PROT")
