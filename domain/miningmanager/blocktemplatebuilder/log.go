package blocktemplatebuilder

import "github.com/kaspanet/kaspad/infrastructure/logger"

var log = logger.RegisterSubSystem("MMPL")
