package model

import "github.com/kaspanet/kaspad/domain/consensus/model/externalapi"

// BlockStatusStore represents a store of externalapi.BlockStatus
type BlockStatusStore interface {
	Store
	Stage(stagingArea *StagingArea, blockHash *externalapi.DomainHash, status externalapi.BlockStatus)
	IsStaged(stagingArea *StagingArea) bool
	Exists(dbContext DBReader, stagingArea *StagingArea, blockHash *externalapi.DomainHash) bool
	Get(dbContext DBReader, stagingArea *StagingArea, blockHash *externalapi.DomainHash) (externalapi.BlockStatus, error)
}
