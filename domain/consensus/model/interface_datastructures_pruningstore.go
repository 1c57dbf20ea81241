package model

import "github.com/kaspanet/kaspad/domain/consensus/model/externalapi"

// PruningStore represents a store for the current pruning state
type PruningStore interface {
	Store
	StagePruningPoint(stagingArea *StagingArea, pruningPointBlockHash *externalapi.DomainHash)
	StagePruningPointUTXOSet(stagingArea *StagingArea, pruningPointUTXOSetBytes []byte)
	StagePruningPointCandidate(stagingArea *StagingArea, candidate *externalapi.DomainHash)
	PruningPointCandidate(dbContext DBReader, stagingArea *StagingArea) (*externalapi.DomainHash, error)
	HasPruningPointCandidate(dbContext DBReader, stagingArea *StagingArea) (bool, error)
	PruningPoint(dbContext DBReader, stagingArea *StagingArea) (*externalapi.DomainHash, error)
	HasPruningPoint(dbContext DBReader, stagingArea *StagingArea) (bool, error)
	PruningPointSerializedUTXOSet(dbContext DBReader, stagingArea *StagingArea) ([]byte, error)
}
