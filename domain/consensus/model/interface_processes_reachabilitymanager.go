package model

import "github.com/kaspanet/kaspad/domain/consensus/model/externalapi"

// ReachabilityManager maintains the reachability tree and answers
// DAG-ancestry queries in time sub-linear in the size of the DAG
type ReachabilityManager interface {
	AddBlock(stagingArea *StagingArea, blockHash *externalapi.DomainHash,
		selectedParent *externalapi.DomainHash, mergeSetParents []*externalapi.DomainHash) error
	IsReachabilityTreeAncestorOf(stagingArea *StagingArea, blockHashA, blockHashB *externalapi.DomainHash) (bool, error)
	IsDAGAncestorOf(stagingArea *StagingArea, blockHashA, blockHashB *externalapi.DomainHash) (bool, error)
	UpdateReindexRoot(stagingArea *StagingArea, selectedTip *externalapi.DomainHash) error
}
