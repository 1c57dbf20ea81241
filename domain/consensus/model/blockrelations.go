package model

import "github.com/kaspanet/kaspad/domain/consensus/model/externalapi"

// BlockRelations holds a block's direct parents and children in the DAG
type BlockRelations struct {
	Parents  []*externalapi.DomainHash
	Children []*externalapi.DomainHash
}

// NewBlockRelations creates a new instance of BlockRelations
func NewBlockRelations(parents, children []*externalapi.DomainHash) *BlockRelations {
	return &BlockRelations{Parents: parents, Children: children}
}

// Clone returns a clone of BlockRelations
func (br *BlockRelations) Clone() *BlockRelations {
	if br == nil {
		return nil
	}
	return &BlockRelations{
		Parents:  externalapi.CloneHashes(br.Parents),
		Children: externalapi.CloneHashes(br.Children),
	}
}
