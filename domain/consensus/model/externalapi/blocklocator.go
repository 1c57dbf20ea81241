package externalapi

// BlockLocator is used to help locate a specific block. The algorithm for
// building the block locator is to add the selected parent chain back
// exponentially further, allowing a peer to find a common ancestor
// efficiently.
type BlockLocator []*DomainHash
