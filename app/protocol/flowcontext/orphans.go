package flowcontext

import (
	"math/rand"
	"sync"

	"github.com/kaspanet/kaspad/domain/consensus/model/externalapi"
	"github.com/kaspanet/kaspad/domain/consensus/utils/consensushashing"
)

// defaultMaxOrphans bounds how many not-yet-connectable blocks are kept
// around waiting for their parents to arrive.
const defaultMaxOrphans = 600

// OrphanRootsOutput classifies the result of a GetOrphanRoots lookup.
type OrphanRootsOutput int

// The possible outcomes of looking up an orphan's roots.
const (
	OrphanRootsOutputRoots OrphanRootsOutput = iota
	OrphanRootsOutputNoRoots
	OrphanRootsOutputNotOrphan
	OrphanRootsOutputUnknown
)

type orphanBlock struct {
	block    *externalapi.DomainBlock
	children map[externalapi.DomainHash]struct{}
}

// orphanBlocksPool holds blocks whose parents are not yet known to consensus.
// Once a missing parent is accepted, unorphanBlocks walks the pool's
// parent/child bookkeeping to accept every descendant that becomes
// processable as a result, in order.
type orphanBlocksPool struct {
	mtx        sync.Mutex
	orphans    map[externalapi.DomainHash]*orphanBlock
	order      []externalapi.DomainHash
	maxOrphans int
}

func newOrphanBlocksPool(maxOrphans int) *orphanBlocksPool {
	return &orphanBlocksPool{
		orphans:    make(map[externalapi.DomainHash]*orphanBlock),
		maxOrphans: maxOrphans,
	}
}

// unorphaningResult pairs a block that was unorphaned with the consensus
// result of inserting it.
type unorphaningResult struct {
	block                *externalapi.DomainBlock
	blockInsertionResult *externalapi.BlockInsertionResult
}

func (p *orphanBlocksPool) add(block *externalapi.DomainBlock) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	hash := consensushashing.BlockHash(block)
	if _, ok := p.orphans[*hash]; ok {
		return
	}

	if len(p.order) >= p.maxOrphans {
		evictIndex := rand.Intn(len(p.order))
		evicted := p.order[evictIndex]
		p.order = append(p.order[:evictIndex], p.order[evictIndex+1:]...)
		delete(p.orphans, evicted)
	}

	for _, parentHash := range block.Header.ParentHashes {
		if parent, ok := p.orphans[*parentHash]; ok {
			parent.children[*hash] = struct{}{}
		}
	}

	children := make(map[externalapi.DomainHash]struct{})
	for candidateHash, candidate := range p.orphans {
		for _, parentHash := range candidate.block.Header.ParentHashes {
			if *parentHash == *hash {
				children[candidateHash] = struct{}{}
				break
			}
		}
	}

	p.orphans[*hash] = &orphanBlock{block: block, children: children}
	p.order = append(p.order, *hash)
}

func (p *orphanBlocksPool) isOrphan(hash *externalapi.DomainHash) bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	_, ok := p.orphans[*hash]
	return ok
}

func (p *orphanBlocksPool) removeFromOrder(hash externalapi.DomainHash) {
	for i, h := range p.order {
		if h == hash {
			p.order = append(p.order[:i], p.order[i+1:]...)
			return
		}
	}
}

// takeChildren removes hash from the pool (if it was itself tracked as an
// orphan) and returns the hashes of orphans directly depending on it.
func (p *orphanBlocksPool) takeChildren(hash *externalapi.DomainHash) []externalapi.DomainHash {
	if entry, ok := p.orphans[*hash]; ok {
		delete(p.orphans, *hash)
		p.removeFromOrder(*hash)
		children := make([]externalapi.DomainHash, 0, len(entry.children))
		for child := range entry.children {
			children = append(children, child)
		}
		return children
	}

	var children []externalapi.DomainHash
	for candidateHash, candidate := range p.orphans {
		for _, parentHash := range candidate.block.Header.ParentHashes {
			if *parentHash == *hash {
				children = append(children, candidateHash)
				break
			}
		}
	}
	return children
}

func (p *orphanBlocksPool) isProcessable(consensus externalapi.Consensus, block *externalapi.DomainBlock) (bool, error) {
	for _, parentHash := range block.Header.ParentHashes {
		if p.isOrphan(parentHash) {
			return false, nil
		}
		info, err := consensus.GetBlockInfo(parentHash)
		if err != nil {
			return false, err
		}
		if !info.Exists || !info.BlockStatus.HasBlockBody() {
			return false, nil
		}
	}
	return true, nil
}

// unorphanBlocks accepts root's descendants in the orphan pool that have
// become processable now that root itself is known to consensus, in
// breadth-first order, each insertion unlocking the ones after it.
func (p *orphanBlocksPool) unorphanBlocks(consensus externalapi.Consensus, root *externalapi.DomainHash) (
	[]*unorphaningResult, error) {

	p.mtx.Lock()
	queue := p.takeChildren(root)
	p.mtx.Unlock()

	var results []*unorphaningResult
	visited := make(map[externalapi.DomainHash]struct{})
	for len(queue) > 0 {
		hash := queue[0]
		queue = queue[1:]
		if _, ok := visited[hash]; ok {
			continue
		}
		visited[hash] = struct{}{}

		p.mtx.Lock()
		candidate, ok := p.orphans[hash]
		p.mtx.Unlock()
		if !ok {
			continue
		}

		processable, err := p.isProcessable(consensus, candidate.block)
		if err != nil {
			return nil, err
		}
		if !processable {
			continue
		}

		p.mtx.Lock()
		delete(p.orphans, hash)
		p.removeFromOrder(hash)
		p.mtx.Unlock()

		insertionResult, err := consensus.ValidateAndInsertBlock(candidate.block)
		if err != nil {
			return nil, err
		}
		results = append(results, &unorphaningResult{block: candidate.block, blockInsertionResult: insertionResult})

		for child := range candidate.children {
			queue = append(queue, child)
		}
	}
	return results, nil
}

// orphanRoots returns the orphan ancestors of orphan which are themselves
// unknown to consensus or header-only - the blocks a peer that relayed
// orphan should be asked for next.
func (p *orphanBlocksPool) orphanRoots(consensus externalapi.Consensus, orphan *externalapi.DomainHash) (
	OrphanRootsOutput, []*externalapi.DomainHash, error) {

	p.mtx.Lock()
	_, isKnown := p.orphans[*orphan]
	p.mtx.Unlock()
	if !isKnown {
		return OrphanRootsOutputUnknown, nil, nil
	}

	knownOrphanAncestors := false
	var roots []*externalapi.DomainHash
	visited := map[externalapi.DomainHash]struct{}{*orphan: {}}
	queue := []externalapi.DomainHash{*orphan}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		p.mtx.Lock()
		block, ok := p.orphans[current]
		p.mtx.Unlock()

		if ok {
			if current != *orphan {
				knownOrphanAncestors = true
			}
			for _, parentHash := range block.block.Header.ParentHashes {
				if _, seen := visited[*parentHash]; !seen {
					visited[*parentHash] = struct{}{}
					queue = append(queue, *parentHash)
				}
			}
			continue
		}

		currentCopy := current
		info, err := consensus.GetBlockInfo(&currentCopy)
		if err != nil {
			return OrphanRootsOutputUnknown, nil, err
		}
		if !info.Exists || info.BlockStatus == externalapi.StatusHeaderOnly {
			roots = append(roots, &currentCopy)
		}
	}

	switch {
	case !knownOrphanAncestors && len(roots) == 0:
		return OrphanRootsOutputNotOrphan, nil, nil
	case len(roots) == 0:
		return OrphanRootsOutputNoRoots, nil, nil
	default:
		return OrphanRootsOutputRoots, roots, nil
	}
}

// AddOrphan adds orphanBlock to the orphan pool, to be revisited the next
// time one of its ancestors is accepted into consensus.
func (f *FlowContext) AddOrphan(orphanBlock *externalapi.DomainBlock) {
	f.orphans.add(orphanBlock)
}

// IsOrphan returns whether blockHash is currently being tracked as an orphan.
func (f *FlowContext) IsOrphan(blockHash *externalapi.DomainHash) bool {
	return f.orphans.isOrphan(blockHash)
}

// GetOrphanRoots returns the ancestors of orphanHash that must be obtained
// before it can be unorphaned.
func (f *FlowContext) GetOrphanRoots(orphanHash *externalapi.DomainHash) (OrphanRootsOutput, []*externalapi.DomainHash, error) {
	return f.orphans.orphanRoots(f.Domain().Consensus(), orphanHash)
}

// UnorphanBlocks accepts every orphan in the pool that becomes processable
// now that root has just been accepted into consensus, recursively unlocking
// their descendants in turn.
func (f *FlowContext) UnorphanBlocks(root *externalapi.DomainBlock) ([]*unorphaningResult, error) {
	rootHash := consensushashing.BlockHash(root)
	return f.orphans.unorphanBlocks(f.Domain().Consensus(), rootHash)
}
