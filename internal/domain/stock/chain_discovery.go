package stock

// ChainDiscovery computes the transitive closure of linked pickings: every
// picking reachable from a seed set by following move successor or
// predecessor references through their owning pickings, in either direction,
// until no new picking appears.
//
// Termination does not rely on the link data being acyclic: a picking
// already in the known set is never re-expanded, so even cyclic references
// converge by set subtraction.
type ChainDiscovery struct{}

// NewChainDiscovery creates a new discovery service
func NewChainDiscovery() *ChainDiscovery {
	return &ChainDiscovery{}
}

// Expand returns the full chain for the seed pickings, seeds included.
// A picking reachable through both a successor walk and a predecessor walk
// is included exactly once.
func (d *ChainDiscovery) Expand(seed []*Picking) *PickingSet {
	known := NewPickingSet(seed...)

	frontier := known.Items()
	for len(frontier) > 0 {
		var next []*Picking
		for _, p := range frontier {
			for _, m := range p.Moves {
				for _, succ := range m.Successors {
					if owner := succ.Picking; owner != nil && known.Add(owner) {
						next = append(next, owner)
					}
				}
				for _, pred := range m.Predecessors {
					if owner := pred.Picking; owner != nil && known.Add(owner) {
						next = append(next, owner)
					}
				}
			}
		}
		frontier = next
	}
	return known
}
