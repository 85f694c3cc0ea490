package binfmt

import (
	pkgerrors "github.com/matzehuels/graphbin/pkg/errors"
)

// VerifyDegrees checks that g is safe to hand to [EncodeAdjacency]: every
// reported degree must equal the length of the node's neighbor sequence and
// every neighbor must be a valid node id.
//
// The encoder itself trusts the graph; this is an opt-in pass that walks the
// adjacency once more without writing anything.
func VerifyDegrees(g AdjacencySource) error {
	n := g.NodeCount()
	for i := 0; i < n; i++ {
		u := int32(i)
		count := 0
		for v := range g.Neighbors(u) {
			if v < 0 || int(v) >= n {
				return pkgerrors.New(pkgerrors.ErrCodeCorrupt, "node %d has neighbor %d outside [0, %d)", u, v, n)
			}
			count++
		}
		if deg := g.Degree(u); deg != count {
			return pkgerrors.New(pkgerrors.ErrCodeCorrupt, "node %d reports degree %d but yields %d neighbors", u, deg, count)
		}
	}
	return nil
}
