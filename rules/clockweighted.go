package rules

import (
	"math/rand"
	"sort"

	"github.com/distsys-tools/vclockmerge/clock"
)

// NodeAlwaysWins resolves a concurrent update to whichever side's clock
// has the greater counter for Node; ties favor local.
type NodeAlwaysWins[V any] struct {
	Node string
}

// Resolve implements merge.Rule[V].
func (n NodeAlwaysWins[V]) Resolve(local, remote V, lc, rc clock.VectorClock) V {
	if rc[n.Node] > lc[n.Node] {
		return remote
	}
	return local
}

func sumCounters(c clock.VectorClock) uint64 {
	var total uint64
	for _, v := range c {
		total += v
	}
	return total
}

// MostUpdatesWins resolves a concurrent update to whichever side's clock
// has the greater sum of counters; ties favor local.
type MostUpdatesWins[V any] struct{}

// Resolve implements merge.Rule[V].
func (MostUpdatesWins[V]) Resolve(local, remote V, lc, rc clock.VectorClock) V {
	if sumCounters(rc) > sumCounters(lc) {
		return remote
	}
	return local
}

func maxCounter(c clock.VectorClock) uint64 {
	var max uint64
	for _, v := range c {
		if v > max {
			max = v
		}
	}
	return max
}

// HighestNodeContributionWins resolves a concurrent update to whichever
// side's clock has the greater single-node counter; ties favor local.
type HighestNodeContributionWins[V any] struct{}

// Resolve implements merge.Rule[V].
func (HighestNodeContributionWins[V]) Resolve(local, remote V, lc, rc clock.VectorClock) V {
	if maxCounter(rc) > maxCounter(lc) {
		return remote
	}
	return local
}

func weightedSum(c clock.VectorClock, weights map[string]float64) float64 {
	var total float64
	for node, counter := range c {
		w, ok := weights[node]
		if !ok {
			w = 1
		}
		total += float64(counter) * w
	}
	return total
}

// TrustWeighted resolves a concurrent update to whichever side's clock
// has the greater sum of counter*weight[node] (default weight 1); ties
// favor local.
type TrustWeighted[V any] struct {
	Weights map[string]float64
}

// Resolve implements merge.Rule[V].
func (t TrustWeighted[V]) Resolve(local, remote V, lc, rc clock.VectorClock) V {
	if weightedSum(rc, t.Weights) > weightedSum(lc, t.Weights) {
		return remote
	}
	return local
}

// MajorityVote resolves a concurrent update to whichever side's clock has
// more distinct node keys; ties favor local.
type MajorityVote[V any] struct{}

// Resolve implements merge.Rule[V].
func (MajorityVote[V]) Resolve(local, remote V, lc, rc clock.VectorClock) V {
	if len(rc) > len(lc) {
		return remote
	}
	return local
}

// minActiveNode returns the lexicographically smallest node identifier
// with a nonzero counter, and whether one exists.
func minActiveNode(c clock.VectorClock) (string, bool) {
	nodes := make([]string, 0, len(c))
	for node, counter := range c {
		if counter > 0 {
			nodes = append(nodes, node)
		}
	}
	if len(nodes) == 0 {
		return "", false
	}
	sort.Strings(nodes)
	return nodes[0], true
}

// LexicographicNodeWins resolves a concurrent update to whichever side's
// smallest active node identifier sorts first; a clock with no active
// node sorts last; ties favor local.
type LexicographicNodeWins[V any] struct{}

// Resolve implements merge.Rule[V].
func (LexicographicNodeWins[V]) Resolve(local, remote V, lc, rc clock.VectorClock) V {
	lMin, lOK := minActiveNode(lc)
	rMin, rOK := minActiveNode(rc)
	switch {
	case !lOK && rOK:
		return remote
	case lOK && !rOK:
		return local
	case !lOK && !rOK:
		return local
	case rMin < lMin:
		return remote
	default:
		return local
	}
}

// RandomChoice resolves a concurrent update to local or remote with equal
// probability. It is the one rule in the catalog that is not
// deterministic: two implementations following the spec cannot be
// expected to produce the same merge output for the same inputs.
type RandomChoice[V any] struct{}

// Resolve implements merge.Rule[V].
func (RandomChoice[V]) Resolve(local, remote V, _, _ clock.VectorClock) V {
	if rand.Intn(2) == 0 {
		return local
	}
	return remote
}
