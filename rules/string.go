package rules

import "github.com/distsys-tools/vclockmerge/clock"

// LongestString resolves a concurrent update to whichever of local and
// remote is longer; ties favor local.
type LongestString struct{}

// Resolve implements merge.Rule[string].
func (LongestString) Resolve(local, remote string, _, _ clock.VectorClock) string {
	if len(remote) > len(local) {
		return remote
	}
	return local
}

// ShortestString resolves a concurrent update to whichever of local and
// remote is shorter; ties favor local.
type ShortestString struct{}

// Resolve implements merge.Rule[string].
func (ShortestString) Resolve(local, remote string, _, _ clock.VectorClock) string {
	if len(remote) < len(local) {
		return remote
	}
	return local
}
