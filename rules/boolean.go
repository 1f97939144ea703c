package rules

import "github.com/distsys-tools/vclockmerge/clock"

// OrBoolean resolves a concurrent update to local || remote.
type OrBoolean struct{}

// Resolve implements merge.Rule[bool].
func (OrBoolean) Resolve(local, remote bool, _, _ clock.VectorClock) bool {
	return local || remote
}

// AndBoolean resolves a concurrent update to local && remote.
type AndBoolean struct{}

// Resolve implements merge.Rule[bool].
func (AndBoolean) Resolve(local, remote bool, _, _ clock.VectorClock) bool {
	return local && remote
}
