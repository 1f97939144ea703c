package rules

import "github.com/distsys-tools/vclockmerge/clock"

// SumInt resolves a concurrent update to local + remote.
type SumInt struct{}

// Resolve implements merge.Rule[int].
func (SumInt) Resolve(local, remote int, _, _ clock.VectorClock) int {
	return local + remote
}

// MaxInt resolves a concurrent update to the larger of local and remote.
type MaxInt struct{}

// Resolve implements merge.Rule[int].
func (MaxInt) Resolve(local, remote int, _, _ clock.VectorClock) int {
	if local > remote {
		return local
	}
	return remote
}

// MinInt resolves a concurrent update to the smaller of local and remote.
type MinInt struct{}

// Resolve implements merge.Rule[int].
func (MinInt) Resolve(local, remote int, _, _ clock.VectorClock) int {
	if local < remote {
		return local
	}
	return remote
}

// MaxDouble resolves a concurrent update to the larger of local and remote.
type MaxDouble struct{}

// Resolve implements merge.Rule[float64].
func (MaxDouble) Resolve(local, remote float64, _, _ clock.VectorClock) float64 {
	if local > remote {
		return local
	}
	return remote
}

// MinDouble resolves a concurrent update to the smaller of local and remote.
type MinDouble struct{}

// Resolve implements merge.Rule[float64].
func (MinDouble) Resolve(local, remote float64, _, _ clock.VectorClock) float64 {
	if local < remote {
		return local
	}
	return remote
}

// AverageDouble resolves a concurrent update to (local + remote) / 2.
type AverageDouble struct{}

// Resolve implements merge.Rule[float64].
func (AverageDouble) Resolve(local, remote float64, _, _ clock.VectorClock) float64 {
	return (local + remote) / 2
}

// BlendDouble resolves a concurrent update to local*(1-w) + remote*w.
type BlendDouble struct {
	Weight float64
}

// Resolve implements merge.Rule[float64].
func (b BlendDouble) Resolve(local, remote float64, _, _ clock.VectorClock) float64 {
	return local*(1-b.Weight) + remote*b.Weight
}
