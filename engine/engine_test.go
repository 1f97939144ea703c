package engine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distsys-tools/vclockmerge/clock"
	"github.com/distsys-tools/vclockmerge/engine"
	"github.com/distsys-tools/vclockmerge/merge"
	"github.com/distsys-tools/vclockmerge/rules"
)

type drone struct {
	Clock     clock.VectorClock
	Speed     float64 `merge:"rule=MaxDouble"`
	Armed     bool    `merge:"rule=OrBoolean"`
	Forces    rules.Set[string]
	DebugInfo string `merge:"ignore"`
}

func newDroneEngine(t *testing.T) *engine.MergeEngine[drone] {
	t.Helper()
	e, err := engine.New[drone](engine.WithRegistry[drone](rules.BuiltinRegistry()))
	require.NoError(t, err)
	require.NoError(t, engine.SetRule[drone](e, "Forces", rules.SetUnion[string]{}))
	return e
}

func TestMergeBeforeAdoptsRemote(t *testing.T) {
	e := newDroneEngine(t)
	local := &drone{Clock: clock.VectorClock{"A": 1}, Speed: 10}
	remote := &drone{Clock: clock.VectorClock{"A": 2}, Speed: 20}

	got := e.Merge(local, remote)
	assert.Equal(t, 20.0, got.Speed)
	assert.Equal(t, clock.VectorClock{"A": 2}, got.Clock)
}

func TestMergeAfterAdoptsLocal(t *testing.T) {
	e := newDroneEngine(t)
	local := &drone{Clock: clock.VectorClock{"B": 2}, Speed: 15}
	remote := &drone{Clock: clock.VectorClock{"B": 1}, Speed: 30}

	got := e.Merge(local, remote)
	assert.Equal(t, 15.0, got.Speed)
	assert.Equal(t, clock.VectorClock{"B": 2}, got.Clock)
}

func TestMergeEqualAdoptsRemote(t *testing.T) {
	e := newDroneEngine(t)
	local := &drone{Clock: clock.VectorClock{"X": 1}, Speed: 25}
	remote := &drone{Clock: clock.VectorClock{"X": 1}, Speed: 999}

	got := e.Merge(local, remote)
	assert.Equal(t, 999.0, got.Speed)
	assert.Equal(t, clock.VectorClock{"X": 1}, got.Clock)
}

func TestMergeConcurrentDispatchesToBoundRules(t *testing.T) {
	e := newDroneEngine(t)
	local := &drone{
		Clock:  clock.VectorClock{"A": 1},
		Speed:  40,
		Armed:  false,
		Forces: rules.NewSet("A"),
	}
	remote := &drone{
		Clock:  clock.VectorClock{"B": 1},
		Speed:  50,
		Armed:  true,
		Forces: rules.NewSet("B"),
	}

	got := e.Merge(local, remote)
	assert.Equal(t, 50.0, got.Speed)
	assert.True(t, got.Armed)
	assert.Equal(t, rules.NewSet("A", "B"), got.Forces)
	assert.Equal(t, clock.VectorClock{"A": 1, "B": 1}, got.Clock)
}

func TestMergeIgnoredFieldKeepsLocal(t *testing.T) {
	e := newDroneEngine(t)
	local := &drone{Clock: clock.VectorClock{"A": 1}, DebugInfo: "LOCAL"}
	remote := &drone{Clock: clock.VectorClock{"A": 1}, DebugInfo: "REMOTE"}

	got := e.Merge(local, remote)
	assert.Equal(t, "LOCAL", got.DebugInfo)

	into := e.MergeInto(local, remote)
	assert.Equal(t, "LOCAL", into.DebugInfo)
}

func TestMergeDoesNotAliasInputs(t *testing.T) {
	e := newDroneEngine(t)
	local := &drone{Clock: clock.VectorClock{"A": 1}, Forces: rules.NewSet("A")}
	remote := &drone{Clock: clock.VectorClock{"B": 1}, Forces: rules.NewSet("B")}

	got := e.Merge(local, remote)
	got.Forces["Z"] = struct{}{}
	assert.NotContains(t, local.Forces, "Z")
	assert.NotContains(t, remote.Forces, "Z")
	local.Clock["A"] = 99
	assert.NotEqual(t, uint64(99), got.Clock["A"])
}

func TestMergeNullShortcuts(t *testing.T) {
	e := newDroneEngine(t)
	remote := &drone{Clock: clock.VectorClock{"A": 1}, Speed: 5}
	assert.Same(t, remote, e.Merge(nil, remote))

	local := &drone{Clock: clock.VectorClock{"A": 1}, Speed: 5}
	assert.Same(t, local, e.Merge(local, nil))
}

func TestMergeIntoWritesBackToLocal(t *testing.T) {
	e := newDroneEngine(t)
	local := &drone{Clock: clock.VectorClock{"A": 1}, Speed: 10}
	remote := &drone{Clock: clock.VectorClock{"A": 2}, Speed: 20}

	got := e.MergeInto(local, remote)
	assert.Same(t, local, got)
	assert.Equal(t, 20.0, local.Speed)
	assert.Equal(t, clock.VectorClock{"A": 2}, local.Clock)
}

func TestLateJoinerConvergence(t *testing.T) {
	e := newDroneEngine(t)

	a := &drone{Clock: clock.VectorClock{"A": 1}, Speed: 10, Forces: rules.NewSet("a1")}
	b := &drone{Clock: clock.VectorClock{"B": 1}, Speed: 20, Forces: rules.NewSet("b1")}

	ab := e.Merge(a, b)
	ba := e.Merge(b, a)
	assert.Equal(t, ab.Clock, ba.Clock)
	assert.Equal(t, ab.Speed, ba.Speed)
	assert.Equal(t, ab.Forces, ba.Forces)

	c := &drone{Clock: clock.VectorClock{"C": 1}, Speed: 30, Forces: rules.NewSet("c1")}

	ca := e.Merge(c, ab)
	cb := e.Merge(c, ba)

	finalA := e.Merge(ab, ca)
	finalB := e.Merge(ba, cb)

	assert.Equal(t, finalA.Clock, finalB.Clock)
	assert.Equal(t, finalA.Speed, finalB.Speed)
	assert.Equal(t, finalA.Forces, finalB.Forces)
	assert.Equal(t, uint64(1), finalA.Clock["A"])
	assert.Equal(t, uint64(1), finalA.Clock["B"])
	assert.Equal(t, uint64(1), finalA.Clock["C"])
}

func TestSetRuleUnknownField(t *testing.T) {
	e := newDroneEngine(t)
	err := engine.SetRule[drone](e, "NoSuchField", rules.MaxInt{})
	var unknown *merge.UnknownFieldError
	assert.ErrorAs(t, err, &unknown)
}

func TestSetRuleTypeMismatch(t *testing.T) {
	e := newDroneEngine(t)
	err := engine.SetRule[drone](e, "Speed", rules.MaxInt{})
	var mismatch *merge.TypeMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestSetRuleRejectsClockField(t *testing.T) {
	e := newDroneEngine(t)
	err := engine.SetRule[drone](e, "Clock", rules.PreferLocal[clock.VectorClock]{})
	var unknown *merge.UnknownFieldError
	assert.ErrorAs(t, err, &unknown)
}

func TestSetRuleRejectsIgnoredField(t *testing.T) {
	e := newDroneEngine(t)
	err := engine.SetRule[drone](e, "DebugInfo", rules.LongestString{})
	var unknown *merge.UnknownFieldError
	assert.ErrorAs(t, err, &unknown)
}

type withUnknownTag struct {
	Clock clock.VectorClock
	Speed float64 `merge:"rule=NoSuchRule"`
}

func TestNewRejectsUnknownRuleIdentifier(t *testing.T) {
	_, err := engine.New[withUnknownTag](engine.WithRegistry[withUnknownTag](rules.BuiltinRegistry()))
	assert.Error(t, err)
}

type withEmptyRuleTag struct {
	Clock clock.VectorClock
	Speed float64 `merge:"rule="`
}

func TestNewRejectsEmptyRuleAnnotation(t *testing.T) {
	_, err := engine.New[withEmptyRuleTag](engine.WithRegistry[withEmptyRuleTag](rules.BuiltinRegistry()))
	var nullAnnotation *merge.NullAnnotationError
	assert.ErrorAs(t, err, &nullAnnotation)
}

type noClockField struct {
	Speed float64
}

func TestNewRejectsMissingClockField(t *testing.T) {
	_, err := engine.New[noClockField]()
	assert.Error(t, err)
}

type resolverDrone struct {
	Clock  clock.VectorClock
	Forces rules.Set[string]
}

type forcesResolver struct{}

func (forcesResolver) RegisterRules(e *engine.MergeEngine[resolverDrone]) error {
	return engine.SetRule[resolverDrone](e, "Forces", rules.SetUnion[string]{})
}

func TestResolverOverridesDefault(t *testing.T) {
	e, err := engine.New[resolverDrone](engine.WithResolver[resolverDrone](forcesResolver{}))
	require.NoError(t, err)

	local := &resolverDrone{Clock: clock.VectorClock{"A": 1}, Forces: rules.NewSet("a")}
	remote := &resolverDrone{Clock: clock.VectorClock{"B": 1}, Forces: rules.NewSet("b")}
	got := e.Merge(local, remote)
	assert.Equal(t, rules.NewSet("a", "b"), got.Forces)
}

type failingResolver struct{}

var errResolverFailed = errors.New("resolver failed")

func (failingResolver) RegisterRules(e *engine.MergeEngine[resolverDrone]) error {
	return errResolverFailed
}

func TestResolverErrorPropagatesFromConstruction(t *testing.T) {
	_, err := engine.New[resolverDrone](engine.WithResolver[resolverDrone](failingResolver{}))
	assert.ErrorIs(t, err, errResolverFailed)
}
