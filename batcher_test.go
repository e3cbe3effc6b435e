package debugdraw

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeInstances(n int, visible func(i int) bool) []*InstancePrimitive {
	out := make([]*InstancePrimitive, n)
	for i := range out {
		p := newInstancePrimitive(ShapeSphere)()
		p.Transform = mgl32.Translate3D(float32(i), 0, 0)
		p.Color = Color{float32(i), 0, 0, 1}
		p.visible = visible(i)
		out[i] = p
	}
	return out
}

func TestInstanceBatcher_RebuildPacksVisible(t *testing.T) {
	b := newInstanceBatcher(ShapeSphere)
	live := makeInstances(5, func(i int) bool { return i%2 == 0 })

	n := b.Rebuild(live)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, b.Active())
	assert.GreaterOrEqual(t, b.Capacity(), 5)
	require.Len(t, b.Instances(), 3)

	var xs []float32
	for _, inst := range b.Instances() {
		xs = append(xs, inst.ModelMat.Col(3).X())
	}
	assert.ElementsMatch(t, []float32{0, 2, 4}, xs)

	for _, p := range live {
		assert.True(t, p.usedOnce, "culled records still count as used")
	}
}

func TestInstanceBatcher_HideAllKeepsBuffer(t *testing.T) {
	b := newInstanceBatcher(ShapeCube)
	b.Rebuild(makeInstances(4, func(int) bool { return true }))
	capBefore := b.Capacity()

	b.HideAll()
	assert.Zero(t, b.Active())
	assert.Empty(t, b.Instances())
	assert.Equal(t, capBefore, b.Capacity())
}

func TestInstanceBatcher_CapacityNeverShrinks(t *testing.T) {
	b := newInstanceBatcher(ShapeCube)
	b.Rebuild(makeInstances(8, func(int) bool { return true }))
	b.Rebuild(makeInstances(2, func(int) bool { return true }))
	assert.Equal(t, 2, b.Active())
	assert.GreaterOrEqual(t, b.Capacity(), 8)
}

func TestLineBatcher_ExpandsPathsAndLists(t *testing.T) {
	path := newLinePrimitive()
	path.SetPoints([]mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}, false)
	list := newLinePrimitive()
	list.SetPoints([]mgl32.Vec3{{0, 0, 0}, {0, 0, 1}, {0, 1, 0}, {0, 1, 1}}, true)
	hidden := newLinePrimitive()
	hidden.SetPoints([]mgl32.Vec3{{5, 5, 5}, {6, 6, 6}}, false)
	hidden.visible = false

	var b lineBatcher
	n := b.rebuild([]*LinePrimitive{path, list, hidden})
	assert.Equal(t, 2, n)
	assert.Len(t, b.vertices, 8)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, b.vertices[2].Pos, "second path segment starts at the shared point")
	assert.True(t, hidden.usedOnce)
}

func TestRegistry_PruneReturnsToPools(t *testing.T) {
	r := newRegistry()
	now := time.Unix(100, 0)

	for i := 0; i < 3; i++ {
		l := r.linePool.Get()
		l.SetPoints([]mgl32.Vec3{{}, {1, 0, 0}}, false)
		l.expireAt(now, time.Duration(i)*time.Second)
		l.usedOnce = true
		r.addLine(l)
	}
	inst := r.instancePools[ShapeCube].Get()
	inst.expireAt(now, 0)
	r.addInstance(inst)

	var counts pruneCounts
	removed := r.prune(now.Add(1500*time.Millisecond), true, &counts)
	assert.Equal(t, 2, removed, "unused instance and the 2s line survive")
	assert.Equal(t, pruneCounts{lines: 2}, counts)
	assert.Len(t, r.lines, 1)
	assert.Equal(t, 1, r.liveInstances())
	assert.Equal(t, 2, r.linePool.Idle())

	counts = pruneCounts{}
	removed = r.prune(now, false, &counts)
	assert.Equal(t, 2, removed)
	assert.Equal(t, pruneCounts{lines: 1, shapes: 1}, counts)
	assert.Equal(t, r.poolCreated(), r.poolIdle())
}
