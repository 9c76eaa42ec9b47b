package skeleton

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

const coordinateEpsilon = 1e-6

// twoJointChain is a root with translation and Y rotation channels and one child rotating about Y.
func twoJointChain(childOffset r3.Vector) *Node {
	child := NewNode("JOINT", "child", childOffset, []ChannelKind{YRotation})
	return NewNode("ROOT", "root", r3.Vector{},
		[]ChannelKind{XPosition, YPosition, ZPosition, YRotation}, child)
}

func worldCoordinates(t *testing.T, n *Node) r3.Vector {
	t.Helper()
	wc, err := n.WorldCoordinates()
	test.That(t, err, test.ShouldBeNil)
	return wc
}

func assertVectorAlmostEqual(t *testing.T, actual, expected r3.Vector) {
	t.Helper()
	test.That(t, actual.X, test.ShouldAlmostEqual, expected.X, coordinateEpsilon)
	test.That(t, actual.Y, test.ShouldAlmostEqual, expected.Y, coordinateEpsilon)
	test.That(t, actual.Z, test.ShouldAlmostEqual, expected.Z, coordinateEpsilon)
}
