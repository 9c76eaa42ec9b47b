package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// ApplyTransformation runs forward kinematics over the subtree. The node's local transform is the
// product of its channel matrices in declared order, C0·C1·…·Cn. Its world coordinates are the
// offset carried through parent·local, and children receive parent·local as their parent transform.
// Derived state is recomputed on every call, never accumulated.
//
// Pass mgl64.Ident4() for a root; the zero mgl64.Mat4 collapses every coordinate to the origin.
func (n *Node) ApplyTransformation(parent mgl64.Mat4) {
	local := mgl64.Ident4()
	for _, channel := range n.Channels {
		local = local.Mul4(channel.Matrix())
	}
	n.localTransform = local

	total := parent.Mul4(local)
	p := total.Mul4x1(mgl64.Vec4{n.Offset.X, n.Offset.Y, n.Offset.Z, 1})
	n.worldCoordinates = r3.Vector{X: p.X(), Y: p.Y(), Z: p.Z()}
	n.transformed = true

	for _, child := range n.Children {
		child.ApplyTransformation(total)
	}
}

// ApplyRootTransformation is ApplyTransformation with the identity as parent transform.
func (n *Node) ApplyRootTransformation() {
	n.ApplyTransformation(mgl64.Ident4())
}

// Transformed reports whether ApplyTransformation has reached this node.
func (n *Node) Transformed() bool {
	return n.transformed
}

// LocalTransform returns the channel product computed by the last transformation pass.
func (n *Node) LocalTransform() (mgl64.Mat4, error) {
	if !n.transformed {
		return mgl64.Mat4{}, NewStaleStateError(n.Name)
	}
	return n.localTransform, nil
}

// WorldCoordinates returns the position computed by the last transformation pass.
func (n *Node) WorldCoordinates() (r3.Vector, error) {
	if !n.transformed {
		return r3.Vector{}, NewStaleStateError(n.Name)
	}
	return n.worldCoordinates, nil
}
