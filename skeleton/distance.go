package skeleton

// Distance is the weighted sum, over corresponding nodes of two transformed trees, of the distance
// between their world coordinates. Nodes correspond by position: the roots, then children zipped in
// declared order.
//
// Corresponding nodes must share name and weight and have the same number of children, otherwise a
// *MismatchError reports the first divergence in pre-order. Both trees must have been through
// ApplyTransformation. Children listed in a different order are not detected.
func Distance(a, b *Node) (float64, error) {
	if a.Name != b.Name {
		return 0, NewNameMismatchError(a, b)
	}
	if a.Weight != b.Weight {
		return 0, NewWeightMismatchError(a, b)
	}
	if !a.transformed {
		return 0, NewStaleStateError(a.Name)
	}
	if !b.transformed {
		return 0, NewStaleStateError(b.Name)
	}
	if len(a.Children) != len(b.Children) {
		return 0, NewTopologyMismatchError(a, b)
	}

	distance := a.worldCoordinates.Sub(b.worldCoordinates).Norm() * a.Weight
	for i := range a.Children {
		d, err := Distance(a.Children[i], b.Children[i])
		if err != nil {
			return 0, err
		}
		distance += d
	}
	return distance, nil
}

// FrameDistance is the Distance between the poses of frames a and b. Each frame is evaluated on its
// own clone of n, so n itself is left untouched and may be shared by concurrent callers as long as
// nobody mutates it.
func (n *Node) FrameDistance(a, b Frame) (float64, error) {
	rootA, err := n.Pose(a)
	if err != nil {
		return 0, err
	}
	rootB, err := n.Pose(b)
	if err != nil {
		return 0, err
	}
	return Distance(rootA, rootB)
}

// Pose returns a transformed clone of n with frame loaded.
func (n *Node) Pose(frame Frame) (*Node, error) {
	root := n.Clone()
	if err := root.LoadFrame(frame); err != nil {
		return nil, err
	}
	root.ApplyRootTransformation()
	return root, nil
}
