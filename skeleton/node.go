// Package skeleton models a BVH joint hierarchy and does the kinematic math on it: loading frames
// of channel values, forward kinematics to world coordinates, and a weighted distance between two
// poses of the same skeleton.
//
// A Node tree is mutated in place by LoadFrame and ApplyTransformation and so must not be shared
// between goroutines. Evaluate independent frames on independent clones, as FrameDistance and the
// batch helpers do.
package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// A Frame is one time sample: channel values for the whole tree, flattened depth first with
// parents before children and each node's channels in declared order.
type Frame []float64

// Node is a joint (or end site) of the skeleton. It exclusively owns its channels and children.
type Node struct {
	// Key is the raw hierarchy tag, e.g. "ROOT", "JOINT" or "End".
	Key  string
	Name string
	// Offset is the rest-pose translation from the parent.
	Offset   r3.Vector
	Channels []*Channel
	Children []*Node
	// Weight scales this node's contribution to Distance.
	Weight float64

	localTransform   mgl64.Mat4
	worldCoordinates r3.Vector
	transformed      bool
}

// NewNode creates a node with one zero-valued channel per kind, in the given order, and weight 1.
func NewNode(key, name string, offset r3.Vector, kinds []ChannelKind, children ...*Node) *Node {
	channels := make([]*Channel, 0, len(kinds))
	for _, kind := range kinds {
		channels = append(channels, NewChannel(kind))
	}
	return &Node{
		Key:      key,
		Name:     name,
		Offset:   offset,
		Channels: channels,
		Children: children,
		Weight:   1,
	}
}

// Search returns the first node named name in pre-order (self, then children in order), or nil.
func (n *Node) Search(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.Children {
		if result := child.Search(name); result != nil {
			return result
		}
	}
	return nil
}

// FilterChildren returns the immediate children with the given key, in declared order.
func (n *Node) FilterChildren(key string) []*Node {
	var matches []*Node
	for _, child := range n.Children {
		if child.Key == key {
			matches = append(matches, child)
		}
	}
	return matches
}

// Walk calls fn on every node of the subtree in pre-order with its depth below n. The walk stops as
// soon as fn returns false.
func (n *Node) Walk(fn func(depth int, node *Node) bool) {
	n.walk(0, fn)
}

func (n *Node) walk(depth int, fn func(int, *Node) bool) bool {
	if !fn(depth, n) {
		return false
	}
	for _, child := range n.Children {
		if !child.walk(depth+1, fn) {
			return false
		}
	}
	return true
}

// ChannelCount is the number of channels in the subtree, i.e. the frame length it consumes.
func (n *Node) ChannelCount() int {
	count := 0
	n.Walk(func(_ int, node *Node) bool {
		count += len(node.Channels)
		return true
	})
	return count
}

// NodeCount is the number of nodes in the subtree, n included.
func (n *Node) NodeCount() int {
	count := 0
	n.Walk(func(int, *Node) bool {
		count++
		return true
	})
	return count
}

// Clone returns a deep copy of the subtree. Channels and children are copied, never aliased, along
// with channel values and any cached transform and coordinates.
func (n *Node) Clone() *Node {
	clone := &Node{
		Key:              n.Key,
		Name:             n.Name,
		Offset:           n.Offset,
		Weight:           n.Weight,
		localTransform:   n.localTransform,
		worldCoordinates: n.worldCoordinates,
		transformed:      n.transformed,
	}
	if n.Channels != nil {
		clone.Channels = make([]*Channel, len(n.Channels))
		for i, channel := range n.Channels {
			c := *channel
			clone.Channels[i] = &c
		}
	}
	if n.Children != nil {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.Clone()
		}
	}
	return clone
}

// LoadFrame assigns the values of frame to the channels of the subtree, depth first with parents
// before children. The frame is only read, so one frame may be loaded any number of times. Values
// past the subtree's channel count are ignored; a frame that is too short is rejected before any
// channel is written.
//
// Values are matched to channels purely by position. A frame laid out for a different channel order
// loads without error and produces meaningless kinematics.
func (n *Node) LoadFrame(frame Frame) error {
	if needed := n.ChannelCount(); len(frame) < needed {
		return NewUnderflowError(n.underflowNode(len(frame)), needed, len(frame))
	}
	n.loadFrame(frame, 0)
	return nil
}

func (n *Node) loadFrame(frame Frame, cursor int) int {
	for _, channel := range n.Channels {
		channel.SetValue(frame[cursor])
		cursor++
	}
	for _, child := range n.Children {
		cursor = child.loadFrame(frame, cursor)
	}
	return cursor
}

// underflowNode names the first node in load order whose channels reach past available values.
func (n *Node) underflowNode(available int) string {
	name := n.Name
	consumed := 0
	n.Walk(func(_ int, node *Node) bool {
		consumed += len(node.Channels)
		if consumed > available {
			name = node.Name
			return false
		}
		return true
	})
	return name
}
