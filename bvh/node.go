// Package bvh reads the text form of a BVH motion capture file into a raw, untyped tree of lines
// and a table of raw frame values. It knows nothing about kinematics: every hierarchy line becomes
// a Node tagged with its first word, and every MOTION row is kept as the strings that were read.
package bvh

// Well known hierarchy tags.
const (
	TagHierarchy = "HIERARCHY"
	TagRoot      = "ROOT"
	TagJoint     = "JOINT"
	TagEnd       = "End"
	TagOffset    = "OFFSET"
	TagChannels  = "CHANNELS"
	TagMotion    = "MOTION"
)

// Node is one line of the HIERARCHY section. Lines followed by a braced block own the lines of
// that block as children.
type Node struct {
	Tag      string
	Values   []string
	Children []*Node
	// Line is the 1-based line of the source this node was read from.
	Line int
}

// Name is the first value following the tag, e.g. "Hips" for "ROOT Hips" or "Site" for "End Site".
func (n *Node) Name() string {
	if len(n.Values) == 0 {
		return ""
	}
	return n.Values[0]
}

// Filter returns the immediate children whose tag is one of tags, in declared order.
func (n *Node) Filter(tags ...string) []*Node {
	var matches []*Node
	for _, child := range n.Children {
		for _, tag := range tags {
			if child.Tag == tag {
				matches = append(matches, child)
				break
			}
		}
	}
	return matches
}

// Child returns the first immediate child tagged tag, or nil.
func (n *Node) Child(tag string) *Node {
	for _, child := range n.Children {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// File is the raw result of reading a BVH document.
type File struct {
	// Root is an untagged document node; the ROOT joint is one of its children.
	Root *Node
	// Frames holds one row of raw values per MOTION line, in file order.
	Frames [][]string
	// FrameTime is the seconds between frames as declared by "Frame Time:".
	FrameTime float64
	// DeclaredFrames is the count given by "Frames:", which need not match len(Frames).
	DeclaredFrames int
}
