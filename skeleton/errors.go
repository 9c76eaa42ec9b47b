package skeleton

import (
	"fmt"
	"strings"
)

// UnderflowError is returned when a frame holds fewer values than the tree has channels.
type UnderflowError struct {
	// Node is the first node whose channels could not all be filled.
	Node      string
	Needed    int
	Available int
}

// NewUnderflowError returns an error for a frame that ran out of values at node.
func NewUnderflowError(node string, needed, available int) error {
	return &UnderflowError{Node: node, Needed: needed, Available: available}
}

func (e *UnderflowError) Error() string {
	return fmt.Sprintf("frame underflow at node %q: tree needs %d values but frame has %d", e.Node, e.Needed, e.Available)
}

// MismatchError is returned when two trees compared for distance are not the same skeleton.
type MismatchError struct {
	NameA, NameB     string
	WeightA, WeightB float64
	Reason           string
}

// NewNameMismatchError is used when corresponding nodes carry different names.
func NewNameMismatchError(a, b *Node) error {
	return &MismatchError{NameA: a.Name, NameB: b.Name, WeightA: a.Weight, WeightB: b.Weight, Reason: "names differ"}
}

// NewWeightMismatchError is used when corresponding nodes carry different weights.
func NewWeightMismatchError(a, b *Node) error {
	return &MismatchError{NameA: a.Name, NameB: b.Name, WeightA: a.Weight, WeightB: b.Weight, Reason: "weights differ"}
}

// NewTopologyMismatchError is used when corresponding nodes have a different number of children.
func NewTopologyMismatchError(a, b *Node) error {
	return &MismatchError{
		NameA: a.Name, NameB: b.Name, WeightA: a.Weight, WeightB: b.Weight,
		Reason: fmt.Sprintf("child counts differ (%d vs %d)", len(a.Children), len(b.Children)),
	}
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("skeleton mismatch between %q (weight %g) and %q (weight %g): %s",
		e.NameA, e.WeightA, e.NameB, e.WeightB, e.Reason)
}

// StaleStateError is returned when derived kinematic state is read before any transformation pass.
type StaleStateError struct {
	Node string
}

// NewStaleStateError is used when node has not been through ApplyTransformation.
func NewStaleStateError(node string) error {
	return &StaleStateError{Node: node}
}

func (e *StaleStateError) Error() string {
	return fmt.Sprintf("node %q has no world coordinates, call ApplyTransformation first", e.Node)
}

// ParseError is returned when raw parser output cannot be turned into a skeleton.
type ParseError struct {
	// Node is the joint being built, empty when not applicable.
	Node string
	// Line is the source line of Node, zero when unknown.
	Line int
	// Frame and Column locate a bad frame value, -1 when not applicable.
	Frame  int
	Column int
	Msg    string
	Err    error
}

// NewParseError returns a ParseError that is not tied to a node or a frame value.
func NewParseError(msg string) error {
	return &ParseError{Frame: -1, Column: -1, Msg: msg}
}

// NewSyntaxParseError wraps a document the bvh tokenizer or block structure rejected.
func NewSyntaxParseError(err error) error {
	return &ParseError{Frame: -1, Column: -1, Msg: "invalid bvh syntax", Err: err}
}

// NewNodeParseError returns a ParseError located at a hierarchy node.
func NewNodeParseError(node string, line int, msg string, err error) error {
	return &ParseError{Node: node, Line: line, Frame: -1, Column: -1, Msg: msg, Err: err}
}

// NewFrameParseError returns a ParseError located at a frame value.
func NewFrameParseError(frame, column int, err error) error {
	return &ParseError{Frame: frame, Column: column, Msg: "frame value is not a number", Err: err}
}

func (e *ParseError) Error() string {
	var where []string
	if e.Node != "" {
		where = append(where, fmt.Sprintf("node %q", e.Node))
	}
	if e.Line > 0 {
		where = append(where, fmt.Sprintf("line %d", e.Line))
	}
	if e.Frame >= 0 {
		where = append(where, fmt.Sprintf("frame %d", e.Frame))
	}
	if e.Column >= 0 {
		where = append(where, fmt.Sprintf("column %d", e.Column))
	}

	msg := "parse error"
	if len(where) > 0 {
		msg += " at " + strings.Join(where, ", ")
	}
	msg += ": " + e.Msg
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
