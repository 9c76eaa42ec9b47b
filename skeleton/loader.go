package skeleton

import (
	"fmt"
	"os"
	"strconv"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/wghou/BeeVeeH/bvh"
	"github.com/wghou/BeeVeeH/logging"
)

// Skeleton is a loaded motion: the joint tree, its frames and the declared seconds between frames.
type Skeleton struct {
	Root      *Node
	Frames    []Frame
	FrameTime float64
}

// Frame returns frame i, or an error naming the valid range.
func (s *Skeleton) Frame(i int) (Frame, error) {
	if i < 0 || i >= len(s.Frames) {
		return nil, errors.Errorf("frame %d out of range [0, %d)", i, len(s.Frames))
	}
	return s.Frames[i], nil
}

// LoadFile reads, parses and loads the BVH file at path.
func LoadFile(path string, logger logging.Logger) (*Skeleton, error) {
	//nolint:gosec
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read bvh file %q", path)
	}
	raw, err := bvh.Parse(text)
	if err != nil {
		return nil, errors.Wrapf(NewSyntaxParseError(err), "cannot parse bvh file %q", path)
	}
	s, err := Load(raw, logger)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot load skeleton from %q", path)
	}
	return s, nil
}

// Load builds a Skeleton from the raw output of the bvh parser. The first ROOT of the hierarchy
// becomes the tree; only JOINT and End lines below it become nodes. Every frame value is converted
// to a float.
func Load(raw *bvh.File, logger logging.Logger) (*Skeleton, error) {
	if raw == nil || raw.Root == nil {
		return nil, NewParseError("no hierarchy")
	}
	roots := raw.Root.Filter(bvh.TagRoot)
	if len(roots) == 0 {
		return nil, NewParseError("hierarchy has no ROOT joint")
	}
	if len(roots) > 1 {
		logger.Warnw("hierarchy has several ROOT joints, only the first is used", "roots", len(roots))
	}

	root, err := buildNode(roots[0])
	if err != nil {
		return nil, err
	}

	if len(raw.Frames) == 0 {
		return nil, NewParseError("motion has no frames")
	}
	channels := root.ChannelCount()
	frames := make([]Frame, len(raw.Frames))
	for i, row := range raw.Frames {
		frame := make(Frame, len(row))
		for j, value := range row {
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, NewFrameParseError(i, j, err)
			}
			frame[j] = f
		}
		if len(frame) != channels {
			logger.Warnw("frame length does not match channel count", "frame", i, "values", len(frame), "channels", channels)
		}
		frames[i] = frame
	}
	if raw.DeclaredFrames != len(frames) {
		logger.Warnw("declared frame count differs from frames read", "declared", raw.DeclaredFrames, "read", len(frames))
	}

	logger.Debugw("loaded skeleton",
		"root", root.Name,
		"nodes", root.NodeCount(),
		"channels", channels,
		"frames", len(frames),
		"frame_time", raw.FrameTime,
	)
	return &Skeleton{Root: root, Frames: frames, FrameTime: raw.FrameTime}, nil
}

func buildNode(raw *bvh.Node) (*Node, error) {
	name := raw.Name()

	offsetLine := raw.Child(bvh.TagOffset)
	if offsetLine == nil {
		return nil, NewNodeParseError(name, raw.Line, "missing OFFSET", nil)
	}
	if len(offsetLine.Values) != 3 {
		return nil, NewNodeParseError(name, offsetLine.Line,
			fmt.Sprintf("OFFSET needs 3 values, got %d", len(offsetLine.Values)), nil)
	}
	var offset [3]float64
	for i, value := range offsetLine.Values {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, NewNodeParseError(name, offsetLine.Line, "bad OFFSET value", err)
		}
		offset[i] = f
	}

	// A later CHANNELS line replaces an earlier one.
	var kinds []ChannelKind
	if channelLines := raw.Filter(bvh.TagChannels); len(channelLines) > 0 {
		channelLine := channelLines[len(channelLines)-1]
		if len(channelLine.Values) == 0 {
			return nil, NewNodeParseError(name, channelLine.Line, "CHANNELS has no count", nil)
		}
		count, err := strconv.Atoi(channelLine.Values[0])
		if err != nil {
			return nil, NewNodeParseError(name, channelLine.Line, "bad CHANNELS count", err)
		}
		channelNames := channelLine.Values[1:]
		if count != len(channelNames) {
			return nil, NewNodeParseError(name, channelLine.Line,
				fmt.Sprintf("CHANNELS declares %d channels but lists %d", count, len(channelNames)), nil)
		}
		for _, channelName := range channelNames {
			kind, err := ParseChannelKind(channelName)
			if err != nil {
				return nil, NewNodeParseError(name, channelLine.Line, "bad CHANNELS entry", err)
			}
			kinds = append(kinds, kind)
		}
	}

	var children []*Node
	for _, rawChild := range raw.Filter(bvh.TagJoint, bvh.TagEnd) {
		child, err := buildNode(rawChild)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	return NewNode(raw.Tag, name, r3.Vector{X: offset[0], Y: offset[1], Z: offset[2]}, kinds, children...), nil
}
