package skeleton

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/wghou/BeeVeeH/utils"
)

// ChannelKind is one of the six BVH motion parameters.
type ChannelKind int

// The recognized channel kinds. Positions are in file units, rotations in degrees.
const (
	XPosition ChannelKind = iota
	YPosition
	ZPosition
	XRotation
	YRotation
	ZRotation
)

var channelNames = [...]string{
	XPosition: "Xposition",
	YPosition: "Yposition",
	ZPosition: "Zposition",
	XRotation: "Xrotation",
	YRotation: "Yrotation",
	ZRotation: "Zrotation",
}

// channelMatrices holds the homogeneous transform of each kind as a function of the channel value.
var channelMatrices = [...]func(float64) mgl64.Mat4{
	XPosition: func(v float64) mgl64.Mat4 { return mgl64.Translate3D(v, 0, 0) },
	YPosition: func(v float64) mgl64.Mat4 { return mgl64.Translate3D(0, v, 0) },
	ZPosition: func(v float64) mgl64.Mat4 { return mgl64.Translate3D(0, 0, v) },
	XRotation: func(v float64) mgl64.Mat4 { return mgl64.HomogRotate3DX(utils.DegToRad(v)) },
	YRotation: func(v float64) mgl64.Mat4 { return mgl64.HomogRotate3DY(utils.DegToRad(v)) },
	ZRotation: func(v float64) mgl64.Mat4 { return mgl64.HomogRotate3DZ(utils.DegToRad(v)) },
}

// ParseChannelKind maps a BVH channel name such as "Zrotation" to its kind.
func ParseChannelKind(name string) (ChannelKind, error) {
	for kind, n := range channelNames {
		if n == name {
			return ChannelKind(kind), nil
		}
	}
	return 0, NewParseError(fmt.Sprintf("unknown channel %q", name))
}

// Valid reports whether k is one of the six recognized kinds.
func (k ChannelKind) Valid() bool {
	return k >= XPosition && k <= ZRotation
}

func (k ChannelKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("ChannelKind(%d)", int(k))
	}
	return channelNames[k]
}

// IsRotation is true for the three rotation kinds.
func (k ChannelKind) IsRotation() bool {
	return k >= XRotation && k <= ZRotation
}

// A Channel is a single named scalar motion parameter of a joint.
type Channel struct {
	kind  ChannelKind
	value float64
}

// NewChannel returns a channel of the given kind with value 0.
func NewChannel(kind ChannelKind) *Channel {
	return &Channel{kind: kind}
}

// Kind is fixed at construction.
func (c *Channel) Kind() ChannelKind {
	return c.kind
}

// Value returns the current value.
func (c *Channel) Value() float64 {
	return c.value
}

// SetValue overwrites the value. Rotations are not wrapped.
func (c *Channel) SetValue(v float64) {
	c.value = v
}

// Matrix returns the homogeneous transform for the current value.
func (c *Channel) Matrix() mgl64.Mat4 {
	return channelMatrices[c.kind](c.value)
}

func (c *Channel) String() string {
	return fmt.Sprintf("Channel(%s) = %v", c.kind, c.value)
}
