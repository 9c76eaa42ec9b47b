package skeleton

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.viam.com/test"
)

func TestParseChannelKind(t *testing.T) {
	for _, name := range []string{"Xposition", "Yposition", "Zposition", "Xrotation", "Yrotation", "Zrotation"} {
		kind, err := ParseChannelKind(name)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, kind.Valid(), test.ShouldBeTrue)
		test.That(t, kind.String(), test.ShouldEqual, name)
	}

	_, err := ParseChannelKind("Wrotation")
	test.That(t, err, test.ShouldNotBeNil)
	var parseErr *ParseError
	test.That(t, errors.As(err, &parseErr), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "Wrotation")

	test.That(t, ChannelKind(17).Valid(), test.ShouldBeFalse)
	test.That(t, ChannelKind(17).String(), test.ShouldEqual, "ChannelKind(17)")
	test.That(t, YRotation.IsRotation(), test.ShouldBeTrue)
	test.That(t, ZPosition.IsRotation(), test.ShouldBeFalse)
}

func TestChannelValue(t *testing.T) {
	c := NewChannel(XRotation)
	test.That(t, c.Kind(), test.ShouldEqual, XRotation)
	test.That(t, c.Value(), test.ShouldEqual, 0.)
	test.That(t, c.Matrix().ApproxEqual(mgl64.Ident4()), test.ShouldBeTrue)

	c.SetValue(725)
	test.That(t, c.Value(), test.ShouldEqual, 725.)
	test.That(t, c.Kind(), test.ShouldEqual, XRotation)
	test.That(t, c.String(), test.ShouldEqual, "Channel(Xrotation) = 725")
}

func TestChannelMatrices(t *testing.T) {
	for _, tc := range []struct {
		kind     ChannelKind
		value    float64
		expected mgl64.Mat4
	}{
		// mgl64 matrices are column major: each group of four is a column.
		{XPosition, 2.5, mgl64.Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 2.5, 0, 0, 1}},
		{YPosition, -4, mgl64.Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, -4, 0, 1}},
		{ZPosition, 7, mgl64.Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 7, 1}},
	} {
		c := NewChannel(tc.kind)
		c.SetValue(tc.value)
		test.That(t, c.Matrix(), test.ShouldResemble, tc.expected)
	}

	cos, sin := math.Cos(math.Pi/6), math.Sin(math.Pi/6)
	for _, tc := range []struct {
		kind ChannelKind
		// row-major expectations, in the layout they are usually written down
		rows [4][4]float64
	}{
		{XRotation, [4][4]float64{{1, 0, 0, 0}, {0, cos, -sin, 0}, {0, sin, cos, 0}, {0, 0, 0, 1}}},
		{YRotation, [4][4]float64{{cos, 0, sin, 0}, {0, 1, 0, 0}, {-sin, 0, cos, 0}, {0, 0, 0, 1}}},
		{ZRotation, [4][4]float64{{cos, -sin, 0, 0}, {sin, cos, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}},
	} {
		c := NewChannel(tc.kind)
		c.SetValue(30)
		m := c.Matrix()
		for row := 0; row < 4; row++ {
			for col := 0; col < 4; col++ {
				test.That(t, m.At(row, col), test.ShouldAlmostEqual, tc.rows[row][col])
			}
		}
	}
}
