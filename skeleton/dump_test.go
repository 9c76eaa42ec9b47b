package skeleton

import (
	"errors"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestDump(t *testing.T) {
	root := twoJointChain(r3.Vector{X: 10})
	test.That(t, root.LoadFrame(Frame{1, 2, 3, 90, 0}), test.ShouldBeNil)

	expected := "Node(root), offset(0, 0, 0)\n" +
		"\tChannels:\n" +
		"\t\tChannel(Xposition) = 1\n" +
		"\t\tChannel(Yposition) = 2\n" +
		"\t\tChannel(Zposition) = 3\n" +
		"\t\tChannel(Yrotation) = 90\n" +
		"\tNode(child), offset(10, 0, 0)\n" +
		"\t\tChannels:\n" +
		"\t\t\tChannel(Yrotation) = 0\n"
	test.That(t, root.Dump(false), test.ShouldEqual, expected)
	test.That(t, root.String(), test.ShouldEqual, expected)

	stale := root.Dump(true)
	test.That(t, strings.Count(stale, "World coordinates: not available"), test.ShouldEqual, 2)

	root.ApplyRootTransformation()
	dump := root.Dump(true)
	lines := strings.Split(dump, "\n")
	test.That(t, lines[1], test.ShouldEqual, "\tWorld coordinates: (1.00, 2.00, 3.00)")
	test.That(t, lines[8], test.ShouldEqual, "\t\tWorld coordinates: (1.00, 2.00, -7.00)")
}

func TestDumpEndSite(t *testing.T) {
	s := loadSmall(t)
	dump := s.Root.Dump(false)
	test.That(t, dump, test.ShouldContainSubstring, "\t\t\tNode(Site), offset(0, 3, 0)\n\t\t\t\tChannels:\n")
	test.That(t, strings.Count(dump, "Node("), test.ShouldEqual, 6)
	test.That(t, strings.Count(dump, "Channel("), test.ShouldEqual, 15)
}

func TestCoordinatesTable(t *testing.T) {
	s := loadSmall(t)

	_, err := s.Root.CoordinatesTable()
	var stale *StaleStateError
	test.That(t, errors.As(err, &stale), test.ShouldBeTrue)
	test.That(t, stale.Node, test.ShouldEqual, "Hips")

	pose, err := s.Root.Pose(s.Frames[1])
	test.That(t, err, test.ShouldBeNil)
	rendered, err := pose.CoordinatesTable()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rendered, test.ShouldContainSubstring, "JOINT")
	test.That(t, rendered, test.ShouldContainSubstring, "LeftHip")
	test.That(t, rendered, test.ShouldContainSubstring, "1.5000")
	test.That(t, rendered, test.ShouldContainSubstring, "-6.3862")
	test.That(t, rendered, test.ShouldContainSubstring, "8.9636")
}
