package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/wghou/BeeVeeH/skeleton"
)

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := NewApp(&out, &errOut)
	err := app.Run(append([]string{"bvhkin"}, args...))
	return out.String(), errOut.String(), err
}

func TestDumpCommand(t *testing.T) {
	out, _, err := runApp(t, "dump", "testdata/small.bvh")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldStartWith, "Node(Hips), offset(0, 0, 0)\n\tChannels:\n")
	test.That(t, out, test.ShouldContainSubstring, "\tNode(LeftHip), offset(3.91, 0, 0)\n")
	test.That(t, out, test.ShouldNotContainSubstring, "World coordinates")

	out, _, err = runApp(t, "dump", "--frame", "1", "--coordinates", "testdata/small.bvh")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "\tWorld coordinates: (1.50, 2.00, -3.00)\n")
	test.That(t, out, test.ShouldContainSubstring, "Channel(Yrotation) = 90")
}

func TestCoordsCommand(t *testing.T) {
	out, _, err := runApp(t, "coords", "--frame", "1", "testdata/small.bvh")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "LeftHip")
	test.That(t, out, test.ShouldContainSubstring, "-6.3862")

	_, _, err = runApp(t, "coords", "--frame", "7", "testdata/small.bvh")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "out of range")
	test.That(t, ExitCode(err), test.ShouldEqual, ExitGeneral)
}

func TestDistanceCommand(t *testing.T) {
	out, _, err := runApp(t, "distance", "--a", "0", "--b", "1", "testdata/small.bvh")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldEqual, "34.924136\n")

	out, _, err = runApp(t, "-c", "testdata/weights.yaml", "distance", "--a", "1", "--b", "2", "testdata/small.bvh")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldEqual, "7.820000\n")

	out, _, err = runApp(t, "distance", "--consecutive", "--parallel", "2", "testdata/small.bvh")
	test.That(t, err, test.ShouldBeNil)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	test.That(t, len(lines), test.ShouldEqual, 3)
	test.That(t, lines[0], test.ShouldEqual, "0\t1\t34.924136")
	test.That(t, lines[1], test.ShouldEqual, "1\t2\t3.910000")
	test.That(t, lines[2], test.ShouldStartWith, "mean 19.417068\tmedian 19.417068\tmax 34.924136")

	histOut, _, err := runApp(t, "distance", "--consecutive", "--histogram", "testdata/small.bvh")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, histOut, test.ShouldStartWith, out)
	test.That(t, len(histOut), test.ShouldBeGreaterThan, len(out))

	_, _, err = runApp(t, "distance", "--a", "0", "testdata/small.bvh")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "--consecutive")
}

func TestDistanceHistogramSkipsNaN(t *testing.T) {
	out, errOut, err := runApp(t, "distance", "--consecutive", "--histogram", "testdata/nan.bvh")
	test.That(t, err, test.ShouldBeNil)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	test.That(t, len(lines), test.ShouldEqual, 3)
	test.That(t, lines[0], test.ShouldEqual, "0\t1\t34.924136")
	test.That(t, lines[1], test.ShouldEqual, "1\t2\tNaN")
	test.That(t, errOut, test.ShouldContainSubstring, "skipping histogram")
}

func TestMatrixCommand(t *testing.T) {
	out, _, err := runApp(t, "matrix", "testdata/small.bvh")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "34.9241")
	test.That(t, out, test.ShouldContainSubstring, "33.6418")
	test.That(t, out, test.ShouldContainSubstring, "3.9100")

	out, _, err = runApp(t, "matrix", "--frames", "1,2", "testdata/small.bvh")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "3.9100")
	test.That(t, out, test.ShouldNotContainSubstring, "34.9241")

	_, _, err = runApp(t, "matrix", "--frames", "0,9", "testdata/small.bvh")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSchemaCommand(t *testing.T) {
	out, _, err := runApp(t, "schema")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, `"log_level"`)
}

func TestCommandErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
		code int
	}{
		{"missing file", []string{"dump", "testdata/missing.bvh"}, ExitGeneral},
		{"no file argument", []string{"dump"}, ExitGeneral},
		{"syntax", []string{"dump", "testdata/broken.bvh"}, ExitParse},
		{"underflow", []string{"distance", "--a", "0", "--b", "1", "testdata/short.bvh"}, ExitUnderflow},
		{"missing config", []string{"-c", "testdata/missing.yaml", "dump", "testdata/small.bvh"}, ExitGeneral},
		{"unknown joint weight", []string{"-c", "testdata/unknown_joint.yaml", "dump", "testdata/small.bvh"}, ExitGeneral},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := runApp(t, tc.args...)
			test.That(t, err, test.ShouldNotBeNil)
			test.That(t, ExitCode(err), test.ShouldEqual, tc.code)
			test.That(t, ExitError(err).ExitCode(), test.ShouldEqual, tc.code)
		})
	}
}

func TestUnderflowMessageNamesNode(t *testing.T) {
	_, errOut, err := runApp(t, "--debug", "distance", "--a", "0", "--b", "1", "testdata/short.bvh")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"child"`)
	test.That(t, err.Error(), test.ShouldContainSubstring, "frames 0 and 1")
	test.That(t, errOut, test.ShouldContainSubstring, "frame length does not match channel count")
}

func TestExitCode(t *testing.T) {
	test.That(t, ExitCode(nil), test.ShouldEqual, 0)
	test.That(t, ExitCode(errors.New("boom")), test.ShouldEqual, ExitGeneral)
	for _, tc := range []struct {
		err  error
		code int
	}{
		{skeleton.NewParseError("bad"), ExitParse},
		{skeleton.NewUnderflowError("a", 3, 1), ExitUnderflow},
		{&skeleton.MismatchError{NameA: "a", NameB: "b", Reason: "names differ"}, ExitMismatch},
		{skeleton.NewStaleStateError("a"), ExitStale},
	} {
		test.That(t, ExitCode(tc.err), test.ShouldEqual, tc.code)
		test.That(t, ExitCode(errors.Wrap(tc.err, "context")), test.ShouldEqual, tc.code)
		test.That(t, ExitCode(fmt.Errorf("wrapped: %w", tc.err)), test.ShouldEqual, tc.code)
	}
	exitErr := ExitError(skeleton.NewStaleStateError("Head"))
	test.That(t, exitErr.ExitCode(), test.ShouldEqual, ExitStale)
	test.That(t, exitErr.Error(), test.ShouldStartWith, "Error: ")
}

func TestWatchCommandReportsUntilDone(t *testing.T) {
	var out, errOut bytes.Buffer
	app := NewApp(&out, &errOut)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	err := app.RunContext(ctx, []string{"bvhkin", "watch", "testdata/small.bvh"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out.String(), test.ShouldContainSubstring, "6 joints, 15 channels, 3 frames")
	test.That(t, out.String(), test.ShouldContainSubstring, "mean frame to frame distance 19.4171, path 38.8341")
}
