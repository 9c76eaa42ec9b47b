package cli

import (
	"fmt"
	"strconv"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"

	"github.com/wghou/BeeVeeH/config"
	"github.com/wghou/BeeVeeH/logging"
	"github.com/wghou/BeeVeeH/skeleton"
)

// kinContext is what every command needs: the run configuration and a logger writing to the
// app's error stream.
type kinContext struct {
	cfg    *config.Config
	logger logging.Logger
}

func newKinContext(c *cli.Context) (*kinContext, error) {
	cfg := config.Default()
	if path := c.String(generalFlagConfig); path != "" {
		var err error
		if cfg, err = config.Read(path); err != nil {
			return nil, err
		}
	}

	logger := logging.NewBlankLogger("bvhkin")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	logger.SetLevel(cfg.LogLevel)
	if c.Bool(generalFlagDebug) {
		logger.SetLevel(logging.DEBUG)
	}
	return &kinContext{cfg: cfg, logger: logger}, nil
}

func (kc *kinContext) parallelism(c *cli.Context) int {
	if c.IsSet(parallelFlag) {
		return c.Int(parallelFlag)
	}
	return kc.cfg.Parallelism
}

// load reads the BVH file named by the first argument and applies the configured weights.
func (kc *kinContext) load(c *cli.Context) (*skeleton.Skeleton, error) {
	if c.NArg() != 1 {
		return nil, errors.Errorf("%s expects exactly one FILE argument, got %d", c.Command.Name, c.NArg())
	}
	return kc.loadFile(c.Args().First())
}

func (kc *kinContext) loadFile(path string) (*skeleton.Skeleton, error) {
	s, err := skeleton.LoadFile(path, kc.logger.Sublogger("loader"))
	if err != nil {
		return nil, err
	}
	if err := skeleton.ApplyWeights(s.Root, kc.cfg.Weights); err != nil {
		return nil, errors.Wrap(err, "cannot apply configured weights")
	}
	return s, nil
}

func setup(c *cli.Context) (*kinContext, *skeleton.Skeleton, error) {
	kc, err := newKinContext(c)
	if err != nil {
		return nil, nil, err
	}
	s, err := kc.load(c)
	if err != nil {
		return nil, nil, err
	}
	return kc, s, nil
}

// DumpAction prints the hierarchy, posed at --frame when given.
func DumpAction(c *cli.Context) error {
	_, s, err := setup(c)
	if err != nil {
		return err
	}

	root := s.Root
	if c.IsSet(frameFlag) || c.Bool(coordinatesFlag) {
		frame, err := s.Frame(c.Int(frameFlag))
		if err != nil {
			return err
		}
		if root, err = s.Root.Pose(frame); err != nil {
			return err
		}
	}
	fmt.Fprint(c.App.Writer, root.Dump(c.Bool(coordinatesFlag)))
	return nil
}

// CoordinatesAction prints the world coordinates of every joint at --frame.
func CoordinatesAction(c *cli.Context) error {
	_, s, err := setup(c)
	if err != nil {
		return err
	}
	frame, err := s.Frame(c.Int(frameFlag))
	if err != nil {
		return err
	}
	pose, err := s.Root.Pose(frame)
	if err != nil {
		return err
	}
	rendered, err := pose.CoordinatesTable()
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", rendered)
	return nil
}

// DistanceAction prints the distance between --a and --b, or every consecutive distance and a
// summary of them.
func DistanceAction(c *cli.Context) error {
	kc, s, err := setup(c)
	if err != nil {
		return err
	}

	if c.Bool(consecutiveFlag) {
		distances, err := skeleton.ConsecutiveDistances(c.Context, s.Root, s.Frames, kc.parallelism(c))
		if err != nil {
			return err
		}
		if len(distances) == 0 {
			warningf(c.App.ErrWriter, "%s has fewer than two frames", c.Args().First())
			return nil
		}
		for i, d := range distances {
			printf(c.App.Writer, "%d\t%d\t%.6f", i, i+1, d)
		}
		summary, err := summarize(distances)
		if err != nil {
			return err
		}
		printf(c.App.Writer, "%s", summary)
		if c.Bool(histogramFlag) && floats.HasNaN(distances) {
			warningf(c.App.ErrWriter, "skipping histogram, %s has frames with NaN distances", c.Args().First())
		} else if c.Bool(histogramFlag) {
			bins := min(histogramBins, len(distances))
			if err := histogram.Fprint(c.App.Writer, histogram.Hist(bins, distances), histogram.Linear(histogramWidth)); err != nil {
				return errors.Wrap(err, "cannot print histogram")
			}
		}
		return nil
	}

	if !c.IsSet(frameAFlag) || !c.IsSet(frameBFlag) {
		return errors.New("distance needs --a and --b, or --consecutive")
	}
	a, err := s.Frame(c.Int(frameAFlag))
	if err != nil {
		return err
	}
	b, err := s.Frame(c.Int(frameBFlag))
	if err != nil {
		return err
	}
	d, err := s.Root.FrameDistance(a, b)
	if err != nil {
		return errors.Wrapf(err, "distance between frames %d and %d", c.Int(frameAFlag), c.Int(frameBFlag))
	}
	printf(c.App.Writer, "%.6f", d)
	return nil
}

const (
	histogramBins  = 10
	histogramWidth = 40
)

func summarize(distances []float64) (string, error) {
	data := stats.Float64Data(distances)
	mean, err := data.Mean()
	if err != nil {
		return "", err
	}
	median, err := data.Median()
	if err != nil {
		return "", err
	}
	maximum, err := data.Max()
	if err != nil {
		return "", err
	}
	stddev, err := data.StandardDeviation()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("mean %.6f\tmedian %.6f\tmax %.6f\tstddev %.6f", mean, median, maximum, stddev), nil
}

// MatrixAction prints the table of distances between all frames, or those named by --frames.
func MatrixAction(c *cli.Context) error {
	kc, s, err := setup(c)
	if err != nil {
		return err
	}

	indices := c.IntSlice(framesFlag)
	if len(indices) == 0 {
		indices = lo.Range(len(s.Frames))
	}
	frames, err := mapOver(indices, s.Frame)
	if err != nil {
		return err
	}
	matrix, err := skeleton.DistanceMatrix(c.Context, s.Root, frames, kc.parallelism(c))
	if err != nil {
		return err
	}

	t := table.NewWriter()
	header := table.Row{"frame"}
	for _, index := range indices {
		header = append(header, index)
	}
	t.AppendHeader(header)
	for i, row := range matrix {
		cells := table.Row{indices[i]}
		for _, d := range row {
			cells = append(cells, strconv.FormatFloat(d, 'f', 4, 64))
		}
		t.AppendRow(cells)
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}

// WatchAction prints a summary of the file now and after every change until interrupted.
func WatchAction(c *cli.Context) error {
	kc, err := newKinContext(c)
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return errors.Errorf("watch expects exactly one FILE argument, got %d", c.NArg())
	}
	path := c.Args().First()

	report := func() error {
		s, err := kc.loadFile(path)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("%s: %d joints, %d channels, %d frames at %gs",
			path, s.Root.NodeCount(), s.Root.ChannelCount(), len(s.Frames), s.FrameTime)
		distances, err := skeleton.ConsecutiveDistances(c.Context, s.Root, s.Frames, kc.parallelism(c))
		if err != nil {
			return err
		}
		if len(distances) > 0 {
			mean, err := stats.Mean(distances)
			if err != nil {
				return err
			}
			line += fmt.Sprintf(", mean frame to frame distance %.4f, path %.4f", mean, floats.Sum(distances))
		}
		infof(c.App.Writer, "%s", line)
		return nil
	}
	if err := report(); err != nil {
		return err
	}
	err = watchFile(c.Context, path, kc.logger.Sublogger("watch"), report)
	return multierr.Combine(err, kc.logger.Sync())
}

// SchemaAction prints the JSON schema of the config file.
func SchemaAction(c *cli.Context) error {
	schema, err := config.Schema()
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", schema)
	return nil
}
