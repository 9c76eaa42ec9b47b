// Package cli contains the bvhkin command line interface.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	generalFlagConfig = "config"
	generalFlagDebug  = "debug"

	frameFlag       = "frame"
	coordinatesFlag = "coordinates"
	frameAFlag      = "a"
	frameBFlag      = "b"
	consecutiveFlag = "consecutive"
	histogramFlag   = "histogram"
	framesFlag      = "frames"
	parallelFlag    = "parallel"
)

var parallelismFlag = &cli.IntFlag{
	Name:  parallelFlag,
	Usage: "evaluate frames on at most `N` goroutines, overriding the config",
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "bvhkin",
		Usage:           "inspect BVH motion files and compare their poses",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    generalFlagConfig,
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "dump",
				Usage:     "print the joint hierarchy with offsets and channel values",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  frameFlag,
						Usage: "load frame `N` before printing",
					},
					&cli.BoolFlag{
						Name:  coordinatesFlag,
						Usage: "include world coordinates",
					},
				},
				Action: DumpAction,
			},
			{
				Name:      "coords",
				Usage:     "print a table of world coordinates for one frame",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  frameFlag,
						Usage: "frame `N` to evaluate",
					},
				},
				Action: CoordinatesAction,
			},
			{
				Name:      "distance",
				Usage:     "print the weighted pose distance between frames",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  frameAFlag,
						Usage: "first frame",
					},
					&cli.IntFlag{
						Name:  frameBFlag,
						Usage: "second frame",
					},
					&cli.BoolFlag{
						Name:  consecutiveFlag,
						Usage: "compare every frame with the next and summarize",
					},
					&cli.BoolFlag{
						Name:  histogramFlag,
						Usage: "with --consecutive, also print a histogram of the distances",
					},
					parallelismFlag,
				},
				Action: DistanceAction,
			},
			{
				Name:      "matrix",
				Usage:     "print the distance between every pair of frames",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.IntSliceFlag{
						Name:  framesFlag,
						Usage: "only compare these frames, e.g. --frames 0,10,20",
					},
					parallelismFlag,
				},
				Action: MatrixAction,
			},
			{
				Name:      "watch",
				Usage:     "reload a file and print its summary every time it changes",
				ArgsUsage: "FILE",
				Flags:     []cli.Flag{parallelismFlag},
				Action:    WatchAction,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of the config file",
				Action: SchemaAction,
			},
		},
		// Exit codes are decided by the caller, see ExitError.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app := newApp()
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
