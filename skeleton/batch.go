package skeleton

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/wghou/BeeVeeH/utils"
)

// FramePair names two frames, by index, whose distance is wanted.
type FramePair struct {
	A, B int
}

// FrameDistances computes reference.FrameDistance for every pair, using up to parallelism goroutines
// (utils.ParallelFactor when not positive). Every evaluation works on its own clones, so reference
// is only read. Results are in pair order. The first failure cancels the rest.
func FrameDistances(
	ctx context.Context,
	reference *Node,
	frames []Frame,
	pairs []FramePair,
	parallelism int,
) ([]float64, error) {
	for _, pair := range pairs {
		if pair.A < 0 || pair.A >= len(frames) || pair.B < 0 || pair.B >= len(frames) {
			return nil, errors.Errorf("frame pair (%d, %d) out of range [0, %d)", pair.A, pair.B, len(frames))
		}
	}

	results := make([]float64, len(pairs))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(utils.ClampParallelism(parallelism))
	for i, pair := range pairs {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := reference.FrameDistance(frames[pair.A], frames[pair.B])
			if err != nil {
				return errors.Wrapf(err, "distance between frames %d and %d", pair.A, pair.B)
			}
			results[i] = d
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ConsecutiveDistances returns the distance between each frame and the next, len(frames)-1 values.
func ConsecutiveDistances(ctx context.Context, reference *Node, frames []Frame, parallelism int) ([]float64, error) {
	if len(frames) < 2 {
		return []float64{}, nil
	}
	pairs := make([]FramePair, 0, len(frames)-1)
	for i := 0; i+1 < len(frames); i++ {
		pairs = append(pairs, FramePair{i, i + 1})
	}
	return FrameDistances(ctx, reference, frames, pairs, parallelism)
}

// DistanceMatrix returns the symmetric matrix of distances between all frames. Only the upper
// triangle is computed; the diagonal is zero.
func DistanceMatrix(ctx context.Context, reference *Node, frames []Frame, parallelism int) ([][]float64, error) {
	var pairs []FramePair
	for i := range frames {
		for j := i + 1; j < len(frames); j++ {
			pairs = append(pairs, FramePair{i, j})
		}
	}
	distances, err := FrameDistances(ctx, reference, frames, pairs, parallelism)
	if err != nil {
		return nil, err
	}

	matrix := make([][]float64, len(frames))
	for i := range matrix {
		matrix[i] = make([]float64, len(frames))
	}
	for k, pair := range pairs {
		matrix[pair.A][pair.B] = distances[k]
		matrix[pair.B][pair.A] = distances[k]
	}
	return matrix, nil
}
