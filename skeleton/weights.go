package skeleton

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
)

// ApplyWeights sets the Weight of every node whose name appears in weights. All problems are
// reported together: weights that are not positive and names that match no node.
func ApplyWeights(root *Node, weights map[string]float64) error {
	names := lo.Keys(weights)
	sort.Strings(names)

	var errs error
	for _, name := range names {
		if weight := weights[name]; weight <= 0 {
			errs = multierr.Append(errs, errors.Errorf("weight for %q must be positive, got %g", name, weight))
		}
	}
	if errs != nil {
		return errs
	}

	seen := make(map[string]bool, len(weights))
	root.Walk(func(_ int, node *Node) bool {
		if weight, ok := weights[node.Name]; ok {
			node.Weight = weight
			seen[node.Name] = true
		}
		return true
	})
	for _, name := range names {
		if !seen[name] {
			errs = multierr.Append(errs, errors.Errorf("no joint named %q", name))
		}
	}
	return errs
}
