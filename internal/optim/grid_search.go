package optim

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/experiment"
)

// GridSearch tries every combination of the given parameter values.
type GridSearch struct {
	names  []string
	values [][]float64
}

func NewGridSearch(grid map[string][]float64) (*GridSearch, error) {
	g := &GridSearch{}
	for name := range grid {
		g.names = append(g.names, name)
	}
	sort.Strings(g.names)
	for _, name := range g.names {
		if len(grid[name]) == 0 {
			return nil, fmt.Errorf("%w: no values for %q", dynamo.ErrInvalidConfig, name)
		}
		g.values = append(g.values, grid[name])
	}
	if len(g.names) == 0 {
		return nil, fmt.Errorf("%w: empty grid", dynamo.ErrInvalidConfig)
	}
	return g, nil
}

// Size is the number of combinations.
func (g *GridSearch) Size() int {
	n := 1
	for _, v := range g.values {
		n *= len(v)
	}
	return n
}

// Point returns the i-th combination, last name varying fastest.
func (g *GridSearch) Point(i int) map[string]float64 {
	p := make(map[string]float64, len(g.names))
	for d := len(g.names) - 1; d >= 0; d-- {
		n := len(g.values[d])
		p[g.names[d]] = g.values[d][i%n]
		i /= n
	}
	return p
}

type Candidate struct {
	Params map[string]float64
	Score  float64
	Err    error
}

// Search runs one experiment per combination in parallel and returns the
// candidate with the lowest score, followed by all candidates in grid
// order. Build errors abort the search; a run that fails scores +Inf.
func (g *GridSearch) Search(
	ctx context.Context,
	build func(params map[string]float64) (*experiment.Experiment, error),
	score func(*dynamo.Result) float64,
) (Candidate, []Candidate, error) {
	all := make([]Candidate, g.Size())

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := range all {
		eg.Go(func() error {
			params := g.Point(i)
			exp, err := build(params)
			if err != nil {
				return fmt.Errorf("build %v: %w", params, err)
			}
			res, err := exp.Run(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				all[i] = Candidate{Params: params, Score: math.Inf(1), Err: err}
				return nil
			}
			s := score(res)
			if math.IsNaN(s) {
				s = math.Inf(1)
			}
			all[i] = Candidate{Params: params, Score: s}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Candidate{}, nil, err
	}

	best := all[0]
	for _, c := range all[1:] {
		if c.Score < best.Score {
			best = c
		}
	}
	return best, all, nil
}
