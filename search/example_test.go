package search_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lemnos/schema"
	"github.com/katalvlaran/lemnos/search"
	"github.com/katalvlaran/lemnos/shape"
)

// ExampleRun searches for the smallest IR of a repeat-then-project schema.
func ExampleRun() {
	start := schema.MustNode(shape.MustBound(shape.Between(1, 10), shape.Between(1, 10)), schema.Add,
		schema.WithName("start"))
	end := schema.MustNode(shape.MustBound(shape.Exact(1), shape.Exact(1)), schema.Add,
		schema.WithTransform(schema.Full{}), schema.WithName("end"))
	_ = start.AddGroup(schema.New(start, 0))
	_ = start.AddGroup(schema.New(end, 1))
	s, err := schema.NewSchema([]*schema.Node{start}, []*schema.Node{end})
	if err != nil {
		fmt.Println(err)
		return
	}

	cfg := search.DefaultConfig()
	cfg.MaxNodes = 8
	ev := search.EvaluatorFunc(func(_ context.Context, c *search.Candidate) (float64, error) {
		return float64(c.Graph.Len()), nil
	})
	res, err := search.Run(context.Background(), s, []shape.Shape{shape.Locked(1, 8)}, ev, cfg)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(len(res.Pool) <= cfg.PoolSize, res.Best.Graph.Len() >= 2, len(res.Generations))
	// Output:
	// true true 4
}
