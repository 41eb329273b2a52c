// Command lemnos loads a YAML search declaration, runs the population search
// and prints the best IR found.
//
// The built-in evaluator prefers IRs with the smallest total activation
// volume, which keeps the command useful without a training backend.
//
//	lemnos -config classifier.yaml -dot best.dot
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"goa.design/clue/log"

	"github.com/katalvlaran/lemnos/config"
	"github.com/katalvlaran/lemnos/search"
)

func main() {
	var (
		configF = flag.String("config", "", "YAML search declaration (required)")
		seedF   = flag.Int64("seed", 0, "Override the search seed (0 keeps the document's)")
		dotF    = flag.String("dot", "", "Write the best IR as Graphviz to this file")
		dbgF    = flag.Bool("debug", false, "Log compile backtracking")
	)
	flag.Parse()

	format := log.FormatJSON
	if log.IsTerminal() {
		format = log.FormatTerminal
	}
	ctx := log.Context(context.Background(), log.WithFormat(format))
	if *dbgF {
		ctx = log.Context(ctx, log.WithDebug())
		log.Debugf(ctx, "debug logs enabled")
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *configF == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(ctx, *configF, *seedF, *dotF); err != nil {
		log.Errorf(ctx, err, "lemnos failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, path string, seed int64, dotPath string) error {
	doc, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	s, err := doc.Schema()
	if err != nil {
		return err
	}
	inputs, err := doc.Shapes()
	if err != nil {
		return err
	}
	cfg := doc.Search
	if seed != 0 {
		cfg.Seed = seed
	}

	res, err := search.Run(ctx, s, inputs, search.EvaluatorFunc(volume), cfg)
	if err != nil {
		return err
	}

	best := res.Best
	st := best.Graph.Stats()
	log.Print(ctx, log.KV{K: "msg", V: "best candidate"},
		log.KV{K: "id", V: best.ID},
		log.KV{K: "generation", V: best.Generation},
		log.KV{K: "score", V: best.Score},
		log.KV{K: "nodes", V: st.Nodes},
		log.KV{K: "depth", V: st.Depth},
		log.KV{K: "failures", V: res.Failures})

	order, err := best.Graph.Order()
	if err != nil {
		return err
	}
	for _, id := range order {
		n, err := best.Graph.Node(id)
		if err != nil {
			return err
		}
		l := n.Layer()
		fmt.Printf("%-12s %-32s %-8s %-8s %s -> %s\n",
			n.Key(), l.Transform, l.Activation, l.Regularization, l.Input, l.Output)
	}

	if dotPath == "" {
		return nil
	}
	b, err := best.Graph.MarshalDOT("best")
	if err != nil {
		return err
	}

	return os.WriteFile(dotPath, b, 0o644)
}

// volume scores an IR by the summed element count of its outputs.
func volume(_ context.Context, c *search.Candidate) (float64, error) {
	return float64(c.Graph.Stats().Volume), nil
}
