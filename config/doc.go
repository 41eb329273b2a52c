// Package config loads schema declarations and search tuning from YAML.
//
// A document names every node once and refers to nodes by name everywhere
// else, so cycles and self-loops are written directly:
//
//	inputs: [[1, 8]]
//	starts: [start]
//	ends: [end]
//	nodes:
//	  - name: start
//	    bound: ["1..10", "1..10"]
//	    groups:
//	      - [{to: start, priority: 0}]
//	      - [{to: end, priority: 1}]
//	  - name: end
//	    bound: ["1", "1"]
//	    transform: {kind: full}
//	search:
//	  generations: 8
//
// Load rejects unknown keys. Document.Schema builds and validates the graph;
// Document.Shapes returns the compile inputs; Document.Search is a
// search.Config pre-filled with search.DefaultConfig.
package config
