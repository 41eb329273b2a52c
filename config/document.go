// SPDX-License-Identifier: MIT
// Package: lemnos/config
//
// document.go — YAML document model and loading.

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lemnos/search"
	"github.com/katalvlaran/lemnos/shape"
)

// Document is a complete search declaration: the schema graph, its compile
// inputs and the search tuning.
type Document struct {
	Nodes  []NodeSpec `yaml:"nodes"`
	Starts []string   `yaml:"starts"`
	Ends   []string   `yaml:"ends"`
	// Inputs holds one locked shape per start, in Starts order.
	Inputs [][]int `yaml:"inputs"`
	// Search starts from search.DefaultConfig; listed keys override it.
	Search search.Config `yaml:"search"`
}

// NodeSpec declares one schema node.
type NodeSpec struct {
	Name string `yaml:"name"`
	// Bound lists one axis per rank: "*", "8", "1..64", "4.." or "..64".
	Bound          []string           `yaml:"bound"`
	Merge          string             `yaml:"merge"`
	Transform      TransformSpec      `yaml:"transform"`
	Activation     string             `yaml:"activation"`
	Regularization RegularizationSpec `yaml:"regularization"`
	// Groups are ordered; each group is a list of transitions.
	Groups [][]TransitionSpec `yaml:"groups"`
}

// TransformSpec selects identity (the default), conv or full.
type TransformSpec struct {
	Kind      string    `yaml:"kind"`
	Kernel    []int     `yaml:"kernel"`
	Stride    []int     `yaml:"stride"`
	Dilation  []int     `yaml:"dilation"`
	Padding   []int     `yaml:"padding"`
	Depthwise bool      `yaml:"depthwise"`
	Growth    []float64 `yaml:"growth"`
}

// RegularizationSpec names a regularization and its drop probability.
type RegularizationSpec struct {
	Kind string  `yaml:"kind"`
	P    float64 `yaml:"p"`
}

// TransitionSpec is one edge of a group.
type TransitionSpec struct {
	To       string `yaml:"to"`
	Priority int    `yaml:"priority"`
	// Join is "new" (default), "existing" or "auto".
	Join string `yaml:"join"`
}

// Load decodes one document from r. Unknown keys are rejected.
func Load(r io.Reader) (*Document, error) {
	doc := &Document{Search: search.DefaultConfig()}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrBadDocument)
		}
		return nil, fmt.Errorf("%w: %w", ErrBadDocument, err)
	}
	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("%w: no nodes", ErrBadDocument)
	}

	return doc, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path) // #nosec G304 -- caller chooses the document
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}

// Shapes returns Inputs as locked shapes.
func (d *Document) Shapes() ([]shape.Shape, error) {
	out := make([]shape.Shape, len(d.Inputs))
	for i, dims := range d.Inputs {
		s, err := shape.NewLocked(dims...)
		if err != nil {
			return nil, fmt.Errorf("%w: input %d: %w", ErrBadDocument, i, err)
		}
		out[i] = s
	}

	return out, nil
}
