// Copyright 2025 The Strata Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package loader provides the public API for reading training datasets.
//
// The text format is one sample per line: space-separated input values, a
// single comma, then space-separated target values. Loads are
// all-or-nothing; a single malformed line abandons the whole load.
//
// Example:
//
//	ds, err := loader.Load("training_sample.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = net.LoadSamples(ds.Inputs, ds.Targets)
package loader

import (
	"io"

	"github.com/strata-ml/strata/internal/loader"
)

// ErrBadSample reports a dataset line that cannot be parsed consistently.
var ErrBadSample = loader.ErrBadSample

// Dataset is an ordered, index-aligned collection of training pairs.
type Dataset = loader.Dataset

// Load reads a dataset file.
func Load(path string) (*Dataset, error) {
	return loader.Load(path)
}

// Read parses a dataset from r.
func Read(r io.Reader) (*Dataset, error) {
	return loader.Read(r)
}

// FromSlices builds an in-memory dataset from parallel value slices.
func FromSlices(inputs, targets [][]float64) (*Dataset, error) {
	return loader.FromSlices(inputs, targets)
}
