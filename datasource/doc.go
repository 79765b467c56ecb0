// Package datasource produces numeric input sequences for reductions, either by loading
// them from JSON lines data or by generating them, and fingerprints them so that benchmark
// reports over the same data can be recognized.
package datasource
