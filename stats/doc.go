// Package stats summarizes the timing samples collected by the benchmark harness
package stats
