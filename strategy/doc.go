// Package strategy executes reductions under the four concurrency disciplines named by
// preduce.StrategyTag. Every strategy blocks until all of its goroutines have finished, and
// on failure returns the first error encountered without a partial result.
package strategy
