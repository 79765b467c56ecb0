// Package preduce contains the core components of preduce, a library for running a single
// reduction under several interchangeable execution strategies and benchmarking them against
// each other. This root package defines the types shared by every strategy: the Accumulator
// which merges partial results, the Job which binds an input to a Transform and an Accumulator,
// the StrategyTag which selects a concurrency discipline, and the Partition ranges handed to
// workers.
package preduce
