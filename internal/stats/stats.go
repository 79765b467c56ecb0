package stats

import (
	"time"
)

const statisticRollingWindows = 5

// RunStatistics contains statistics about a running benchmark
type RunStatistics struct {
	started                      bool
	finished                     bool
	startTime                    time.Time
	totalRuntime                 time.Duration
	warmupInvocations            int
	timedInvocations             int
	recentInvocationRuntimes     []time.Duration // for rolling average of recent invocation times
	recentInvocationRuntimesHead int
	numRecentInvocationRuntimes  int

	// temp vars
	currentInvocationStartTime time.Time
}

// Start triggers statistics tracking, if it hasn't been started already
func (rs *RunStatistics) Start() {
	if !rs.started {
		rs.started = true
		rs.startTime = time.Now()
		rs.recentInvocationRuntimes = make([]time.Duration, statisticRollingWindows)
	}
}

// Finish completes statistics tracking
func (rs *RunStatistics) Finish() {
	rs.totalRuntime = time.Since(rs.startTime)
	rs.finished = true
}

// EndWarmup counts one untimed invocation
func (rs *RunStatistics) EndWarmup() {
	rs.warmupInvocations++
}

// StartInvocation tracks the beginning of a timed invocation
func (rs *RunStatistics) StartInvocation() {
	rs.currentInvocationStartTime = time.Now()
}

// EndInvocation tracks the end of a timed invocation, returning its elapsed time
func (rs *RunStatistics) EndInvocation() time.Duration {
	elapsed := time.Since(rs.currentInvocationStartTime)
	rs.recentInvocationRuntimes[rs.recentInvocationRuntimesHead] = elapsed
	rs.recentInvocationRuntimesHead = (rs.recentInvocationRuntimesHead + 1) % len(rs.recentInvocationRuntimes)
	if rs.numRecentInvocationRuntimes < len(rs.recentInvocationRuntimes) {
		rs.numRecentInvocationRuntimes++
	}
	rs.timedInvocations++
	return elapsed
}

// GetStartTime returns the start time of the benchmark
func (rs *RunStatistics) GetStartTime() time.Time {
	return rs.startTime
}

// GetRuntime returns the running time of the benchmark
func (rs *RunStatistics) GetRuntime() time.Duration {
	if rs.finished {
		return rs.totalRuntime
	}
	return time.Since(rs.startTime)
}

// GetNumWarmupInvocations returns the number of untimed invocations completed so far
func (rs *RunStatistics) GetNumWarmupInvocations() int {
	return rs.warmupInvocations
}

// GetNumTimedInvocations returns the number of timed invocations completed so far
func (rs *RunStatistics) GetNumTimedInvocations() int {
	return rs.timedInvocations
}

// GetCurrentInvocationTime returns a rolling average of recent invocation times
func (rs *RunStatistics) GetCurrentInvocationTime() time.Duration {
	if rs.numRecentInvocationRuntimes == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range rs.recentInvocationRuntimes {
		total += d
	}
	return total / time.Duration(rs.numRecentInvocationRuntimes)
}
