// Package task provides the bounded, process-wide worker pool that runs
// background units of work. Producers submit Task values through a bounded
// queue and a fixed set of worker goroutines executes them.
package task
