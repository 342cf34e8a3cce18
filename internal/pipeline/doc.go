// Package pipeline orchestrates a comparison run as an ordered sequence
// of steps: check inputs, load, flatten, compare, persist, write.
//
// A single run is fully synchronous; each step is a pure function of the
// accumulated run state. Every step failure is fatal to the run: there
// is no partial recovery, so no report file is written when a step
// fails. BatchProcessor runs many independent comparisons concurrently
// while keeping each run synchronous internally.
package pipeline
