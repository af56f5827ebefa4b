// Package driving defines the interfaces through which the CLI drives
// the core: the pipeline operations and build orchestration.
package driving
