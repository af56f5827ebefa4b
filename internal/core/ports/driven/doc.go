// Package driven defines the interfaces the core depends on: token
// streams, count-table storage, document archives, corpus fetchers and
// the build-state ledger. Adapters under internal/adapters/driven provide
// the implementations.
package driven
