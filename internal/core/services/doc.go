// Package services implements the core pipeline operations: counting
// token streams into raw count tables, classifying language support, and
// merging per-source tables into one frequency distribution per language.
// The build orchestrator ties them together under the concurrency
// budgets.
package services
