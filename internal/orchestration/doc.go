// Package orchestration coordinates the concurrent comparison of library
// variants and aggregates their results. It decouples the comparison logic
// from presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration
