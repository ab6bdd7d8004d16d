// Package ui holds the color themes shared by the CLI presenters and the
// TUI dashboard. Host and library lines never go through it; only the
// diagnostic surfaces (comparison tables, listings, dashboard) are styled.
package ui
