// Package main hosts the figprep CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration, applies flag overrides and
// builds the structured logger, then hands off to the retile and plot
// pipelines in internal/. Keep this package thin: pipeline behaviour belongs
// in the internal packages and is only surfaced here.
package main
