// Package config loads, normalizes, and validates figprep configuration data.
//
// It supplies repository defaults that reproduce the historical figure
// constants (256px patches, an 18 patch source row re-tiled as 3x6, a five
// sample smoothing window), expands user paths including tilde shortcuts, and
// reads TOML files. Command-line flags override individual values after Load.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
