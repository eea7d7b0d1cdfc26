// Package metrics loads TensorBoard scalar exports into an in-memory table
// and smooths each (experiment, metric) series with a trailing rolling mean.
//
// File names follow "<experiment>_<metric>.csv"; the final underscore-separated
// token names the metric and everything before it names the experiment.
package metrics
