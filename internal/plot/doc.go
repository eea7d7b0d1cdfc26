// Package plot turns a smoothed metrics table into one multi-panel figure per
// experiment. Each panel is a go-chart line chart; panels are composited side
// by side under a suptitle and written as a single image.
package plot
