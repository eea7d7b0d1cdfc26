// Package textutil provides filename helpers for figure outputs.
package textutil
