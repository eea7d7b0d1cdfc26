// Package retile crops the first row of a sprite sheet into square patches and
// re-arranges a prefix of them into a rectangular grid.
//
// Tile is the pure image transform; Run wraps it with decoding, an atomic
// encode to the output path, and logging. Cell (r, c) of the output holds
// source patch r*Cols+c, so the output reads the source row left to right in
// row-major order.
package retile
