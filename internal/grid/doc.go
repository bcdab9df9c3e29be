// Package grid divides a rectangle into labeled cells for coarse pointer
// targeting. Selecting a cell either recursively subdivides it or, once
// cells are too small to split further, yields the cell center as the
// pointer target. A history stack supports backing out one level at a time.
package grid
