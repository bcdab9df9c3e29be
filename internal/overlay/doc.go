// Package overlay maintains the set of drawable elements (hint badges,
// grid cells, the mode indicator) and reconciles successive frames into
// minimal add/update/remove deltas for a rendering backend. Rendering is
// deliberately dumb: backends apply deltas verbatim and keep no domain
// knowledge of hints or grids.
package overlay
