// Package backend provides overlay renderers. Terminal draws a scaled
// preview of the overlay into a tcell screen, which is what `pounce
// preview` uses to exercise hint and grid layout without a compositor.
package backend
