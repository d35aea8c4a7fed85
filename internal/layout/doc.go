// Package layout computes masonry grid placements.
//
// Compute takes a container width, a column spec, gutters, an orientation
// and the natural height of every item, and returns one Rect per item
// together with the content box. It is a pure function: it reads no clocks,
// touches no rendering surface and never mutates its input, so the same
// Params always produce bit-identical Results.
//
// Column resolution:
//
//	Fixed(w):   columns = floor((cw - (cw/w - 1) * gutter) / w), width = w
//	Percent(p): columns = floor(100/p), width = (cw - gutter*(columns-1)) / columns
//
// With the Vertical orientation every item goes to the first column with
// the smallest accumulated height. With Horizontal, columns are filled in
// order until they reach the average column height. Either way the whole
// grid is then centred inside the container.
//
// Right-to-left mirroring is a rendering concern and is not applied here.
package layout
