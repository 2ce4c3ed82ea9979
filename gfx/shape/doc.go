// Package shape is the 2D scene model: primitives, collections and their
// transforms.
//
// Pipeline (fixed), per shape, mapping construction coordinates to the parent:
//
//	translate(position - anchor) → rotate about pivot → scale about origin
//
// The anchor is the position a shape was constructed at, so geometry is
// stored in absolute construction coordinates and a shape that never moves
// renders where it was built. The pivot defaults to the current position and
// the scale origin defaults to the pivot. A child of a Collection is mapped by
// its own transform and then by every ancestor's.
//
// Within one Collection children are painted in ascending z order; equal z
// keeps insertion order. z has no meaning across collections.
package shape
