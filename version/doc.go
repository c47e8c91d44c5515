// Package version implements the partial-order version algebra: versions,
// antichains (frontiers), the product lattice join/meet, and the coordinate
// extend/truncate operations iterate uses to add and remove an inner loop
// coordinate.
//
// A Version is a tuple of nonnegative integers ordered by the product
// partial order: u <= v iff every coordinate of u is <= the corresponding
// coordinate of v. An Antichain is a finite, pairwise-incomparable set of
// versions, interpreted as a frontier: the set of versions dominated by some
// element of the antichain.
package version
