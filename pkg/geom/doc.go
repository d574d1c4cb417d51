// Package geom provides the 2D value types shared by the node viewer:
// vectors, axis-aligned boxes and the cubic curves used to draw links.
// All types are immutable values; every operation returns a new value.
package geom
