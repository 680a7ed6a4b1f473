// Package superheat interpolates the scattered superheated vapor samples.
//
// Any two of temperature, pressure, enthalpy, entropy and specific volume
// fix a superheated state. For each pair of axes the samples are projected
// onto that plane (pressure and volume in log space), scaled to the unit
// square and Delaunay triangulated. A query is located in its triangle and
// the remaining properties are blended with barycentric weights. Queries at
// a sample reproduce that sample exactly.
//
// The samples are the superheated table plus the saturated vapor rows of
// the saturation table, so the hull follows the vapor line at every
// saturation row. LookupFrom covers the sliver left between rows.
//
// Triangulations are built on first use of an axis pair and cached, so an
// Interpolator may be shared between goroutines. Queries outside the convex
// hull of the samples fail with a *tables.RangeError.
package superheat
