// Package saturation locates points on the liquid-vapor saturation curve.
//
// A Locator is built once from the saturation table. Every column is fitted
// with a monotone piecewise cubic (Fritsch-Butland) so that interpolated
// values never overshoot between rows: against ln P for pressure keyed
// lookups and against T for temperature keyed lookups. Pressures and
// specific volumes vary over several decades and are interpolated in log
// space.
//
// Inverse lookups answer "at which saturation temperature does the liquid
// (or vapor) line take this value". They exist only for columns that are
// strictly monotonic in the table; asking for any other column returns
// ErrNotMonotonic.
//
// Lookups outside the tabulated span return a *tables.RangeError. Values are
// never extrapolated.
package saturation
