// Package tables holds the tabulated water and steam reference data that the
// resolver interpolates over.
//
// Two tables are carried:
//
//   - the saturation table, one row per saturation temperature, giving the
//     saturation pressure and the liquid and vapor values of enthalpy,
//     entropy and specific volume;
//   - the superheated table, scattered (T, h, s, P) samples covering the
//     vapor region above the dome.
//
// Both files are whitespace separated with a single header line. Pressures
// are stored in bar on disk and converted to kPa on load, so every value
// handed out of this package uses the engine's unit system:
//
//	P  kPa      T  °C      h  kJ/kg      s  kJ/(kg·K)      v  m³/kg
//
// Superheated specific volume is not tabulated. It is derived from the ideal
// gas relation v = (R/M)(T+273)/P with R = 8.314 kJ/(kmol·K), M = 18 kg/kmol
// and P in kPa.
//
// Default returns the tables embedded in the binary. Parse and LoadFiles read
// alternative data sets, which are validated by New before use.
package tables
