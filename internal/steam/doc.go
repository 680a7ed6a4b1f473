// Package steam resolves the thermodynamic state of water and steam from
// any two independent intensive properties.
//
// # Properties and units
//
// A State carries up to six properties:
//
//	P  pressure           kPa
//	T  temperature        °C
//	x  quality            dimensionless, 0 liquid .. 1 vapor
//	v  specific volume    m³/kg
//	h  specific enthalpy  kJ/kg
//	s  specific entropy   kJ/(kg·K)
//
// # Resolution
//
// Resolve inspects which properties are set and picks the first available
// pair in the priority order
//
//	PT Px Pv Ph Ps  Tx Tv Th Ts  xv xh xs  vh vs hs
//
// Each pair has its own handler. Pairs led by P or T read the saturation
// boundary directly and classify the state by its implied quality:
// saturated when 0 ≤ x ≤ 1, superheated above. Below the liquid line a
// pressure and temperature pair, or a pressure with enthalpy or entropy,
// resolves as sub-cooled liquid using
//
//	h = hf(T) + (P − Psat(T))·vf(T),  s = sf(T),  v = vf(T)
//
// Pairs without P or T are implicit. Quality-led pairs solve for the
// saturation pressure. The remaining three first decide whether the state
// lies under the dome and then either solve for the saturation temperature
// or interpolate the superheated samples directly.
//
// Resolve fills only properties that were unset and never overwrites a
// supplied value. On failure the state is left untouched and one of
// *InsufficientInputError, *OutOfRangeError, *ConvergenceError or
// *AmbiguousInputError is returned.
//
// # Concurrency
//
// A Resolver is immutable once built and may be shared between goroutines.
// A State is a plain value holder and must not be resolved concurrently.
package steam
