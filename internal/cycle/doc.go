// Package cycle computes ideal and non-ideal Rankine power cycles from
// resolved steam states.
//
// The four states are
//
//	1  turbine inlet   (PHigh, THigh) or (PHigh, x)
//	2  turbine exit    (PLow, h1 − η(h1 − h2s)), h2s at (PLow, s1)
//	3  pump inlet      (PLow, x = 0)
//	4  pump exit       (PHigh, h3 + v3(PHigh − PLow))
package cycle
