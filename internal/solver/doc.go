// Package solver finds roots of scalar functions of one variable.
//
// Solve starts with secant iteration from a caller supplied guess, which is
// fast on the smooth residuals produced by the saturation curves. When the
// secant stalls, leaves the domain, or hits a point the residual cannot be
// evaluated at, Solve falls back to scanning the domain for a sign change
// and polishing the bracket with Brent's method. A failure to converge is
// always reported as a *ConvergenceError, never as a silent best effort.
//
// Roots enumerates every root on a bounded domain instead, for residuals
// with more than one zero where the caller picks among them. It also
// reports tangent roots, where the residual touches zero without
// changing sign.
package solver
