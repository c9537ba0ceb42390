// Package response computes lagged response functions: the correlation
// between future midpoint returns and contemporaneous trade signs as a
// function of the lag in seconds.
//
// A day pass produces per-lag sums and sample counts; many days reduce by
// elementwise addition and a final division, so the reduction is
// commutative and tolerates all-zero contributions from failed days.
package response
