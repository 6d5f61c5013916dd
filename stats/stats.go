// Package stats has the running statistics used to summarize batches of
// automatic games.
package stats

import "math"

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic keeps a running mean and variance (Welford's algorithm) along
// with the extremes seen.
type Statistic struct {
	n        int
	mean     float64
	m2       float64
	min, max float64
}

func (s *Statistic) Push(val float64) {
	s.n++
	if s.n == 1 {
		s.mean, s.m2 = val, 0
		s.min, s.max = val, val
		return
	}
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
	s.min = math.Min(s.min, val)
	s.max = math.Max(s.max, val)
}

func (s *Statistic) Mean() float64 {
	return s.mean
}

func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0.0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) Min() float64 { return s.min }
func (s *Statistic) Max() float64 { return s.max }

// StandardError returns the standard error of the mean.
func (s *Statistic) StandardError() float64 {
	if s.n == 0 {
		return 0.0
	}
	return math.Sqrt(s.Variance() / float64(s.n))
}

func (s *Statistic) Iterations() int {
	return s.n
}

// Proportion is a count of successes out of some number of trials, such as
// games won by a team.
type Proportion struct {
	Successes int
	Trials    int
}

func (p Proportion) Rate() float64 {
	if p.Trials == 0 {
		return 0
	}
	return float64(p.Successes) / float64(p.Trials)
}

// Interval returns the Wilson score interval for the rate at the given
// confidence (0 to 100 percent). It stays inside [0, 1] even for rates
// near the edges, unlike the plain normal approximation.
func (p Proportion) Interval(confidence float64) (float64, float64) {
	if p.Trials == 0 {
		return 0, 1
	}
	z := ZVal(confidence)
	n := float64(p.Trials)
	rate := p.Rate()
	denom := 1 + z*z/n
	center := (rate + z*z/(2*n)) / denom
	half := z * math.Sqrt(rate*(1-rate)/n+z*z/(4*n*n)) / denom
	return math.Max(0, center-half), math.Min(1, center+half)
}
