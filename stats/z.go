package stats

import "gonum.org/v1/gonum/stat/distuv"

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// ZVal is the critical value z such that a standard normal variable lies in
// [-z, z] with the given confidence, in percent (95 gives about 1.96).
func ZVal(confidence float64) float64 {
	tail := (100 - confidence) / 200
	return stdNormal.Quantile(1 - tail)
}
