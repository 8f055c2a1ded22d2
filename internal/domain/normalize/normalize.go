// Package normalize rescales per-profession aptitude averages onto [0,1]
// using the largest average observed for each aptitude.
//
// Compute must only run once aggregation has fully drained: a partial
// aggregation under-reports the global maximum for every profession.
package normalize

import (
	"math"

	"github.com/okian/delfos/internal/domain/aptitude"
	"github.com/okian/delfos/internal/domain/model"
	"github.com/okian/delfos/internal/domain/profession"
)

// Precision is the number of decimal digits kept in normalized scores.
const Precision = 3

// Buckets holds aggregation state keyed by profession then aptitude. Missing
// entries are empty buckets.
type Buckets map[profession.ID]map[aptitude.ID]model.Bucket

// Result is the dense outcome of normalization.
type Result struct {
	GlobalMax  map[aptitude.ID]float64
	Averages   map[profession.ID]map[aptitude.ID]float64
	Normalized map[profession.ID]map[aptitude.ID]float64
}

// Compute derives averages, per-aptitude global maxima and normalized scores
// for every listed profession and aptitude.
func Compute(professions []profession.ID, aptitudes []aptitude.ID, buckets Buckets) Result {
	res := Result{
		GlobalMax:  make(map[aptitude.ID]float64, len(aptitudes)),
		Averages:   make(map[profession.ID]map[aptitude.ID]float64, len(professions)),
		Normalized: make(map[profession.ID]map[aptitude.ID]float64, len(professions)),
	}
	for _, a := range aptitudes {
		res.GlobalMax[a] = 0
	}

	for _, p := range professions {
		avg := make(map[aptitude.ID]float64, len(aptitudes))
		for _, a := range aptitudes {
			v := buckets[p][a].Average()
			avg[a] = v
			if v > res.GlobalMax[a] {
				res.GlobalMax[a] = v
			}
		}
		res.Averages[p] = avg
	}

	for _, p := range professions {
		norm := make(map[aptitude.ID]float64, len(aptitudes))
		for _, a := range aptitudes {
			norm[a] = Rescale(res.Averages[p][a], res.GlobalMax[a])
		}
		res.Normalized[p] = norm
	}
	return res
}

// Rescale returns avg/max rounded to Precision digits, or 0 when either is
// not positive.
func Rescale(avg, maxAvg float64) float64 {
	if maxAvg <= 0 || avg <= 0 {
		return 0
	}
	return Round(avg / maxAvg)
}

// Round rounds half away from zero to Precision digits.
func Round(v float64) float64 {
	p := math.Pow10(Precision)
	return math.Round(v*p) / p
}

// Sparse drops non-positive scores.
func Sparse(scores map[aptitude.ID]float64) map[aptitude.ID]float64 {
	out := make(map[aptitude.ID]float64, len(scores))
	for a, v := range scores {
		if v > 0 {
			out[a] = v
		}
	}
	return out
}
