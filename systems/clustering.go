package systems

import (
	"math"

	"github.com/pthm-cable/aco/components"
)

// Candidate is a pheromone considered during cluster narrowing.
type Candidate struct {
	ID        components.PheromoneID
	Pos       components.Position
	Intensity int
	Distance  float64 // cached distance from the ant
}

// Narrow repeatedly partitions candidates into k distance buckets and keeps
// the best scoring bucket, until one candidate is left or all remaining
// candidates fall into the same bucket.
//
// A bucket's score is its summed intensity over its summed distance. Empty
// buckets are never selected; equal scores go to the lowest bucket index.
// Member order is preserved, so the result is deterministic for a given input.
func Narrow(candidates []Candidate, k int) []Candidate {
	if k < 1 {
		k = 1
	}
	set := candidates
	for len(set) > 1 {
		lo, hi := distanceRange(set)
		threshold := (hi - lo) / float64(k)
		if threshold <= 0 || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
			// Every distance is equal, the set cannot be split further.
			break
		}

		buckets := partition(set, threshold, k)
		best, nonEmpty := bestBucket(buckets)
		set = buckets[best]
		if nonEmpty <= 1 {
			break
		}
	}
	return set
}

func distanceRange(set []Candidate) (lo, hi float64) {
	lo, hi = set[0].Distance, set[0].Distance
	for _, c := range set[1:] {
		lo = math.Min(lo, c.Distance)
		hi = math.Max(hi, c.Distance)
	}
	return lo, hi
}

// partition assigns each candidate to bucket floor(distance/threshold) mod k.
func partition(set []Candidate, threshold float64, k int) [][]Candidate {
	buckets := make([][]Candidate, k)
	for _, c := range set {
		idx := int(math.Floor(c.Distance/threshold)) % k
		if idx < 0 {
			idx += k
		}
		buckets[idx] = append(buckets[idx], c)
	}
	return buckets
}

// bestBucket returns the index of the highest scoring non-empty bucket and
// the number of non-empty buckets.
func bestBucket(buckets [][]Candidate) (best, nonEmpty int) {
	best = -1
	bestScore := math.Inf(-1)
	for i, b := range buckets {
		if len(b) == 0 {
			continue
		}
		nonEmpty++
		if s := Score(b); best < 0 || s > bestScore {
			best, bestScore = i, s
		}
	}
	return best, nonEmpty
}

// Score returns summed intensity over summed distance. A bucket whose members
// all sit at distance zero scores +Inf.
func Score(bucket []Candidate) float64 {
	var intensity, distance float64
	for _, c := range bucket {
		intensity += float64(c.Intensity)
		distance += c.Distance
	}
	if distance == 0 {
		return math.Inf(1)
	}
	return intensity / distance
}

// Representative picks the pheromone to walk toward from a narrowed set:
// the nearest one, ties going to the lowest ID. The set must not be empty.
func Representative(set []Candidate) Candidate {
	rep := set[0]
	for _, c := range set[1:] {
		if c.Distance < rep.Distance || (c.Distance == rep.Distance && c.ID < rep.ID) {
			rep = c
		}
	}
	return rep
}
