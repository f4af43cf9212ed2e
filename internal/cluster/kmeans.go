package cluster

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"
)

// kMeans partitions rows of X into k groups by minimizing within-group
// squared distance to the group centroid. Centroid initialization uses the
// k-means++ scheme driven by the provided source, so a fixed seed makes
// cluster IDs reproducible run to run for identical input.
func kMeans(X [][]float64, k, maxIter int, rng *rand.Rand) []int {
	n := len(X)
	centroids := initCentroids(X, k, rng)

	assign := make([]int, n)
	for it := 0; it < maxIter; it++ {
		changed := false

		// Assignment step
		for i, x := range X {
			best, bestDist := 0, math.MaxFloat64
			for c, centroid := range centroids {
				if d := sqDist(x, centroid); d < bestDist {
					best, bestDist = c, d
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if it > 0 && !changed {
			break
		}

		// Update step
		dims := len(X[0])
		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, x := range X {
			c := assign[i]
			counts[c]++
			for j, v := range x {
				sums[c][j] += v
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				continue // empty cluster keeps its previous centroid
			}
			for j := range centroids[c] {
				centroids[c][j] = sums[c][j] / float64(counts[c])
			}
		}
	}
	return assign
}

// initCentroids picks k starting centroids with k-means++: the first
// uniformly, each subsequent one with probability proportional to its
// squared distance from the nearest centroid chosen so far.
func initCentroids(X [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(X)
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, append([]float64(nil), X[rng.Intn(n)]...))

	for len(centroids) < k {
		distSq := make([]float64, n)
		total := 0.0
		for i, x := range X {
			min := math.MaxFloat64
			for _, c := range centroids {
				if d := sqDist(x, c); d < min {
					min = d
				}
			}
			distSq[i] = min
			total += min
		}

		if total == 0 {
			// All remaining points coincide with existing centroids
			centroids = append(centroids, append([]float64(nil), X[rng.Intn(n)]...))
			continue
		}

		r := rng.Float64() * total
		cumulative := 0.0
		picked := n - 1
		for i, d := range distSq {
			cumulative += d
			if cumulative >= r {
				picked = i
				break
			}
		}
		centroids = append(centroids, append([]float64(nil), X[picked]...))
	}
	return centroids
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// standardize scales each column of X to zero mean and unit variance in
// place over a fresh copy. Columns with zero variance become all zeros.
func standardize(X [][]float64) [][]float64 {
	if len(X) == 0 {
		return nil
	}
	rows, cols := len(X), len(X[0])

	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
	}

	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			col[i] = X[i][j]
		}
		// Population std, the standard-scaler convention
		mean := stat.Mean(col, nil)
		std := stat.PopStdDev(col, nil)
		for i := 0; i < rows; i++ {
			if std == 0 {
				out[i][j] = 0
			} else {
				out[i][j] = (X[i][j] - mean) / std
			}
		}
	}
	return out
}
