// Package forest implements a bagged ensemble of binary CART
// classifiers: bootstrap-sampled trees over random feature subspaces,
// predictions averaged across trees. Fitting is fully deterministic for
// a fixed seed.
package forest

import (
	"fmt"
	"math"
	"math/rand"
)

type Config struct {
	Trees    int
	Seed     int64
	MaxDepth int // 0 means unlimited within MinLeaf
	MinLeaf  int
}

// DefaultConfig mirrors the offline trainer: 100 trees, seed 42.
func DefaultConfig() Config {
	return Config{Trees: 100, Seed: 42, MaxDepth: 12, MinLeaf: 1}
}

// Forest is the persisted model artifact: read-only once fitted, safe
// to share across sessions without locking.
type Forest struct {
	Trees       []*node
	NumFeatures int
}

// Fit grows cfg.Trees trees on bootstrap samples of X. Labels must be
// 0 or 1.
func Fit(X [][]float64, y []int, cfg Config) (*Forest, error) {
	if len(X) == 0 {
		return nil, fmt.Errorf("forest: empty training set")
	}
	if len(X) != len(y) {
		return nil, fmt.Errorf("forest: %d feature rows but %d labels", len(X), len(y))
	}
	for _, label := range y {
		if label != 0 && label != 1 {
			return nil, fmt.Errorf("forest: label %d out of range", label)
		}
	}
	if cfg.Trees <= 0 {
		return nil, fmt.Errorf("forest: tree count must be positive, got %d", cfg.Trees)
	}

	numFeatures := len(X[0])
	mtry := int(math.Sqrt(float64(numFeatures)))
	if mtry < 1 {
		mtry = 1
	}
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = math.MaxInt32
	}
	minLeaf := cfg.MinLeaf
	if minLeaf < 1 {
		minLeaf = 1
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	f := &Forest{Trees: make([]*node, 0, cfg.Trees), NumFeatures: numFeatures}

	for t := 0; t < cfg.Trees; t++ {
		sample := make([]int, len(X))
		for i := range sample {
			sample[i] = rng.Intn(len(X))
		}
		f.Trees = append(f.Trees, growTree(X, y, sample, 0, maxDepth, mtry, minLeaf, rng))
	}
	return f, nil
}

// PredictProba returns [p_negative, p_positive], the mean of the
// per-tree leaf class fractions.
func (f *Forest) PredictProba(features []float64) [2]float64 {
	var sum [2]float64
	for _, t := range f.Trees {
		p := t.proba(features)
		sum[0] += p[0]
		sum[1] += p[1]
	}
	n := float64(len(f.Trees))
	return [2]float64{sum[0] / n, sum[1] / n}
}

// Predict returns the majority class.
func (f *Forest) Predict(features []float64) int {
	p := f.PredictProba(features)
	if p[1] >= 0.5 {
		return 1
	}
	return 0
}

// Accuracy reports the fraction of rows whose predicted class matches y.
func (f *Forest) Accuracy(X [][]float64, y []int) float64 {
	if len(X) == 0 {
		return 0
	}
	correct := 0
	for i, row := range X {
		if f.Predict(row) == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(X))
}
