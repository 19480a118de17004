package forest

import (
	"math/rand"
	"sort"
)

// node is a binary decision-tree node. Fields are exported for gob.
type node struct {
	Leaf      bool
	Counts    [2]int // training class counts at a leaf
	Feature   int
	Threshold float64
	Left      *node
	Right     *node
}

func (n *node) proba(features []float64) [2]float64 {
	for !n.Leaf {
		if features[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	total := float64(n.Counts[0] + n.Counts[1])
	return [2]float64{float64(n.Counts[0]) / total, float64(n.Counts[1]) / total}
}

func classCounts(y []int, idx []int) [2]int {
	var counts [2]int
	for _, i := range idx {
		counts[y[i]]++
	}
	return counts
}

func gini(counts [2]int) float64 {
	total := float64(counts[0] + counts[1])
	if total == 0 {
		return 0
	}
	p0 := float64(counts[0]) / total
	p1 := float64(counts[1]) / total
	return 1 - p0*p0 - p1*p1
}

type split struct {
	feature   int
	threshold float64
	impurity  float64
	left      []int
	right     []int
}

// bestSplit scans a random subset of features for the lowest weighted
// Gini impurity. Candidate thresholds sit between consecutive distinct
// values of the sorted feature column.
func bestSplit(X [][]float64, y []int, idx []int, mtry, minLeaf int, rng *rand.Rand) (split, bool) {
	numFeatures := len(X[0])
	features := rng.Perm(numFeatures)[:mtry]

	best := split{impurity: 2} // gini never exceeds 0.5 per side
	found := false

	order := make([]int, len(idx))
	for _, f := range features {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return X[order[a]][f] < X[order[b]][f] })

		var left [2]int
		right := classCounts(y, order)
		total := float64(len(order))

		for i := 0; i < len(order)-1; i++ {
			c := y[order[i]]
			left[c]++
			right[c]--

			if X[order[i]][f] == X[order[i+1]][f] {
				continue
			}
			if i+1 < minLeaf || len(order)-i-1 < minLeaf {
				continue
			}

			nLeft := float64(i + 1)
			impurity := (nLeft*gini(left) + (total-nLeft)*gini(right)) / total
			if impurity < best.impurity {
				best = split{
					feature:   f,
					threshold: (X[order[i]][f] + X[order[i+1]][f]) / 2,
					impurity:  impurity,
					left:      append([]int(nil), order[:i+1]...),
					right:     append([]int(nil), order[i+1:]...),
				}
				found = true
			}
		}
	}
	return best, found
}

func growTree(X [][]float64, y []int, idx []int, depth, maxDepth, mtry, minLeaf int, rng *rand.Rand) *node {
	counts := classCounts(y, idx)

	if depth >= maxDepth || counts[0] == 0 || counts[1] == 0 || len(idx) < 2*minLeaf {
		return &node{Leaf: true, Counts: counts}
	}

	s, ok := bestSplit(X, y, idx, mtry, minLeaf, rng)
	if !ok {
		return &node{Leaf: true, Counts: counts}
	}

	return &node{
		Feature:   s.feature,
		Threshold: s.threshold,
		Left:      growTree(X, y, s.left, depth+1, maxDepth, mtry, minLeaf, rng),
		Right:     growTree(X, y, s.right, depth+1, maxDepth, mtry, minLeaf, rng),
	}
}
