package ml

import (
	"math"
	"math/rand"
)

// TrainTestSplit shuffles row order with the seed and carves off the test
// fraction. Both halves are non-empty for any n >= 2, whatever the fraction.
func TrainTestSplit(x [][]float64, y []float64, testFraction float64, seed int64) (xTrain, xTest [][]float64, yTrain, yTest []float64) {
	n := len(x)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	testN := int(math.Round(float64(n) * testFraction))
	if testN < 1 {
		testN = 1
	}
	if testN >= n {
		testN = n - 1
	}

	for k, i := range idx {
		if k < testN {
			xTest = append(xTest, x[i])
			yTest = append(yTest, y[i])
		} else {
			xTrain = append(xTrain, x[i])
			yTrain = append(yTrain, y[i])
		}
	}
	return xTrain, xTest, yTrain, yTest
}
