package ml

import "math"

// LogisticRegression is a binary classifier fit by batch gradient descent.
// Feature columns are standardized with the stored means and deviations
// before the linear term applies, which keeps the age column from drowning
// out the one-hot columns during training. The standardization constants are
// part of the model, so inference applies the exact transform training used.
type LogisticRegression struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
	Means   []float64 `json:"means"`
	Stds    []float64 `json:"stds"`
}

// Fit trains a model over x and y. Labels must be 0 or 1.
func Fit(x [][]float64, y []float64, epochs int, learningRate float64) *LogisticRegression {
	n := len(x)
	if n == 0 {
		return &LogisticRegression{}
	}
	dim := len(x[0])
	m := &LogisticRegression{
		Weights: make([]float64, dim),
		Means:   make([]float64, dim),
		Stds:    make([]float64, dim),
	}

	// Column statistics over the training matrix.
	for j := 0; j < dim; j++ {
		var sum float64
		for i := range x {
			sum += x[i][j]
		}
		m.Means[j] = sum / float64(n)

		var sq float64
		for i := range x {
			d := x[i][j] - m.Means[j]
			sq += d * d
		}
		m.Stds[j] = math.Sqrt(sq / float64(n))
	}

	z := make([][]float64, n)
	for i := range x {
		z[i] = m.standardize(x[i])
	}

	gradW := make([]float64, dim)
	for epoch := 0; epoch < epochs; epoch++ {
		for j := range gradW {
			gradW[j] = 0
		}
		var gradB float64

		for i := range z {
			p := sigmoid(dot(m.Weights, z[i]) + m.Bias)
			diff := p - y[i]
			for j, v := range z[i] {
				gradW[j] += diff * v
			}
			gradB += diff
		}

		scale := learningRate / float64(n)
		for j := range m.Weights {
			m.Weights[j] -= scale * gradW[j]
		}
		m.Bias -= scale * gradB
	}
	return m
}

// Prob returns the failure probability for one feature vector.
func (m *LogisticRegression) Prob(x []float64) float64 {
	return sigmoid(dot(m.Weights, m.standardize(x)) + m.Bias)
}

func (m *LogisticRegression) standardize(x []float64) []float64 {
	z := make([]float64, len(x))
	for j, v := range x {
		std := m.Stds[j]
		if std == 0 {
			std = 1 // constant column
		}
		z[j] = (v - m.Means[j]) / std
	}
	return z
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func sigmoid(v float64) float64 {
	return 1 / (1 + math.Exp(-v))
}
