package ml

// Report holds the standard classification metrics of one evaluation pass.
type Report struct {
	Samples   int     `json:"samples"`
	Positives int     `json:"positives"`
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// Evaluate scores x against the labels using the given decision threshold.
func Evaluate(m *LogisticRegression, x [][]float64, y []float64, threshold float64) Report {
	var tp, fp, tn, fn int
	for i := range x {
		predicted := m.Prob(x[i]) >= threshold
		actual := y[i] >= 0.5
		switch {
		case predicted && actual:
			tp++
		case predicted && !actual:
			fp++
		case !predicted && actual:
			fn++
		default:
			tn++
		}
	}

	r := Report{Samples: len(x), Positives: tp + fn}
	if r.Samples == 0 {
		return r
	}
	r.Accuracy = float64(tp+tn) / float64(r.Samples)
	if tp+fp > 0 {
		r.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		r.Recall = float64(tp) / float64(tp+fn)
	}
	if r.Precision+r.Recall > 0 {
		r.F1 = 2 * r.Precision * r.Recall / (r.Precision + r.Recall)
	}
	return r
}
