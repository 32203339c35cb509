package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payrisk_ml",
			Name:      "predictions_total",
			Help:      "Predictions served, by decision",
		},
		[]string{"decision"},
	)

	PredictionProbability = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "payrisk_ml",
			Name:      "prediction_probability",
			Help:      "Distribution of predicted failure probabilities",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	RecordsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payrisk_ml",
			Name:      "records_rejected_total",
			Help:      "Records rejected before scoring, by reason",
		},
		[]string{"reason"},
	)

	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payrisk_ml",
			Name:      "training_runs_total",
			Help:      "Completed training runs, by outcome",
		},
		[]string{"outcome"},
	)

	ModelAccuracy = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "payrisk_ml",
			Name:      "model_accuracy",
			Help:      "Held-out accuracy of the most recent training run in this process",
		},
	)
)
