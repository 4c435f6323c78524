package ports

import (
	"context"
)

// Feature vectors cross this boundary as plain slices ordered by
// features.FeatureNames.

// Scaler applies the normalization the classifier was fitted with
type Scaler interface {
	Transform(vec []float64) ([]float64, error)
}

// Classifier maps a scaled feature vector to a legitimacy probability
type Classifier interface {
	// PredictLegitimate returns P(legitimate) in [0, 1]. Any error means no
	// verdict can be produced for this URL.
	PredictLegitimate(ctx context.Context, vec []float64) (float64, error)
}
