package classifier

import (
	"context"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stoik/url-guard/internal/domain"
	"github.com/stoik/url-guard/internal/domain/features"
)

// modelFile is the on-disk layout of a fitted model
type modelFile struct {
	FeatureSet   string    `yaml:"feature_set"`
	FeatureNames []string  `yaml:"feature_names"`
	Mean         []float64 `yaml:"mean"`
	Scale        []float64 `yaml:"scale"`
	Weights      []float64 `yaml:"weights"`
	Bias         float64   `yaml:"bias"`
}

// LogisticModel implements ports.Scaler and ports.Classifier with a standard
// scaler followed by a logistic regression
//
// The model is read-only after loading and safe for concurrent use.
type LogisticModel struct {
	mean    []float64
	scale   []float64
	weights []float64
	bias    float64
}

// LoadLogisticModel reads and validates a model file. The file's feature
// names must match features.FeatureNames position by position.
func LoadLogisticModel(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}

	var file modelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse model %s: %w", path, err)
	}

	if file.FeatureSet != "" && file.FeatureSet != features.FeatureSetVersion {
		return nil, fmt.Errorf("model fitted for feature set %q, extractor produces %q",
			file.FeatureSet, features.FeatureSetVersion)
	}

	n := len(features.FeatureNames)
	if len(file.FeatureNames) != n {
		return nil, fmt.Errorf("model lists %d features, expected %d", len(file.FeatureNames), n)
	}
	for i, name := range file.FeatureNames {
		if name != features.FeatureNames[i] {
			return nil, fmt.Errorf("model feature %d is %q, expected %q", i, name, features.FeatureNames[i])
		}
	}
	if len(file.Mean) != n || len(file.Scale) != n || len(file.Weights) != n {
		return nil, fmt.Errorf("model parameters must all have %d entries", n)
	}

	return &LogisticModel{
		mean:    file.Mean,
		scale:   file.Scale,
		weights: file.Weights,
		bias:    file.Bias,
	}, nil
}

// Transform standardizes vec as (x - mean) / scale. A zero scale leaves the
// centred value unscaled, matching how constant columns are fitted.
func (m *LogisticModel) Transform(vec []float64) ([]float64, error) {
	if len(vec) != len(m.mean) {
		return nil, fmt.Errorf("vector has %d features, scaler expects %d", len(vec), len(m.mean))
	}
	out := make([]float64, len(vec))
	for i, x := range vec {
		centred := x - m.mean[i]
		if m.scale[i] != 0 {
			centred /= m.scale[i]
		}
		out[i] = centred
	}
	return out, nil
}

// PredictLegitimate returns sigmoid(w·x + b) for a scaled vector
func (m *LogisticModel) PredictLegitimate(ctx context.Context, vec []float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(vec) != len(m.weights) {
		return 0, fmt.Errorf("%w: vector has %d features, model expects %d",
			domain.ErrClassifierUnavailable, len(vec), len(m.weights))
	}

	z := m.bias
	for i, x := range vec {
		z += m.weights[i] * x
	}
	p := 1 / (1 + math.Exp(-z))
	if math.IsNaN(p) {
		return 0, fmt.Errorf("%w: model produced NaN", domain.ErrClassifierUnavailable)
	}
	return p, nil
}
