package decision

import (
	"fmt"
	"math"

	"github.com/stoik/url-guard/internal/domain"
)

const (
	legitimateThreshold = 0.5

	// Probability floors applied when an override forces Legitimate
	trustedSubdomainFloor = 0.995
	whitelistFloor        = 0.99

	// A whitelisted domain flagged as a lookalike still wins the override
	// when it is this close to a known entry
	nearExactDistance = 0.05
)

// Signals are the deterministic inputs of the override rules
type Signals struct {
	HasTrustedSubdomain    bool
	IsWhitelisted          bool
	IsSuspiciousSimilarity bool
	MinDistance            float64
}

// Decide combines the classifier's legitimacy probability p with the
// deterministic overrides, in strict precedence:
//  1. trusted subdomain: Legitimate, probability at least 0.995
//  2. whitelisted and not a lookalike (or within 0.05 of an entry):
//     Legitimate, probability at least 0.99
//  3. otherwise Legitimate iff p >= 0.5, p unchanged
//
// Confidence is the probability of the chosen label.
func Decide(p float64, s Signals) (domain.Verdict, error) {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return domain.Verdict{}, fmt.Errorf("%w: %v", domain.ErrInvalidProbability, p)
	}

	verdict := domain.Verdict{Probability: p}

	switch {
	case s.HasTrustedSubdomain:
		verdict.Label = domain.LabelLegitimate
		verdict.Probability = math.Max(p, trustedSubdomainFloor)
		verdict.Override = domain.OverrideTrustedSubdomain
	case s.IsWhitelisted && (!s.IsSuspiciousSimilarity || s.MinDistance <= nearExactDistance):
		verdict.Label = domain.LabelLegitimate
		verdict.Probability = math.Max(p, whitelistFloor)
		verdict.Override = domain.OverrideWhitelist
	case p >= legitimateThreshold:
		verdict.Label = domain.LabelLegitimate
	default:
		verdict.Label = domain.LabelPhishing
	}

	if verdict.Label == domain.LabelLegitimate {
		verdict.Confidence = verdict.Probability
	} else {
		verdict.Confidence = 1 - verdict.Probability
	}

	return verdict, nil
}
