package features

// FeatureSetVersion identifies the order and meaning of FeatureNames. Models
// are only valid for the version they were fitted against.
const FeatureSetVersion = "ultra-3.0"

// FeatureNames is the positional contract with the classifier. Never reorder;
// append under a new FeatureSetVersion instead.
var FeatureNames = []string{
	// Lexical
	"url_length", "num_dots", "num_hyphens", "num_at_symbols", "has_https",
	"num_digits", "special_characters_count", "is_ip_in_url", "num_subdomains",
	"top_level_domain_length", "num_slashes", "num_underscores", "num_question_marks",
	"num_equals", "suspicious_keywords_count", "domain_length", "path_length", "has_port",

	// Similarity, scripts, obfuscation
	"min_domain_distance", "is_suspicious_similarity", "is_whitelisted", "allows_long_urls",
	"has_unicode", "has_cyrillic", "has_mixed_scripts", "leet_speak_count", "is_url_shortener",
	"domain_entropy", "digit_to_letter_ratio", "has_suspicious_tld",
	"path_to_domain_ratio", "query_length", "num_parameters", "max_consecutive_consonants",
	"vowel_to_consonant_ratio",

	// Trust, external signals, patterns
	"has_trusted_subdomain", "domain_age_days", "is_new_domain", "is_very_new_domain",
	"has_valid_ssl", "ssl_days_until_expiry", "has_multiple_hyphens_in_domain",
	"has_excessive_subdomains", "url_entropy", "path_entropy", "has_ip_and_domain",
	"has_port_and_ip", "has_at_symbol", "is_educational", "is_government",
	"has_brand_keyword", "is_extremely_long", "has_long_path",
}

var featureIndex = func() map[string]int {
	index := make(map[string]int, len(FeatureNames))
	for i, name := range FeatureNames {
		index[name] = i
	}
	return index
}()

// Vector is a feature vector ordered by FeatureNames
type Vector []float64

// Assemble orders values by FeatureNames. Names missing from values are 0.0;
// names not in FeatureNames are ignored.
func Assemble(values map[string]float64) Vector {
	vec := make(Vector, len(FeatureNames))
	for i, name := range FeatureNames {
		vec[i] = values[name]
	}
	return vec
}

// Get returns the value of a named feature, or 0 for unknown names
func (v Vector) Get(name string) float64 {
	i, ok := featureIndex[name]
	if !ok || i >= len(v) {
		return 0
	}
	return v[i]
}

// Map returns the vector keyed by feature name
func (v Vector) Map() map[string]float64 {
	out := make(map[string]float64, len(v))
	for i, value := range v {
		if i < len(FeatureNames) {
			out[FeatureNames[i]] = value
		}
	}
	return out
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
