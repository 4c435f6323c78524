package features

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference vectors for the lexical feature group. Entropies can differ from
// other log2 implementations in the last bit, so floats compare with a delta.
func TestExtractor_GoldenVectors(t *testing.T) {
	extractor := newTestExtractor(nil, nil)

	tests := []struct {
		name     string
		url      string
		expected map[string]float64
	}{
		{
			name: "Whitelisted login page with query",
			url:  "https://www.paypal.com/signin?country=US&locale=en_US",
			expected: map[string]float64{
				"url_length":                     53,
				"num_dots":                       2,
				"num_hyphens":                    0,
				"num_digits":                     0,
				"special_characters_count":       5,
				"num_slashes":                    3,
				"num_underscores":                1,
				"num_question_marks":             1,
				"num_equals":                     2,
				"suspicious_keywords_count":      1,
				"domain_length":                  10,
				"path_length":                    7,
				"top_level_domain_length":        3,
				"has_suspicious_tld":             0,
				"digit_to_letter_ratio":          0,
				"path_to_domain_ratio":           0.7,
				"query_length":                   23,
				"num_parameters":                 2,
				"domain_entropy":                 2.9219280948873623,
				"url_entropy":                    4.557371397632865,
				"path_entropy":                   2.2359263506290326,
				"max_consecutive_consonants":     2,
				"vowel_to_consonant_ratio":       0.5,
				"has_brand_keyword":              1,
				"has_multiple_hyphens_in_domain": 0,
				"is_extremely_long":              0,
				"has_long_path":                  0,
				"is_ip_in_url":                   0,
				"has_port":                       0,
				"has_port_and_ip":                0,
				"min_domain_distance":            0,
				"is_whitelisted":                 1,
			},
		},
		{
			name: "Keyword-stuffed subdomain on suspicious TLD",
			url:  "http://secure-login-verify-account.example.tk/update/index.php?id=123&token=abc_def",
			expected: map[string]float64{
				"url_length":                     83,
				"num_dots":                       3,
				"num_hyphens":                    3,
				"num_digits":                     3,
				"special_characters_count":       5,
				"num_slashes":                    4,
				"num_underscores":                1,
				"num_question_marks":             1,
				"num_equals":                     2,
				"suspicious_keywords_count":      5,
				"domain_length":                  10,
				"path_length":                    17,
				"top_level_domain_length":        2,
				"has_suspicious_tld":             1,
				"digit_to_letter_ratio":          0,
				"path_to_domain_ratio":           1.7,
				"query_length":                   20,
				"num_parameters":                 2,
				"domain_entropy":                 3.121928094887362,
				"url_entropy":                    4.72843352170357,
				"path_entropy":                   3.4548223999466066,
				"max_consecutive_consonants":     3,
				"vowel_to_consonant_ratio":       0.5,
				"has_brand_keyword":              0,
				"has_multiple_hyphens_in_domain": 0,
				"is_extremely_long":              0,
				"has_long_path":                  0,
				"is_ip_in_url":                   0,
				"has_port":                       0,
				"has_port_and_ip":                0,
				"min_domain_distance":            0.6,
				"is_whitelisted":                 0,
			},
		},
		{
			name: "IP literal with port",
			url:  "http://192.168.0.1:8080/login.php",
			expected: map[string]float64{
				"url_length":                     33,
				"num_dots":                       4,
				"num_hyphens":                    0,
				"num_digits":                     12,
				"special_characters_count":       0,
				"num_slashes":                    3,
				"num_underscores":                0,
				"num_question_marks":             0,
				"num_equals":                     0,
				"suspicious_keywords_count":      1,
				"domain_length":                  3,
				"path_length":                    10,
				"top_level_domain_length":        1,
				"has_suspicious_tld":             0,
				"digit_to_letter_ratio":          0.6666666666666666,
				"path_to_domain_ratio":           3.3333333333333335,
				"query_length":                   0,
				"num_parameters":                 0,
				"domain_entropy":                 1.584962500721156,
				"url_entropy":                    3.8997141947882312,
				"path_entropy":                   3.121928094887362,
				"max_consecutive_consonants":     0,
				"vowel_to_consonant_ratio":       0,
				"has_brand_keyword":              0,
				"has_multiple_hyphens_in_domain": 0,
				"is_extremely_long":              0,
				"has_long_path":                  0,
				"is_ip_in_url":                   1,
				"has_port":                       1,
				"has_port_and_ip":                1,
				"min_domain_distance":            0.75,
				"is_whitelisted":                 0,
			},
		},
		{
			name: "Brand lookalike with special characters",
			url:  "http://bank0famerica-secure.com/~user/!alert*",
			expected: map[string]float64{
				"url_length":                     45,
				"num_dots":                       1,
				"num_hyphens":                    1,
				"num_digits":                     1,
				"special_characters_count":       3,
				"num_slashes":                    4,
				"num_underscores":                0,
				"num_question_marks":             0,
				"num_equals":                     0,
				"suspicious_keywords_count":      2,
				"domain_length":                  24,
				"path_length":                    14,
				"top_level_domain_length":        3,
				"has_suspicious_tld":             0,
				"digit_to_letter_ratio":          0.041666666666666664,
				"path_to_domain_ratio":           0.5833333333333334,
				"query_length":                   0,
				"num_parameters":                 0,
				"domain_entropy":                 3.8239348962840567,
				"url_entropy":                    4.355866085690481,
				"path_entropy":                   3.378783493486176,
				"max_consecutive_consonants":     2,
				"vowel_to_consonant_ratio":       0.75,
				"has_brand_keyword":              2,
				"has_multiple_hyphens_in_domain": 0,
				"is_extremely_long":              0,
				"has_long_path":                  0,
				"is_ip_in_url":                   0,
				"has_port":                       0,
				"has_port_and_ip":                0,
				"min_domain_distance":            0.3333333333333333,
				"is_whitelisted":                 0,
			},
		},
		{
			name: "Percent-encoded path counted as written",
			url:  "http://example.com/a%20b/c%20d%20e%20f",
			expected: map[string]float64{
				"url_length":                     38,
				"num_dots":                       1,
				"num_hyphens":                    0,
				"num_digits":                     8,
				"special_characters_count":       4,
				"num_slashes":                    4,
				"num_underscores":                0,
				"num_question_marks":             0,
				"num_equals":                     0,
				"suspicious_keywords_count":      0,
				"domain_length":                  11,
				"path_length":                    20,
				"top_level_domain_length":        3,
				"has_suspicious_tld":             0,
				"digit_to_letter_ratio":          0,
				"path_to_domain_ratio":           1.8181818181818181,
				"query_length":                   0,
				"num_parameters":                 0,
				"domain_entropy":                 3.095795255000934,
				"url_entropy":                    4.017535737070863,
				"path_entropy":                   3.021928094887362,
				"max_consecutive_consonants":     3,
				"vowel_to_consonant_ratio":       0.6666666666666666,
				"has_brand_keyword":              0,
				"has_multiple_hyphens_in_domain": 0,
				"is_extremely_long":              0,
				"has_long_path":                  0,
				"is_ip_in_url":                   0,
				"has_port":                       0,
				"has_port_and_ip":                0,
				"min_domain_distance":            0.2727272727272727,
				"is_whitelisted":                 0,
			},
		},
		{
			name: "URL of exactly 150 characters",
			url:  "http://example.org/" + strings.Repeat("a", 131),
			expected: map[string]float64{
				"url_length":                     150,
				"num_dots":                       1,
				"num_hyphens":                    0,
				"num_digits":                     0,
				"special_characters_count":       0,
				"num_slashes":                    3,
				"num_underscores":                0,
				"num_question_marks":             0,
				"num_equals":                     0,
				"suspicious_keywords_count":      0,
				"domain_length":                  11,
				"path_length":                    132,
				"top_level_domain_length":        3,
				"has_suspicious_tld":             0,
				"digit_to_letter_ratio":          0,
				"path_to_domain_ratio":           12,
				"query_length":                   0,
				"num_parameters":                 0,
				"domain_entropy":                 3.277613436819116,
				"url_entropy":                    0.9580526154460188,
				"path_entropy":                   0.06425462540840808,
				"max_consecutive_consonants":     3,
				"vowel_to_consonant_ratio":       0.6666666666666666,
				"has_brand_keyword":              0,
				"has_multiple_hyphens_in_domain": 0,
				"is_extremely_long":              0,
				"has_long_path":                  1,
				"is_ip_in_url":                   0,
				"has_port":                       0,
				"has_port_and_ip":                0,
				"min_domain_distance":            0.5384615384615384,
				"is_whitelisted":                 0,
			},
		},
		{
			name: "URL of 151 characters",
			url:  "http://example.org/" + strings.Repeat("a", 132),
			expected: map[string]float64{
				"url_length":                     151,
				"num_dots":                       1,
				"num_hyphens":                    0,
				"num_digits":                     0,
				"special_characters_count":       0,
				"num_slashes":                    3,
				"num_underscores":                0,
				"num_question_marks":             0,
				"num_equals":                     0,
				"suspicious_keywords_count":      0,
				"domain_length":                  11,
				"path_length":                    133,
				"top_level_domain_length":        3,
				"has_suspicious_tld":             0,
				"digit_to_letter_ratio":          0,
				"path_to_domain_ratio":           12.090909090909092,
				"query_length":                   0,
				"num_parameters":                 0,
				"domain_entropy":                 3.277613436819116,
				"url_entropy":                    0.9529249285712929,
				"path_entropy":                   0.06385368546122085,
				"max_consecutive_consonants":     3,
				"vowel_to_consonant_ratio":       0.6666666666666666,
				"has_brand_keyword":              0,
				"has_multiple_hyphens_in_domain": 0,
				"is_extremely_long":              1,
				"has_long_path":                  1,
				"is_ip_in_url":                   0,
				"has_port":                       0,
				"has_port_and_ip":                0,
				"min_domain_distance":            0.5384615384615384,
				"is_whitelisted":                 0,
			},
		},
		{
			name: "Path of exactly 100 characters",
			url:  "http://example.org/" + strings.Repeat("b", 99),
			expected: map[string]float64{
				"url_length":                     118,
				"num_dots":                       1,
				"num_hyphens":                    0,
				"num_digits":                     0,
				"special_characters_count":       0,
				"num_slashes":                    3,
				"num_underscores":                0,
				"num_question_marks":             0,
				"num_equals":                     0,
				"suspicious_keywords_count":      0,
				"domain_length":                  11,
				"path_length":                    100,
				"top_level_domain_length":        3,
				"has_suspicious_tld":             0,
				"digit_to_letter_ratio":          0,
				"path_to_domain_ratio":           9.090909090909092,
				"query_length":                   0,
				"num_parameters":                 0,
				"domain_entropy":                 3.277613436819116,
				"url_entropy":                    1.229582092666546,
				"path_entropy":                   0.08079313589591118,
				"max_consecutive_consonants":     3,
				"vowel_to_consonant_ratio":       0.6666666666666666,
				"has_brand_keyword":              0,
				"has_multiple_hyphens_in_domain": 0,
				"is_extremely_long":              0,
				"has_long_path":                  0,
				"is_ip_in_url":                   0,
				"has_port":                       0,
				"has_port_and_ip":                0,
				"min_domain_distance":            0.5384615384615384,
				"is_whitelisted":                 0,
			},
		},
		{
			name: "Path of 101 characters",
			url:  "http://example.org/" + strings.Repeat("b", 100),
			expected: map[string]float64{
				"url_length":                     119,
				"num_dots":                       1,
				"num_hyphens":                    0,
				"num_digits":                     0,
				"special_characters_count":       0,
				"num_slashes":                    3,
				"num_underscores":                0,
				"num_question_marks":             0,
				"num_equals":                     0,
				"suspicious_keywords_count":      0,
				"domain_length":                  11,
				"path_length":                    101,
				"top_level_domain_length":        3,
				"has_suspicious_tld":             0,
				"digit_to_letter_ratio":          0,
				"path_to_domain_ratio":           9.181818181818182,
				"query_length":                   0,
				"num_parameters":                 0,
				"domain_entropy":                 3.277613436819116,
				"url_entropy":                    1.2213681290252887,
				"path_entropy":                   0.08013604733127525,
				"max_consecutive_consonants":     3,
				"vowel_to_consonant_ratio":       0.6666666666666666,
				"has_brand_keyword":              0,
				"has_multiple_hyphens_in_domain": 0,
				"is_extremely_long":              0,
				"has_long_path":                  1,
				"is_ip_in_url":                   0,
				"has_port":                       0,
				"has_port_and_ip":                0,
				"min_domain_distance":            0.5384615384615384,
				"is_whitelisted":                 0,
			},
		},
		{
			name: "Two hyphens in domain",
			url:  "http://my-long-name.com/",
			expected: map[string]float64{
				"url_length":                     24,
				"num_dots":                       1,
				"num_hyphens":                    2,
				"num_digits":                     0,
				"special_characters_count":       0,
				"num_slashes":                    3,
				"num_underscores":                0,
				"num_question_marks":             0,
				"num_equals":                     0,
				"suspicious_keywords_count":      0,
				"domain_length":                  16,
				"path_length":                    1,
				"top_level_domain_length":        3,
				"has_suspicious_tld":             0,
				"digit_to_letter_ratio":          0,
				"path_to_domain_ratio":           0.0625,
				"query_length":                   0,
				"num_parameters":                 0,
				"domain_entropy":                 3.327819531114783,
				"url_entropy":                    3.855388542207534,
				"path_entropy":                   0,
				"max_consecutive_consonants":     2,
				"vowel_to_consonant_ratio":       0.4444444444444444,
				"has_brand_keyword":              0,
				"has_multiple_hyphens_in_domain": 0,
				"is_extremely_long":              0,
				"has_long_path":                  0,
				"is_ip_in_url":                   0,
				"has_port":                       0,
				"has_port_and_ip":                0,
				"min_domain_distance":            0.5,
				"is_whitelisted":                 0,
			},
		},
		{
			name: "Three hyphens in domain",
			url:  "http://my-very-long-name.com/",
			expected: map[string]float64{
				"url_length":                     29,
				"num_dots":                       1,
				"num_hyphens":                    3,
				"num_digits":                     0,
				"special_characters_count":       0,
				"num_slashes":                    3,
				"num_underscores":                0,
				"num_question_marks":             0,
				"num_equals":                     0,
				"suspicious_keywords_count":      0,
				"domain_length":                  21,
				"path_length":                    1,
				"top_level_domain_length":        3,
				"has_suspicious_tld":             0,
				"digit_to_letter_ratio":          0,
				"path_to_domain_ratio":           0.047619047619047616,
				"query_length":                   0,
				"num_parameters":                 0,
				"domain_entropy":                 3.558518613048906,
				"url_entropy":                    4.021268494903765,
				"path_entropy":                   0,
				"max_consecutive_consonants":     2,
				"vowel_to_consonant_ratio":       0.4166666666666667,
				"has_brand_keyword":              0,
				"has_multiple_hyphens_in_domain": 1,
				"is_extremely_long":              0,
				"has_long_path":                  0,
				"is_ip_in_url":                   0,
				"has_port":                       0,
				"has_port_and_ip":                0,
				"min_domain_distance":            0.5238095238095238,
				"is_whitelisted":                 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := extractor.Extract(context.Background(), tt.url, Options{})
			require.Len(t, ext.Vector, len(FeatureNames))
			for name, want := range tt.expected {
				assert.InDelta(t, want, ext.Vector.Get(name), 1e-9, name)
			}
		})
	}
}
