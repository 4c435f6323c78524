package trust

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tables is the static reference data used to resolve trust
//
// Tables are built once at startup (DefaultTables or LoadTables) and then
// frozen into a Resolver. Nothing mutates them afterwards; swapping data
// requires a restart.
type Tables struct {
	LegitimateDomains   []string            `yaml:"legitimate_domains"`
	TrustedSubdomains   map[string][]string `yaml:"trusted_subdomains"`
	EducationalSuffixes []string            `yaml:"educational_suffixes"`
	GovernmentSuffix    string              `yaml:"government_suffix"`
	SuspiciousTLDs      []string            `yaml:"suspicious_tlds"`
	URLShorteners       []string            `yaml:"url_shorteners"`
	SuspiciousKeywords  []string            `yaml:"suspicious_keywords"`
	BrandKeywords       []string            `yaml:"brand_keywords"`
}

// DefaultTables returns the built-in reference data
func DefaultTables() Tables {
	trusted := make(map[string][]string, len(defaultTrustedSubdomains))
	for domain, labels := range defaultTrustedSubdomains {
		trusted[domain] = append([]string(nil), labels...)
	}

	return Tables{
		LegitimateDomains:   append([]string(nil), defaultLegitimateDomains...),
		TrustedSubdomains:   trusted,
		EducationalSuffixes: append([]string(nil), defaultEducationalSuffixes...),
		GovernmentSuffix:    defaultGovernmentSuffix,
		SuspiciousTLDs:      append([]string(nil), defaultSuspiciousTLDs...),
		URLShorteners:       append([]string(nil), defaultURLShorteners...),
		SuspiciousKeywords:  append([]string(nil), defaultSuspiciousKeywords...),
		BrandKeywords:       append([]string(nil), defaultBrandKeywords...),
	}
}

// LoadTables reads reference data from a YAML file
//
// Sections missing from the file keep their built-in values, so a file that
// only lists extra legitimate domains is valid.
func LoadTables(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("failed to read trust tables: %w", err)
	}

	var file Tables
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Tables{}, fmt.Errorf("failed to parse trust tables %s: %w", path, err)
	}

	tables := DefaultTables()
	if len(file.LegitimateDomains) > 0 {
		tables.LegitimateDomains = file.LegitimateDomains
	}
	if len(file.TrustedSubdomains) > 0 {
		tables.TrustedSubdomains = file.TrustedSubdomains
	}
	if len(file.EducationalSuffixes) > 0 {
		tables.EducationalSuffixes = file.EducationalSuffixes
	}
	if file.GovernmentSuffix != "" {
		tables.GovernmentSuffix = file.GovernmentSuffix
	}
	if len(file.SuspiciousTLDs) > 0 {
		tables.SuspiciousTLDs = file.SuspiciousTLDs
	}
	if len(file.URLShorteners) > 0 {
		tables.URLShorteners = file.URLShorteners
	}
	if len(file.SuspiciousKeywords) > 0 {
		tables.SuspiciousKeywords = file.SuspiciousKeywords
	}
	if len(file.BrandKeywords) > 0 {
		tables.BrandKeywords = file.BrandKeywords
	}

	return tables, nil
}
