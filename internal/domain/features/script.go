package features

import (
	"strings"
	"unicode"

	"golang.org/x/net/idna"
)

// Scripts summarises which writing systems appear in a hostname
type Scripts struct {
	HasUnicode      bool
	HasCyrillic     bool
	HasArabic       bool
	HasCJK          bool
	HasMixedScripts bool
}

// Scripts seen most often in hostnames, checked before the full table
var frequentScripts = []string{"Latin", "Cyrillic", "Greek", "Arabic", "Han"}

// ScriptInfo classifies the letters of hostname by Unicode script
//
// Only letters are classified; digits, dots and hyphens never make a host
// "mixed". More than one script family among the letters is the homograph
// signal.
func ScriptInfo(hostname string) Scripts {
	var info Scripts
	families := make(map[string]struct{})

	for _, r := range hostname {
		if r > unicode.MaxASCII {
			info.HasUnicode = true
		}
		if !unicode.IsLetter(r) {
			continue
		}

		family := scriptOf(r)
		families[family] = struct{}{}
		switch family {
		case "Cyrillic":
			info.HasCyrillic = true
		case "Arabic":
			info.HasArabic = true
		case "Han":
			info.HasCJK = true
		}
	}

	info.HasMixedScripts = len(families) > 1
	return info
}

// scriptOf returns the Unicode script name of r. Scripts are disjoint, so
// the map order of unicode.Scripts does not affect the answer.
func scriptOf(r rune) string {
	for _, name := range frequentScripts {
		if unicode.Is(unicode.Scripts[name], r) {
			return name
		}
	}
	for name, table := range unicode.Scripts {
		if unicode.Is(table, r) {
			return name
		}
	}
	return "Unknown"
}

// leetSubstitutes maps digits and symbols to the letter they imitate
var leetSubstitutes = map[rune]rune{
	'0': 'o', '1': 'l', '3': 'e', '4': 'a', '5': 's',
	'7': 't', '8': 'b', '@': 'a', '$': 's',
}

// LeetSpeakCount counts characters of hostname that are common letter
// substitutes. It is a raw count, not a ratio.
func LeetSpeakCount(hostname string) int {
	count := 0
	for _, r := range strings.ToLower(hostname) {
		if _, ok := leetSubstitutes[r]; ok {
			count++
		}
	}
	return count
}

// DecodePunycode reports whether hostname carries IDNA "xn--" labels and
// returns its Unicode form. Hosts that fail to decode are returned unchanged.
func DecodePunycode(hostname string) (unicodeHost string, isPunycode bool) {
	if !strings.Contains(hostname, "xn--") {
		return hostname, false
	}
	decoded, err := idna.Lookup.ToUnicode(hostname)
	if err != nil || decoded == "" {
		return hostname, true
	}
	return decoded, true
}
