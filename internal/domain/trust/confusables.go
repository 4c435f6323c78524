package trust

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Non-ASCII to ASCII prototypes from Unicode UTS #39
//
//go:embed confusables.txt
var confusablesData string

var confusableMap = mustParseConfusables(confusablesData)

// mustParseConfusables reads "source ; target" lines of hex code points
func mustParseConfusables(data string) map[rune]string {
	m := make(map[rune]string)
	for n, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		source, target, ok := strings.Cut(line, ";")
		if !ok {
			panic(fmt.Sprintf("confusables.txt:%d: missing separator", n+1))
		}
		src, err := parseCodePoint(source)
		if err != nil {
			panic(fmt.Sprintf("confusables.txt:%d: %v", n+1, err))
		}
		var b strings.Builder
		for _, field := range strings.Fields(target) {
			r, err := parseCodePoint(field)
			if err != nil {
				panic(fmt.Sprintf("confusables.txt:%d: %v", n+1, err))
			}
			b.WriteRune(r)
		}
		m[src] = b.String()
	}
	return m
}

func parseCodePoint(s string) (rune, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid code point %q: %w", s, err)
	}
	return rune(v), nil
}

// Skeleton maps s to its confusables skeleton: NFD, prototype substitution,
// NFD again, then lowercased. Two strings with the same skeleton look alike.
func Skeleton(s string) string {
	s = norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if proto, ok := confusableMap[r]; ok {
			b.WriteString(proto)
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(norm.NFD.String(b.String()))
}
