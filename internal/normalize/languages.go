package normalize

import (
	"sort"
	"strings"
)

// Languages cleans a detected-language list: lowercase, trimmed, empties
// dropped, deduplicated, sorted. An empty result defaults to english.
func Languages(langs []string) []string {
	seen := make(map[string]struct{}, len(langs))
	out := make([]string, 0, len(langs))
	for _, lang := range langs {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" {
			continue
		}
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		out = append(out, lang)
	}
	if len(out) == 0 {
		return []string{"english"}
	}
	sort.Strings(out)
	return out
}
