package matching

import "strings"

// Aliases maps a canonical topic or language name to the spellings folded onto it.
var Aliases = map[string][]string{
	"go":                      {"golang"},
	"javascript":              {"js", "ecmascript"},
	"typescript":              {"ts"},
	"python":                  {"py", "python3"},
	"c++":                     {"cpp", "cplusplus"},
	"c#":                      {"csharp", "c sharp"},
	"machine learning":        {"ml"},
	"artificial intelligence": {"ai"},
	"web development":         {"web dev", "webdev", "web"},
	"mobile development":      {"mobile", "mobile dev"},
	"devops":                  {"dev ops"},
	"databases":               {"database", "db"},
	"frontend":                {"front end", "front-end"},
	"backend":                 {"back end", "back-end"},
}

var aliasIndex = buildAliasIndex(Aliases)

func buildAliasIndex(m map[string][]string) map[string]string {
	idx := make(map[string]string)
	for canonical, spellings := range m {
		for _, s := range spellings {
			idx[normalizeName(s)] = canonical
		}
	}
	return idx
}

func normalizeName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// CanonicalName lowercases, collapses whitespace and folds known aliases.
func CanonicalName(name string) string {
	n := normalizeName(name)
	if n == "" {
		return ""
	}
	if c, ok := aliasIndex[n]; ok {
		return c
	}
	return n
}
