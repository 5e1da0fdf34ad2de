package normalizer

import "strings"

// titleMapping maps lowercased, period-stripped salutations onto the
// canonical dotted forms.
var titleMapping = map[string]string{
	"dr":  "Dr.",
	"mr":  "Mr.",
	"mrs": "Mrs.",
	"ms":  "Ms.",
}

// NormalizeTitle maps a raw salutation onto one of "Mr.", "Mrs.", "Ms.",
// "Dr." or "". Matching ignores case and a trailing period. Values that do
// not name a single determinable title ("Rev", "Mr. and Mrs.", free text)
// normalize to the empty string. Total and deterministic; never fails.
func NormalizeTitle(salutation string) string {
	key := strings.ToLower(strings.TrimSpace(salutation))
	key = strings.TrimSuffix(key, ".")

	return titleMapping[key]
}
