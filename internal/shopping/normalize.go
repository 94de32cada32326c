package shopping

import (
	"strings"

	"recipehub/pkg/models"
)

// Normalize reduces an ingredient label to its matching key: lowercase,
// cut at the first "(", surrounding whitespace trimmed. "Eggs (large)"
// becomes "eggs". Distinct labels may collapse to the same key.
func Normalize(label string) string {
	if i := strings.IndexByte(label, '('); i >= 0 {
		label = label[:i]
	}
	return strings.TrimSpace(strings.ToLower(label))
}

// Match returns the price of the first catalog entry, in stored order,
// whose lowercase label contains normalized. Unmatched labels cost 0.
//
// Short keys match loosely: "egg" also matches "eggplant".
func Match(normalized string, prices models.PriceList) float64 {
	for _, p := range prices {
		if strings.Contains(strings.ToLower(p.Label), normalized) {
			return p.Amount
		}
	}
	return 0
}
