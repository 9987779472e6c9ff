package crop

import "strings"

// DefaultSuggestLimit caps Suggest when the caller passes a non-positive limit.
const DefaultSuggestLimit = 20

// Validator answers whether a crop name is recognized and, when it is not, which
// registered names the operator may have meant.
type Validator struct {
	reg *Registry
}

func NewValidator(reg *Registry) *Validator { return &Validator{reg: reg} }

func (v *Validator) IsValid(name string) bool {
	if Normalize(name) == "" {
		return false
	}
	return v.reg.Contains(name)
}

// Suggest returns registered names starting with prefix, ascending, at most limit long.
// Each call returns a new slice.
func (v *Validator) Suggest(prefix string, limit int) []string {
	p := Normalize(prefix)
	if p == "" {
		return []string{}
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	out := []string{}
	for _, n := range v.reg.names {
		if !strings.HasPrefix(n, p) {
			continue
		}
		out = append(out, n)
		if len(out) == limit {
			break
		}
	}
	return out
}
