package scenario

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Sort orders.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

const sortPartsMax = 2

// Sort errors.
var (
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'payback:asc')")
)

// sortKeys maps a field name to a comparison on outcomes.
//
//nolint:gochecknoglobals // Read-only lookup table.
var sortKeys = map[string]func(a, b Outcome) int{
	"name": func(a, b Outcome) int { return strings.Compare(a.Site.Name, b.Site.Name) },
	"cost": func(a, b Outcome) int { return cmpFloat(a.Result.Subtotal, b.Result.Subtotal) },
	"net":  func(a, b Outcome) int { return cmpFloat(a.Result.NetTotal, b.Result.NetTotal) },
	"subsidy": func(a, b Outcome) int {
		return cmpFloat(a.Result.TotalSubsidy, b.Result.TotalSubsidy)
	},
	"savings": func(a, b Outcome) int {
		return cmpFloat(a.Result.YearlySavings, b.Result.YearlySavings)
	},
	"co2": func(a, b Outcome) int {
		return cmpFloat(a.Result.Impact.CO2AbatedKg, b.Result.Impact.CO2AbatedKg)
	},
	"payback": func(a, b Outcome) int {
		return cmpFloat(a.Result.Payback.Years, b.Result.Payback.Years)
	},
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ValidSortFields lists the accepted sort fields in a stable order.
func ValidSortFields() []string {
	fields := make([]string, 0, len(sortKeys))
	for f := range sortKeys {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// IsValidSortField reports whether field can be sorted on.
func IsValidSortField(field string) bool {
	_, ok := sortKeys[field]
	return ok
}

// Sort returns a sorted copy of outcomes. Sorting is stable. When sorting by
// payback, sites whose payback cannot be computed go last in either order.
func Sort(outcomes []Outcome, field, order string) ([]Outcome, error) {
	cmp, ok := sortKeys[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, strings.Join(ValidSortFields(), ", "))
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortOrder, order)
	}

	sorted := slices.Clone(outcomes)
	slices.SortStableFunc(sorted, func(a, b Outcome) int {
		if field == "payback" && a.Result.Payback.Computable != b.Result.Payback.Computable {
			if a.Result.Payback.Computable {
				return -1
			}
			return 1
		}
		c := cmp(a, b)
		if order == SortOrderDesc {
			return -c
		}
		return c
	})
	return sorted, nil
}

// ParseSortExpression parses "field" or "field:order". A bare field sorts
// ascending.
//
//nolint:nonamedreturns // Named returns document the pair.
func ParseSortExpression(expr string) (field, order string, err error) {
	if strings.TrimSpace(expr) == "" {
		return "", "", ErrEmptySortField
	}
	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, expr)
	}

	field = strings.ToLower(strings.TrimSpace(parts[0]))
	if field == "" {
		return "", "", ErrEmptySortField
	}
	order = SortOrderAsc
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortOrder, order)
	}
	if !IsValidSortField(field) {
		return "", "", fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field, strings.Join(ValidSortFields(), ", "))
	}
	return field, order, nil
}

// Limit returns at most n outcomes; n <= 0 returns all.
func Limit(outcomes []Outcome, n int) []Outcome {
	if n <= 0 || n >= len(outcomes) {
		return outcomes
	}
	return outcomes[:n]
}
