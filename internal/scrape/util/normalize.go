package util

import (
	"strings"

	"github.com/dustin/go-humanize"

	"jobhunt-workbench/internal/domain"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

func NormalizeLocation(loc string) string {
	loc = CleanText(loc)
	if loc == "" {
		return ""
	}

	loc = strings.TrimPrefix(loc, "Location:")
	loc = strings.TrimPrefix(loc, "LOCATIONS:")
	loc = strings.TrimSpace(loc)

	parts := strings.Split(loc, ",")
	seen := map[string]bool{}
	var out []string
	for _, p := range parts {
		p = CleanText(p)
		if p == "" {
			continue
		}
		k := strings.ToLower(p)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return strings.Join(out, ", ")
}

// InferWorkType maps free text to remote, hybrid or onsite; "" when nothing
// in the text says.
func InferWorkType(location, title, desc string) string {
	blob := strings.ToLower(strings.Join([]string{location, title, desc}, " "))

	switch {
	case strings.Contains(blob, "remote"):
		return domain.WorkTypeRemote
	case strings.Contains(blob, "hybrid"):
		return domain.WorkTypeHybrid
	case strings.Contains(blob, "on-site") || strings.Contains(blob, "onsite") || strings.Contains(blob, "on site"):
		return domain.WorkTypeOnsite
	default:
		return ""
	}
}

// FormatSalary renders a min/max range such as "$120,000 - $150,000". A
// missing bound collapses the range; both missing yields "".
func FormatSalary(min, max float64, currency string) string {
	sym := "$"
	switch strings.ToUpper(strings.TrimSpace(currency)) {
	case "", "USD", "CAD", "AUD":
	case "EUR":
		sym = "€"
	case "GBP":
		sym = "£"
	default:
		sym = strings.ToUpper(currency) + " "
	}
	f := func(v float64) string { return sym + humanize.Comma(int64(v)) }

	switch {
	case min <= 0 && max <= 0:
		return ""
	case min <= 0:
		return f(max)
	case max <= 0 || max == min:
		return f(min)
	default:
		return f(min) + " - " + f(max)
	}
}
