package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matsen/paperfeed/internal/reference"
)

// Order is a sort order for item lists.
type Order string

const (
	DateDesc  Order = "date_desc"
	DateAsc   Order = "date_asc"
	TitleAsc  Order = "title_asc"
	TitleDesc Order = "title_desc"
)

// ParseOrder validates a sort order; "" means DateDesc.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return DateDesc, nil
	case DateDesc, DateAsc, TitleAsc, TitleDesc:
		return o, nil
	}
	return "", fmt.Errorf("invalid sort order %q: want date_desc, date_asc, title_asc or title_desc", s)
}

// Sort returns a sorted copy of items. Dates compare as RFC 3339 text, which
// orders correctly because every stored date is in UTC. Ties keep input order.
func Sort(items []reference.Item, order Order) []reference.Item {
	out := make([]reference.Item, len(items))
	copy(out, items)

	var less func(a, b reference.Item) bool
	switch order {
	case DateAsc:
		less = func(a, b reference.Item) bool { return a.Date < b.Date }
	case TitleAsc:
		less = func(a, b reference.Item) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) }
	case TitleDesc:
		less = func(a, b reference.Item) bool { return strings.ToLower(a.Title) > strings.ToLower(b.Title) }
	default:
		less = func(a, b reference.Item) bool { return a.Date > b.Date }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
