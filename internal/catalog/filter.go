package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/osse101/GiftMarket_Go/internal/domain"
)

// Query narrows the catalog. Values within one dimension are alternatives;
// dimensions combine with AND. Empty dimensions match everything.
type Query struct {
	Search      string
	Collections []string
	Models      []string
	Backdrops   []string
}

// Empty reports whether the query matches every item
func (q Query) Empty() bool {
	return strings.TrimSpace(q.Search) == "" && len(q.Collections) == 0 && len(q.Models) == 0 && len(q.Backdrops) == 0
}

// Filter returns the items matching q in their original order
func Filter(items []domain.Item, q Query) []domain.Item {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]domain.Item, 0, len(items))
	for _, it := range items {
		if search != "" &&
			!strings.Contains(strings.ToLower(it.Title), search) &&
			!strings.Contains(strings.ToLower(it.Subtitle), search) {
			continue
		}
		if !oneOf(q.Collections, it.Collection) || !oneOf(q.Models, it.Model) || !oneOf(q.Backdrops, it.Backdrop) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func oneOf(selected []string, value string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if s == value {
			return true
		}
	}
	return false
}

// Option is one selectable facet value
type Option struct {
	Value      string          `json:"value"`
	FloorPrice decimal.Decimal `json:"floor_price" swaggertype:"string"`
	Count      int             `json:"count"`
}

// Facets holds the options for every filter dimension
type Facets struct {
	Collections []Option `json:"collections"`
	Models      []Option `json:"models"`
	Backdrops   []Option `json:"backdrops"`
}

// BuildFacets lists every non-empty value per dimension in first-seen order
// with its lowest price and item count
func BuildFacets(items []domain.Item) Facets {
	return Facets{
		Collections: options(items, func(it domain.Item) string { return it.Collection }),
		Models:      options(items, func(it domain.Item) string { return it.Model }),
		Backdrops:   options(items, func(it domain.Item) string { return it.Backdrop }),
	}
}

func options(items []domain.Item, key func(domain.Item) string) []Option {
	out := []Option{}
	index := make(map[string]int)
	for _, it := range items {
		v := key(it)
		if v == "" {
			continue
		}
		i, ok := index[v]
		if !ok {
			index[v] = len(out)
			out = append(out, Option{Value: v, FloorPrice: it.Price, Count: 1})
			continue
		}
		out[i].Count++
		if it.Price.LessThan(out[i].FloorPrice) {
			out[i].FloorPrice = it.Price
		}
	}
	return out
}
