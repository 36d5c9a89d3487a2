package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lassenware/storefront-api/internal/domain"
)

// Attribute constraints travel as one query parameter per dimension,
// prefixed to avoid colliding with the fixed keys: attr_Color=Azul,Rojo
const attributeParamPrefix = "attr_"

// ParseFilterSpec builds a FilterSpec from flat query parameters. Unknown
// keys are ignored, malformed numbers are dropped, and an unrecognized sort
// value falls back to newest, so any URL yields a usable spec.
func ParseFilterSpec(values url.Values) FilterSpec {
	spec := FilterSpec{
		Query:      values.Get("q"),
		Sort:       domain.SortNewest,
		Attributes: make(map[string][]string),
		Page:       1,
	}

	if mode := domain.SortMode(values.Get("sort")); mode.IsValid() {
		spec.Sort = mode
	}
	if raw := values.Get("min_price"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			spec.MinPrice = &d
		}
	}
	if raw := values.Get("max_price"); raw != "" {
		if d, err := decimal.NewFromString(raw); err == nil {
			spec.MaxPrice = &d
		}
	}
	if raw := values.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 1 {
			spec.Page = page
		}
	}

	for key, vals := range values {
		if !strings.HasPrefix(key, attributeParamPrefix) || len(vals) == 0 {
			continue
		}
		name := strings.TrimPrefix(key, attributeParamPrefix)
		if name == "" {
			continue
		}
		selected := splitNonEmpty(vals[0])
		if len(selected) > 0 {
			spec.Attributes[name] = selected
		}
	}

	return spec
}

// QueryValues serializes the spec back to its flat query-parameter form.
// Defaults (empty query, newest sort, page 1, empty constraint sets) are
// omitted, so parse/serialize round-trips produce canonical URLs.
func (s FilterSpec) QueryValues() url.Values {
	values := url.Values{}

	if s.Query != "" {
		values.Set("q", s.Query)
	}
	if s.Sort != "" && s.Sort != domain.SortNewest {
		values.Set("sort", string(s.Sort))
	}
	if s.MinPrice != nil {
		values.Set("min_price", s.MinPrice.String())
	}
	if s.MaxPrice != nil {
		values.Set("max_price", s.MaxPrice.String())
	}
	for name, selected := range s.Attributes {
		if len(selected) > 0 {
			values.Set(attributeParamPrefix+name, strings.Join(selected, ","))
		}
	}
	if s.Page > 1 {
		values.Set("page", strconv.Itoa(s.Page))
	}

	return values
}

func splitNonEmpty(raw string) []string {
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
