package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassenware/storefront-api/internal/domain"
)

func TestParseFilterSpec_FullQuery(t *testing.T) {
	values, err := url.ParseQuery("q=remera&sort=price_desc&min_price=100&max_price=500.50&page=3&attr_Color=Rojo,Azul&attr_Talle=M")
	require.NoError(t, err)

	spec := ParseFilterSpec(values)

	assert.Equal(t, "remera", spec.Query)
	assert.Equal(t, domain.SortPriceDesc, spec.Sort)
	require.NotNil(t, spec.MinPrice)
	assert.True(t, spec.MinPrice.Equal(price("100")))
	require.NotNil(t, spec.MaxPrice)
	assert.True(t, spec.MaxPrice.Equal(price("500.50")))
	assert.Equal(t, 3, spec.Page)
	assert.Equal(t, []string{"Rojo", "Azul"}, spec.Attributes["Color"])
	assert.Equal(t, []string{"M"}, spec.Attributes["Talle"])
}

func TestParseFilterSpec_Defaults(t *testing.T) {
	spec := ParseFilterSpec(url.Values{})

	assert.Empty(t, spec.Query)
	assert.Equal(t, domain.SortNewest, spec.Sort)
	assert.Nil(t, spec.MinPrice)
	assert.Nil(t, spec.MaxPrice)
	assert.Equal(t, 1, spec.Page)
	assert.Empty(t, spec.Attributes)
}

func TestParseFilterSpec_MalformedValuesDropped(t *testing.T) {
	values, err := url.ParseQuery("sort=cheapest&min_price=abc&page=zero&attr_Color=,,")
	require.NoError(t, err)

	spec := ParseFilterSpec(values)

	assert.Equal(t, domain.SortNewest, spec.Sort)
	assert.Nil(t, spec.MinPrice)
	assert.Equal(t, 1, spec.Page)
	assert.Empty(t, spec.Attributes)
}

func TestFilterSpec_QueryValuesOmitsDefaults(t *testing.T) {
	spec := FilterSpec{Sort: domain.SortNewest, Page: 1}

	values := spec.QueryValues()

	assert.Empty(t, values.Encode())
}

func TestFilterSpec_RoundTrip(t *testing.T) {
	min := price("100")
	max := price("500.50")
	spec := FilterSpec{
		Query:    "remera",
		Sort:     domain.SortPriceAsc,
		MinPrice: &min,
		MaxPrice: &max,
		Attributes: map[string][]string{
			"Color": {"Rojo", "Azul"},
			"Talle": {"M"},
		},
		Page: 2,
	}

	parsed := ParseFilterSpec(spec.QueryValues())

	assert.Equal(t, spec.Query, parsed.Query)
	assert.Equal(t, spec.Sort, parsed.Sort)
	require.NotNil(t, parsed.MinPrice)
	assert.True(t, parsed.MinPrice.Equal(min))
	require.NotNil(t, parsed.MaxPrice)
	assert.True(t, parsed.MaxPrice.Equal(max))
	assert.Equal(t, spec.Attributes, parsed.Attributes)
	assert.Equal(t, spec.Page, parsed.Page)
}
