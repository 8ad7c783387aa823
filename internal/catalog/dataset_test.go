package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedDataset(t *testing.T) {
	props, err := Default()
	require.NoError(t, err)
	require.Len(t, props, 8)

	first := props[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "Austin", first.City)
	assert.Equal(t, House, first.PropertyType)
	assert.False(t, first.ListingDate.IsZero())
	assert.NotEmpty(t, first.Images)

	for _, p := range props {
		assert.NotEmpty(t, p.ID)
		assert.GreaterOrEqual(t, p.Price, 0.0)
	}
}

func TestLoadDataset_Valid(t *testing.T) {
	doc := `[
		{"id":"a","title":"A","price":1,"address":"x","city":"y","state":"z",
		 "propertyType":"House","bedrooms":1,"bathrooms":1.5,"squareFeet":10}
	]`
	props, err := LoadDataset(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, 1.5, props[0].Bathrooms)
}

func TestLoadDataset_Invalid(t *testing.T) {
	tests := map[string]string{
		"not json":         `{{`,
		"not an array":     `{"id":"a"}`,
		"missing price":    `[{"id":"a","title":"A","address":"x","city":"y","state":"z","propertyType":"House","bedrooms":1,"bathrooms":1,"squareFeet":10}]`,
		"negative price":   `[{"id":"a","title":"A","price":-5,"address":"x","city":"y","state":"z","propertyType":"House","bedrooms":1,"bathrooms":1,"squareFeet":10}]`,
		"bad listing date": `[{"id":"a","title":"A","price":5,"address":"x","city":"y","state":"z","propertyType":"House","bedrooms":1,"bathrooms":1,"squareFeet":10,"listingDate":"last week"}]`,
		"bad latitude":     `[{"id":"a","title":"A","price":5,"address":"x","city":"y","state":"z","propertyType":"House","bedrooms":1,"bathrooms":1,"squareFeet":10,"coordinates":{"lat":120,"lng":0}}]`,
		"duplicate ids": `[
			{"id":"a","title":"A","price":5,"address":"x","city":"y","state":"z","propertyType":"House","bedrooms":1,"bathrooms":1,"squareFeet":10},
			{"id":"a","title":"B","price":6,"address":"x","city":"y","state":"z","propertyType":"Condo","bedrooms":1,"bathrooms":1,"squareFeet":10}
		]`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadDataset(strings.NewReader(doc))
			assert.ErrorIs(t, err, ErrInvalidDataset)
		})
	}
}
