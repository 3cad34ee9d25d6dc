package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	quotemodel "github.com/Davie-07/school-management-system/internals/features/broadcast/quotes/model"
)

func TestPickEmptyPoolFallsBack(t *testing.T) {
	got := Pick(nil, 3)

	assert.Equal(t, FallbackQuote.QuoteText, got.QuoteText)
	assert.Equal(t, "Nelson Mandela", got.QuoteAuthor)
}

func TestPickWrapsIndex(t *testing.T) {
	pool := []quotemodel.Quote{
		{QuoteText: "first"},
		{QuoteText: "second"},
	}

	assert.Equal(t, "first", Pick(pool, 0).QuoteText)
	assert.Equal(t, "second", Pick(pool, 1).QuoteText)
	assert.Equal(t, "first", Pick(pool, 2).QuoteText)
}
