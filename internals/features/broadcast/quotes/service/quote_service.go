package service

import (
	"math/rand"
	"time"

	"gorm.io/gorm"

	quotemodel "github.com/Davie-07/school-management-system/internals/features/broadcast/quotes/model"
)

// FallbackQuote is served when no active quote exists for the day.
var FallbackQuote = quotemodel.Quote{
	QuoteText:   "Education is the most powerful weapon which you can use to change the world.",
	QuoteAuthor: "Nelson Mandela",
}

// Pick selects one quote from the pool. Exposed for tests; DailyQuote
// supplies a random index.
func Pick(pool []quotemodel.Quote, index int) quotemodel.Quote {
	if len(pool) == 0 {
		return FallbackQuote
	}
	return pool[index%len(pool)]
}

// DailyQuote returns a random active quote eligible for the weekday of now,
// bumping its display counter. Counter failures are swallowed; the quote is
// decoration, not data.
func DailyQuote(db *gorm.DB, now time.Time) (quotemodel.Quote, error) {
	var pool []quotemodel.Quote
	err := db.
		Where("quote_is_active = true").
		Where("quote_day_of_week = ? OR quote_day_of_week = 'All'", now.Weekday().String()).
		Find(&pool).Error
	if err != nil {
		return FallbackQuote, err
	}
	if len(pool) == 0 {
		return FallbackQuote, nil
	}

	selected := Pick(pool, rand.Intn(len(pool)))

	db.Model(&quotemodel.Quote{}).
		Where("quote_id = ?", selected.QuoteID).
		Updates(map[string]any{
			"quote_display_count":  gorm.Expr("quote_display_count + 1"),
			"quote_last_displayed": now,
		})

	return selected, nil
}
