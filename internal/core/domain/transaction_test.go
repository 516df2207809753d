package domain_test

import (
	"testing"

	"github.com/ndolodev/bureau_change_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeriveTransactionStatus(t *testing.T) {
	tests := []struct {
		name       string
		amountPaid string
		amountTo   string
		want       domain.TransactionStatus
	}{
		{"nothing paid", "0", "655500", domain.TransactionUnpaid},
		{"partially paid", "400000", "655500", domain.TransactionPartial},
		{"exactly paid", "655500", "655500", domain.TransactionPaid},
		{"paid with rounding overshoot", "655500.01", "655500", domain.TransactionPaid},
		{"zero total is never paid", "0", "0", domain.TransactionUnpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DeriveTransactionStatus(
				decimal.RequireFromString(tt.amountPaid),
				decimal.RequireFromString(tt.amountTo),
			)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpreadProfit(t *testing.T) {
	usd := domain.RateQuote{CurrencyCode: "USD", BuyRate: decimal.RequireFromString("650"), SellRate: decimal.RequireFromString("660")}
	xaf := domain.RateQuote{CurrencyCode: "XAF", BuyRate: decimal.RequireFromString("0.95"), SellRate: decimal.RequireFromString("1")}

	t.Run("sell uses sellRate(to)/buyRate(from)", func(t *testing.T) {
		// Shop sells 1000 USD at 655.5. Both quotes are against the shop's
		// base currency, so marketRate = sellRate(to) / buyRate(from) = 660.
		from := domain.RateQuote{CurrencyCode: "USD", BuyRate: decimal.NewFromInt(1), SellRate: decimal.RequireFromString("1.02")}
		to := domain.RateQuote{CurrencyCode: "XAF", BuyRate: decimal.RequireFromString("650"), SellRate: decimal.RequireFromString("660")}
		marketRate, profit := domain.SpreadProfit(
			domain.TransactionSell,
			decimal.NewFromInt(1000),
			decimal.RequireFromString("655.5"),
			from, to,
		)
		assert.True(t, marketRate.Equal(decimal.RequireFromString("660")), "marketRate = %s", marketRate)
		// 1000 * (660 - 655.5) = 4500, in favour of the shop.
		assert.True(t, profit.Equal(decimal.RequireFromString("4500")), "profit = %s", profit)
	})

	t.Run("buy flips the sign", func(t *testing.T) {
		from := domain.RateQuote{CurrencyCode: "USD", BuyRate: decimal.RequireFromString("0.98"), SellRate: decimal.NewFromInt(1)}
		to := domain.RateQuote{CurrencyCode: "XAF", BuyRate: decimal.RequireFromString("650"), SellRate: decimal.RequireFromString("660")}
		marketRate, profit := domain.SpreadProfit(
			domain.TransactionBuy,
			decimal.NewFromInt(100),
			decimal.RequireFromString("655"),
			from, to,
		)
		// marketRate = buyRate(to)/sellRate(from) = 650; offered 655, 5 per unit.
		assert.True(t, marketRate.Equal(decimal.RequireFromString("650")))
		assert.True(t, profit.Equal(decimal.RequireFromString("500")))
	})

	t.Run("transfer has no spread", func(t *testing.T) {
		marketRate, profit := domain.SpreadProfit(
			domain.TransactionTransfer,
			decimal.NewFromInt(1000),
			decimal.RequireFromString("655.5"),
			usd, xaf,
		)
		assert.True(t, marketRate.Equal(decimal.RequireFromString("655.5")))
		assert.True(t, profit.IsZero())
	})

	t.Run("zero divisor rate yields zero profit", func(t *testing.T) {
		broken := domain.RateQuote{CurrencyCode: "ZZZ"}
		marketRate, profit := domain.SpreadProfit(
			domain.TransactionSell,
			decimal.NewFromInt(1000),
			decimal.RequireFromString("655.5"),
			broken, xaf,
		)
		assert.True(t, marketRate.IsZero())
		assert.True(t, profit.IsZero())
	})

	t.Run("profit is rounded to 2 decimals", func(t *testing.T) {
		from := domain.RateQuote{CurrencyCode: "USD", BuyRate: decimal.NewFromInt(3), SellRate: decimal.NewFromInt(3)}
		to := domain.RateQuote{CurrencyCode: "EUR", BuyRate: decimal.NewFromInt(1), SellRate: decimal.NewFromInt(1)}
		_, profit := domain.SpreadProfit(
			domain.TransactionSell,
			decimal.NewFromInt(1),
			decimal.RequireFromString("0.3"),
			from, to,
		)
		// 1 * (1/3 - 0.3) = 0.0333... -> 0.03
		assert.True(t, profit.Equal(decimal.RequireFromString("0.03")), "profit = %s", profit)
	})
}
