package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of an exchange from the shop's
// point of view: a sell hands currencyFrom to the client, a buy takes it in.
type TransactionType string

const (
	TransactionBuy      TransactionType = "buy"
	TransactionSell     TransactionType = "sell"
	TransactionTransfer TransactionType = "transfer"
)

// TransactionStatus is the settlement state of an exchange transaction.
// It moves forward only: unpaid -> partial -> paid. Voided is reachable
// only when voiding is enabled by configuration.
type TransactionStatus string

const (
	TransactionUnpaid  TransactionStatus = "unpaid"
	TransactionPartial TransactionStatus = "partial"
	TransactionPaid    TransactionStatus = "paid"
	TransactionVoided  TransactionStatus = "voided"
)

// ExchangeTransaction is a single currency-exchange event. AmountPaid +
// AmountRemaining == AmountTo at all times; Status is a pure function of
// those amounts (DeriveTransactionStatus) and is re-derived on every write.
type ExchangeTransaction struct {
	TransactionID   string            `json:"transactionID"` // Primary Key (UUID)
	Reference       string            `json:"reference"`     // Unique, human-facing (e.g., TXN-1A2B3C4D)
	ClientID        string            `json:"clientID"`
	CurrencyFrom    string            `json:"currencyFrom"`
	CurrencyTo      string            `json:"currencyTo"`
	AmountFrom      decimal.Decimal   `json:"amountFrom"`
	ExchangeRate    decimal.Decimal   `json:"exchangeRate"` // Rate offered to the client
	AmountTo        decimal.Decimal   `json:"amountTo"`     // AmountFrom * ExchangeRate
	AmountPaid      decimal.Decimal   `json:"amountPaid"`
	AmountRemaining decimal.Decimal   `json:"amountRemaining"`
	Status          TransactionStatus `json:"status"`
	Type            TransactionType   `json:"type"`
	MarketRate      *decimal.Decimal  `json:"marketRate,omitempty"` // Nil when rates are unknown
	Profit          *decimal.Decimal  `json:"profit,omitempty"`     // Expressed in CurrencyTo, 2 decimals
	ProfitCurrency  string            `json:"profitCurrency,omitempty"`
	Notes           string            `json:"notes"`
	PaidAt          *time.Time        `json:"paidAt,omitempty"` // Set once, on the transition to paid
	AuditFields
}

// DeriveTransactionStatus recomputes the settlement status from the two
// amounts. Callers must pass the post-write values.
func DeriveTransactionStatus(amountPaid, amountTo decimal.Decimal) TransactionStatus {
	if amountPaid.GreaterThanOrEqual(amountTo) && amountTo.IsPositive() {
		return TransactionPaid
	}
	if amountPaid.IsPositive() {
		return TransactionPartial
	}
	return TransactionUnpaid
}

// SpreadProfit computes the shop's internal market rate for an exchange and
// the operator profit versus the rate offered to the client. Profit is
// expressed in the destination currency and rounded to 2 decimals.
//
// For a sell (shop hands currencyFrom, receives currencyTo):
//
//	marketRate = sellRate(to) / buyRate(from)
//	profit     = amountFrom * (marketRate - offeredRate)
//
// For a buy the rates swap roles and the sign flips. Transfers carry no
// spread, so profit is zero at the market rate equal to the offered rate.
func SpreadProfit(txType TransactionType, amountFrom, offeredRate decimal.Decimal, from, to RateQuote) (marketRate, profit decimal.Decimal) {
	switch txType {
	case TransactionSell:
		if from.BuyRate.IsZero() {
			return decimal.Zero, decimal.Zero
		}
		marketRate = to.SellRate.Div(from.BuyRate)
		profit = amountFrom.Mul(marketRate.Sub(offeredRate))
	case TransactionBuy:
		if from.SellRate.IsZero() {
			return decimal.Zero, decimal.Zero
		}
		marketRate = to.BuyRate.Div(from.SellRate)
		profit = amountFrom.Mul(offeredRate.Sub(marketRate))
	default:
		marketRate = offeredRate
		profit = decimal.Zero
	}
	return marketRate, profit.Round(2)
}
