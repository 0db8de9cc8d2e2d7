// Package core provides the pure building blocks of the reporting
// engine: currency normalization, category rollup, and the rounding
// discipline every report shares. Nothing in this package performs I/O.
package core

// RateTable is a directed exchange-rate lookup keyed "FROM->TO". It is
// built once per report call and treated as immutable afterwards, so
// concurrent report calls can never interfere through it.
type RateTable map[string]float64

// RateKey builds the lookup key for a directed currency pair.
func RateKey(from, to string) string {
	return from + "->" + to
}

// BuildRateTable turns a rate snapshot into a lookup table. Later rows
// for the same pair overwrite earlier ones.
func BuildRateTable(rows []RateRow) RateTable {
	table := make(RateTable, len(rows))
	for _, r := range rows {
		table[RateKey(r.From, r.To)] = r.Rate
	}
	return table
}

// Convert normalizes a signed amount from one currency to another.
//
// Lookup order: identity when the currencies match or from is empty,
// then the direct pair, then the inverse pair. A missing or zero rate
// degrades to identity instead of failing — a bad rate snapshot must
// never surface as an error or produce Inf/NaN. No transitive path is
// ever attempted.
func Convert(amount float64, from, to string, rates RateTable) float64 {
	if from == "" || from == to {
		return amount
	}
	if rate, ok := rates[RateKey(from, to)]; ok && rate != 0 {
		return amount * rate
	}
	if rate, ok := rates[RateKey(to, from)]; ok && rate != 0 {
		return amount / rate
	}
	return amount
}
