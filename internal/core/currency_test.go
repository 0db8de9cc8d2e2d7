package core

import "testing"

func TestConvert(t *testing.T) {
	rates := BuildRateTable([]RateRow{
		{From: "EUR", To: "USD", Rate: 1.1},
		{From: "USD", To: "CAD", Rate: 1.36},
		{From: "GBP", To: "USD", Rate: 0},
	})

	cases := []struct {
		name   string
		amount float64
		from   string
		to     string
		want   float64
	}{
		{"same currency", 100, "USD", "USD", 100},
		{"empty source currency", 42.5, "", "USD", 42.5},
		{"direct rate", 100, "EUR", "USD", 110.00000000000001},
		{"inverse rate", 136, "CAD", "USD", 100},
		{"no rate falls back to identity", 77, "JPY", "USD", 77},
		{"zero direct rate falls back to identity", 50, "GBP", "USD", 50},
		{"zero inverse rate falls back to identity", 50, "USD", "GBP", 50},
		{"negative amounts convert too", -200, "EUR", "USD", -220.00000000000003},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Convert(tc.amount, tc.from, tc.to, rates)
			if got != tc.want {
				t.Errorf("Convert(%v, %q, %q) = %v, want %v", tc.amount, tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestConvertIdentityIgnoresTable(t *testing.T) {
	rates := BuildRateTable([]RateRow{{From: "USD", To: "USD", Rate: 2}})
	if got := Convert(10, "USD", "USD", rates); got != 10 {
		t.Errorf("identity conversion must ignore the table, got %v", got)
	}
}

func TestBuildRateTableLastWriteWins(t *testing.T) {
	rates := BuildRateTable([]RateRow{
		{From: "EUR", To: "USD", Rate: 1.05},
		{From: "EUR", To: "USD", Rate: 1.1},
	})
	if rates[RateKey("EUR", "USD")] != 1.1 {
		t.Errorf("expected later snapshot row to win, got %v", rates[RateKey("EUR", "USD")])
	}
}
