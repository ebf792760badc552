package report

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/retail-ops/backend-go/internal/domain"
)

func TestWriteCSVQuotingAndFormats(t *testing.T) {
	table := Table{
		Headers: []string{"Store ID", "Store Name", "Total Revenue", "Spoilage Rate", "Items"},
		Rows: [][]Field{
			{
				Int(7),
				Text(`O"Brien's Market`),
				Money(decimal.RequireFromString("1234.5")),
				Percent(3.14159),
				Int(42),
			},
		},
	}

	var b strings.Builder
	require.NoError(t, WriteCSV(&b, table))

	want := `"Store ID","Store Name","Total Revenue","Spoilage Rate","Items"` + "\n" +
		`7,"O""Brien's Market",1234.50,3.1,42` + "\n"
	assert.Equal(t, want, b.String())
}

func TestWriteCSVHeadersAlwaysQuoted(t *testing.T) {
	out := string(CSVBytes(Table{Headers: []string{"Date", "Transactions"}}))
	assert.Equal(t, "\"Date\",\"Transactions\"\n", out)
}

func TestWriteCSVMoneyTwoFractionDigits(t *testing.T) {
	cases := map[string]string{
		"0":       "0.00",
		"5":       "5.00",
		"10.1":    "10.10",
		"99.999":  "100.00",
		"1234.56": "1234.56",
	}
	for in, want := range cases {
		out := string(CSVBytes(Table{
			Headers: []string{"Revenue"},
			Rows:    [][]Field{{Money(decimal.RequireFromString(in))}},
		}))
		assert.Equal(t, "\"Revenue\"\n"+want+"\n", out, "money %s", in)
	}
}

func TestWriteCSVPercentOneFractionDigit(t *testing.T) {
	out := string(CSVBytes(Table{
		Headers: []string{"Rate"},
		Rows:    [][]Field{{Percent(0)}, {Percent(12.06)}, {Percent(100)}},
	}))
	assert.Equal(t, "\"Rate\"\n0.0\n12.1\n100.0\n", out)
}

func TestWriteCSVLineEndings(t *testing.T) {
	out := string(CSVBytes(Table{
		Headers: []string{"A"},
		Rows:    [][]Field{{Text("x")}, {Text("y")}},
	}))
	assert.False(t, strings.Contains(out, "\r"))
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Len(t, strings.Split(strings.TrimSuffix(out, "\n"), "\n"), 3)
}

func TestStoreSummaryTable(t *testing.T) {
	rows := []domain.StoreSalesSummary{
		{
			StoreID:             1,
			StoreName:           "Downtown Market",
			Region:              domain.RegionNorth,
			TotalTransactions:   2,
			TotalItemsSold:      3,
			TotalRevenue:        decimal.RequireFromString("10"),
			AvgTransactionValue: decimal.RequireFromString("5"),
		},
	}

	out := string(CSVBytes(StoreSummaryTable(rows)))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"Store ID","Store Name","Region","Transactions","Items Sold","Total Revenue","Avg Transaction Value"`, lines[0])
	assert.Equal(t, `1,"Downtown Market","North",2,3,10.00,5.00`, lines[1])
}

func TestTopStoresTable(t *testing.T) {
	stores := []domain.TopStore{
		{Rank: 1, StoreID: 2, Name: "Harbor Grocery", SpoilageRate: 2.5, Stockouts: 3, Revenue: decimal.RequireFromString("300")},
	}

	out := string(CSVBytes(TopStoresTable(stores)))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"Rank","Store Name","Revenue","Spoilage Rate","Stockouts"`, lines[0])
	assert.Equal(t, `1,"Harbor Grocery",300.00,2.5,3`, lines[1])
}
