// internal/report/csv.go
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldKind selects the rendering rule for one CSV field.
type FieldKind int

const (
	// KindText fields are always double-quoted with embedded quotes
	// doubled, so free-text values round-trip under a naive parser.
	KindText FieldKind = iota
	// KindMoney renders with two fraction digits, unquoted.
	KindMoney
	// KindPercent renders with one fraction digit, unquoted.
	KindPercent
	// KindInt renders as a plain integer, unquoted.
	KindInt
)

// Field is one value in a report row.
type Field struct {
	Kind    FieldKind
	Text    string
	Money   decimal.Decimal
	Float   float64
	Integer int
}

func Text(v string) Field           { return Field{Kind: KindText, Text: v} }
func Money(v decimal.Decimal) Field { return Field{Kind: KindMoney, Money: v} }
func Percent(v float64) Field       { return Field{Kind: KindPercent, Float: v} }
func Int(v int) Field               { return Field{Kind: KindInt, Integer: v} }

// Table is a rollup table ready for serialization.
type Table struct {
	Headers []string
	Rows    [][]Field
}

// WriteCSV renders the table: one header line, one line per row,
// comma-joined fields, "\n" line endings.
func WriteCSV(w io.Writer, t Table) error {
	var b strings.Builder

	for i, h := range t.Headers {
		if i > 0 {
			b.WriteByte(',')
		}
		writeQuoted(&b, h)
	}
	b.WriteByte('\n')

	for _, row := range t.Rows {
		for i, f := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			writeField(&b, f)
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// CSVBytes renders the table to a byte slice.
func CSVBytes(t Table) []byte {
	var b strings.Builder
	_ = WriteCSV(&b, t)
	return []byte(b.String())
}

func writeField(b *strings.Builder, f Field) {
	switch f.Kind {
	case KindText:
		writeQuoted(b, f.Text)
	case KindMoney:
		b.WriteString(f.Money.StringFixed(2))
	case KindPercent:
		b.WriteString(strconv.FormatFloat(f.Float, 'f', 1, 64))
	case KindInt:
		b.WriteString(strconv.Itoa(f.Integer))
	default:
		b.WriteString(fmt.Sprintf("%v", f))
	}
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(s, `"`, `""`))
	b.WriteByte('"')
}
