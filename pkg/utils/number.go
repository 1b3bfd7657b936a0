package utils

import (
	"fmt"
	"math"
	"strings"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// FormatCurrency formata um valor monetário em dólar com separador de
// milhar e sem centavos, com o sinal antes do símbolo: -$500, $1,600
func FormatCurrency(value float64) string {
	rounded := math.Round(value)
	if rounded < 0 {
		return "-$" + groupThousands(int64(-rounded))
	}
	return "$" + groupThousands(int64(rounded))
}

// FormatInteger formata um inteiro com separador de milhar
func FormatInteger(value int) string {
	if value < 0 {
		return "-" + groupThousands(int64(-value))
	}
	return groupThousands(int64(value))
}

func groupThousands(value int64) string {
	digits := fmt.Sprintf("%d", value)

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	return strings.Join(groups, ",")
}
