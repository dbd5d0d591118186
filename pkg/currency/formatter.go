package currency

import (
	"fmt"
	"math"
	"strings"
)

// zeroDecimalCurrencies have no minor unit on price displays.
var zeroDecimalCurrencies = map[string]bool{
	"IDR": true,
	"JPY": true,
	"KRW": true,
	"VND": true,
}

// Format renders an amount as "AUD 1,234.56". Currencies without a minor
// unit are rounded to whole numbers.
func Format(amount float64, code string) string {
	code = strings.ToUpper(code)
	if code == "" {
		code = "AUD"
	}

	negative := amount < 0
	if negative {
		amount = -amount
	}

	var intPart, fracPart string
	if zeroDecimalCurrencies[code] {
		intPart = fmt.Sprintf("%.0f", math.Round(amount))
	} else {
		s := fmt.Sprintf("%.2f", amount)
		intPart, fracPart, _ = strings.Cut(s, ".")
	}

	formatted := addThousandsSeparator(intPart, ",")
	if fracPart != "" {
		formatted += "." + fracPart
	}

	result := code + " " + formatted
	if negative {
		result = "-" + result
	}
	return result
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
