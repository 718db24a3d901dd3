package utils

import (
	"fmt"
	"strings"
)

// Kurs statis terhadap THB — hanya untuk tampilan, nilai tersimpan tidak pernah dikonversi
var CurrencyRates = map[string]float64{
	"THB": 1,
	"USD": 0.029,
	"EUR": 0.026,
	"GBP": 0.023,
	"JPY": 4.2,
}

var CurrencySymbols = map[string]string{
	"THB": "฿",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// Convert mengkonversi amount (base THB) ke mata uang lain memakai kurs statis.
// Kode yang tidak dikenal dikembalikan apa adanya.
func Convert(amount float64, code string) float64 {
	rate, ok := CurrencyRates[code]
	if !ok {
		return amount
	}
	return amount * rate
}

// FormatMoney formats a base-currency amount for display in the given currency,
// e.g. FormatMoney(15000.5, "THB") -> "฿15,000.50"
func FormatMoney(amount float64, code string) string {
	symbol, ok := CurrencySymbols[code]
	if !ok {
		symbol = code + " "
	}

	converted := Convert(amount, code)

	// Tambahkan pemisah ribuan
	formatted := fmt.Sprintf("%.2f", converted)
	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	negative := false
	if strings.HasPrefix(integerPart, "-") {
		negative = true
		integerPart = integerPart[1:]
	}

	var result []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		result = append([]string{integerPart[start:i]}, result...)
	}

	out := symbol + strings.Join(result, ",") + "." + decimalPart
	if negative {
		out = "-" + out
	}
	return out
}
