// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// =============================================================================
// CURRENCY FORMATTING
// =============================================================================

// Amounts display in Indian rupees with lakh/crore digit grouping, matching
// the bank's locale.
var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR formats an amount as rupees with exactly two fraction digits,
// e.g. 100000 -> "₹1,00,000.00".
func FormatINR(amount float64) string {
	return inrPrinter.Sprintf("₹%v", number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
}

// FormatSignedINR formats an amount with an explicit sign for transaction
// rows: deposits show "+", withdrawals "-".
func FormatSignedINR(amount float64, credit bool) string {
	if credit {
		return "+" + FormatINR(amount)
	}
	return "-" + FormatINR(amount)
}
