// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql/driver"
	"strings"

	"modernc.org/sqlite"
)

// SQL extensions available on every connection opened by the driver.
// SQLite's built-in lower() and NOCASE only fold ASCII.
const (
	// lowerFunc is a Unicode-aware lower(); NULL stays NULL.
	lowerFunc = "unicode_lower"

	// nocaseCollation orders text case-insensitively, breaking ties by
	// the raw bytes so the order is total.
	nocaseCollation = "unicode_nocase"
)

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(lowerFunc, 1, unicodeLower)
	sqlite.MustRegisterCollationUtf8(nocaseCollation, compareNoCase)
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

func compareNoCase(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
