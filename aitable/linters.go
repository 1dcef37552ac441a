/* Apache v2 license
 * Copyright (C) 2026 Symbolscan
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package aitable

import (
	"github.com/pkg/errors"
)

// LintError describes why a component value failed a lint check, along with
// the offending range within the value so that callers can highlight it.
type LintError struct {
	Msg string
	Pos int // offset of the bad range within the component value
	Len int // length of the bad range; 0 means the whole value
}

func (e *LintError) Error() string {
	return e.Msg
}

// Linter is a named check applied to a component value after its character
// set and length have been verified.
type Linter func(val string) *LintError

// linters holds the named checks that AI format specifications may reference,
// e.g. the "csum" in "N14,csum,key".
var linters = map[string]Linter{
	"csum":    lintCSum,
	"key":     lintKey,
	"yymmd0":  lintYYMMD0,
	"nonzero": lintNonZero,
}

func lookupLinter(name string) (Linter, error) {
	l, ok := linters[name]
	if !ok {
		return nil, errors.Errorf("unknown linter %q", name)
	}
	return l, nil
}

// CheckDigit returns the mod-10 check digit for the digit string s, using
// weights 3 and 1 alternating from the rightmost digit. s is the payload
// only; it must not already carry its check digit.
func CheckDigit(s string) byte {
	sum := 0
	w := 3
	for i := len(s) - 1; i >= 0; i-- {
		sum += int(s[i]-'0') * w
		w = 4 - w
	}
	return byte('0' + (10-sum%10)%10)
}

// lintCSum verifies that the final digit of the value is the mod-10 check
// digit of the preceding digits.
func lintCSum(val string) *LintError {
	if len(val) < 2 {
		return &LintError{Msg: "Too short to include a check digit"}
	}
	if val[len(val)-1] != CheckDigit(val[:len(val)-1]) {
		return &LintError{Msg: "Incorrect check digit", Pos: len(val) - 1, Len: 1}
	}
	return nil
}

// lintKey applies the structural checks common to all GS1 keys: the value
// must be long enough to carry a GS1 Company Prefix and must start with
// digits.
func lintKey(val string) *LintError {
	if len(val) < 4 {
		return &LintError{Msg: "Too short to be a GS1 key"}
	}
	for i := 0; i < 4; i++ {
		if val[i] < '0' || val[i] > '9' {
			return &LintError{Msg: "GS1 keys must begin with a numeric GS1 Company Prefix", Pos: i, Len: 1}
		}
	}
	return nil
}

// daysInMonth is indexed by month 1-12; February is adjusted for leap years.
var daysInMonth = [13]uint8{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// lintYYMMD0 verifies a six-digit YYMMDD date in which "00" is permitted as
// the day, denoting the last day of the month.
func lintYYMMD0(val string) *LintError {
	if len(val) != 6 || !allDigits(val) {
		return &LintError{Msg: "Dates must be six digits, YYMMDD"}
	}
	yy := int(val[0]-'0')*10 + int(val[1]-'0')
	mm := int(val[2]-'0')*10 + int(val[3]-'0')
	dd := int(val[4]-'0')*10 + int(val[5]-'0')
	if mm < 1 || mm > 12 {
		return &LintError{Msg: "Invalid month in date", Pos: 2, Len: 2}
	}
	maxDay := int(daysInMonth[mm])
	if mm == 2 && yy%4 == 0 {
		maxDay = 29
	}
	// day "00" means the last day of the month
	if dd > maxDay {
		return &LintError{Msg: "Invalid day in date", Pos: 4, Len: 2}
	}
	return nil
}

// lintNonZero rejects values consisting entirely of zeros.
func lintNonZero(val string) *LintError {
	for i := 0; i < len(val); i++ {
		if val[i] != '0' {
			return nil
		}
	}
	return &LintError{Msg: "A zero value is not permitted"}
}
