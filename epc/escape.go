/* Apache v2 license
 * Copyright (C) 2026 Symbolscan
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package epc

import "strings"

// Pure identity URIs percent-encode the characters of character set 82
// that are reserved in URI syntax, per the EPC Tag Data Standard.
var (
	gs1Escaper = strings.NewReplacer(
		`"`, "%22",
		`%`, "%25",
		`&`, "%26",
		`/`, "%2F",
		`<`, "%3C",
		`>`, "%3E",
		`?`, "%3F",
	)

	gs1Unescaper = strings.NewReplacer(
		"%22", `"`,
		"%25", `%`,
		"%26", `&`,
		"%2F", `/`,
		"%3C", `<`,
		"%3E", `>`,
		"%3F", `?`,
	)
)

// EscapeSerial returns the serial with URI-reserved characters replaced by
// their percent-encoded forms for use in a pure identity URI.
func EscapeSerial(s string) string {
	return gs1Escaper.Replace(s)
}

// UnescapeSerial reverses EscapeSerial.
func UnescapeSerial(s string) string {
	return gs1Unescaper.Replace(s)
}
