/* Apache v2 license
 * Copyright (C) 2026 Symbolscan
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package aitable

// CSet identifies one of the GS1 character sets that AI component values
// are drawn from.
type CSet int

const (
	CSetNone CSet = iota

	// CSetNumeric is the digits '0'-'9'.
	CSetNumeric

	// CSet82 is GS1 "character set 82": the file-safe subset of ISO 646
	// used for most alphanumeric AI values.
	CSet82

	// CSet39 is GS1 "character set 39", used for component/part AIs.
	CSet39

	// CSet64 is the URL-safe base64 alphabet, used for digital signatures.
	CSet64
)

// letter returns the character-set code letter used in AI format
// specifications, e.g. "N14" or "X..20".
func (c CSet) letter() byte {
	switch c {
	case CSetNumeric:
		return 'N'
	case CSet82:
		return 'X'
	case CSet39:
		return 'Y'
	case CSet64:
		return 'Z'
	}
	return '?'
}

func csetForLetter(b byte) (CSet, bool) {
	switch b {
	case 'N':
		return CSetNumeric, true
	case 'X':
		return CSet82, true
	case 'Y':
		return CSet39, true
	case 'Z':
		return CSet64, true
	}
	return CSetNone, false
}

var (
	// valid characters for GS1 AI values drawn from character set 82
	cset82Table = [127]uint8{
		'!': 1, '"': 1, '%': 1, '&': 1, '\'': 1, '(': 1, ')': 1,
		'*': 1, '+': 1, ',': 1, '-': 1, '.': 1, '/': 1,
		':': 1, ';': 1, '<': 1, '=': 1, '>': 1, '?': 1, '_': 1,
		'0': 1, '1': 1, '2': 1, '3': 1, '4': 1, '5': 1, '6': 1, '7': 1, '8': 1, '9': 1,
		'A': 1, 'B': 1, 'C': 1, 'D': 1, 'E': 1, 'F': 1, 'G': 1, 'H': 1, 'I': 1,
		'J': 1, 'K': 1, 'L': 1, 'M': 1, 'N': 1, 'O': 1, 'P': 1, 'Q': 1, 'R': 1,
		'S': 1, 'T': 1, 'U': 1, 'V': 1, 'W': 1, 'X': 1, 'Y': 1, 'Z': 1,
		'a': 1, 'b': 1, 'c': 1, 'd': 1, 'e': 1, 'f': 1, 'g': 1, 'h': 1, 'i': 1,
		'j': 1, 'k': 1, 'l': 1, 'm': 1, 'n': 1, 'o': 1, 'p': 1, 'q': 1, 'r': 1,
		's': 1, 't': 1, 'u': 1, 'v': 1, 'w': 1, 'x': 1, 'y': 1, 'z': 1,
	}

	// valid characters for component and part AI values (character set 39)
	cset39Table = [127]uint8{
		'#': 1, '-': 1, '/': 1,
		'0': 1, '1': 1, '2': 1, '3': 1, '4': 1, '5': 1, '6': 1, '7': 1, '8': 1, '9': 1,
		'A': 1, 'B': 1, 'C': 1, 'D': 1, 'E': 1, 'F': 1, 'G': 1, 'H': 1, 'I': 1,
		'J': 1, 'K': 1, 'L': 1, 'M': 1, 'N': 1, 'O': 1, 'P': 1, 'Q': 1, 'R': 1,
		'S': 1, 'T': 1, 'U': 1, 'V': 1, 'W': 1, 'X': 1, 'Y': 1, 'Z': 1,
	}

	// URL-safe base64 alphabet; '=' is only valid as trailing padding, which
	// the CSet64 linter checks separately
	cset64Table = [127]uint8{
		'-': 1, '_': 1, '=': 1,
		'0': 1, '1': 1, '2': 1, '3': 1, '4': 1, '5': 1, '6': 1, '7': 1, '8': 1, '9': 1,
		'A': 1, 'B': 1, 'C': 1, 'D': 1, 'E': 1, 'F': 1, 'G': 1, 'H': 1, 'I': 1,
		'J': 1, 'K': 1, 'L': 1, 'M': 1, 'N': 1, 'O': 1, 'P': 1, 'Q': 1, 'R': 1,
		'S': 1, 'T': 1, 'U': 1, 'V': 1, 'W': 1, 'X': 1, 'Y': 1, 'Z': 1,
		'a': 1, 'b': 1, 'c': 1, 'd': 1, 'e': 1, 'f': 1, 'g': 1, 'h': 1, 'i': 1,
		'j': 1, 'k': 1, 'l': 1, 'm': 1, 'n': 1, 'o': 1, 'p': 1, 'q': 1, 'r': 1,
		's': 1, 't': 1, 'u': 1, 'v': 1, 'w': 1, 'x': 1, 'y': 1, 'z': 1,
	}
)

// Contains returns true if ch is a member of the character set.
func (c CSet) Contains(ch byte) bool {
	if ch > 126 {
		return false
	}
	switch c {
	case CSetNumeric:
		return ch >= '0' && ch <= '9'
	case CSet82:
		return cset82Table[ch] == 1
	case CSet39:
		return cset39Table[ch] == 1
	case CSet64:
		return cset64Table[ch] == 1
	}
	return false
}

// IsCSet82 returns true if the string contains only characters from GS1
// character set 82.
func IsCSet82(s string) bool {
	for i := 0; i < len(s); i++ {
		if !CSet82.Contains(s[i]) {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
