/* Apache v2 license
 * Copyright (C) 2026 Symbolscan
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package epc

// extractUint returns width bits of b as an unsigned integer, starting at
// bit offset start. Bit 0 is the high bit of b[0]. The field must lie
// within b and width must not exceed 64.
func extractUint(b []byte, start, width int) uint64 {
	var v uint64
	for i := start; i < start+width; i++ {
		v = v<<1 | uint64(b[i/8]>>(7-uint(i%8))&1)
	}
	return v
}

// unpackASCII expands packed 7-bit ISO 646 characters beginning at bit
// offset start, one output byte per 7 input bits. Trailing bits that do
// not fill a whole character are dropped.
func unpackASCII(b []byte, start int) string {
	n := (len(b)*8 - start) / 7
	if n <= 0 {
		return ""
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = byte(extractUint(b, start+i*7, 7))
	}
	return string(out)
}
