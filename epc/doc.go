/* Apache v2 license
 * Copyright (C) 2026 Symbolscan
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package epc decodes EPC tag data into GS1 element strings.
//
// RFID readers report the EPC memory bank as hex, encoded per the GS1 EPC
// Tag Data Standard. This package unpacks the SGTIN-96 and SGTIN-198
// binary schemes into their GTIN and serial fields and renders them as an
// unbracketed element string ("^01...21...") that the root package's
// Encoder accepts directly.
//
// An SGTIN combines a GS1 GTIN with a serial identifying one instance of
// that trade item. Serials are strings: '0', '07' and '007' are distinct.
// SGTIN-96 restricts serials to decimal values without leading zeros
// (except the single value '0'), while SGTIN-198 carries up to twenty
// characters of the GS1 AI encodable character set 82 as packed 7-bit
// ISO 646. The company prefix and item reference carry significant
// leading zeros too, but the partition value fixes their widths, so they
// are held as integers and reformatted on output.
package epc
