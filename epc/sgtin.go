/* Apache v2 license
 * Copyright (C) 2026 Symbolscan
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package epc

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/symbolscan/gs1/aitable"
)

const (
	SGTINPureURIPrefix = "urn:epc:id:sgtin"
	SGTIN96NumBytes    = 12
	SGTIN198NumBytes   = 25 // 198 bits are not byte-aligned
	SGTIN96Header      = 0x30
	SGTIN198Header     = 0x36
)

// Field layout shared by SGTIN-96 and SGTIN-198.
const (
	headerLen    = 8
	filterLen    = 3
	partitionLen = 3
	prefixIIRLen = 44

	filterStartBit    = headerLen
	partitionStartBit = filterStartBit + filterLen
	gcpStartBit       = partitionStartBit + partitionLen
	serialStartBit    = gcpStartBit + prefixIIRLen

	serial96Len = 96 - serialStartBit
)

var (
	// The 44-bit company prefix / item reference field is divided by the
	// partition value: 10^(12-partition) company prefixes and
	// 10^(partition-1) indicator-plus-item-reference values.
	companyPrefixBits = [7]int{40, 37, 34, 30, 27, 24, 20}

	// maximum item references per partition = 10^partition; partition 0
	// gives the whole field to the company prefix
	maxItems = [7]int{1, 10, 100, 1000, 10000, 100000, 1000000}

	// maximum company prefix per partition; many smaller values are
	// still forbidden by GS1 allocation rules
	maxPrefix = [7]int{
		999999999999,
		99999999999,
		9999999999,
		999999999,
		99999999,
		9999999,
		999999,
	}
)

// SGTIN is the decoded form of an SGTIN-96 or SGTIN-198 EPC: a GTIN
// broken into indicator digit, company prefix and item reference, plus
// the serial that identifies the specific instance of the trade item.
type SGTIN struct {
	// filter and partition are features of the tag encoding
	filter    FilterValue
	partition int

	companyPrefix int
	indicator     int
	itemRef       int
	serial        string
}

func (s *SGTIN) Serial() string {
	return s.serial
}

func (s *SGTIN) Filter() FilterValue {
	return s.filter
}

func (s *SGTIN) Partition() int {
	return s.partition
}

func (s *SGTIN) CompanyPrefix() string {
	return fmt.Sprintf("%0[1]*d", 12-s.partition, s.companyPrefix)
}

func (s *SGTIN) ItemReference() string {
	return fmt.Sprintf("%0[1]*d", s.partition, s.itemRef)
}

// NewSGTIN returns an SGTIN with the given values. If the parameters are
// inconsistent with the SGTIN standard, error is non-nil, but this still
// returns the inconsistent SGTIN; its rendering methods will attempt to
// produce output regardless.
func NewSGTIN(filter FilterValue, partition, indicator, companyPrefix, itemRef int, serial string) (SGTIN, error) {
	s := SGTIN{
		filter:        filter,
		partition:     partition,
		indicator:     indicator,
		companyPrefix: companyPrefix,
		itemRef:       itemRef,
		serial:        serial,
	}
	return s, s.ValidateRanges()
}

// DecodeSGTINString accepts a big endian, hex-encoded SGTIN EPC and
// returns its SGTIN representation, or an error if it cannot be decoded
// as such.
//
// The SGTIN's values are NOT validated; use SGTIN.ValidateRanges to
// determine whether it complies with the GS1/EPC Tag Data Standards.
func DecodeSGTINString(epc string) (SGTIN, error) {
	b, err := hex.DecodeString(epc)
	if err != nil {
		return SGTIN{}, err
	}
	return DecodeSGTIN(b)
}

// SGTINToElementString decodes a big-endian, hex-encoded SGTIN EPC to the
// unbracketed GS1 element string "^01<gtin14>21<serial>" that the root
// package's Encoder accepts.
//
// The SGTIN's values ARE validated with ValidateRanges; if they are
// invalid, this function returns that error.
func SGTINToElementString(epc string) (string, error) {
	sgtin, err := DecodeSGTINString(epc)
	if err != nil {
		return "", err
	}
	if err := sgtin.ValidateRanges(); err != nil {
		return "", err
	}
	return sgtin.ElementString(), nil
}

// SGTINToGTIN14 decodes a big-endian, hex-encoded SGTIN EPC to its
// GTIN-14, validating the field ranges first.
func SGTINToGTIN14(epc string) (string, error) {
	sgtin, err := DecodeSGTINString(epc)
	if err != nil {
		return "", err
	}
	if err := sgtin.ValidateRanges(); err != nil {
		return "", err
	}
	return sgtin.GTIN(), nil
}

// SGTINToPureURI decodes a big-endian, hex-encoded SGTIN EPC to its EPC
// pure identity URI, validating the field ranges first.
func SGTINToPureURI(epc string) (string, error) {
	sgtin, err := DecodeSGTINString(epc)
	if err != nil {
		return "", err
	}
	if err := sgtin.ValidateRanges(); err != nil {
		return "", err
	}
	return sgtin.URI(), nil
}

// ValidateRanges checks an SGTIN's values against the range restrictions
// of their respective fields.
//
// GS1 and EPCglobal rules forbid many values that fit the fields (for
// example, RCNs with GS1 prefix '02' are not valid GTINs and should not
// be encoded to SGTIN); this method only confirms the fields are within
// range.
func (s SGTIN) ValidateRanges() error {
	if s.indicator < 0 || s.indicator > 9 {
		return errors.Errorf("indicator must be in [0,9], but is %d", s.indicator)
	}
	if !s.filter.IsValid() {
		return errors.Errorf("filter must be in {0, 1, 2, 4, 6, 7}, "+
			"but this is: %d", s.filter)
	}
	if s.partition < 0 || s.partition > 6 {
		return errors.Errorf("partition must be in [0,6], but is %d", s.partition)
	}
	if s.itemRef < 0 || s.itemRef > maxItems[s.partition]-1 {
		return errors.Errorf("item refs in partition %d must be in [0, %d], "+
			"but is %d", s.partition, maxItems[s.partition]-1, s.itemRef)
	}
	if s.companyPrefix < 0 || s.companyPrefix > maxPrefix[s.partition] {
		return errors.Errorf("company prefix in partition %d must be in [0, %d], "+
			"but is %d", s.partition, maxPrefix[s.partition], s.companyPrefix)
	}
	if s.serial == "" {
		return errors.New("serial is empty")
	}
	if len(s.serial) > 20 {
		return errors.Errorf("SGTIN serial numbers are limited to at most "+
			"20 characters, but this serial has %d characters", len(s.serial))
	}
	if !aitable.IsCSet82(s.serial) {
		return errors.Errorf("SGTIN serial numbers may only contain characters "+
			"in the GS1 AI encodable character set 82, but this serial is %q",
			s.serial)
	}
	return nil
}

// CanSGTIN96 returns nil if the SGTIN's serial may be encoded as SGTIN-96.
//
// The EPC Tag Data Standard requires SGTIN-96 serials to be decimal
// values below 2^38 with no leading '0's, except for the single value '0'.
func (s SGTIN) CanSGTIN96() error {
	if s.serial == "" {
		return errors.New("serial is empty")
	}
	if _, err := strconv.ParseUint(s.serial, 10, 38); err != nil {
		return errors.Wrap(err, "SGTIN96 serial numbers must be numeric")
	}
	if s.serial[0] == '0' && s.serial != "0" {
		return errors.New("serials cannot have leading '0's, " +
			"except for the unique value '0'")
	}
	return nil
}

// GTIN returns the GTIN-14 represented by this SGTIN, with its check
// digit computed from the indicator, company prefix and item reference.
func (s SGTIN) GTIN() string {
	var payload string
	if s.partition == 0 {
		// no item reference
		payload = fmt.Sprintf("%d%012d", s.indicator, s.companyPrefix)
	} else {
		payload = fmt.Sprintf("%d%0[2]*d%0[4]*d",
			s.indicator,
			12-s.partition, s.companyPrefix,
			s.partition, s.itemRef)
	}
	return payload + string(aitable.CheckDigit(payload))
}

// ElementString returns the SGTIN as an unbracketed GS1 element string
// carrying the GTIN (01) and serial (21).
func (s SGTIN) ElementString() string {
	return "^01" + s.GTIN() + "21" + s.serial
}

// URI returns the EPC pure identity URI for this SGTIN, of the format
// urn:epc:id:sgtin:CompanyPrefix.ItemRefAndIndicator.SerialNumber, with
// the serial escaped as the EPC Tag Data Standard requires.
func (s SGTIN) URI() string {
	if s.partition == 0 {
		// no item reference; just the indicator
		return fmt.Sprintf("%s:%0[2]*d.%d.%s",
			SGTINPureURIPrefix,
			12-s.partition, s.companyPrefix,
			s.indicator,
			EscapeSerial(s.serial))
	}
	return fmt.Sprintf("%s:%0[2]*d.%d%0[5]*d.%s",
		SGTINPureURIPrefix,
		12-s.partition, s.companyPrefix,
		s.indicator, s.partition, s.itemRef,
		EscapeSerial(s.serial))
}

// DecodeSGTIN decodes SGTIN-96 and SGTIN-198 encoded EPCs to SGTIN
// structures, or returns an error if the data cannot be split into SGTIN
// fields: empty input, an unknown header, a wrong length for the scheme,
// or an out-of-range partition (which fixes the other field widths). Use
// ValidateRanges to check the decoded values themselves.
//
// The MSB of the first byte is the first bit of the EPC. SGTIN-198 input
// must be padded with two trailing zero bits, since 198 bits are not
// byte-aligned.
func DecodeSGTIN(b []byte) (SGTIN, error) {
	if len(b) == 0 {
		return SGTIN{}, errors.New("no data provided")
	}

	var serial string
	switch b[0] {
	case SGTIN96Header:
		if len(b) != SGTIN96NumBytes {
			return SGTIN{}, errors.Errorf("SGTIN-96 should have %d bytes, "+
				"but this has %d bytes", SGTIN96NumBytes, len(b))
		}
		serial = strconv.FormatUint(extractUint(b, serialStartBit, serial96Len), 10)
	case SGTIN198Header:
		if len(b) != SGTIN198NumBytes {
			return SGTIN{}, errors.Errorf("SGTIN-198 should have %d bytes, "+
				"but this has %d bytes", SGTIN198NumBytes, len(b))
		}
		// 20 characters of packed 7-bit ISO 646, null padded. A
		// character after a null is invalid; keep the raw string in
		// that case so ValidateRanges rejects it.
		serial = unpackASCII(b, serialStartBit)
		if i := strings.IndexByte(serial, 0); i >= 0 {
			if strings.Trim(serial[i:], "\x00") == "" {
				serial = serial[:i]
			}
		}
	default:
		return SGTIN{}, errors.Errorf("SGTIN headers are 0x30 and 0x36, "+
			"but this is: %#X", b[0])
	}

	filter := FilterValue(extractUint(b, filterStartBit, filterLen))

	// most values can be validated later, but without a valid partition
	// the remaining fields cannot be split
	partition := int(extractUint(b, partitionStartBit, partitionLen))
	if partition < 0 || partition > 6 {
		return SGTIN{}, errors.Errorf("invalid partition: %d", partition)
	}

	companyPrefix := int(extractUint(b, gcpStartBit, companyPrefixBits[partition]))
	iirBits := prefixIIRLen - companyPrefixBits[partition]
	iir := int(extractUint(b, gcpStartBit+companyPrefixBits[partition], iirBits))

	// split indicator digit and item reference
	indicator := iir / maxItems[partition]
	itemRef := 0
	if partition > 0 {
		itemRef = iir % maxItems[partition]
	}

	return SGTIN{
		filter:        filter,
		partition:     partition,
		companyPrefix: companyPrefix,
		indicator:     indicator,
		itemRef:       itemRef,
		serial:        serial,
	}, nil
}

type FilterValue int

const (
	Other     = FilterValue(0)
	POS       = FilterValue(1)
	FullCase  = FilterValue(2)
	reserved1 = FilterValue(3)
	InnerPack = FilterValue(4)
	reserved2 = FilterValue(5)
	UnitLoad  = FilterValue(6)
	UnitPack  = FilterValue(7)
)

// IsValid returns false if the FilterValue is outside the available range
// of filter values or equals one of the GS1 reserved values.
func (fv FilterValue) IsValid() bool {
	return fv >= Other && fv <= UnitPack &&
		!(fv == reserved1 || fv == reserved2)
}

func (fv FilterValue) String() string {
	switch fv {
	case Other:
		return "Other"
	case POS:
		return "POS"
	case FullCase:
		return "Full Case"
	case InnerPack:
		return "Inner Pack"
	case UnitLoad:
		return "Unit Load"
	case UnitPack:
		return "Unit Pack"
	case reserved1, reserved2:
		return "Reserved"
	}
	return "Unknown filter value: " + strconv.Itoa(int(fv))
}
