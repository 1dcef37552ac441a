/* Apache v2 license
 * Copyright (C) 2026 Symbolscan
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package epc

import (
	"fmt"
	"math"
	"testing"

	"github.com/intel/rsp-sw-toolkit-im-suite-expect"
)

func TestDecodeSGTIN(t *testing.T) {
	type sgtinTest struct {
		name, epc, uri, gtin string
		badCode, badRange    bool
	}

	pass := func(n, e, g, u string) sgtinTest {
		return sgtinTest{
			name: n,
			epc:  e,
			gtin: g,
			uri:  u,
		}
	}

	fail := func(n, e string) sgtinTest {
		return sgtinTest{
			name:    n,
			epc:     e,
			badCode: true,
		}
	}

	badRange := func(n, e string) sgtinTest {
		return sgtinTest{
			name:     n,
			epc:      e,
			badRange: true,
		}
	}

	for i, tt := range []sgtinTest{
		pass("partition0", "300000000000044000000001",
			"10000000000014", "000000000001.1.1"),
		pass("partition1", "300400000000204000000001",
			"00000000000116", "00000000001.01.1"),
		pass("partition2", "300800000001004000000001",
			"00000000001014", "0000000001.001.1"),
		pass("partition3", "300C00000010004000000001",
			"00000000010016", "000000001.0001.1"),
		pass("partition4", "301000000080004000000001",
			"00000000100014", "00000001.00001.1"),
		pass("partition5", "301400000400004000000001",
			"00000001000016", "0000001.000001.1"),
		pass("partition6", "301800004000004000000001",
			"00000010000014", "000001.0000001.1"),

		pass("company prefix 0", "301800000000004000000001",
			"00000000000017", "000000.0000001.1"),
		pass("item ref 0", "301800004000000000000001",
			"00000010000007", "000001.0000000.1"),

		pass("UPC-A", "30143639F84191AD22901607",
			"00888446671424", "0888446.067142.193853396487"),
		pass("UPC-A", "3034257BF400B7800004CB2F",
			"00614141007349", "0614141.000734.314159"),
		pass("indicator 4", "300000662D3D311048C6D8D9",
			"40004285602049", "000428560204.4.69940467929"),
		pass("indicator 1", "3000011B896A506B29C18539",
			"10011892394440", "001189239444.1.185384142137"),

		pass("SGTIN-198-numeric", "36143639F8419198B966E1AB366E5B3470DC00000000000000",
			"00888446671424", "0888446.067142.193853396487"),
		pass("SGTIN-198-alpha", "36143639F84191A465D9B37A176C5EB1769D72E557D52E5CBC",
			"00888446671424", "0888446.067142.Hello!;1=1;'..*_*..%2F"),

		fail("Unknown header", "E2801160600002054CC2096F"),
		fail("Too long for SGTIN-96", "30180000400000400000000011"),
		fail("Too Short for SGTIN-96", "3018000040000040000000"),
		fail("Too long for SGTIN-198", "36143639F84191A465D9B37A176C5EB1769D72E557D52E5CBADDFC"),
		fail("Too short for SGTIN-198", "36143636C5EB1769D72E557D52E5CBADDFC"),
		fail("Partition value should be <=6", "301C00004000004000000001"),

		badRange("Item reference out of range", "301000181C2CC193A8B43711"),
		badRange("Item reference out of range", "361000181C2CC1A465D9B37A176C5EB1769D72E557D52E5CBC"),
		badRange("Item reference out of range", "30244032EACFF145202001E8"),
		badRange("Item reference out of range", "36244032EACFF1A465D9B37A176C5EB1769D72E557D52E5CBC"),
		badRange("SGTIN-198 serial with chars after null", "36044032EAC191A465D9B37A176C5EB1769D72E557D5200CBC"),
	} {
		t.Run(fmt.Sprintf("%02d_%s", i, tt.name), func(t *testing.T) {
			w := expect.WrapT(t)

			s, err := DecodeSGTINString(tt.epc)
			if tt.badCode {
				w.Logf("%+v", err)
				w.As(tt.epc).ShouldFail(err)
				return
			}

			w.As(tt.epc).ShouldSucceed(err)

			if tt.badRange {
				err = s.ValidateRanges()
				w.Logf("%+v", err)
				w.As(fmt.Sprintf("%s: %+v", tt.epc, s)).ShouldFail(err)
			} else {
				w.ShouldBeEqual(s.GTIN(), tt.gtin)
				w.ShouldBeEqual(s.URI(), SGTINPureURIPrefix+":"+tt.uri)
				w.ShouldBeEqual(s.ElementString(), "^01"+tt.gtin+"21"+s.Serial())
			}
		})
	}
}

func TestSGTINToElementString(t *testing.T) {
	w := expect.WrapT(t)

	es := w.ShouldHaveResult(SGTINToElementString("3034257BF400B7800004CB2F")).(string)
	w.ShouldBeEqual(es, "^010061414100734921314159")

	_, err := SGTINToElementString("30244032EACFF145202001E8")
	w.As("out of range item ref").ShouldFail(err)

	_, err = SGTINToElementString("ZZ")
	w.As("not hex").ShouldFail(err)
}

func TestGTINCheckDigit(t *testing.T) {
	// With a single non-zero digit d the check digit is 10-d in even
	// positions and 10-(3*d) mod 10 in odd positions, counting the ones
	// place as position 1. That holds wherever the digit sits: item ref,
	// company prefix or indicator.
	oddCDs := []int{7, 4, 1, 8, 5, 2, 9, 6, 3}
	expected := func(digitVal, digitPosition int) int {
		if digitPosition&1 == 0 {
			return 10 - digitVal
		}
		return oddCDs[digitVal-1]
	}

	w := expect.WrapT(t)
	s := SGTIN{serial: "0"}
	checkDigit := func() int {
		gtin := s.GTIN()
		return int(gtin[len(gtin)-1] - '0')
	}

	for partition := 0; partition <= 6; partition++ {
		s.partition = partition
		for digit := 1; digit < 10; digit++ {
			for digitPlace := 1; digitPlace <= 12-partition; digitPlace++ {
				factor := int(math.Pow10(digitPlace - 1))
				s.companyPrefix = digit * factor
				w.StopOnMismatch().ShouldSucceed(s.ValidateRanges())
				w.As(fmt.Sprintf("company prefix: %d, digit %d, partition %d",
					s.companyPrefix, digitPlace, partition)).
					ShouldBeEqual(checkDigit(), expected(digit, digitPlace-partition))
			}
			s.companyPrefix = 0

			for digitPlace := 1; digitPlace <= partition; digitPlace++ {
				factor := int(math.Pow10(digitPlace - 1))
				s.itemRef = digit * factor
				w.StopOnMismatch().ShouldSucceed(s.ValidateRanges())
				w.As(fmt.Sprintf("item ref: %d, digit %d, partition %d",
					s.itemRef, digitPlace, partition)).
					ShouldBeEqual(checkDigit(), expected(digit, digitPlace))
			}
			s.itemRef = 0

			s.indicator = digit
			w.As(fmt.Sprintf("indicator: %d, partition %d", s.indicator, partition)).
				ShouldBeEqual(checkDigit(), expected(digit, 13))
			s.indicator = 0
		}
	}
}

func TestSGTIN_CanSGTIN96(t *testing.T) {
	type test struct {
		name   string
		serial string
		valid  bool
	}

	pass := func(name, serial string) test {
		return test{name: name, serial: serial, valid: true}
	}
	fail := func(name, serial string) test {
		return test{name: name, serial: serial, valid: false}
	}

	for i, tt := range []test{
		pass("Leading '0'", "0"),
		pass("1", "1"),
		pass("10", "10"),
		pass("Largest", "274877906943"),

		fail("Empty", ""),
		fail("Non-numeric", "A1"),
		fail("Leading '0' 1", "00"),
		fail("Leading '0' 2", "000"),
		fail("Leading '0' 3", " 0"),
		fail("Leading '0' 4", "01"),
	} {
		t.Run(fmt.Sprintf("%02d_%s", i, tt.name), func(t *testing.T) {
			w := expect.WrapT(t)
			err := SGTIN{serial: tt.serial}.CanSGTIN96()
			if tt.valid {
				w.ShouldSucceed(err)
			} else {
				w.ShouldFail(err)
			}
		})
	}
}
