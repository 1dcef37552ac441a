/* Apache v2 license
 * Copyright (C) 2026 Symbolscan
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

import (
	"testing"

	"github.com/intel/rsp-sw-toolkit-im-suite-expect"
)

func TestGenerateScanData(t *testing.T) {
	type genTest struct {
		name   string
		sym    Symbology
		data   string
		scan   string
		errMsg string
	}

	pass := func(n string, sym Symbology, data, scan string) genTest {
		return genTest{name: n, sym: sym, data: data, scan: scan}
	}
	fail := func(n string, sym Symbology, data, msg string) genTest {
		return genTest{name: n, sym: sym, data: data, errMsg: msg}
	}

	for _, tt := range []genTest{
		pass("QR plain", SymQR, "TESTING", "]Q1TESTING"),
		pass("QR escaped carat", SymQR, `\^TESTING`, "]Q1^TESTING"),
		pass("QR double escape", SymQR, `\\^TESTING`, `]Q1\^TESTING`),
		pass("QR AI data", SymQR, "^011231231231233310ABC123^99TESTING",
			"]Q3011231231231233310ABC123\x1d99TESTING"),
		pass("QR trailing separator", SymQR, "^011231231231233310ABC123^99TESTING^",
			"]Q3011231231231233310ABC123\x1d99TESTING\x1d"),
		pass("DM plain", SymDM, "TESTING", "]d1TESTING"),
		pass("DM AI data", SymDM, "^011231231231233310ABC123^99TESTING",
			"]d2011231231231233310ABC123\x1d99TESTING"),
		pass("DotCode plain", SymDotCode, "TESTING", "]J0TESTING"),
		pass("DotCode AI data", SymDotCode, "^011231231231233310ABC123^99TESTING",
			"]J1011231231231233310ABC123\x1d99TESTING"),

		pass("GS1-128 linear", SymGS1128CCA, "^011231231231233310ABC123^99TESTING",
			"]C1011231231231233310ABC123\x1d99TESTING"),
		pass("GS1-128 composite", SymGS1128CCA,
			"^011231231231233310ABC123^99TESTING|^98COMPOSITE^97XYZ",
			"]e0011231231231233310ABC123\x1d99TESTING\x1d98COMPOSITE\x1d97XYZ"),
		pass("CC-C composite", SymGS1128CCC,
			"^011231231231233310ABC123^99TESTING|^98COMPOSITE^97XYZ",
			"]e0011231231231233310ABC123\x1d99TESTING\x1d98COMPOSITE\x1d97XYZ"),
		fail("GS1-128 plain data", SymGS1128CCA, "TESTING",
			"Missing FNC1 in first position"),

		pass("DataBar Expanded", SymDataBarExpanded, "^011231231231233310ABC123^99TESTING",
			"]e0011231231231233310ABC123\x1d99TESTING"),
		pass("DataBar Expanded composite", SymDataBarExpanded,
			"^011231231231233310ABC123^99TESTING|^98COMPOSITE^97XYZ",
			"]e0011231231231233310ABC123\x1d99TESTING\x1d98COMPOSITE\x1d97XYZ"),
		// no separator after a fixed-length AI at the linear/composite join
		pass("DataBar Expanded fixed join", SymDataBarExpanded,
			"^011231231231233310ABC123^11991225|^98COMPOSITE^97XYZ",
			"]e0011231231231233310ABC123\x1d1199122598COMPOSITE\x1d97XYZ"),

		pass("DataBar Omni", SymDataBarOmni, "^0124012345678905", "]e00124012345678905"),
		pass("DataBar Omni composite", SymDataBarOmni,
			"^0124012345678905|^99COMPOSITE^98XYZ",
			"]e0012401234567890599COMPOSITE\x1d98XYZ"),
		pass("DataBar Omni plain primary", SymDataBarOmni,
			"24012345678905|^99COMPOSITE^98XYZ",
			"]e0012401234567890599COMPOSITE\x1d98XYZ"),
		pass("DataBar Limited", SymDataBarLimited, "15012345678907", "]e00115012345678907"),
		fail("DataBar Limited large item", SymDataBarLimited, "24012345678905",
			"Primary data item value is too large"),
		fail("DataBar short primary", SymDataBarOmni, "123",
			"Primary data must be 14 digits"),
		fail("DataBar bad check digit", SymDataBarOmni, "24012345678906",
			"Primary data check digit is incorrect"),

		pass("EAN-13", SymEAN13, "2112345678900", "]E02112345678900"),
		pass("EAN-13 from AI data", SymEAN13, "^0102112345678900", "]E02112345678900"),
		pass("EAN-13 composite", SymEAN13, "2112345678900|^99COMPOSITE^98XYZ",
			"]E02112345678900|]e099COMPOSITE\x1d98XYZ"),
		pass("EAN-8", SymEAN8, "02345673", "]E402345673"),
		pass("EAN-8 composite", SymEAN8, "02345673|^99COMPOSITE^98XYZ",
			"]E402345673|]e099COMPOSITE\x1d98XYZ"),
		pass("UPC-A", SymUPCA, "^0100416000336108", "]E00416000336108"),
		pass("UPC-A composite", SymUPCA, "416000336108|^99COMPOSITE^98XYZ",
			"]E00416000336108|]e099COMPOSITE\x1d98XYZ"),
		pass("UPC-E", SymUPCE, "001234000057", "]E00001234000057"),
		fail("EAN-13 non-digit", SymEAN13, "21123456789AB",
			"Primary data must be all digits"),
		fail("EAN-13 wrong length", SymEAN13, "211234567890", "Primary data must be 13 digits"),

		fail("no symbology selected", SymNone, "TESTING", "Unknown symbology"),
	} {
		g := New()
		w := expect.WrapT(t).StopOnMismatch().As(tt.name)
		w.ShouldSucceed(g.SetSym(tt.sym))
		w.ShouldSucceed(g.SetDataStr(tt.data))

		scan, err := g.ScanData()
		if tt.errMsg != "" {
			expect.WrapT(t).As(tt.name).ShouldFail(err)
			expect.WrapT(t).As(tt.name).ShouldBeEqual(g.ErrMsg(), tt.errMsg)
			continue
		}
		w.ShouldSucceed(err)
		w.ShouldBeEqual(scan, tt.scan)
	}
}

func TestGenerateScanDataAddCheckDigit(t *testing.T) {
	w := expect.WrapT(t).StopOnMismatch()
	g := New()
	g.SetAddCheckDigit(true)

	w.ShouldSucceed(g.SetSym(SymDataBarOmni))
	w.ShouldSucceed(g.SetDataStr("2401234567890"))
	scan, err := g.ScanData()
	w.ShouldSucceed(err)
	w.ShouldBeEqual(scan, "]e00124012345678905")

	w.ShouldSucceed(g.SetDataStr("24012345678905"))
	_, err = g.ScanData()
	w.ShouldFail(err)
	w.ShouldBeEqual(g.ErrMsg(), "Primary data must be 13 digits without check digit")

	w.ShouldSucceed(g.SetSym(SymEAN13))
	w.ShouldSucceed(g.SetDataStr("211234567890"))
	scan, err = g.ScanData()
	w.ShouldSucceed(err)
	w.ShouldBeEqual(scan, "]E02112345678900")
}

func TestProcessScanData(t *testing.T) {
	type procTest struct {
		name, scan string
		sym        Symbology
		dataStr    string
		aiData     string
		errMsg     string
	}

	pass := func(n, scan string, sym Symbology, dataStr, aiData string) procTest {
		return procTest{name: n, scan: scan, sym: sym, dataStr: dataStr, aiData: aiData}
	}
	fail := func(n, scan, msg string) procTest {
		return procTest{name: n, scan: scan, errMsg: msg}
	}

	for _, tt := range []procTest{
		pass("QR empty plain", "]Q1", SymQR, "", ""),
		pass("QR plain", "]Q1TESTING", SymQR, "TESTING", ""),
		pass("QR leading carat escaped", "]Q1^TESTING", SymQR, `\^TESTING`, ""),
		pass("QR leading backslash", `]Q1\^TESTING`, SymQR, `\\^TESTING`, ""),
		pass("QR AI data", "]Q3011231231231233310ABC123\x1d99TESTING", SymQR,
			"^011231231231233310ABC123^99TESTING",
			"(01)12312312312333(10)ABC123(99)TESTING"),
		pass("DM AI data", "]d2011231231231233310ABC123", SymDM,
			"^011231231231233310ABC123",
			"(01)12312312312333(10)ABC123"),
		pass("DotCode AI data", "]J1011231231231233310ABC123", SymDotCode,
			"^011231231231233310ABC123",
			"(01)12312312312333(10)ABC123"),
		pass("GS1-128", "]C1011231231231233310ABC123", SymGS1128CCA,
			"^011231231231233310ABC123",
			"(01)12312312312333(10)ABC123"),
		pass("DataBar Expanded", "]e0011231231231233310ABC123\x1d99TESTING\x1d98XYZ",
			SymDataBarExpanded,
			"^011231231231233310ABC123^99TESTING^98XYZ",
			"(01)12312312312333(10)ABC123(99)TESTING(98)XYZ"),

		pass("EAN-13", "]E02112345678900", SymEAN13, "2112345678900", ""),
		pass("EAN-13 composite", "]E02112345678900|]e099COMPOSITE\x1d98XYZ", SymEAN13,
			"2112345678900|^99COMPOSITE^98XYZ",
			"|(99)COMPOSITE(98)XYZ"),
		pass("EAN-8", "]E402345673", SymEAN8, "02345673", ""),
		pass("EAN-8 composite", "]E402345673|]e099COMPOSITE\x1d98XYZ", SymEAN8,
			"02345673|^99COMPOSITE^98XYZ",
			"|(99)COMPOSITE(98)XYZ"),

		pass("Digital Link URI", "]Q1https://id.gs1.org/01/12312312312333?99=TEST", SymQR,
			"https://id.gs1.org/01/12312312312333?99=TEST",
			"(01)12312312312333(99)TEST"),
		pass("uppercase scheme", "]Q1HTTPS://ID.GS1.ORG/01/12312312312333", SymQR,
			"HTTPS://ID.GS1.ORG/01/12312312312333",
			"(01)12312312312333"),
		// only the exact-case schemes denote a Digital Link URI
		pass("mixed-case scheme is plain data", "]Q1HtTps://id.gs1.org/01/12312312312333",
			SymQR, "HtTps://id.gs1.org/01/12312312312333", ""),

		fail("empty", "", "Missing symbology identifier"),
		fail("no identifier", "ABC", "Missing symbology identifier"),
		fail("bare bracket", "]", "Missing symbology identifier"),
		fail("truncated identifier", "]X", "Missing symbology identifier"),
		fail("unsupported identifier", "]XX", "Unsupported symbology identifier"),
		fail("empty AI message", "]e0", "The AI data is empty"),
		fail("empty QR AI message", "]Q3", "The AI data is empty"),
		fail("empty GS1-128 message", "]C1", "The AI data is empty"),
		fail("literal carat in AI message", "]Q3011231231231233310ABC^99TEST",
			"Scan data contains illegal ^ character"),
		fail("EAN-13 short", "]E0123456789012", "Primary scan data is too short"),
		fail("EAN-13 long", "]E012345678901234", "Primary message is too long"),
		fail("EAN-13 non-digit", "]E01234ABC890123", "Primary message may only contain digits"),
		fail("EAN-13 bad check digit", "]E02112345678901", "Primary message check digit is incorrect"),
		fail("EAN-8 short", "]E41234567", "Primary scan data is too short"),
		fail("EAN-8 long", "]E4123456789", "Primary message is too long"),
		fail("EAN-8 non-digit", "]E412ABC678", "Primary message may only contain digits"),
		fail("EAN-8 bad check digit", "]E402345674", "Primary message check digit is incorrect"),
		fail("associations apply", "]d20212312312312333",
			"Required AIs for AI (02) are not satisfied: 37"),
	} {
		g := New()
		err := g.SetScanData(tt.scan)
		if tt.errMsg != "" {
			expect.WrapT(t).As(tt.name).ShouldFail(err)
			expect.WrapT(t).As(tt.name).ShouldBeEqual(g.ErrMsg(), tt.errMsg)
			expect.WrapT(t).As(tt.name).ShouldBeEqual(g.Sym(), SymNone)
			continue
		}
		w := expect.WrapT(t).StopOnMismatch().As(tt.name)
		w.ShouldSucceed(err)
		w.ShouldBeEqual(g.Sym(), tt.sym)
		w.ShouldBeEqual(g.DataStr(), tt.dataStr)
		w.ShouldBeEqual(g.AIDataStr(), tt.aiData)
	}
}

func TestScanDataRoundTrip(t *testing.T) {
	for _, scan := range []string{
		"]Q1TESTING",
		"]Q1^TESTING",
		"]Q3011231231231233310ABC123\x1d99TESTING",
		"]d2011231231231233310ABC123",
		"]e0011231231231233310ABC123\x1d99TESTING",
		"]E02112345678900",
		"]E02112345678900|]e099COMPOSITE\x1d98XYZ",
		"]E402345673|]e099COMPOSITE\x1d98XYZ",
	} {
		w := expect.WrapT(t).StopOnMismatch().As(scan)
		g := New()
		w.ShouldSucceed(g.SetScanData(scan))

		out, err := g.ScanData()
		w.ShouldSucceed(err)
		w.ShouldBeEqual(out, scan)
	}
}
