/* Apache v2 license
 * Copyright (C) 2026 Symbolscan
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

import (
	"strings"

	"github.com/symbolscan/gs1/aitable"
)

type aiMode int

const (
	modeAI aiMode = iota
	modeNonAI
)

type symIDEntry struct {
	id   string // the two characters following "]"
	mode aiMode
	sym  Symbology
}

// symIDTable maps between symbologies and AIM symbology identifiers. The
// first matching row in a lookup is the default.
var symIDTable = []symIDEntry{
	{"C1", modeAI, SymGS1128CCA},
	{"C1", modeAI, SymGS1128CCC},
	{"E0", modeNonAI, SymEAN13},
	{"E0", modeAI, SymEAN13},
	{"E0", modeNonAI, SymUPCA},
	{"E0", modeAI, SymUPCA},
	{"E0", modeNonAI, SymUPCE},
	{"E0", modeAI, SymUPCE},
	{"E4", modeNonAI, SymEAN8},
	{"E4", modeAI, SymEAN8},
	{"e0", modeAI, SymDataBarExpanded},
	{"e0", modeAI, SymDataBarOmni},
	{"e0", modeNonAI, SymDataBarOmni},
	{"e0", modeAI, SymDataBarTruncated},
	{"e0", modeNonAI, SymDataBarTruncated},
	{"e0", modeAI, SymDataBarStacked},
	{"e0", modeNonAI, SymDataBarStacked},
	{"e0", modeAI, SymDataBarStackedOmni},
	{"e0", modeNonAI, SymDataBarStackedOmni},
	{"e0", modeAI, SymDataBarLimited},
	{"e0", modeNonAI, SymDataBarLimited},
	// e0 is also shared with GS1-128 composites
	{"d1", modeNonAI, SymDM},
	{"d2", modeAI, SymDM},
	{"Q1", modeNonAI, SymQR},
	{"Q3", modeAI, SymQR},
	{"J0", modeNonAI, SymDotCode},
	{"J1", modeAI, SymDotCode},
}

const ccSymID = "]e0"

func symIDFor(sym Symbology, mode aiMode) string {
	for _, e := range symIDTable {
		if e.sym == sym && e.mode == mode {
			return e.id
		}
	}
	return ""
}

func symByID(id string) (Symbology, aiMode, bool) {
	for _, e := range symIDTable {
		if e.id == id {
			return e.sym, e.mode, true
		}
	}
	return SymNone, modeNonAI, false
}

// scancat appends message data for a symbology identifier: AI data loses
// its leading FNC1 and encodes the remaining "^" separators as GS, while
// plain data that begins with an escaped "^" loses one backslash.
func scancat(b *strings.Builder, data string) {
	if strings.HasPrefix(data, "^") {
		for i := 1; i < len(data); i++ {
			if data[i] == '^' {
				b.WriteByte(0x1D)
			} else {
				b.WriteByte(data[i])
			}
		}
		return
	}
	r := 0
	for r < len(data) && data[r] == '\\' {
		r++
	}
	if r < len(data) && data[r] == '^' {
		data = data[1:]
	}
	b.WriteString(data)
}

// normalisePrimary validates an EAN/UPC or DataBar primary of the given
// digit length. With automatic check digit generation the input is one
// digit short and the check digit is computed; otherwise it is verified.
func (g *Encoder) normalisePrimary(data string, length int) (string, error) {
	want := length
	if g.addCheckDigit {
		want = length - 1
	}
	if len(data) != want {
		if g.addCheckDigit {
			return "", scanErrf("Primary data must be %d digits without check digit", length-1)
		}
		return "", scanErrf("Primary data must be %d digits", length)
	}
	if !isDigits(data) {
		return "", scanErrf("Primary data must be all digits")
	}
	if g.addCheckDigit {
		return data + string(aitable.CheckDigit(data)), nil
	}
	if data[length-1] != aitable.CheckDigit(data[:length-1]) {
		return "", scanErrf("Primary data check digit is incorrect")
	}
	return data, nil
}

// ScanData renders the stored data as a barcode message prefixed with the
// AIM symbology identifier for the selected symbology.
func (g *Encoder) ScanData() (string, error) {
	out, err := g.generateScanData()
	if err != nil {
		return "", g.fail(err)
	}
	g.errMsg = ""
	g.errMarkup = ""
	return out, nil
}

func (g *Encoder) generateScanData() (string, error) {
	linear := g.dataStr
	cc := ""
	hasCC := false
	if i := strings.IndexByte(linear, '|'); i >= 0 {
		linear, cc, hasCC = linear[:i], linear[i+1:], true
	}
	isAI := strings.HasPrefix(linear, "^")

	var b strings.Builder

	switch g.sym {
	case SymQR, SymDM, SymDotCode:
		mode := modeNonAI
		if isAI {
			mode = modeAI
		} else if hasCC {
			// Plain data keeps its literal "|"
			linear, hasCC = g.dataStr, false
		}
		b.WriteByte(']')
		b.WriteString(symIDFor(g.sym, mode))
		scancat(&b, linear)

	case SymGS1128CCA, SymGS1128CCC, SymDataBarExpanded:
		if !isAI {
			return "", paramErrf("Missing FNC1 in first position")
		}
		if !hasCC && g.sym != SymDataBarExpanded {
			b.WriteByte(']')
			b.WriteString(symIDFor(g.sym, modeAI))
			scancat(&b, linear)
			break
		}

		// "]e0" with the linear and 2D AI data concatenated; a GS
		// goes between them if the last linear AI is variable length
		b.WriteString(ccSymID)
		scancat(&b, linear)
		if hasCC {
			if !strings.HasPrefix(cc, "^") {
				return "", paramErrf("Missing FNC1 in first position")
			}
			lastFNC1 := false
			for _, el := range g.elems {
				if el.kind == elemCCSep {
					break
				}
				lastFNC1 = el.entry.FNC1
			}
			if lastFNC1 {
				b.WriteByte(0x1D)
			}
			scancat(&b, cc)
		}

	case SymDataBarOmni, SymDataBarTruncated, SymDataBarStacked,
		SymDataBarStackedOmni, SymDataBarLimited:

		data := linear
		if strings.HasPrefix(data, "^01") {
			data = data[3:]
		}
		primary, err := g.normalisePrimary(data, 14)
		if err != nil {
			return "", err
		}
		if g.sym == SymDataBarLimited && primary[0] >= '2' {
			return "", scanErrf("Primary data item value is too large")
		}
		b.WriteByte(']')
		b.WriteString(symIDFor(g.sym, modeAI))
		b.WriteString("01")
		b.WriteString(primary)
		if hasCC {
			if !strings.HasPrefix(cc, "^") {
				return "", paramErrf("Missing FNC1 in first position")
			}
			scancat(&b, cc)
		}

	case SymUPCA, SymUPCE, SymEAN13, SymEAN8:

		length := 12
		pad := "0" // UPC scan data is normalised to thirteen digits
		switch g.sym {
		case SymEAN13:
			length, pad = 13, ""
		case SymEAN8:
			length, pad = 8, ""
		}

		// AI data beginning (01) sheds the GTIN-14 leading zeros
		data := linear
		aizeros := 17 - length
		if len(data) >= aizeros && data[:aizeros] == "^01000000"[:aizeros] {
			data = data[aizeros:]
		}

		primary, err := g.normalisePrimary(data, length)
		if err != nil {
			return "", err
		}
		b.WriteByte(']')
		b.WriteString(symIDFor(g.sym, modeNonAI))
		b.WriteString(pad)
		b.WriteString(primary)
		if hasCC {
			if !strings.HasPrefix(cc, "^") {
				return "", paramErrf("Missing FNC1 in first position")
			}
			// The composite is a new message
			b.WriteByte('|')
			b.WriteString(ccSymID)
			scancat(&b, cc)
		}

	default:
		return "", paramErrf("Unknown symbology")
	}

	return b.String(), nil
}

// SetScanData processes a barcode message, deriving the symbology from its
// AIM symbology identifier and extracting any AI data. The stored data is
// replaced only if the message is fully valid.
func (g *Encoder) SetScanData(scanData string) error {
	st, sym, err := g.processScanData(scanData)
	if err == nil {
		err = g.validateAssociations(st.elems)
	}
	if err != nil {
		return g.fail(err)
	}
	g.sym = sym
	g.commit(st)
	return nil
}

func (g *Encoder) processScanData(scanData string) (*parseState, Symbology, error) {
	if !strings.HasPrefix(scanData, "]") || len(scanData) < 3 {
		return nil, SymNone, scanErrf("Missing symbology identifier")
	}
	sym, mode, ok := symByID(scanData[1:3])
	if !ok {
		return nil, SymNone, scanErrf("Unsupported symbology identifier")
	}
	msg := scanData[3:]
	if len(msg) >= maxDataLen {
		return nil, SymNone, scanErrf("Maximum data length is %d characters", maxDataLen-1)
	}

	st := &parseState{}

	if sym == SymEAN13 || sym == SymEAN8 {
		primaryLen := 13
		if sym == SymEAN8 {
			primaryLen = 8
		}
		if len(msg) < primaryLen {
			return nil, SymNone, scanErrf("Primary scan data is too short")
		}

		cc := ""
		hasCC := false
		switch {
		case len(msg) >= primaryLen+len(ccSymID)+1 &&
			msg[primaryLen:primaryLen+len(ccSymID)+1] == "|"+ccSymID:
			cc, hasCC = msg[primaryLen+len(ccSymID)+1:], true
		case len(msg) > primaryLen:
			return nil, SymNone, scanErrf("Primary message is too long")
		}

		primary := msg[:primaryLen]
		if !isDigits(primary) {
			return nil, SymNone, scanErrf("Primary message may only contain digits")
		}
		if primary[primaryLen-1] != aitable.CheckDigit(primary[:primaryLen-1]) {
			return nil, SymNone, scanErrf("Primary message check digit is incorrect")
		}

		if !hasCC {
			st.dataStr = primary
			return st, sym, nil
		}

		component, err := scanMessageToComponent(cc)
		if err != nil {
			return nil, SymNone, err
		}
		st.appendCCSep()
		if err := st.parseUnbracketedComponent(g, component); err != nil {
			return nil, SymNone, err
		}
		st.dataStr = primary + "|" + component
		return st, sym, nil
	}

	if mode == modeAI {
		component, err := scanMessageToComponent(msg)
		if err != nil {
			return nil, SymNone, err
		}
		if err := st.parseUnbracketedComponent(g, component); err != nil {
			return nil, SymNone, err
		}
		st.dataStr = component
		return st, sym, nil
	}

	// Plain data: escape a leading "^" so it cannot be mistaken for FNC1
	data := msg
	r := 0
	for r < len(data) && data[r] == '\\' {
		r++
	}
	if r < len(data) && data[r] == '^' {
		data = "\\" + data
	}

	if isDLScheme(data) {
		if err := st.parseDLURI(g, data); err != nil {
			return nil, SymNone, err
		}
		return st, sym, nil
	}

	st.dataStr = data
	return st, sym, nil
}

// scanMessageToComponent converts a scanned AI message to unbracketed AI
// syntax, restoring FNC1 separators from GS characters.
func scanMessageToComponent(msg string) (string, error) {
	if strings.IndexByte(msg, '^') >= 0 {
		return "", scanErrf("Scan data contains illegal ^ character")
	}
	return "^" + strings.ReplaceAll(msg, "\x1D", "^"), nil
}
