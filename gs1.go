/* Apache v2 license
 * Copyright (C) 2026 Symbolscan
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package gs1 processes GS1 Application Identifier element strings,
// converting between bracketed AI syntax, unbracketed AI syntax, barcode
// message scan data and GS1 Digital Link URIs, while validating the data
// against the GS1 AI grammar.
package gs1

import (
	"strings"

	"github.com/symbolscan/gs1/aitable"
)

// Version is the library release tag.
const Version = "1.2.0"

const (
	maxDataLen = 8191
	maxAIs     = 64
)

// Symbology identifies the barcode symbology that scan data is generated
// for, or that processed scan data was reported to come from.
type Symbology int

const (
	SymNone Symbology = iota - 1
	SymDataBarOmni
	SymDataBarTruncated
	SymDataBarStacked
	SymDataBarStackedOmni
	SymDataBarLimited
	SymDataBarExpanded
	SymUPCA
	SymUPCE
	SymEAN13
	SymEAN8
	SymGS1128CCA
	SymGS1128CCC
	SymQR
	SymDM
	SymDotCode
	numSymbologies
)

var symbologyNames = [numSymbologies]string{
	"GS1 DataBar Omnidirectional",
	"GS1 DataBar Truncated",
	"GS1 DataBar Stacked",
	"GS1 DataBar Stacked Omnidirectional",
	"GS1 DataBar Limited",
	"GS1 DataBar Expanded",
	"UPC-A",
	"UPC-E",
	"EAN-13",
	"EAN-8",
	"GS1-128 with CC-A or CC-B",
	"GS1-128 with CC-C",
	"GS1 QR Code",
	"GS1 DataMatrix",
	"GS1 DotCode",
}

func (s Symbology) String() string {
	if s <= SymNone || s >= numSymbologies {
		return "NONE"
	}
	return symbologyNames[s]
}

// Validation selects one of the AI association checks applied whenever the
// encoder accepts new data.
type Validation int

const (
	ValidationMutexAIs Validation = iota
	ValidationRequisiteAIs
	ValidationRepeatedAIs
	ValidationDigSigSerialKey
	ValidationUnknownAINotDLAttr
	numValidations
)

type validation struct {
	locked  bool
	enabled bool
	check   func(g *Encoder, elems []element) error
}

// Encoder holds AI element data together with the options that govern how
// input is accepted and output is rendered. It is not safe for concurrent
// use; create one Encoder per goroutine.
type Encoder struct {
	table *aitable.Table

	sym                 Symbology
	addCheckDigit       bool
	permitUnknownAIs    bool
	permitZeroSuppGTIN  bool
	permitConvenience   bool
	includeDataTitles   bool
	validations         [numValidations]validation

	dataStr   string
	elems     []element
	dlURI     bool
	ignoredQP []string

	errMsg    string
	errMarkup string
}

// New returns an Encoder backed by the embedded AI dictionary.
func New() *Encoder {
	return NewWithTable(aitable.Embedded())
}

// NewWithTable returns an Encoder that resolves AIs against tbl, which
// would typically come from aitable.LoadDictionary.
func NewWithTable(tbl *aitable.Table) *Encoder {
	g := &Encoder{table: tbl, sym: SymNone}
	g.validations[ValidationMutexAIs] = validation{locked: true, enabled: true, check: checkMutexAIs}
	g.validations[ValidationRequisiteAIs] = validation{enabled: true, check: checkRequisiteAIs}
	g.validations[ValidationRepeatedAIs] = validation{locked: true, enabled: true, check: checkRepeatedAIs}
	g.validations[ValidationDigSigSerialKey] = validation{locked: true, enabled: true, check: checkDigSigSerialKey}
	// Enforced during Digital Link URI processing rather than over the
	// element list, so it carries no check function.
	g.validations[ValidationUnknownAINotDLAttr] = validation{enabled: true}
	return g
}

// Sym reports the selected symbology.
func (g *Encoder) Sym() Symbology { return g.sym }

// SetSym selects the symbology that ScanData generates for.
func (g *Encoder) SetSym(sym Symbology) error {
	if sym < SymNone || sym >= numSymbologies {
		return g.fail(paramErrf("Unknown symbology"))
	}
	g.sym = sym
	return nil
}

// AddCheckDigit reports whether check digits are derived automatically.
func (g *Encoder) AddCheckDigit() bool { return g.addCheckDigit }

// SetAddCheckDigit controls automatic check digit generation. When enabled,
// bracketed AI input may omit the final check digit of a check-digit-bearing
// component and scan data for EAN/UPC and DataBar symbologies may supply a
// 13-digit GTIN primary, with the check digit derived in both cases.
func (g *Encoder) SetAddCheckDigit(v bool) { g.addCheckDigit = v }

// PermitUnknownAIs reports whether AIs absent from the table are accepted.
func (g *Encoder) PermitUnknownAIs() bool { return g.permitUnknownAIs }

// SetPermitUnknownAIs controls acceptance of AIs that are not in the AI
// table. Unknown AIs are only accepted where their length can be
// established, which for unbracketed data requires the two-digit prefix to
// have a known AI length.
func (g *Encoder) SetPermitUnknownAIs(v bool) { g.permitUnknownAIs = v }

// PermitZeroSuppressedGTINinDLuris reports whether shortened GTIN path
// components are accepted in Digital Link URIs.
func (g *Encoder) PermitZeroSuppressedGTINinDLuris() bool { return g.permitZeroSuppGTIN }

// SetPermitZeroSuppressedGTINinDLuris controls whether a GTIN-13, GTIN-12
// or GTIN-8 value in the path of a Digital Link URI is zero-padded to
// fourteen digits rather than rejected.
func (g *Encoder) SetPermitZeroSuppressedGTINinDLuris(v bool) { g.permitZeroSuppGTIN = v }

// PermitConvenienceAlphas reports whether mnemonic AI aliases are accepted
// in Digital Link URIs.
func (g *Encoder) PermitConvenienceAlphas() bool { return g.permitConvenience }

// SetPermitConvenienceAlphas controls whether Digital Link URI path and
// query components may use mnemonic aliases such as "gtin" and "ser" in
// place of numeric AIs. The aliases are a legacy convention and are never
// emitted.
func (g *Encoder) SetPermitConvenienceAlphas(v bool) { g.permitConvenience = v }

// IncludeDataTitlesInHRI reports whether HRI lines carry data titles.
func (g *Encoder) IncludeDataTitlesInHRI() bool { return g.includeDataTitles }

// SetIncludeDataTitlesInHRI controls whether HRI output prefixes each line
// with the AI's data title.
func (g *Encoder) SetIncludeDataTitlesInHRI(v bool) { g.includeDataTitles = v }

// ValidationEnabled reports whether the given validation is applied.
func (g *Encoder) ValidationEnabled(v Validation) bool {
	if v < 0 || v >= numValidations {
		return false
	}
	return g.validations[v].enabled
}

// SetValidationEnabled enables or disables one of the AI association
// validations. Validations that enforce the AI grammar itself are locked
// and cannot be amended.
func (g *Encoder) SetValidationEnabled(v Validation, enabled bool) error {
	if v < 0 || v >= numValidations {
		return g.fail(paramErrf("Unknown validation"))
	}
	if g.validations[v].locked {
		return g.fail(paramErrf("This validation cannot be amended"))
	}
	g.validations[v].enabled = enabled
	return nil
}

// ErrMsg returns the message for the most recent failed operation, or the
// empty string after a success.
func (g *Encoder) ErrMsg() string { return g.errMsg }

// ErrMarkup returns the element string with the offending characters of the
// most recent failure delimited by '|', when the failure can be localised.
func (g *Encoder) ErrMarkup() string { return g.errMarkup }

// DataStr returns the data in unbracketed AI syntax, with "^" standing for
// FNC1. Composite data carries a "|" separator, and data that was set from
// a Digital Link URI is returned as that URI.
func (g *Encoder) DataStr() string { return g.dataStr }

// SetDataStr accepts data in unbracketed AI syntax ("^" for FNC1, "|"
// before a composite component), a GS1 Digital Link URI, or plain non-AI
// data such as an EAN-13 primary. The stored data is replaced only if the
// input is fully valid.
func (g *Encoder) SetDataStr(data string) error {
	if len(data) > maxDataLen {
		return g.fail(paramErrf("Maximum data length is %d characters", maxDataLen))
	}

	var st parseState
	var err error
	if isDLScheme(data) {
		err = st.parseDLURI(g, data)
	} else {
		err = st.parseUnbracketed(g, data)
	}
	if err == nil {
		err = g.validateAssociations(st.elems)
	}
	if err != nil {
		return g.fail(err)
	}
	g.commit(&st)
	return nil
}

// AIDataStr returns the data in bracketed AI syntax, or the empty string
// when no data is set. A "(" occurring within an AI value is escaped as
// "\(".
func (g *Encoder) AIDataStr() string {
	if len(g.elems) == 0 {
		return ""
	}
	var b strings.Builder
	for _, el := range g.elems {
		if el.kind == elemCCSep {
			b.WriteByte('|')
			continue
		}
		b.WriteByte('(')
		b.WriteString(el.ai)
		b.WriteByte(')')
		b.WriteString(strings.ReplaceAll(el.value, "(", `\(`))
	}
	return b.String()
}

// SetAIDataStr accepts data in bracketed AI syntax, e.g.
// "(01)12312312312333(10)ABC123". The stored data is replaced only if the
// input is fully valid.
func (g *Encoder) SetAIDataStr(data string) error {
	if len(data) > maxDataLen {
		return g.fail(paramErrf("Maximum data length is %d characters", maxDataLen))
	}

	var st parseState
	if err := st.parseBracketed(g, data); err != nil {
		return g.fail(err)
	}
	if err := g.validateAssociations(st.elems); err != nil {
		return g.fail(err)
	}
	g.commit(&st)
	return nil
}

func (g *Encoder) commit(st *parseState) {
	g.dataStr = st.dataStr
	g.elems = st.elems
	g.dlURI = st.dlURI
	g.ignoredQP = st.ignoredQP
	g.errMsg = ""
	g.errMarkup = ""
}

func (g *Encoder) fail(err error) error {
	g.errMsg = err.Error()
	g.errMarkup = ""
	if pe, ok := err.(*ParameterError); ok {
		g.errMarkup = pe.Markup
	}
	return err
}
