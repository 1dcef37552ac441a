/* Apache v2 license
 * Copyright (C) 2026 Symbolscan
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

import (
	"testing"

	"github.com/intel/rsp-sw-toolkit-im-suite-expect"
	"github.com/symbolscan/gs1/epc"
)

func TestDefaults(t *testing.T) {
	w := expect.WrapT(t).StopOnMismatch()
	g := New()

	w.ShouldBeEqual(g.Sym(), SymNone)
	w.ShouldBeFalse(g.AddCheckDigit())
	w.ShouldBeFalse(g.PermitUnknownAIs())
	w.ShouldBeFalse(g.PermitZeroSuppressedGTINinDLuris())
	w.ShouldBeFalse(g.PermitConvenienceAlphas())
	w.ShouldBeFalse(g.IncludeDataTitlesInHRI())
	w.ShouldBeEqual(g.DataStr(), "")
	w.ShouldBeEqual(g.AIDataStr(), "")
	w.ShouldBeEqual(g.ErrMsg(), "")
	w.ShouldHaveLength(g.HRI(), 0)
}

func TestSetSym(t *testing.T) {
	w := expect.WrapT(t).StopOnMismatch()
	g := New()

	for sym := SymNone; sym < numSymbologies; sym++ {
		w.As(sym.String()).ShouldSucceed(g.SetSym(sym))
		w.ShouldBeEqual(g.Sym(), sym)
	}

	w.ShouldFail(g.SetSym(numSymbologies))
	w.ShouldBeEqual(g.ErrMsg(), "Unknown symbology")
	w.ShouldFail(g.SetSym(Symbology(-2)))

	w.ShouldBeEqual(SymEAN13.String(), "EAN-13")
	w.ShouldBeEqual(SymDataBarExpanded.String(), "GS1 DataBar Expanded")
	w.ShouldBeEqual(SymNone.String(), "NONE")
}

func TestValidationToggles(t *testing.T) {
	w := expect.WrapT(t).StopOnMismatch()
	g := New()

	w.As("defaults").ShouldBeTrue(g.ValidationEnabled(ValidationMutexAIs))
	w.ShouldBeTrue(g.ValidationEnabled(ValidationRequisiteAIs))
	w.ShouldBeTrue(g.ValidationEnabled(ValidationRepeatedAIs))
	w.ShouldBeTrue(g.ValidationEnabled(ValidationDigSigSerialKey))
	w.ShouldBeTrue(g.ValidationEnabled(ValidationUnknownAINotDLAttr))

	w.As("amendable").ShouldSucceed(g.SetValidationEnabled(ValidationRequisiteAIs, false))
	w.ShouldBeFalse(g.ValidationEnabled(ValidationRequisiteAIs))
	w.ShouldSucceed(g.SetValidationEnabled(ValidationRequisiteAIs, true))
	w.ShouldSucceed(g.SetValidationEnabled(ValidationUnknownAINotDLAttr, false))
	w.ShouldSucceed(g.SetValidationEnabled(ValidationUnknownAINotDLAttr, true))

	w.As("locked").ShouldFail(g.SetValidationEnabled(ValidationRepeatedAIs, false))
	w.ShouldBeEqual(g.ErrMsg(), "This validation cannot be amended")
	w.ShouldFail(g.SetValidationEnabled(ValidationMutexAIs, false))
	w.ShouldFail(g.SetValidationEnabled(ValidationDigSigSerialKey, false))

	w.As("out of range").ShouldFail(g.SetValidationEnabled(Validation(99), false))
	w.ShouldBeEqual(g.ErrMsg(), "Unknown validation")
	w.ShouldBeFalse(g.ValidationEnabled(Validation(99)))
}

func TestDisableRequisiteAIs(t *testing.T) {
	w := expect.WrapT(t).StopOnMismatch()
	g := New()

	w.ShouldFail(g.SetDataStr("^0212312312312333"))
	w.ShouldBeEqual(g.ErrMsg(), "Required AIs for AI (02) are not satisfied: 37")

	w.ShouldSucceed(g.SetValidationEnabled(ValidationRequisiteAIs, false))
	w.ShouldSucceed(g.SetDataStr("^0212312312312333"))
	w.ShouldBeEqual(g.AIDataStr(), "(02)12312312312333")
}

func TestHRI(t *testing.T) {
	w := expect.WrapT(t).StopOnMismatch()
	g := New()

	w.ShouldSucceed(g.SetDataStr("^011231231231233310ABC123"))
	w.ShouldBeEqual(g.HRI(), []string{
		"(01) 12312312312333",
		"(10) ABC123",
	})

	w.As("composite").ShouldSucceed(g.SetDataStr("^011231231231233310ABC123|^99COMPOSITE"))
	w.ShouldBeEqual(g.HRI(), []string{
		"(01) 12312312312333",
		"(10) ABC123",
		"(99) COMPOSITE",
	})

	g.SetIncludeDataTitlesInHRI(true)
	w.As("titles").ShouldSucceed(g.SetDataStr("^011231231231233310ABC123"))
	w.ShouldBeEqual(g.HRI(), []string{
		"GTIN (01) 12312312312333",
		"BATCH/LOT (10) ABC123",
	})

	g.SetPermitUnknownAIs(true)
	w.As("unknown AI title").ShouldSucceed(g.SetDataStr("^236ABC123"))
	w.ShouldBeEqual(g.HRI(), []string{"UNKNOWN (236) ABC123"})
}

func TestEPCElementString(t *testing.T) {
	w := expect.WrapT(t).StopOnMismatch()

	es, err := epc.SGTINToElementString("3034257BF400B7800004CB2F")
	w.ShouldSucceed(err)
	w.ShouldBeEqual(es, "^010061414100734921314159")

	g := New()
	w.ShouldSucceed(g.SetDataStr(es))
	w.ShouldBeEqual(g.AIDataStr(), "(01)00614141007349(21)314159")
	w.ShouldBeEqual(g.HRI(), []string{
		"(01) 00614141007349",
		"(21) 314159",
	})

	w.ShouldSucceed(g.SetSym(SymDM))
	scan, err := g.ScanData()
	w.ShouldSucceed(err)
	w.ShouldBeEqual(scan, "]d2010061414100734921314159")
}
