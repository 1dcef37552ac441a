/* Apache v2 license
 * Copyright (C) 2026 Symbolscan
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package aitable

import (
	"fmt"
	"sync"
)

// embeddedSpecs is the built-in syntax table, covering the commonly used AIs.
// A full or updated table can be loaded from a syntax dictionary file with
// LoadDictionary.
var embeddedSpecs = []Spec{
	{AI: "00", NoFNC1: true, Format: "N18,csum,key", Attrs: "dlpkey", Title: "SSCC"},
	{AI: "01", NoFNC1: true, Format: "N14,csum,key", Attrs: "ex=02,255 dlpkey=22,10,21|235", Title: "GTIN"},
	{AI: "02", NoFNC1: true, Format: "N14,csum", Attrs: "ex=01 req=37", Title: "CONTENT"},
	{AI: "10", Format: "X..20", Attrs: "req=01,02,8006,8026", Title: "BATCH/LOT"},
	{AI: "11", NoFNC1: true, Format: "N6,yymmd0", Attrs: "req=01,02,8006,8026", Title: "PROD DATE"},
	{AI: "12", NoFNC1: true, Format: "N6,yymmd0", Attrs: "req=8020", Title: "DUE DATE"},
	{AI: "13", NoFNC1: true, Format: "N6,yymmd0", Attrs: "req=01,02,8006,8026", Title: "PACK DATE"},
	{AI: "15", NoFNC1: true, Format: "N6,yymmd0", Attrs: "req=01,02,8006,8026", Title: "BEST BEFORE or BEST BY"},
	{AI: "16", NoFNC1: true, Format: "N6,yymmd0", Attrs: "req=01,02,8006,8026", Title: "SELL BY"},
	{AI: "17", NoFNC1: true, Format: "N6,yymmd0", Attrs: "req=01,02,8006,8026", Title: "USE BY OR EXPIRY"},
	{AI: "20", NoFNC1: true, Format: "N2", Attrs: "req=01,02,8006,8026", Title: "VARIANT"},
	{AI: "21", Format: "X..20", Attrs: "req=01,02,8006", Title: "SERIAL"},
	{AI: "22", Format: "X..20", Attrs: "req=01", Title: "CPV"},
	{AI: "235", Format: "X..28", Attrs: "req=01", Title: "TPX"},
	{AI: "240", Format: "X..30", Attrs: "req=01,02,8006,8026", Title: "ADDITIONAL ID"},
	{AI: "241", Format: "X..30", Attrs: "req=01,02,8006,8026", Title: "CUST. PART No."},
	{AI: "242", Format: "N..6", Attrs: "req=01,02,8006,8026", Title: "MTO VARIANT"},
	{AI: "243", Format: "X..20", Attrs: "req=01", Title: "PCN"},
	{AI: "250", Format: "X..30", Attrs: "req=01,8006 req=21", Title: "SECONDARY SERIAL"},
	{AI: "251", Format: "X..30", Attrs: "req=01,8006", Title: "REF. TO SOURCE"},
	{AI: "253", Format: "N13,csum,key [X..17]", Attrs: "dlpkey", Title: "GDTI"},
	{AI: "254", Format: "X..20", Attrs: "req=414", Title: "GLN EXTENSION COMPONENT"},
	{AI: "255", Format: "N13,csum,key [N..12]", Attrs: "dlpkey", Title: "GCN"},
	{AI: "30", Format: "N..8", Attrs: "req=01,02 ex=37", Title: "VAR COUNT"},
	{AI: "37", Format: "N..8", Attrs: "req=02,8026 ex=30", Title: "COUNT"},
	{AI: "400", Format: "X..30", Title: "ORDER NUMBER"},
	{AI: "401", Format: "X..30,key", Attrs: "dlpkey", Title: "GINC"},
	{AI: "402", Format: "N17,csum,key", Attrs: "dlpkey", Title: "GSIN"},
	{AI: "403", Format: "X..30", Attrs: "req=00", Title: "ROUTE"},
	{AI: "410", NoFNC1: true, Format: "N13,csum,key", Title: "SHIP TO LOC"},
	{AI: "411", NoFNC1: true, Format: "N13,csum,key", Title: "BILL TO"},
	{AI: "412", NoFNC1: true, Format: "N13,csum,key", Title: "PURCHASE FROM"},
	{AI: "413", NoFNC1: true, Format: "N13,csum,key", Title: "SHIP FOR LOC"},
	{AI: "414", NoFNC1: true, Format: "N13,csum,key", Attrs: "dlpkey=254|7040", Title: "LOC No."},
	{AI: "415", NoFNC1: true, Format: "N13,csum,key", Attrs: "req=8020", Title: "PAY TO"},
	{AI: "416", NoFNC1: true, Format: "N13,csum,key", Title: "PROD/SERV LOC"},
	{AI: "417", NoFNC1: true, Format: "N13,csum,key", Attrs: "dlpkey=7040", Title: "PARTY"},
	{AI: "420", Format: "X..20", Attrs: "ex=421", Title: "SHIP TO POST"},
	{AI: "421", Format: "N3 X..9", Attrs: "ex=420", Title: "SHIP TO POST"},
	{AI: "7040", Format: "N1 X1 X1 X1", Title: "UIC+EXT"},
	{AI: "8003", Format: "N1 N13,csum,key [X..16]", Attrs: "dlpkey", Title: "GRAI"},
	{AI: "8004", Format: "X..30,key", Attrs: "dlpkey=7040", Title: "GIAI"},
	{AI: "8006", Format: "N14,csum N2 N2", Attrs: "ex=01 dlpkey=22,10,21", Title: "ITIP"},
	{AI: "8010", Format: "Y..30,key", Attrs: "dlpkey=8011", Title: "CPID"},
	{AI: "8011", Format: "N..12,nonzero", Attrs: "req=8010", Title: "CPID SERIAL"},
	{AI: "8013", Format: "X..25,key", Attrs: "dlpkey", Title: "GMN"},
	{AI: "8017", Format: "N18,csum,key", Attrs: "dlpkey=8019 ex=8018", Title: "GSRN - PROVIDER"},
	{AI: "8018", Format: "N18,csum,key", Attrs: "dlpkey=8019 ex=8017", Title: "GSRN - RECIPIENT"},
	{AI: "8019", Format: "N..10", Attrs: "req=8017,8018", Title: "SRIN"},
	{AI: "8020", Format: "X..25", Attrs: "req=415", Title: "REF No."},
	{AI: "8026", Format: "N14,csum N2 N2", Attrs: "req=37 ex=02,8006", Title: "ITIP CONTENT"},
	{AI: "8030", Format: "Z..90", Title: "DIGSIG"},
	{AI: "90", Format: "X..30", Title: "INTERNAL"},
}

func init() {
	// decimal-point families share a format, varying only in the implied
	// position of the decimal point
	for n := 0; n <= 5; n++ {
		embeddedSpecs = append(embeddedSpecs,
			Spec{AI: fmt.Sprintf("310%d", n), NoFNC1: true, Format: "N6",
				Attrs: "req=01,02", Title: "NET WEIGHT (kg)"},
			Spec{AI: fmt.Sprintf("330%d", n), NoFNC1: true, Format: "N6",
				Attrs: "req=01,02", Title: "GROSS WEIGHT (kg)"},
		)
	}
	for n := 0; n <= 9; n++ {
		embeddedSpecs = append(embeddedSpecs,
			Spec{AI: fmt.Sprintf("390%d", n), Format: "N..15",
				Attrs: "req=8020 ex=391n", Title: "AMOUNT"},
			Spec{AI: fmt.Sprintf("391%d", n), Format: "N3 N..15",
				Attrs: "req=8020 ex=390n", Title: "AMOUNT"},
		)
	}
	for ai := 91; ai <= 99; ai++ {
		embeddedSpecs = append(embeddedSpecs,
			Spec{AI: fmt.Sprintf("%d", ai), Format: "X..90", Title: "INTERNAL"})
	}
}

var (
	embeddedOnce  sync.Once
	embeddedTable *Table
)

// Embedded returns the table built from the built-in syntax specs. The table
// is constructed once and shared; it panics if the built-in specs are
// inconsistent, since that is a programming error.
func Embedded() *Table {
	embeddedOnce.Do(func() {
		t, err := New(embeddedSpecs)
		if err != nil {
			panic(err)
		}
		embeddedTable = t
	})
	return embeddedTable
}
