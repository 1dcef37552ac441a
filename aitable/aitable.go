/* Apache v2 license
 * Copyright (C) 2026 Symbolscan
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package aitable

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Spec is one row of a syntax dictionary, the raw material from which table
// entries are built. The zero value of the flag fields describes the common
// case: a variable-length AI terminated by FNC1 that is permitted as a GS1
// Digital Link data attribute.
type Spec struct {
	AI     string
	NoFNC1 bool   // value has a predefined length and takes no FNC1 separator
	NoDL   bool   // not permitted as a Digital Link data attribute
	Format string // component specification, e.g. "N13,csum,key [X..17]"
	Attrs  string // ex=/req=/dlpkey attributes, space separated
	Title  string // data title used in HRI output
}

// ReqSpec is one "req=" attribute of an entry: a set of alternatives, any
// one of which satisfies the requirement. Each alternative is a list of AIs
// that must all be present together.
type ReqSpec struct {
	Raw          string
	Alternatives [][]string
}

// Entry is a single AI's syntax: its value components, separator behaviour
// and the association rules it participates in.
type Entry struct {
	AI      string
	Len     int  // length of the AI code itself; 0 only for placeholders of unknown length
	FNC1    bool // variable-length value, terminated by FNC1 when not last
	DLAttr  bool // permitted as a Digital Link data attribute
	Unknown bool // placeholder for an AI absent from the table
	Parts   []Component
	Ex      []string  // AI templates this AI must not be paired with
	Reqs    []ReqSpec // AI groups that must accompany this AI
	Title   string

	// Qualifiers is non-nil when this AI is a Digital Link primary key;
	// each element is one ordered list of qualifier AIs.
	Qualifiers [][]string
}

// IsDLKey returns true if the AI may serve as the primary key of a GS1
// Digital Link URI.
func (e *Entry) IsDLKey() bool {
	return e.Qualifiers != nil
}

// MinLength returns the minimum permitted value length, counting optional
// components as absent.
func (e *Entry) MinLength() (n int) {
	for _, c := range e.Parts {
		if !c.Opt {
			n += c.Min
		}
	}
	return
}

// MaxLength returns the maximum permitted value length with all optional
// components present.
func (e *Entry) MaxLength() (n int) {
	for _, c := range e.Parts {
		n += c.Max
	}
	return
}

// MatchTemplate returns true if the AI matches a template such as "310n", in
// which any non-digit character is a wildcard for a single digit.
func MatchTemplate(tmpl, ai string) bool {
	if len(tmpl) != len(ai) {
		return false
	}
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] >= '0' && tmpl[i] <= '9' && tmpl[i] != ai[i] {
			return false
		}
	}
	return true
}

// fixedValueLenByPrefix gives the predefined value length for each two-digit
// AI prefix, or 0 where values are variable length. AIs in the fixed ranges
// take no FNC1 separator, and unknown AIs with these prefixes are assumed to
// follow the same convention.
var fixedValueLenByPrefix = [100]uint8{
	18, 14, 14, 14, 16, /* (00) - (04) */
	0, 0, 0, 0, 0, 0,
	6, 6, 6, 6, 6, 6, 6, 6, 6, 2, /* (11) - (20) */
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, /* (21) - (30) */
	6, 6, 6, 6, 6, 6, /* (31) - (36) */
	0, 0, 0, 0,
	13, /* (41) */
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Table is an immutable set of AI entries with the derived indexes needed
// for parsing: AI-code lengths by two-digit prefix, and the set of valid
// Digital Link key-qualifier path sequences.
type Table struct {
	entries       []*Entry // sorted by AI
	aiLenByPrefix [100]uint8
	pathSeqs      map[string]struct{} // space-joined key-qualifier sequences
}

// New builds a Table from the given specs. All problems found across all
// specs are reported together in the returned error.
func New(specs []Spec) (*Table, error) {
	t := &Table{pathSeqs: make(map[string]struct{})}

	var errs error
	for _, s := range specs {
		e, err := buildEntry(s)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "AI (%s)", s.AI))
			continue
		}
		t.entries = append(t.entries, e)
	}
	if errs != nil {
		return nil, errs
	}

	sort.Slice(t.entries, func(i, j int) bool {
		return t.entries[i].AI < t.entries[j].AI
	})
	for i := 1; i < len(t.entries); i++ {
		if t.entries[i].AI == t.entries[i-1].AI {
			errs = multierr.Append(errs, errors.Errorf("duplicate AI (%s)", t.entries[i].AI))
		}
	}

	// All AIs sharing a two-digit prefix must have the same code length,
	// otherwise unbracketed data cannot be parsed unambiguously.
	for _, e := range t.entries {
		p := prefixIndex(e.AI)
		if n := t.aiLenByPrefix[p]; n != 0 && int(n) != e.Len {
			errs = multierr.Append(errs, errors.Errorf(
				"AIs with prefix %s differ in length", e.AI[:2]))
			continue
		}
		t.aiLenByPrefix[p] = uint8(e.Len)
	}
	if errs != nil {
		return nil, errs
	}

	for _, e := range t.entries {
		if e.Qualifiers == nil {
			continue
		}
		t.pathSeqs[e.AI] = struct{}{}
		for _, quals := range e.Qualifiers {
			addSubsequences(t.pathSeqs, e.AI, quals)
		}
	}
	return t, nil
}

func buildEntry(s Spec) (*Entry, error) {
	if len(s.AI) < 2 || len(s.AI) > 4 || !allDigits(s.AI) {
		return nil, errors.New("AIs are two to four digits")
	}
	parts, err := ParseSpec(s.Format)
	if err != nil {
		return nil, err
	}
	e := &Entry{
		AI:     s.AI,
		Len:    len(s.AI),
		FNC1:   !s.NoFNC1,
		DLAttr: !s.NoDL,
		Parts:  parts,
		Title:  s.Title,
	}
	if err := parseAttrs(s.Attrs, e); err != nil {
		return nil, err
	}
	return e, nil
}

func prefixIndex(ai string) int {
	return int(ai[0]-'0')*10 + int(ai[1]-'0')
}

// addSubsequences records every ordered subsequence of quals, rooted at key,
// as a valid path sequence.
func addSubsequences(seqs map[string]struct{}, key string, quals []string) {
	for mask := 1; mask < 1<<uint(len(quals)); mask++ {
		parts := []string{key}
		for i, q := range quals {
			if mask&(1<<uint(i)) != 0 {
				parts = append(parts, q)
			}
		}
		seqs[strings.Join(parts, " ")] = struct{}{}
	}
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the table's entries in AI order. The caller must not
// modify them.
func (t *Table) Entries() []*Entry {
	return t.entries
}

// Lookup returns the entry whose AI is exactly ai, or nil.
func (t *Table) Lookup(ai string) *Entry {
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].AI >= ai
	})
	if i < len(t.entries) && t.entries[i].AI == ai {
		return t.entries[i]
	}
	return nil
}

// LookupPrefix returns the entry whose AI is a leading prefix of data, or
// nil. The prefix length index makes this unambiguous.
func (t *Table) LookupPrefix(data string) *Entry {
	if len(data) < 2 || !allDigits(data[:2]) {
		return nil
	}
	n := int(t.aiLenByPrefix[prefixIndex(data)])
	if n == 0 || len(data) < n {
		return nil
	}
	return t.Lookup(data[:n])
}

// AILenByPrefix returns the AI-code length shared by all table AIs starting
// with the first two characters of data, or 0 if no table AI has that
// prefix.
func (t *Table) AILenByPrefix(data string) int {
	if len(data) < 2 || !allDigits(data[:2]) {
		return 0
	}
	return int(t.aiLenByPrefix[prefixIndex(data)])
}

// Vivify builds a placeholder entry for an AI that is absent from the table,
// so that unknown AIs can be carried through when the caller permits them.
// data is the AI code optionally followed by further data; ailen is the
// claimed AI length, or 0 when the caller cannot know it (unbracketed data).
//
// Returns nil when no placeholder can be offered: the AI is not numeric, or
// its claimed length contradicts the table's prefix index. A returned entry
// with Len == 0 means even the AI code length is unknown; such data cannot
// be parsed without brackets.
func (t *Table) Vivify(data string, ailen int) *Entry {
	if len(data) < 2 || !allDigits(data[:2]) {
		return nil
	}
	lenByPrefix := int(t.aiLenByPrefix[prefixIndex(data)])
	if ailen != 0 && lenByPrefix != 0 && lenByPrefix != ailen {
		return nil
	}
	n := lenByPrefix
	if n == 0 {
		n = ailen
	}
	if n == 0 {
		return &Entry{
			Unknown: true,
			FNC1:    true,
			Parts:   []Component{{CSet: CSet82, Min: 1, Max: 90}},
			Title:   "UNKNOWN",
		}
	}
	if len(data) < n || !allDigits(data[:n]) {
		return nil
	}
	e := &Entry{
		AI:      data[:n],
		Len:     n,
		Unknown: true,
		FNC1:    true,
		Parts:   []Component{{CSet: CSet82, Min: 1, Max: 90}},
		Title:   "UNKNOWN",
	}
	if vl := int(fixedValueLenByPrefix[prefixIndex(data)]); vl != 0 {
		e.FNC1 = false
		e.Parts = []Component{{CSet: CSet82, Min: vl, Max: vl}}
	}
	return e
}

// ValidPathSeq returns true if seq is a valid Digital Link key-qualifier
// sequence: its first AI is a primary key and the rest are an ordered
// subsequence of one of the key's qualifier lists.
func (t *Table) ValidPathSeq(seq []string) bool {
	_, ok := t.pathSeqs[strings.Join(seq, " ")]
	return ok
}
