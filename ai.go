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

type elemKind int

const (
	elemAI elemKind = iota

	// elemCCSep marks the boundary between the linear and 2D components
	// of a composite symbol. It carries no data of its own.
	elemCCSep
)

type element struct {
	kind  elemKind
	entry *aitable.Entry
	ai    string
	value string

	// dlPathOrder is the position of this AI within the path of the
	// Digital Link URI that supplied it, or -1 for query attributes and
	// for data that did not come from a URI.
	dlPathOrder int
}

// parseState accumulates the outcome of parsing one input string. It is
// committed to the Encoder only once the whole input has validated, so a
// failed operation leaves previously stored data untouched.
type parseState struct {
	dataStr   string
	elems     []element
	numAIs    int
	dlURI     bool
	ignoredQP []string
}

func (st *parseState) appendAI(el element) error {
	if st.numAIs >= maxAIs {
		return paramErrf("Too many AIs")
	}
	st.elems = append(st.elems, el)
	st.numAIs++
	return nil
}

func (st *parseState) appendCCSep() {
	st.elems = append(st.elems, element{kind: elemCCSep, dlPathOrder: -1})
}

// buildDataStr renders elements in unbracketed AI syntax. A separator "^"
// is emitted before the first AI of each component and after every
// variable-length AI that is not in final position.
func buildDataStr(elems []element) string {
	var b strings.Builder
	fnc1req := true
	for _, el := range elems {
		if el.kind == elemCCSep {
			b.WriteByte('|')
			fnc1req = true
			continue
		}
		if fnc1req {
			b.WriteByte('^')
		}
		b.WriteString(el.ai)
		b.WriteString(el.value)
		fnc1req = el.entry.FNC1
	}
	return b.String()
}

func isDLScheme(s string) bool {
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "HTTPS://") ||
		strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "HTTP://")
}

// parseUnbracketed accepts data in unbracketed AI syntax. Data that does
// not begin with "^" is plain, non-AI data and is stored without element
// extraction; the component after a "|" separator is always AI data.
func (st *parseState) parseUnbracketed(g *Encoder, data string) error {
	st.dataStr = data

	linear := data
	cc := ""
	hasCC := false
	if i := strings.IndexByte(data, '|'); i >= 0 {
		linear, cc = data[:i], data[i+1:]
		hasCC = true
	}

	if strings.HasPrefix(linear, "^") {
		if err := st.parseUnbracketedComponent(g, linear); err != nil {
			return err
		}
	}
	if hasCC {
		st.appendCCSep()
		if err := st.parseUnbracketedComponent(g, cc); err != nil {
			return err
		}
	}
	return nil
}

func (st *parseState) parseUnbracketedComponent(g *Encoder, seg string) error {
	if !strings.HasPrefix(seg, "^") {
		return paramErrf("Missing FNC1 in first position")
	}
	data := seg[1:]
	if data == "" {
		return paramErrf("The AI data is empty")
	}

	for len(data) > 0 {
		entry := g.table.LookupPrefix(data)
		if entry == nil && g.permitUnknownAIs {
			entry = g.table.Vivify(data, 0)
		}
		if entry == nil || entry.Len == 0 {
			prefix := data
			if len(prefix) > 4 {
				prefix = prefix[:4]
			}
			return paramErrf("No known AI is a prefix of: %s...", prefix)
		}

		ai := data[:entry.Len]
		data = data[entry.Len:]

		var value string
		if !entry.FNC1 {
			n := entry.MaxLength()
			if n > len(data) {
				n = len(data)
			}
			// A premature separator truncates the value; the length
			// check below rejects it.
			if i := strings.IndexByte(data[:n], '^'); i >= 0 {
				n = i
			}
			value, data = data[:n], data[n:]
			if len(data) > 0 && data[0] == '^' {
				data = data[1:]
			}
		} else if i := strings.IndexByte(data, '^'); i >= 0 {
			value, data = data[:i], data[i+1:]
		} else {
			value, data = data, ""
		}

		if value == "" {
			return paramErrf("AI (%s) data is empty", ai)
		}
		if err := lintAIValue(entry, ai, value); err != nil {
			return err
		}
		if err := st.appendAI(element{entry: entry, ai: ai, value: value, dlPathOrder: -1}); err != nil {
			return err
		}
	}
	return nil
}

func (st *parseState) parseBracketed(g *Encoder, data string) error {
	if data == "" {
		return paramErrf("The AI data is empty")
	}
	linear := data
	cc := ""
	hasCC := false
	if i := strings.IndexByte(data, '|'); i >= 0 {
		linear, cc = data[:i], data[i+1:]
		hasCC = true
		if strings.IndexByte(cc, '|') >= 0 {
			return paramErrf("Failed to parse AI data")
		}
	}

	if err := st.parseBracketedComponent(g, linear); err != nil {
		return err
	}
	if hasCC {
		st.appendCCSep()
		if err := st.parseBracketedComponent(g, cc); err != nil {
			return err
		}
	}
	st.dataStr = buildDataStr(st.elems)
	return nil
}

func (st *parseState) parseBracketedComponent(g *Encoder, part string) error {
	if !strings.HasPrefix(part, "(") {
		return paramErrf("Failed to parse AI data")
	}

	for len(part) > 0 {
		end := strings.IndexByte(part, ')')
		if part[0] != '(' || end < 0 {
			return paramErrf("Failed to parse AI data")
		}
		ai := part[1:end]
		if len(ai) < 2 || len(ai) > 4 || !isDigits(ai) {
			return paramErrf("Unrecognised AI: %s", ai)
		}
		part = part[end+1:]

		// The value runs to the next "(" that is not escaped as "\(".
		var b strings.Builder
		for len(part) > 0 && part[0] != '(' {
			if part[0] == '\\' && len(part) >= 2 && part[1] == '(' {
				b.WriteByte('(')
				part = part[2:]
				continue
			}
			b.WriteByte(part[0])
			part = part[1:]
		}
		value := b.String()

		entry := g.table.Lookup(ai)
		if entry == nil && g.permitUnknownAIs {
			entry = g.table.Vivify(ai, len(ai))
		}
		if entry == nil {
			return paramErrf("Unrecognised AI: %s", ai)
		}

		if strings.IndexByte(value, '^') >= 0 {
			return paramErrf("AI (%s) contains illegal ^ character", ai)
		}
		value = deriveCheckDigit(g, entry, value)
		if value == "" {
			return paramErrf("AI (%s) data is empty", ai)
		}
		if err := lintAIValue(entry, ai, value); err != nil {
			return err
		}
		if err := st.appendAI(element{entry: entry, ai: ai, value: value, dlPathOrder: -1}); err != nil {
			return err
		}
	}
	return nil
}

// deriveCheckDigit appends the check digit to a value that omits it, when
// automatic check digit generation is enabled. The value must be one digit
// short of the AI's minimum length, all optional components absent, with
// the check-digit-bearing component in final mandatory position.
func deriveCheckDigit(g *Encoder, entry *aitable.Entry, value string) string {
	if !g.addCheckDigit || entry.Unknown {
		return value
	}

	off := 0
	for i, c := range entry.Parts {
		if c.Min != c.Max {
			return value
		}
		if !hasLinter(c, "csum") {
			off += c.Min
			continue
		}
		for _, rest := range entry.Parts[i+1:] {
			if !rest.Opt {
				return value
			}
		}
		if len(value) != off+c.Min-1 || !isDigits(value[off:]) {
			return value
		}
		return value + string(aitable.CheckDigit(value[off:]))
	}
	return value
}

func hasLinter(c aitable.Component, name string) bool {
	for _, n := range c.Linters {
		if n == name {
			return true
		}
	}
	return false
}

// lintAIValue checks an AI value against the entry's component formats,
// producing positional markup for failures that localise to a character
// range.
func lintAIValue(entry *aitable.Entry, ai, value string) *ParameterError {
	rem := value
	off := 0
	for _, c := range entry.Parts {
		if len(rem) == 0 && c.Opt {
			break
		}
		take := c.Max
		if take > len(rem) {
			take = len(rem)
		}
		if take < c.Min {
			if c.Min == c.Max {
				return paramErrf("AI (%s) data has incorrect length", ai)
			}
			return paramErrf("AI (%s) value is too short", ai)
		}
		seg := rem[:take]
		if lerr := c.Lint(seg); lerr != nil {
			n := lerr.Len
			if n == 0 {
				n = len(seg) - lerr.Pos
			}
			pos := off + lerr.Pos
			return &ParameterError{
				Msg:    "AI (" + ai + "): " + lerr.Msg,
				Markup: "(" + ai + ")" + value[:pos] + "|" + value[pos:pos+n] + "|" + value[pos+n:],
			}
		}
		rem = rem[take:]
		off += take
	}
	if len(rem) > 0 {
		return paramErrf("AI (%s) data is too long", ai)
	}
	return nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
