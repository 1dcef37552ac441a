/* Apache v2 license
 * Copyright (C) 2026 Symbolscan
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

import (
	"sort"
	"strings"
)

// defaultDLStem is used by DLURI when no stem is given.
const defaultDLStem = "https://id.gs1.org"

// convenienceAlphas maps the legacy mnemonic path and query components of
// Digital Link URIs to numeric AIs. Accepted on input only, when enabled.
var convenienceAlphas = map[string]string{
	"cpid":  "8010",
	"cpsn":  "8011",
	"cpv":   "22",
	"gcn":   "255",
	"gdti":  "253",
	"giai":  "8004",
	"ginc":  "401",
	"gln":   "414",
	"glnx":  "254",
	"gmn":   "8013",
	"grai":  "8003",
	"gsin":  "402",
	"gsrn":  "8018",
	"gsrnp": "8017",
	"gtin":  "01",
	"itip":  "8006",
	"lot":   "10",
	"party": "417",
	"refno": "8020",
	"ser":   "21",
	"srin":  "8019",
	"sscc":  "00",
}

const uriUnreserved = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"

// uriChars is the set of characters permitted anywhere in a URI.
const uriChars = uriUnreserved + ":/?#[]@!$&'()*+,;=%"

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

func hexVal(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	default:
		return c - '0'
	}
}

// uriUnescape percent-decodes s. A malformed escape passes the "%" through
// literally. In query components "+" decodes to space. A decoded null
// character is reported so the caller can reject it.
func uriUnescape(s string, isQuery bool) (out string, hadNull bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%' && i+2 < len(s) && isHexDigit(s[i+1]) && isHexDigit(s[i+2]):
			c = hexVal(s[i+1])<<4 | hexVal(s[i+2])
			i += 2
		case c == '+' && isQuery:
			c = ' '
		}
		if c == 0 {
			hadNull = true
			continue
		}
		b.WriteByte(c)
	}
	return b.String(), hadNull
}

const upperHex = "0123456789ABCDEF"

// uriEscape percent-encodes everything outside the RFC 3986 unreserved
// set. In query components a space becomes "+".
func uriEscape(s string, isQuery bool) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case strings.IndexByte(uriUnreserved, c) >= 0:
			b.WriteByte(c)
		case c == ' ' && isQuery:
			b.WriteByte('+')
		default:
			b.WriteByte('%')
			b.WriteByte(upperHex[c>>4])
			b.WriteByte(upperHex[c&0x0f])
		}
	}
	return b.String()
}

// resolveDLAIname maps a path or query component name to a numeric AI,
// honouring the convenience alpha option. The empty string means the name
// does not denote an AI.
func (g *Encoder) resolveDLAIname(name string) string {
	if len(name) >= 2 && len(name) <= 4 && isDigits(name) {
		return name
	}
	if g.permitConvenience {
		if ai, ok := convenienceAlphas[name]; ok {
			return ai
		}
	}
	return ""
}

// padGTIN zero-pads a GTIN-13, GTIN-12 or GTIN-8 to fourteen digits.
func padGTIN(value string) string {
	switch len(value) {
	case 8, 12, 13:
		return strings.Repeat("0", 14-len(value)) + value
	}
	return value
}

func (st *parseState) parseDLURI(g *Encoder, uri string) error {
	for i := 0; i < len(uri); i++ {
		if strings.IndexByte(uriChars, uri[i]) < 0 {
			return dlErrf("URI contains illegal characters")
		}
	}

	rest := uri
	switch {
	case strings.HasPrefix(rest, "https://"), strings.HasPrefix(rest, "HTTPS://"):
		rest = rest[8:]
	case strings.HasPrefix(rest, "http://"), strings.HasPrefix(rest, "HTTP://"):
		rest = rest[7:]
	default:
		return dlErrf("Scheme must be http:// or HTTP:// or https:// or HTTPS://")
	}

	slash := strings.IndexByte(rest, '/')
	if slash <= 0 {
		return dlErrf("URI must contain a domain and path info")
	}
	pathInfo := rest[slash:]

	query := ""
	if i := strings.IndexByte(pathInfo, '?'); i >= 0 {
		pathInfo, query = pathInfo[:i], pathInfo[i+1:]
	}
	if i := strings.IndexByte(query, '#'); i >= 0 {
		query = query[:i]
	}
	if i := strings.IndexByte(pathInfo, '#'); i >= 0 {
		pathInfo = pathInfo[:i]
	}

	segments := strings.Split(strings.Trim(pathInfo, "/"), "/")

	// Walk the path backwards in AI/value pairs to find the deepest
	// segment that is a Digital Link primary key; anything before it is
	// an arbitrary stem.
	keyIdx := -1
	for i := len(segments) - 2; i >= 0; i -= 2 {
		ai := g.resolveDLAIname(segments[i])
		if ai == "" {
			continue
		}
		if e := g.table.Lookup(ai); e != nil && e.IsDLKey() {
			keyIdx = i
			break
		}
	}
	if keyIdx < 0 {
		return dlErrf("No GS1 DL keys found in path info")
	}

	var pathSeq []string
	order := 0
	for i := keyIdx; i+1 < len(segments); i += 2 {
		ai := g.resolveDLAIname(segments[i])
		if ai == "" {
			return paramErrf("Unrecognised AI: %s", segments[i])
		}
		entry := g.table.Lookup(ai)
		if entry == nil && g.permitUnknownAIs {
			entry = g.table.Vivify(ai, len(ai))
		}
		if entry == nil {
			return paramErrf("Unrecognised AI: %s", ai)
		}

		raw := segments[i+1]
		if raw == "" {
			return dlErrf("AI (%s) value path element is empty", ai)
		}
		value, hadNull := uriUnescape(raw, false)
		if hadNull {
			return dlErrf("Decoded AI (%s) from DL path info contains illegal null character", ai)
		}
		if value == "" {
			return dlErrf("AI (%s) value path element is empty", ai)
		}
		if ai == "01" && g.permitZeroSuppGTIN {
			value = padGTIN(value)
		}

		if err := lintAIValue(entry, ai, value); err != nil {
			return err
		}
		if err := st.appendAI(element{entry: entry, ai: ai, value: value, dlPathOrder: order}); err != nil {
			return err
		}
		pathSeq = append(pathSeq, ai)
		order++
	}

	if err := st.parseDLQuery(g, query); err != nil {
		return err
	}

	if !g.table.ValidPathSeq(pathSeq) {
		return dlErrf("The AIs in the path are not a valid key-qualifier sequence for the key")
	}
	if err := st.checkDLAssociations(g, pathSeq); err != nil {
		return err
	}

	st.dataStr = uri
	st.dlURI = true
	return nil
}

func (st *parseState) parseDLQuery(g *Encoder, query string) error {
	for _, param := range strings.Split(query, "&") {
		if param == "" {
			continue
		}
		eq := strings.IndexByte(param, '=')
		if eq < 0 {
			st.ignoredQP = append(st.ignoredQP, param)
			continue
		}
		name := param[:eq]
		ai := g.resolveDLAIname(name)
		if ai == "" {
			if isDigits(name) {
				return dlErrf("Unknown AI (%s) in query parameters", name)
			}
			st.ignoredQP = append(st.ignoredQP, param)
			continue
		}

		entry := g.table.Lookup(ai)
		if entry == nil && g.permitUnknownAIs {
			entry = g.table.Vivify(ai, len(ai))
		}
		if entry == nil {
			return dlErrf("Unknown AI (%s) in query parameters", ai)
		}

		raw := param[eq+1:]
		if raw == "" {
			return dlErrf("AI (%s) value query element is empty", ai)
		}
		value, hadNull := uriUnescape(raw, true)
		if hadNull {
			return dlErrf("Decoded AI (%s) value from DL query params contains illegal null character", ai)
		}
		if value == "" {
			return dlErrf("AI (%s) value query element is empty", ai)
		}
		if ai == "01" {
			value = padGTIN(value)
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

// checkDLAssociations applies the structural rules that bind path and
// query AIs: no AI may repeat, query AIs must be permitted data attributes
// and an AI that extends the path's key-qualifier sequence belongs in the
// path rather than the query.
func (st *parseState) checkDLAssociations(g *Encoder, pathSeq []string) error {
	seen := make(map[string]struct{}, len(st.elems))
	for i := range st.elems {
		el := &st.elems[i]
		if el.kind != elemAI {
			continue
		}
		if _, dup := seen[el.ai]; dup {
			return dlErrf("AI (%s) is duplicated", el.ai)
		}
		seen[el.ai] = struct{}{}
	}

	for i := range st.elems {
		el := &st.elems[i]
		if el.kind != elemAI || el.dlPathOrder >= 0 {
			continue
		}
		if el.entry.Unknown {
			if g.ValidationEnabled(ValidationUnknownAINotDLAttr) {
				return dlErrf("AI (%s) is not a valid DL URI data attribute", el.ai)
			}
			continue
		}
		if !el.entry.DLAttr {
			return dlErrf("AI (%s) is not a valid DL URI data attribute", el.ai)
		}
		for j := 1; j <= len(pathSeq); j++ {
			trial := make([]string, 0, len(pathSeq)+1)
			trial = append(trial, pathSeq[:j]...)
			trial = append(trial, el.ai)
			trial = append(trial, pathSeq[j:]...)
			if g.table.ValidPathSeq(trial) {
				return dlErrf("AI (%s) from query params should be in the path info", el.ai)
			}
		}
	}
	return nil
}

// DLURI renders the stored AI data as a GS1 Digital Link URI beneath the
// given stem, or beneath "https://id.gs1.org" when stem is empty. The
// primary key and any applicable qualifier AIs form the path and all other
// AIs become query parameters, fixed-length AIs first.
func (g *Encoder) DLURI(stem string) (string, error) {
	uri, err := g.buildDLURI(stem)
	if err != nil {
		return "", g.fail(err)
	}
	g.errMsg = ""
	g.errMarkup = ""
	return uri, nil
}

func (g *Encoder) buildDLURI(stem string) (string, error) {
	path, attrs, err := g.dlPartition()
	if err != nil {
		return "", err
	}

	if stem == "" {
		stem = defaultDLStem
	}
	stem = strings.TrimRight(stem, "/")

	var b strings.Builder
	b.WriteString(stem)
	for _, el := range path {
		b.WriteByte('/')
		b.WriteString(el.ai)
		b.WriteByte('/')
		b.WriteString(uriEscape(el.value, false))
	}

	sep := byte('?')
	emit := func(fixed bool) error {
		for _, el := range attrs {
			if el.entry.FNC1 == fixed {
				continue
			}
			if el.entry.Unknown {
				if g.ValidationEnabled(ValidationUnknownAINotDLAttr) {
					return dlErrf("AI (%s) is not a valid DL URI data attribute", el.ai)
				}
			} else if !el.entry.DLAttr {
				return dlErrf("AI (%s) is not a valid DL URI data attribute", el.ai)
			}
			b.WriteByte(sep)
			sep = '&'
			b.WriteString(el.ai)
			b.WriteByte('=')
			b.WriteString(uriEscape(el.value, true))
		}
		return nil
	}
	if err := emit(true); err != nil {
		return "", err
	}
	if err := emit(false); err != nil {
		return "", err
	}

	return b.String(), nil
}

// dlPartition splits the stored elements into the path key-qualifier
// sequence and the query attributes. Data that came from a Digital Link
// URI keeps its original path; otherwise the first element that is a
// primary key anchors the path and the longest run of its present
// qualifiers extends it.
func (g *Encoder) dlPartition() (path, attrs []element, err error) {
	if g.dlURI {
		for _, el := range g.elems {
			if el.kind != elemAI {
				continue
			}
			if el.dlPathOrder >= 0 {
				path = append(path, el)
			} else {
				attrs = append(attrs, el)
			}
		}
		sort.SliceStable(path, func(i, j int) bool {
			return path[i].dlPathOrder < path[j].dlPathOrder
		})
		if len(path) > 0 {
			return path, attrs, nil
		}
		attrs = nil
	}

	keyIdx := -1
	for i, el := range g.elems {
		if el.kind == elemAI && el.entry.IsDLKey() {
			keyIdx = i
			break
		}
	}
	if keyIdx < 0 {
		return nil, nil, dlErrf("Cannot create a DL URI without a primary key AI")
	}
	key := g.elems[keyIdx]

	// Choose the qualifier list that the present AIs satisfy most fully.
	var quals []element
	for _, alt := range key.entry.Qualifiers {
		var present []element
		for _, q := range alt {
			for _, el := range g.elems {
				if el.kind == elemAI && el.ai == q {
					present = append(present, el)
					break
				}
			}
		}
		if len(present) > len(quals) {
			quals = present
		}
	}

	path = append(path, key)
	path = append(path, quals...)

	inPath := func(ai string) bool {
		for _, el := range path {
			if el.ai == ai {
				return true
			}
		}
		return false
	}
	for _, el := range g.elems {
		if el.kind != elemAI || inPath(el.ai) {
			continue
		}
		attrs = append(attrs, el)
	}
	return path, attrs, nil
}
