/* Apache v2 license
 * Copyright (C) 2026 Symbolscan
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package aitable

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Component is a single field of an AI value, as described by one token of a
// format specification such as "N13,csum,key" or "[X..17]".
type Component struct {
	CSet CSet
	Min  int
	Max  int
	Opt  bool // optional trailing component, bracketed in the format string

	// Linters are the names of the extra checks this component carries,
	// applied in order after the character set and length checks.
	Linters []string
}

// Lint checks val against the component's character set and named linters.
// It assumes the caller has already verified the length bounds.
func (c Component) Lint(val string) *LintError {
	for i := 0; i < len(val); i++ {
		if !c.CSet.Contains(val[i]) {
			return &LintError{
				Msg: "Invalid character for this AI",
				Pos: i,
				Len: 1,
			}
		}
	}
	for _, name := range c.Linters {
		// names were resolved when the table was built
		if err := linters[name](val); err != nil {
			return err
		}
	}
	return nil
}

// ParseSpec parses a whitespace-separated AI format specification into its
// components. Each token is a character-set letter (N, X, Y or Z) followed
// by either a fixed length ("N14") or a maximum length ("X..20"), then an
// optional comma-separated list of linter names ("N13,csum,key"). A token
// wrapped in square brackets is an optional component; optional components
// may only appear at the end of the format string.
func ParseSpec(spec string) ([]Component, error) {
	toks := strings.Fields(spec)
	if len(toks) == 0 {
		return nil, errors.New("empty format specification")
	}
	comps := make([]Component, 0, len(toks))
	sawOpt := false
	for _, tok := range toks {
		c, err := parseComponent(tok)
		if err != nil {
			return nil, err
		}
		if sawOpt && !c.Opt {
			return nil, errors.Errorf("mandatory component %q follows an optional component", tok)
		}
		sawOpt = sawOpt || c.Opt
		comps = append(comps, c)
	}
	return comps, nil
}

func parseComponent(tok string) (Component, error) {
	var c Component
	orig := tok

	if strings.HasPrefix(tok, "[") {
		if !strings.HasSuffix(tok, "]") {
			return c, errors.Errorf("unterminated optional component %q", orig)
		}
		c.Opt = true
		tok = tok[1 : len(tok)-1]
	}
	if tok == "" {
		return c, errors.Errorf("empty component %q", orig)
	}

	cset, ok := csetForLetter(tok[0])
	if !ok {
		return c, errors.Errorf("component %q has unknown character set %q", orig, tok[0:1])
	}
	c.CSet = cset
	tok = tok[1:]

	lenSpec := tok
	if i := strings.IndexByte(tok, ','); i >= 0 {
		lenSpec = tok[:i]
		for _, name := range strings.Split(tok[i+1:], ",") {
			if _, err := lookupLinter(name); err != nil {
				return c, errors.Wrapf(err, "component %q", orig)
			}
			c.Linters = append(c.Linters, name)
		}
	}

	variable := false
	if strings.HasPrefix(lenSpec, "..") {
		variable = true
		lenSpec = lenSpec[2:]
	}
	n, err := strconv.Atoi(lenSpec)
	if err != nil || n < 1 {
		return c, errors.Errorf("component %q has invalid length %q", orig, lenSpec)
	}
	c.Max = n
	if variable {
		c.Min = 1
	} else {
		c.Min = n
	}
	return c, nil
}

// parseAttrs parses the space-separated attribute string of a table entry
// into the entry's exclusion templates, requisite groups and DL
// key-qualifier lists.
func parseAttrs(attrs string, e *Entry) error {
	for _, tok := range strings.Fields(attrs) {
		key, val := tok, ""
		if i := strings.IndexByte(tok, '='); i >= 0 {
			key, val = tok[:i], tok[i+1:]
		}
		switch key {
		case "ex":
			if val == "" {
				return errors.New("ex attribute requires a value")
			}
			e.Ex = append(e.Ex, strings.Split(val, ",")...)
		case "req":
			if val == "" {
				return errors.New("req attribute requires a value")
			}
			req := ReqSpec{Raw: val}
			for _, alt := range strings.Split(val, ",") {
				req.Alternatives = append(req.Alternatives, strings.Split(alt, "+"))
			}
			e.Reqs = append(e.Reqs, req)
		case "dlpkey":
			if e.Qualifiers != nil {
				return errors.New("duplicate dlpkey attribute")
			}
			e.Qualifiers = [][]string{}
			if val != "" {
				for _, q := range strings.Split(val, "|") {
					e.Qualifiers = append(e.Qualifiers, strings.Split(q, ","))
				}
			}
		default:
			return errors.Errorf("unknown attribute %q", tok)
		}
	}
	return nil
}
