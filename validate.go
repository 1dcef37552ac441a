/* Apache v2 license
 * Copyright (C) 2026 Symbolscan
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

import "github.com/symbolscan/gs1/aitable"

func (g *Encoder) validateAssociations(elems []element) error {
	for i := range g.validations {
		v := &g.validations[i]
		if !v.enabled || v.check == nil {
			continue
		}
		if err := v.check(g, elems); err != nil {
			return err
		}
	}
	return nil
}

// matchingElem returns the first AI element matching tmpl, skipping the
// element at index self so an AI never pairs with itself.
func matchingElem(elems []element, tmpl string, self int) *element {
	for i := range elems {
		if i == self || elems[i].kind != elemAI {
			continue
		}
		if aitable.MatchTemplate(tmpl, elems[i].ai) {
			return &elems[i]
		}
	}
	return nil
}

func checkMutexAIs(g *Encoder, elems []element) error {
	for i := range elems {
		el := &elems[i]
		if el.kind != elemAI {
			continue
		}
		for _, tmpl := range el.entry.Ex {
			if other := matchingElem(elems, tmpl, i); other != nil {
				return paramErrf("It is invalid to pair AI (%s) with AI (%s)", el.ai, other.ai)
			}
		}
	}
	return nil
}

func checkRequisiteAIs(g *Encoder, elems []element) error {
	for i := range elems {
		el := &elems[i]
		if el.kind != elemAI {
			continue
		}
		for _, req := range el.entry.Reqs {
			satisfied := false
			for _, group := range req.Alternatives {
				present := true
				for _, tmpl := range group {
					if matchingElem(elems, tmpl, i) == nil {
						present = false
						break
					}
				}
				if present {
					satisfied = true
					break
				}
			}
			if !satisfied {
				return paramErrf("Required AIs for AI (%s) are not satisfied: %s", el.ai, req.Raw)
			}
		}
	}
	return nil
}

// checkRepeatedAIs permits an AI to appear more than once, which happens
// when reads of multiple symbols on one label are concatenated, but only
// with an identical value each time.
func checkRepeatedAIs(g *Encoder, elems []element) error {
	for i := range elems {
		if elems[i].kind != elemAI {
			continue
		}
		for j := i + 1; j < len(elems); j++ {
			if elems[j].kind == elemAI && elems[j].ai == elems[i].ai &&
				elems[j].value != elems[i].value {
				return paramErrf("AI (%s) is duplicated", elems[i].ai)
			}
		}
	}
	return nil
}

// checkDigSigSerialKey requires that when a digital signature (8030) is
// present, any accompanying GDTI, GCN or GRAI carries its optional serial
// component, since the signature covers the fully serialised key.
func checkDigSigSerialKey(g *Encoder, elems []element) error {
	if matchingElem(elems, "8030", -1) == nil {
		return nil
	}
	for i := range elems {
		el := &elems[i]
		if el.kind != elemAI {
			continue
		}
		switch el.ai {
		case "253", "255", "8003":
			if len(el.value) == el.entry.MinLength() {
				return paramErrf("Serial component must be present for AI (%s) when used with AI (8030)", el.ai)
			}
		}
	}
	return nil
}
