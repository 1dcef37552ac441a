/* Apache v2 license
 * Copyright (C) 2026 Symbolscan
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

// HRI returns the human readable interpretation of the stored data, one
// string per AI in the form "(01) 12312312312333". When data titles are
// enabled and the AI has one, the line becomes "GTIN (01) 12312312312333".
func (g *Encoder) HRI() []string {
	out := make([]string, 0, len(g.elems))
	for _, el := range g.elems {
		if el.kind != elemAI {
			continue
		}
		line := "(" + el.ai + ") " + el.value
		if g.includeDataTitles && el.entry.Title != "" {
			line = el.entry.Title + " " + line
		}
		out = append(out, line)
	}
	return out
}

// DLIgnoredQueryParams returns the query parameters of the most recently
// processed Digital Link URI that do not convey AI data, verbatim and in
// order of appearance.
func (g *Encoder) DLIgnoredQueryParams() []string {
	out := make([]string, len(g.ignoredQP))
	copy(out, g.ignoredQP)
	return out
}
