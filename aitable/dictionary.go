/* Apache v2 license
 * Copyright (C) 2026 Symbolscan
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package aitable

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// dictionaryDoc is the on-disk form of a syntax dictionary. FNC1 and DLAttr
// are pointers so that an absent field takes its default (both true).
type dictionaryDoc struct {
	AIs []struct {
		AI     string `yaml:"ai"`
		FNC1   *bool  `yaml:"fnc1"`
		DLAttr *bool  `yaml:"dlattr"`
		Format string `yaml:"format"`
		Attrs  string `yaml:"attrs"`
		Title  string `yaml:"title"`
	} `yaml:"ais"`
}

// ReadDictionary parses a YAML syntax dictionary from r and builds a Table
// from it. The document is a mapping with a single "ais" sequence; each item
// gives the AI, its format specification and optionally its attributes,
// title, and fnc1/dlattr flags (both default to true).
func ReadDictionary(r io.Reader) (*Table, error) {
	var doc dictionaryDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "parsing syntax dictionary")
	}
	if len(doc.AIs) == 0 {
		return nil, errors.New("syntax dictionary has no AIs")
	}

	specs := make([]Spec, 0, len(doc.AIs))
	for _, d := range doc.AIs {
		s := Spec{
			AI:     d.AI,
			Format: d.Format,
			Attrs:  d.Attrs,
			Title:  d.Title,
		}
		if d.FNC1 != nil {
			s.NoFNC1 = !*d.FNC1
		}
		if d.DLAttr != nil {
			s.NoDL = !*d.DLAttr
		}
		specs = append(specs, s)
	}
	return New(specs)
}

// LoadDictionary builds a Table from the YAML syntax dictionary at path.
func LoadDictionary(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening syntax dictionary")
	}
	defer f.Close()
	t, err := ReadDictionary(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return t, nil
}
