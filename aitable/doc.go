// Package aitable models the syntax of GS1 Application Identifiers: for
// each AI, the character set, length and extra checks its value must
// satisfy, whether it takes an FNC1 separator, and the pairing rules that
// relate it to other AIs.
//
// A Table is built either from the embedded specs (Embedded) or from a YAML
// syntax dictionary (LoadDictionary), and answers the lookups that parsing
// AI element strings requires: exact lookup, prefix lookup for unbracketed
// data, and placeholder entries for AIs the table does not know.
package aitable
