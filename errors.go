/* Apache v2 license
 * Copyright (C) 2026 Symbolscan
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package gs1

import "fmt"

// ParameterError reports AI data that fails syntax or content checks. When
// the failure can be localised to a run of characters within the data,
// Markup carries the element string with the offending characters delimited
// by '|', e.g. "(01) 123456789012|3|1".
type ParameterError struct {
	Msg    string
	Markup string
}

func (e *ParameterError) Error() string {
	return e.Msg
}

// DigitalLinkError reports a malformed GS1 Digital Link URI.
type DigitalLinkError struct {
	Msg string
}

func (e *DigitalLinkError) Error() string {
	return e.Msg
}

// ScanDataError reports barcode scan data that cannot be processed, either
// because the symbology identifier is unsupported or because the message
// violates the conventions of the reported symbology.
type ScanDataError struct {
	Msg string
}

func (e *ScanDataError) Error() string {
	return e.Msg
}

func paramErrf(format string, args ...interface{}) *ParameterError {
	return &ParameterError{Msg: fmt.Sprintf(format, args...)}
}

func dlErrf(format string, args ...interface{}) *DigitalLinkError {
	return &DigitalLinkError{Msg: fmt.Sprintf(format, args...)}
}

func scanErrf(format string, args ...interface{}) *ScanDataError {
	return &ScanDataError{Msg: fmt.Sprintf(format, args...)}
}
