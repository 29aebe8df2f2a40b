// Package protocol implements the ASCII command grammar of the FINE-503
// three-axis piezo stage controller.
//
// It is the pure part of the library: axis selection, parameter validation,
// command encoding and reply decoding. Nothing in this package performs I/O;
// see package serialline for the transport and package fine503 for the
// controller that ties them together.
//
// # Axis addressing
//
// Every axis-aware command addresses either one channel ([First], [Second],
// [Third]) by its numeric code, or all of them at once ([All]) with the wide
// code "W". Parameter slices must have one element for a single channel and
// three for [All]; [ValidateArity] enforces this before anything is encoded.
//
// # Signs
//
// Signed parameters travel as a sign character followed by the magnitude,
// e.g. "A:1-P5" moves the first axis to -5. The sign of a zero value is '+'.
package protocol
