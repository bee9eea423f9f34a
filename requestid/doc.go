// Package requestid attaches a unique, immutable, lazily-generated 128-bit
// identifier to host instances.
//
// Two shapes are provided. Attribute keeps an external weak-keyed table from
// host instance to identifier, for host types whose construction sites are
// not controllable. ID is an embeddable field for host types that are, and
// is the cheaper of the two.
//
// Identifiers are UUID v4 values; the hex and base64 encodings are derived
// views over the same 16 raw bytes.
package requestid
