// Package ltext implements the LTEXT localized-text record format: a
// 4-byte header (a 24-bit character length and an 8-bit encoding tag)
// followed by the encoded text itself.
//
// Decoding honors all three observed encodings (active-codepage/ASCII,
// UTF-8, UTF-16LE); encoding always emits UTF-16LE, matching the writer
// behavior of every known tool that produces DBPF archives.
package ltext
