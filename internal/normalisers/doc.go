// Package normalisers provides implementations of the PageReader interface
// for various document formats. Each reader knows how to turn one file
// format into pages of text blocks.
//
// Readers are registered with the Registry at startup and selected by
// file extension, highest priority first.
package normalisers
