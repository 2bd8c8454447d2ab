// Package report implements the clinical report document pipeline: heuristic
// segmentation of stored report text into titled sections with tabular rows,
// and typesetting of the result into a paginated A4 PDF.
//
// The pipeline is a pure function from a Report value to document bytes.
// Glyph measurement and drawing are abstracted behind the Metrics and Backend
// interfaces so the layout logic can be tested without a PDF library.
package report
