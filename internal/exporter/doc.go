// Package exporter provides tabular file output for the pipeline.
//
// The dataset builder writes the panel through WriteCSV, and the report
// commands reuse it for forecast and cluster report files. All CSV writes
// are atomic (temp file plus rename) so consumers never observe a partially
// written panel. WriteXLSX mirrors the same content into a spreadsheet for
// manual inspection.
package exporter
