// Package panel defines the merged country-year dataset and its read-only
// in-memory store.
//
// The panel is the single source of truth for every analytics engine. It is
// produced offline by the dataset builder, persisted as one CSV file, and
// loaded exactly once per process:
//
//	p, err := panel.Load(paths.PanelCSV)
//	years := p.Years()        // descending, drives the year selector
//	rows := p.RowsForYear(2020)
//
// The store never mutates records in place and every accessor returns
// copies, so the Panel is safe to share across concurrent engine calls.
// Missing numeric values are represented as NaN.
package panel
