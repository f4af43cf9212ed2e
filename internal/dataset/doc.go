// Package dataset implements the offline ETL for the CO₂ & energy panel.
//
// The Downloader refreshes the two raw OWID exports, and the Builder merges
// them into the processed panel:
//
//  1. Each source is projected down to its retained column subset; a missing
//     required column aborts the build with a SchemaError naming it.
//  2. The sources are inner-joined on (country, year). Rows without a match
//     on the other side are dropped by design: a country-year must have both
//     emissions and energy data to be usable.
//  3. Supranational aggregates (World, continents, trade blocs) are removed
//     by exact-match denylist.
//  4. Rows missing co2 or year are dropped.
//
// The result is persisted as one CSV file, atomically and in deterministic
// order, so repeated builds over identical inputs are byte-comparable.
package dataset
