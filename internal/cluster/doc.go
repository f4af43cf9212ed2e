// Package cluster implements the unsupervised grouping of countries by
// emissions and energy profile for a selected year.
//
// For each country with a complete feature vector (co2 per capita,
// renewables / fossil / low-carbon energy shares, gdp) the engine
// standardizes the features across the included set for that year only,
// partitions the countries into k groups with seeded k-means, and assigns
// each country a human-readable label from its position relative to the
// set's mean CO₂ per capita and mean renewables share. Labels are heuristic
// and re-derived on every call, never stored.
//
// With the default fixed seed, cluster IDs are reproducible run to run for
// identical input.
package cluster
