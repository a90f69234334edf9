// Package model defines shared data types used across the FOMC event study.
//
// Conventions:
//   - Tick timestamps: int64 microseconds since Unix epoch (provider-native
//     nanoseconds are truncated at the ingest boundary)
//   - Anchor and series timestamps: int64 seconds since Unix epoch
//   - Prices: decimal at the storage boundary, float64 in derived records
//   - Unavailable numeric fields: NaN (mirrors the null markers in the
//     output tables); unavailable string fields are ""
package model
