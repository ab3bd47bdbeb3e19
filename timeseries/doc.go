// Package timeseries provides time series data structures and utilities.
//
// This package includes the Series type for representing univariate time
// series data, along with functions for data loading, transformation, and
// summary statistics.
//
// # Creating a Series
//
// Create a time series from a slice:
//
//	values := []float64{555, 98, 288, 493, 684, 811}
//	series := timeseries.New(values)
//
// # Loading from CSV
//
// Two CSV layouts are supported. The column layout holds one observation
// per row:
//
//	series, err := timeseries.LoadCSVColumn("data.csv", "confirmed")
//
// The wide layout holds one series per row, with a few identifying columns
// followed by one column per day. This is the layout used by cumulative
// daily-case exports:
//
//	opts := timeseries.DefaultWideCSVOptions() // observations start at column 4
//	opts.KeyValue = "Hubei"
//	series, err := timeseries.LoadCSVWide("confirmed.csv", opts)
//
// # Basic Statistics
//
// Calculate summary statistics:
//
//	mean := series.Mean()
//	std := series.Std()
//	min := series.Min()
//	max := series.Max()
//
// # Transformations
//
// Derived series are read-only copies:
//
//	daily := series.Diff()          // cumulative totals -> daily increments
//	subset := series.Slice(10, 30)  // half-open range
//	clone := series.Copy()
package timeseries
