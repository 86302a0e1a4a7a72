// Package factorlab explores how an asset's excess return relates to the
// Fama-French five factors, and predicts an expected excess return for a
// hypothetical set of factor shocks.
//
// The core functionalities include:
//   - Data Loading: reading a factor-return table and an asset-return table
//     (CSV or XLSX), keyed by calendar month, and adjusting the asset returns
//     by the risk-free rate.
//   - Regression: an ordinary least squares fit of an asset's excess return on
//     the factors, with an intercept (alpha) and the usual fit statistics.
//   - Projection: evaluating a fitted model at a Scenario of factor values.
//
// Every computation is a pure function of its inputs: a Dataset is loaded
// once, and each Request produces a complete Result or an error.
//
// This package serves as the foundational logic for the `ffm` command-line
// tool.
package factorlab
