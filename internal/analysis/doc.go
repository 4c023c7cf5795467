// Package analysis post-processes the aggregated characterization
// dataset:
//
//   - [ReconstructCapacitances]: folds the 16 raw mutual capacitances
//     into 6 physical two-terminal capacitances using charge
//     conservation at each node
//   - [DeriveMetrics]: appends fug, gm/id, intrinsic gain and current
//     density
//   - [SelectOutput]: projects onto the persisted column manifest
//
// Both stages mutate the table in place and run exactly once, after
// aggregation. Divisions that hit zero near cutoff produce IEEE 754
// sentinels, never errors.
package analysis
