// Package workflow implements the stage-gate engine shared by the payment-FMS
// pipeline, subscription approval and the loan foreclosure/NOC pipeline.
//
// Two gating strategies coexist:
//
//   - column gates: a stage is pending while its planned column is set and
//     its actual column is null (Engine, Definition, Stage);
//   - correlated gates: a subject is pending while no matching row exists in a
//     second set (CorrelatedGate).
//
// Transitions are single unconditional updates. Nothing orders the stages
// relative to each other, and completing a stage twice refreshes its actual
// timestamp.
package workflow
