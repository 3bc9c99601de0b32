// Package qora implements the top-level QORA learner: the coordinator that
// routes observed world transitions to per-(object class, attribute,
// action) stochastic effect predictors and fuses their predictions back
// into full-state distributions.
//
// The learner is deliberately lazy about model-building. Every observed
// delta is first recorded in a plain per-slot effect set; only once a slot
// has shown two distinct deltas — i.e. only once there is actually
// something stochastic to explain — is a predictor.Predictor constructed
// for it. Slots that only ever show one delta are answered with a
// degenerate "always adds that delta" prediction, and slots never observed
// at all predict no change.
package qora
