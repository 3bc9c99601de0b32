// Package statedist implements StateDistribution, a probabilistic
// generalization of wstate.State: for each object id, a
// dist.Distribution[wstate.Object] describing the uncertainty over that
// object's attributes, rather than a single concrete reading.
//
// A qora.Learner's PredictTransition returns a StateDistribution rather
// than a single State because, in general, a (state, action) pair may lead
// to more than one outcome with nonzero probability. Treating objects as
// independently distributed is an approximation: true joint uncertainty
// across objects is not modeled, only per-object marginal uncertainty.
package statedist
