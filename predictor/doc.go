// Package predictor implements StochasticEffectPredictor: an online
// hypothesis-search engine that, for one fixed (object class, attribute,
// action) triple, tries to find a logical Condition over the target object
// and its relations to other objects that predicts the attribute's delta
// ("effect") better than an unconditional baseline.
//
// The search maintains three tiers of candidates: a single baseline counter
// (no condition, always-true), a growing working set of singleton and
// compound conditions being tried out, and a small, approximately
// score-sorted slice of hypotheses that have already beaten the baseline.
// Every observation updates all three tiers, occasionally promotes a
// working-set candidate into hypotheses (discarding the baseline's
// relevance once that happens), and occasionally mints new compound
// candidates by combining the current best hypothesis with the others.
package predictor
