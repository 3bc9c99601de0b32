package stats

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/GabrielRStella/QORA/dist"
)

type jointKey struct {
	in  int
	out int
}

// FrequencyTable is a conditional frequency table over an m-valued input
// and a dynamically growing k-valued output, together with the derived
// prediction score and Wilson success interval.
type FrequencyTable struct {
	m int
	k int

	countTotal    uint64
	countByInput  map[int]uint64
	countByOutput map[int]uint64
	countJoint    map[jointKey]uint64

	predictionScore float64
	successInterval ConfidenceInterval
}

// NewFrequencyTable constructs a table over m input states, starting with
// k=2 possible outputs (the minimum interesting number; k grows
// automatically as larger outcomes are observed).
func NewFrequencyTable(m int) FrequencyTable {
	return FrequencyTable{
		m:               m,
		k:               2,
		countByInput:    make(map[int]uint64),
		countByOutput:   make(map[int]uint64),
		countJoint:      make(map[jointKey]uint64),
		successInterval: ConfidenceInterval{Lower: 0, Upper: 1},
	}
}

// Reset clears every observation, restoring the table to its just-
// constructed state (m and k are retained).
func (f *FrequencyTable) Reset() {
	f.countTotal = 0
	f.countByInput = make(map[int]uint64)
	f.countByOutput = make(map[int]uint64)
	f.countJoint = make(map[jointKey]uint64)
	f.predictionScore = 0
	f.successInterval = ConfidenceInterval{Lower: 0, Upper: 1}
}

// InputStates returns m, the number of input states.
func (f FrequencyTable) InputStates() int { return f.m }

// OutputStates returns k, the current number of output states.
func (f FrequencyTable) OutputStates() int { return f.k }

// ObservedInputStates returns every input value that has been observed at
// least once, in ascending order.
func (f FrequencyTable) ObservedInputStates() []int {
	out := make([]int, 0, len(f.countByInput))
	for in := range f.countByInput {
		out = append(out, in)
	}
	sort.Ints(out)
	return out
}

// CountTotal returns the total number of observations.
func (f FrequencyTable) CountTotal() uint64 { return f.countTotal }

// CountInput returns the number of observations with the given input.
func (f FrequencyTable) CountInput(in int) uint64 { return f.countByInput[in] }

// CountOutput returns the number of observations with the given output.
func (f FrequencyTable) CountOutput(out int) uint64 { return f.countByOutput[out] }

// Count returns the number of observations of the given (input, output)
// pair.
func (f FrequencyTable) Count(in, out int) uint64 { return f.countJoint[jointKey{in, out}] }

// FrequencyInput returns the empirical P(input).
func (f FrequencyTable) FrequencyInput(in int) float64 {
	if f.countTotal == 0 {
		return 0
	}
	return float64(f.countByInput[in]) / float64(f.countTotal)
}

// FrequencyOutput returns the empirical P(output).
func (f FrequencyTable) FrequencyOutput(out int) float64 {
	if f.countTotal == 0 {
		return 0
	}
	return float64(f.countByOutput[out]) / float64(f.countTotal)
}

// Frequency returns the empirical joint P(input, output).
func (f FrequencyTable) Frequency(in, out int) float64 {
	if f.countTotal == 0 {
		return 0
	}
	return float64(f.countJoint[jointKey{in, out}]) / float64(f.countTotal)
}

// FrequencyConditional returns the empirical P(output | input).
func (f FrequencyTable) FrequencyConditional(in, out int) float64 {
	fi := f.FrequencyInput(in)
	if fi == 0 {
		return 0
	}
	return f.Frequency(in, out) / fi
}

// ConditionalDistribution returns P(. | in) as a distribution over outcomes,
// including only outcomes with strictly positive conditional probability.
func (f FrequencyTable) ConditionalDistribution(in int) dist.Distribution[Outcome] {
	d := dist.New[Outcome]()
	for i := 0; i < f.k; i++ {
		p := f.FrequencyConditional(in, i)
		if p > 0 {
			d.SetProbability(Outcome(i), p)
		}
	}
	return d
}

// Slice extracts the single-input-row sub-table for in as a 1-input table,
// re-indexed so that input value 0 carries everything observed at in.
func (f FrequencyTable) Slice(in int) FrequencyTable {
	c := NewFrequencyTable(1)
	c.k = f.k
	total, ok := f.countByInput[in]
	if !ok {
		return c
	}
	c.countTotal = total
	c.countByInput[0] = total
	for i := 0; i < f.k; i++ {
		if n, ok := f.countJoint[jointKey{in, i}]; ok {
			c.countJoint[jointKey{0, i}] = n
			c.countByOutput[i] = n
		}
	}
	return c
}

// PredictionScore returns the most recently computed S score.
func (f FrequencyTable) PredictionScore() float64 { return f.predictionScore }

// SuccessInterval returns the most recently computed Wilson interval on the
// prediction success rate.
func (f FrequencyTable) SuccessInterval() ConfidenceInterval { return f.successInterval }

// Observe records one occurrence of (in, out), growing k if out is a new
// maximum.
func (f *FrequencyTable) Observe(in, out int) {
	if out >= f.k {
		f.k = out + 1
	}
	f.countTotal++
	f.countByInput[in]++
	f.countByOutput[out]++
	f.countJoint[jointKey{in, out}]++
}

// Recalculate recomputes the prediction score (the paper's S score: the
// sum, over observed input values, of Σ_out joint(in,out)² / P(in)) and the
// Wilson success interval at confidence level 1-alpha. A no-op if no
// observations have been made.
func (f *FrequencyTable) Recalculate(alpha float64) {
	if f.countTotal == 0 {
		return
	}
	total := float64(f.countTotal)
	score := 0.0
	for in := range f.countByInput {
		fi := f.FrequencyInput(in)
		if fi <= 0 {
			continue
		}
		term := 0.0
		for out := 0; out < f.k; out++ {
			x := f.Frequency(in, out)
			term += x * x
		}
		score += term / fi
	}
	f.predictionScore = score
	f.successInterval = EstimateBinomialInterval(f.countTotal, uint64(score*total), alpha)
}

// Predict returns the max-likelihood output for the given input. Ties
// favor the smaller output value (strict `>` under ascending iteration).
func (f FrequencyTable) Predict(in int) int {
	best := 0
	bestProb := -1.0
	for i := 0; i < f.k; i++ {
		p := f.FrequencyConditional(in, i)
		if p > bestProb {
			best = i
			bestProb = p
		}
	}
	return best
}

// Confidence returns the conditional probability of Predict's chosen
// output: 1 if it is the only observed outcome for in, 0 if in was never
// observed, strictly between otherwise.
func (f FrequencyTable) Confidence(in int) float64 {
	bestProb := -1.0
	for i := 0; i < f.k; i++ {
		if p := f.FrequencyConditional(in, i); p > bestProb {
			bestProb = p
		}
	}
	return bestProb
}

// GreaterThan reports whether f's success interval lies entirely above
// other's — used to keep candidates in sorted order.
func (f FrequencyTable) GreaterThan(other FrequencyTable) bool {
	return f.successInterval.GreaterThan(other.successInterval)
}

// LessThan reports whether f's success interval lies entirely below
// other's.
func (f FrequencyTable) LessThan(other FrequencyTable) bool {
	return f.successInterval.LessThan(other.successInterval)
}

// String renders a one-line summary.
func (f FrequencyTable) String() string {
	return fmt.Sprintf("Counter(%d x %d), success: (%.3f, %.3f)",
		f.m, f.k, f.successInterval.Lower, f.successInterval.Upper)
}

type frequencyTableDoc struct {
	M               int            `json:"m"`
	K               int            `json:"k"`
	CountTotal      uint64         `json:"count_total"`
	CountM          map[string]uint64 `json:"count_m"`
	CountK          map[string]uint64 `json:"count_k"`
	PredictionScore float64        `json:"prediction_score"`
	CountJoint      map[string]uint64 `json:"count_joint"`
}

// MarshalJSON encodes f's counts, with count_joint keyed by "in,out"
// strings.
func (f FrequencyTable) MarshalJSON() ([]byte, error) {
	doc := frequencyTableDoc{
		M:               f.m,
		K:               f.k,
		CountTotal:      f.countTotal,
		PredictionScore: f.predictionScore,
		CountM:          make(map[string]uint64, len(f.countByInput)),
		CountK:          make(map[string]uint64, len(f.countByOutput)),
		CountJoint:      make(map[string]uint64, len(f.countJoint)),
	}
	for in, n := range f.countByInput {
		doc.CountM[strconv.Itoa(in)] = n
	}
	for out, n := range f.countByOutput {
		doc.CountK[strconv.Itoa(out)] = n
	}
	for k, n := range f.countJoint {
		doc.CountJoint[fmt.Sprintf("%d,%d", k.in, k.out)] = n
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes a document produced by MarshalJSON. Only counts
// and prediction_score are stored; Recalculate must be called afterward to
// rebuild the success interval.
func (f *FrequencyTable) UnmarshalJSON(data []byte) error {
	var doc frequencyTableDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("stats: decode frequency table: %w", err)
	}
	f.m = doc.M
	f.k = doc.K
	f.countTotal = doc.CountTotal
	f.predictionScore = doc.PredictionScore
	f.countByInput = make(map[int]uint64, len(doc.CountM))
	for k, n := range doc.CountM {
		in, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("stats: decode count_m key %q: %w", k, err)
		}
		f.countByInput[in] = n
	}
	f.countByOutput = make(map[int]uint64, len(doc.CountK))
	for k, n := range doc.CountK {
		out, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("stats: decode count_k key %q: %w", k, err)
		}
		f.countByOutput[out] = n
	}
	f.countJoint = make(map[jointKey]uint64, len(doc.CountJoint))
	for k, n := range doc.CountJoint {
		parts := strings.SplitN(k, ",", 2)
		if len(parts) != 2 {
			return fmt.Errorf("stats: malformed count_joint key %q", k)
		}
		in, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("stats: decode count_joint key %q: %w", k, err)
		}
		out, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Errorf("stats: decode count_joint key %q: %w", k, err)
		}
		f.countJoint[jointKey{in, out}] = n
	}
	f.successInterval = ConfidenceInterval{Lower: 0, Upper: 1}
	return nil
}
