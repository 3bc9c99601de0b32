package predictor

import (
	"fmt"
	"io"

	"github.com/GabrielRStella/QORA/attrval"
	"github.com/GabrielRStella/QORA/condition"
	"github.com/GabrielRStella/QORA/registry"
	"github.com/GabrielRStella/QORA/stats"
	"github.com/GabrielRStella/QORA/wstate"
)

// Candidate pairs a Condition with the FrequencyTable tracking how well it
// predicts the effect index, given the input state the condition evaluates
// to.
type Candidate struct {
	Condition condition.Condition
	Table     stats.FrequencyTable
}

// Observe evaluates c's condition against (target, objectsByClass) and
// records one occurrence of the resulting input state paired with effect.
func (c *Candidate) Observe(target wstate.Object, objectsByClass map[int][]wstate.Object, effect int) {
	stateIn := c.Condition.Evaluate(target, objectsByClass)
	c.Table.Observe(int(stateIn), effect)
}

// WriteReport writes a human-readable dump of c: its condition, its
// frequency table summary, and for every observed input state, the
// decoded case and the effects it was observed to produce with their
// conditional frequency.
func (c Candidate) WriteReport(w io.Writer, reg *registry.Registry, targetClassID int, effects []attrval.Value) {
	fmt.Fprintf(w, "     %s\n", c.Condition.String(reg, targetClassID))
	fmt.Fprintf(w, "     %s\n", c.Table)
	for _, in := range c.Table.ObservedInputStates() {
		fmt.Fprintf(w, "      %s\n", c.Condition.CaseInfo(uint64(in)))
		fmt.Fprint(w, "       ")
		needsComma := false
		for i, e := range effects {
			p := c.Table.FrequencyConditional(in, i)
			if p > 0 {
				if needsComma {
					fmt.Fprint(w, "; ")
				}
				fmt.Fprintf(w, "%s %.2f%%", e, p*100)
				needsComma = true
			}
		}
		fmt.Fprintln(w)
	}
}
