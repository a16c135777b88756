package source

import (
	"github.com/riskibarqy/matchday-intel/internal/domain/league"
)

// Chain is an ordered adapter priority list; index 0 is the most authoritative.
type Chain []Adapter

// Names lists adapter names in priority order.
func (c Chain) Names() []string {
	out := make([]string, 0, len(c))
	for _, a := range c {
		out = append(out, a.Name())
	}
	return out
}

// Binding declares the chain for one league.
type Binding struct {
	League   league.League
	Adapters []Adapter
}

// Table maps leagues to adapter chains. It is built once at startup and read
// concurrently afterwards.
type Table struct {
	chains map[league.League]Chain
}

// NewTable builds a table from declarative bindings. Nil adapters are skipped;
// a later binding for the same league appends to the earlier one.
func NewTable(bindings ...Binding) *Table {
	t := &Table{chains: make(map[league.League]Chain, len(bindings))}
	for _, b := range bindings {
		for _, a := range b.Adapters {
			if a == nil {
				continue
			}
			t.chains[b.League] = append(t.chains[b.League], a)
		}
	}
	return t
}

// Chain returns the chain for l, falling back to the Generic chain.
func (t *Table) Chain(l league.League) Chain {
	if t == nil {
		return nil
	}
	if c, ok := t.chains[l]; ok && len(c) > 0 {
		return append(Chain(nil), c...)
	}
	return append(Chain(nil), t.chains[league.Generic]...)
}

// Describe lists adapter names per league for every known league.
func (t *Table) Describe() map[league.League][]string {
	out := make(map[league.League][]string, len(league.All()))
	for _, l := range league.All() {
		out[l] = t.Chain(l).Names()
	}
	return out
}
