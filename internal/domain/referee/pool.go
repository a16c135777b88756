package referee

import (
	"hash/fnv"
	"strings"

	"github.com/riskibarqy/matchday-intel/internal/domain/fixture"
	"github.com/riskibarqy/matchday-intel/internal/domain/league"
)

// PoolEntry is one plausible referee identity with a known card average.
type PoolEntry struct {
	Name       string     `yaml:"name" validate:"required"`
	AvgCards   float64    `yaml:"avg_cards" validate:"gt=0"`
	Strictness Strictness `yaml:"strictness"`
}

// Pool is the ordered fallback list for one league. Order matters: selection
// indexes into Entries, so reordering changes which referee a fixture gets.
type Pool struct {
	League  league.League
	Entries []PoolEntry
}

const minPartialLookup = 5

var unassigned = PoolEntry{Name: "Unassigned", AvgCards: DefaultAvgCards, Strictness: StrictnessMedium}

// Select picks the placeholder referee for f. The index is an FNV-1a hash of
// the fixture key, so the same fixture always gets the same entry and
// different fixtures spread across the pool.
func (p Pool) Select(f fixture.Fixture) PoolEntry {
	if len(p.Entries) == 0 {
		return unassigned
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(f.Key()))
	return p.Entries[h.Sum64()%uint64(len(p.Entries))]
}

// Lookup finds an entry by folded name.
func (p Pool) Lookup(name string) (PoolEntry, bool) {
	key := foldName(name)
	if key == "" {
		return PoolEntry{}, false
	}
	for _, e := range p.Entries {
		candidate := foldName(e.Name)
		if candidate == key {
			return e, true
		}
		if len(key) >= minPartialLookup && (strings.Contains(candidate, key) || strings.Contains(key, candidate)) {
			return e, true
		}
	}
	return PoolEntry{}, false
}

// Pools indexes fallback pools by league. Leagues without a pool use the
// Generic (international) one.
type Pools map[league.League]Pool

func (p Pools) For(l league.League) Pool {
	if pool, ok := p[l]; ok && len(pool.Entries) > 0 {
		return pool
	}
	if pool, ok := p[league.Generic]; ok {
		return Pool{League: l, Entries: pool.Entries}
	}
	return Pool{League: l}
}

// Merge returns a copy of p where every non-empty pool in overrides replaces
// the default for that league.
func (p Pools) Merge(overrides Pools) Pools {
	out := make(Pools, len(p)+len(overrides))
	for l, pool := range p {
		out[l] = pool
	}
	for l, pool := range overrides {
		if len(pool.Entries) == 0 {
			continue
		}
		pool.League = l
		out[l] = pool
	}
	return out
}

// DefaultPools returns the curated per-league lists.
func DefaultPools() Pools {
	return Pools{
		league.LaLiga: {League: league.LaLiga, Entries: []PoolEntry{
			{Name: "Jesús Gil Manzano", AvgCards: 5.8, Strictness: StrictnessHigh},
			{Name: "Sánchez Martínez", AvgCards: 4.5, Strictness: StrictnessMedium},
			{Name: "Hernández Hernández", AvgCards: 5.5, Strictness: StrictnessHigh},
			{Name: "Díaz de Mera", AvgCards: 3.8, Strictness: StrictnessLow},
			{Name: "Munuera Montero", AvgCards: 4.2, Strictness: StrictnessMedium},
			{Name: "Del Cerro Grande", AvgCards: 4.0, Strictness: StrictnessMedium},
			{Name: "Figueroa Vázquez", AvgCards: 4.3, Strictness: StrictnessMedium},
			{Name: "Trujillo Suárez", AvgCards: 4.1, Strictness: StrictnessMedium},
		}},
		league.PremierLeague: {League: league.PremierLeague, Entries: []PoolEntry{
			{Name: "Michael Oliver", AvgCards: 4.9, Strictness: StrictnessHigh},
			{Name: "Anthony Taylor", AvgCards: 5.1, Strictness: StrictnessHigh},
			{Name: "Craig Pawson", AvgCards: 3.4, Strictness: StrictnessLow},
			{Name: "Paul Tierney", AvgCards: 4.0, Strictness: StrictnessMedium},
			{Name: "Simon Hooper", AvgCards: 4.2, Strictness: StrictnessMedium},
			{Name: "John Brooks", AvgCards: 3.8, Strictness: StrictnessLow},
			{Name: "Robert Jones", AvgCards: 4.4, Strictness: StrictnessMedium},
		}},
		league.SerieA: {League: league.SerieA, Entries: []PoolEntry{
			{Name: "Daniele Orsato", AvgCards: 5.3, Strictness: StrictnessHigh},
			{Name: "Marco Guida", AvgCards: 3.6, Strictness: StrictnessLow},
			{Name: "Davide Massa", AvgCards: 4.4, Strictness: StrictnessMedium},
			{Name: "Maurizio Mariani", AvgCards: 4.1, Strictness: StrictnessMedium},
			{Name: "Luca Pairetto", AvgCards: 4.0, Strictness: StrictnessMedium},
			{Name: "Gianluca Manganiello", AvgCards: 4.7, Strictness: StrictnessHigh},
		}},
		league.Bundesliga: {League: league.Bundesliga, Entries: []PoolEntry{
			{Name: "Felix Brych", AvgCards: 4.8, Strictness: StrictnessHigh},
			{Name: "Tobias Stieler", AvgCards: 3.3, Strictness: StrictnessLow},
			{Name: "Deniz Aytekin", AvgCards: 4.0, Strictness: StrictnessMedium},
			{Name: "Marco Fritz", AvgCards: 3.9, Strictness: StrictnessMedium},
			{Name: "Daniel Schlager", AvgCards: 4.2, Strictness: StrictnessMedium},
			{Name: "Robert Kampka", AvgCards: 3.7, Strictness: StrictnessLow},
		}},
		league.Ligue1: {League: league.Ligue1, Entries: []PoolEntry{
			{Name: "Clément Turpin", AvgCards: 4.7, Strictness: StrictnessHigh},
			{Name: "Benoît Bastien", AvgCards: 4.0, Strictness: StrictnessMedium},
			{Name: "François Letexier", AvgCards: 3.8, Strictness: StrictnessMedium},
			{Name: "Jérôme Brisard", AvgCards: 3.3, Strictness: StrictnessLow},
			{Name: "Willy Delajod", AvgCards: 4.1, Strictness: StrictnessMedium},
			{Name: "Ruddy Buquet", AvgCards: 3.6, Strictness: StrictnessLow},
		}},
		league.Generic: {League: league.Generic, Entries: []PoolEntry{
			{Name: "Glenn Nyberg", AvgCards: 4.1, Strictness: StrictnessMedium},
			{Name: "Sandro Schärer", AvgCards: 4.8, Strictness: StrictnessHigh},
			{Name: "Erik Lambrechts", AvgCards: 3.9, Strictness: StrictnessMedium},
			{Name: "Donatas Rumšas", AvgCards: 3.4, Strictness: StrictnessLow},
			{Name: "Irati Gallastegui", AvgCards: 4.2, Strictness: StrictnessMedium},
		}},
	}
}
