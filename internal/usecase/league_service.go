package usecase

import (
	"github.com/riskibarqy/matchday-intel/internal/domain/league"
	"github.com/riskibarqy/matchday-intel/internal/domain/source"
)

// ChainInfo describes the adapter order configured for one league.
type ChainInfo struct {
	League      league.League
	DisplayName string
	Adapters    []string
}

type LeagueService struct {
	table *source.Table
}

func NewLeagueService(table *source.Table) *LeagueService {
	return &LeagueService{table: table}
}

func (s *LeagueService) Normalize(label string) league.League {
	return league.Normalize(label)
}

// Chains lists every league with its adapters in priority order.
func (s *LeagueService) Chains() []ChainInfo {
	described := s.table.Describe()
	out := make([]ChainInfo, 0, len(described))
	for _, l := range league.All() {
		out = append(out, ChainInfo{
			League:      l,
			DisplayName: l.DisplayName(),
			Adapters:    described[l],
		})
	}
	return out
}
