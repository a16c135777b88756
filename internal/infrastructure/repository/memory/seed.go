package memory

import (
	"github.com/riskibarqy/matchday-intel/internal/domain/league"
	"github.com/riskibarqy/matchday-intel/internal/domain/roster"
)

type seedSquad struct {
	team    roster.Team
	players []seedPlayer
}

type seedPlayer struct {
	id       string
	name     string
	position roster.Position
	starter  bool
}

var seedSquads = []seedSquad{
	{
		team: roster.Team{Name: "Celta de Vigo", League: league.LaLiga, Aliases: []string{"RC Celta", "Celta"}},
		players: []seedPlayer{
			{"cel-guaita", "Vicente Guaita", roster.PositionGoalkeeper, true},
			{"cel-mingueza", "Óscar Mingueza", roster.PositionDefender, true},
			{"cel-starfelt", "Carl Starfelt", roster.PositionDefender, true},
			{"cel-alonso", "Marcos Alonso", roster.PositionDefender, true},
			{"cel-ristic", "Mihailo Ristić", roster.PositionDefender, true},
			{"cel-beltran", "Fran Beltrán", roster.PositionMidfielder, true},
			{"cel-moriba", "Ilaix Moriba", roster.PositionMidfielder, true},
			{"cel-bamba", "Jonathan Bamba", roster.PositionMidfielder, true},
			{"cel-swedberg", "Williot Swedberg", roster.PositionMidfielder, true},
			{"cel-aspas", "Iago Aspas", roster.PositionForward, true},
			{"cel-borja", "Borja Iglesias", roster.PositionForward, true},
			{"cel-sotelo", "Hugo Sotelo", roster.PositionMidfielder, false},
			{"cel-duran", "Pablo Durán", roster.PositionForward, false},
		},
	},
	{
		team: roster.Team{Name: "Villarreal", League: league.LaLiga, Aliases: []string{"Villarreal CF"}},
		players: []seedPlayer{
			{"vil-conde", "Diego Conde", roster.PositionGoalkeeper, true},
			{"vil-femenia", "Kiko Femenía", roster.PositionDefender, true},
			{"vil-albiol", "Raúl Albiol", roster.PositionDefender, true},
			{"vil-bailly", "Eric Bailly", roster.PositionDefender, true},
			{"vil-cardona", "Sergi Cardona", roster.PositionDefender, true},
			{"vil-parejo", "Dani Parejo", roster.PositionMidfielder, true},
			{"vil-comesana", "Santi Comesaña", roster.PositionMidfielder, true},
			{"vil-baena", "Álex Baena", roster.PositionMidfielder, true},
			{"vil-pino", "Yéremy Pino", roster.PositionMidfielder, true},
			{"vil-moreno", "Gerard Moreno", roster.PositionForward, true},
			{"vil-barry", "Thierno Barry", roster.PositionForward, true},
			{"vil-pepe", "Nicolas Pépé", roster.PositionForward, false},
		},
	},
	{
		team: roster.Team{Name: "Arsenal", League: league.PremierLeague, Aliases: []string{"Arsenal FC", "The Gunners"}},
		players: []seedPlayer{
			{"ars-raya", "David Raya", roster.PositionGoalkeeper, true},
			{"ars-white", "Ben White", roster.PositionDefender, true},
			{"ars-saliba", "William Saliba", roster.PositionDefender, true},
			{"ars-gabriel", "Gabriel Magalhães", roster.PositionDefender, true},
			{"ars-timber", "Jurriën Timber", roster.PositionDefender, true},
			{"ars-rice", "Declan Rice", roster.PositionMidfielder, true},
			{"ars-partey", "Thomas Partey", roster.PositionMidfielder, true},
			{"ars-odegaard", "Martin Ødegaard", roster.PositionMidfielder, true},
			{"ars-saka", "Bukayo Saka", roster.PositionForward, true},
			{"ars-martinelli", "Gabriel Martinelli", roster.PositionForward, true},
			{"ars-havertz", "Kai Havertz", roster.PositionForward, true},
			{"ars-trossard", "Leandro Trossard", roster.PositionForward, false},
		},
	},
	{
		team: roster.Team{Name: "Chelsea", League: league.PremierLeague, Aliases: []string{"Chelsea FC"}},
		players: []seedPlayer{
			{"che-sanchez", "Robert Sánchez", roster.PositionGoalkeeper, true},
			{"che-james", "Reece James", roster.PositionDefender, true},
			{"che-fofana", "Wesley Fofana", roster.PositionDefender, true},
			{"che-colwill", "Levi Colwill", roster.PositionDefender, true},
			{"che-cucurella", "Marc Cucurella", roster.PositionDefender, true},
			{"che-caicedo", "Moisés Caicedo", roster.PositionMidfielder, true},
			{"che-fernandez", "Enzo Fernández", roster.PositionMidfielder, true},
			{"che-palmer", "Cole Palmer", roster.PositionMidfielder, true},
			{"che-madueke", "Noni Madueke", roster.PositionForward, true},
			{"che-neto", "Pedro Neto", roster.PositionForward, true},
			{"che-jackson", "Nicolas Jackson", roster.PositionForward, true},
			{"che-nkunku", "Christopher Nkunku", roster.PositionForward, false},
		},
	},
}

func SeedTeams() []roster.Team {
	out := make([]roster.Team, 0, len(seedSquads))
	for _, s := range seedSquads {
		out = append(out, s.team)
	}
	return out
}

func SeedPlayers() []roster.Player {
	var out []roster.Player
	for _, s := range seedSquads {
		for _, p := range s.players {
			out = append(out, roster.Player{ID: p.id, Name: p.name, Team: s.team.Name, Position: p.position})
		}
	}
	return out
}

// SeedLastKnownLineups uses each squad's starters as its last known XI.
func SeedLastKnownLineups() map[string][]string {
	out := make(map[string][]string, len(seedSquads))
	for _, s := range seedSquads {
		for _, p := range s.players {
			if p.starter {
				out[s.team.Name] = append(out[s.team.Name], p.name)
			}
		}
	}
	return out
}
