package scraper

import (
	"regexp"

	"github.com/riskibarqy/matchday-intel/internal/domain/extraction"
	"github.com/riskibarqy/matchday-intel/internal/domain/league"
	"github.com/riskibarqy/matchday-intel/internal/platform/logging"
)

// Endpoints holds the base URL of every site the adapters read. Tests point
// them all at one httptest server.
type Endpoints struct {
	FutbolFantasy    string
	ResultadosFutbol string
	RFEF             string
	BeSoccer         string
	PremierInjuries  string
	BBC              string
	Kicker           string
	DFB              string
	DFBDataCenter    string
	Fantacalcio      string
	AIA              string
	LEquipe          string
	FFF              string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		FutbolFantasy:    "https://www.futbolfantasy.com",
		ResultadosFutbol: "https://www.resultados-futbol.com",
		RFEF:             "https://www.rfef.es",
		BeSoccer:         "https://es.besoccer.com",
		PremierInjuries:  "https://www.premierinjuries.com",
		BBC:              "https://www.bbc.co.uk",
		Kicker:           "https://www.kicker.de",
		DFB:              "https://www.dfb.de",
		DFBDataCenter:    "https://datencenter.dfb.de",
		Fantacalcio:      "https://www.fantacalcio.it",
		AIA:              "https://www.aia-figc.it",
		LEquipe:          "https://www.lequipe.fr",
		FFF:              "https://fff.fr",
	}
}

func newAdapter(name string, logger *logging.Logger) *Adapter {
	if logger == nil {
		logger = logging.Default()
	}
	return &Adapter{name: name, logger: logger.With("component", "scraper")}
}

// NewLaLiga: FutbolFantasy then Resultados-Futbol for lineups; FutbolFantasy,
// Resultados-Futbol, the RFEF designations and BeSoccer for the referee.
func NewLaLiga(pages Pages, ep Endpoints, logger *logging.Logger) *Adapter {
	ff := futbolFantasy{pages: pages, base: ep.FutbolFantasy}
	rf := resultadosFutbol{pages: pages, base: ep.ResultadosFutbol, competition: "primera"}
	rfef := designations{pages: pages, id: "rfef.es", urls: []string{ep.RFEF + "/noticias/arbitros/designaciones"}, gap: 80, tail: 200}
	bs := beSoccer{pages: pages, base: ep.BeSoccer}

	a := newAdapter("laliga-web", logger)
	a.lineups = []step[extraction.Lineup]{
		{source: futbolFantasyID, run: ff.lineup},
		{source: resultadosFutbolID, run: rf.lineup},
	}
	a.referees = []step[extraction.Referee]{
		{source: futbolFantasyID, run: ff.referee},
		{source: resultadosFutbolID, run: rf.referee},
		{source: rfef.id, run: rfef.referee},
		{source: beSoccerID, run: bs.referee},
	}
	return a
}

// NewPremierLeague: the PremierInjuries table for lineups and BBC Sport for
// the referee.
func NewPremierLeague(pages Pages, ep Endpoints, logger *logging.Logger) *Adapter {
	pi := premierInjuries{pages: pages, base: ep.PremierInjuries}
	bbc := bbcSport{pages: pages, base: ep.BBC}

	a := newAdapter("premier-web", logger)
	a.lineups = []step[extraction.Lineup]{{source: premierInjuriesID, run: pi.lineup}}
	a.referees = []step[extraction.Referee]{{source: bbcSportID, run: bbc.referee}}
	return a
}

// NewBundesliga: Kicker lineups; DFB designations, Resultados-Futbol and
// Kicker for the referee.
func NewBundesliga(pages Pages, ep Endpoints, logger *logging.Logger) *Adapter {
	kicker := matchCards{
		pages:    pages,
		id:       kickerID,
		url:      ep.Kicker + "/bundesliga/aufstellungen",
		cardTags: "div, article",
		card:     regexp.MustCompile(`(?i)match|spiel|aufst`),
		team:     regexp.MustCompile(`(?i)team|mannschaft`),
		player:   regexp.MustCompile(`(?i)player|spieler`),
	}
	dfb := designations{
		pages:      pages,
		id:         "dfb.de",
		urls:       []string{ep.DFB + "/schiedsrichter/ansetzungen/", ep.DFBDataCenter + "/schiedsrichter-ansetzungen"},
		gap:        100,
		tail:       300,
		javaScript: true,
	}
	rf := resultadosFutbol{pages: pages, base: ep.ResultadosFutbol, competition: "bundesliga"}
	kr := kickerReferee{pages: pages, base: ep.Kicker}

	a := newAdapter("bundesliga-web", logger)
	a.lineups = []step[extraction.Lineup]{{source: kickerID, run: kicker.lineup}}
	a.referees = []step[extraction.Referee]{
		{source: dfb.id, run: dfb.referee},
		{source: resultadosFutbolID, run: rf.referee},
		{source: kickerID, run: kr.referee},
	}
	return a
}

// NewSerieA: Fantacalcio probable lineups and the AIA CAN designations.
func NewSerieA(pages Pages, ep Endpoints, logger *logging.Logger) *Adapter {
	fc := matchCards{
		pages:    pages,
		id:       "fantacalcio.it",
		url:      ep.Fantacalcio + "/probabili-formazioni-serie-a",
		cardTags: "div, article",
		card:     regexp.MustCompile(`(?i)match|partita|formaz`),
		team:     regexp.MustCompile(`(?i)team|squadra`),
		player:   regexp.MustCompile(`(?i)player|giocator`),
	}
	aia := designations{pages: pages, id: "aia-figc.it", urls: []string{ep.AIA + "/designazioni/cana/"}, gap: 100, tail: 300}

	a := newAdapter("seriea-web", logger)
	a.lineups = []step[extraction.Lineup]{{source: fc.id, run: fc.lineup}}
	a.referees = []step[extraction.Referee]{{source: aia.id, run: aia.referee}}
	return a
}

// NewLigue1: L'Equipe compositions probables and the FFF designations.
func NewLigue1(pages Pages, ep Endpoints, logger *logging.Logger) *Adapter {
	lq := matchCards{
		pages:    pages,
		id:       "lequipe.fr",
		url:      ep.LEquipe + "/Football/Actualite/Compositions-probables-de-la-journee-de-ligue-1/1",
		cardTags: "div, section",
		card:     regexp.MustCompile(`(?i)match|rencontr|compo`),
		team:     regexp.MustCompile(`(?i)team|equipe`),
		player:   regexp.MustCompile(`(?i)player|joueur`),
	}
	fff := designations{pages: pages, id: "fff.fr", urls: []string{ep.FFF + "/arbitrage/designations/"}, gap: 100, tail: 300}

	a := newAdapter("ligue1-web", logger)
	a.lineups = []step[extraction.Lineup]{{source: lq.id, run: lq.lineup}}
	a.referees = []step[extraction.Referee]{{source: fff.id, run: fff.referee}}
	return a
}

// NewGeneric has no web sources: lineups report an unsupported league and
// referees defer to the international fallback pool.
func NewGeneric(logger *logging.Logger) *Adapter {
	return newAdapter("generic-web", logger)
}

// ForLeague builds the web adapter for l.
func ForLeague(l league.League, pages Pages, ep Endpoints, logger *logging.Logger) *Adapter {
	switch l {
	case league.LaLiga:
		return NewLaLiga(pages, ep, logger)
	case league.PremierLeague:
		return NewPremierLeague(pages, ep, logger)
	case league.Bundesliga:
		return NewBundesliga(pages, ep, logger)
	case league.SerieA:
		return NewSerieA(pages, ep, logger)
	case league.Ligue1:
		return NewLigue1(pages, ep, logger)
	default:
		return NewGeneric(logger)
	}
}
