package league

// League is the closed set of competitions the resolution pipeline knows how
// to source. Anything else is routed to Generic.
type League string

const (
	LaLiga        League = "LALIGA"
	PremierLeague League = "PREMIER_LEAGUE"
	SerieA        League = "SERIE_A"
	Bundesliga    League = "BUNDESLIGA"
	Ligue1        League = "LIGUE_1"
	Generic       League = "GENERIC"
)

var displayNames = map[League]string{
	LaLiga:        "La Liga",
	PremierLeague: "Premier League",
	SerieA:        "Serie A",
	Bundesliga:    "Bundesliga",
	Ligue1:        "Ligue 1",
	Generic:       "Generic",
}

// All returns every league value, Generic last.
func All() []League {
	return []League{LaLiga, PremierLeague, SerieA, Bundesliga, Ligue1, Generic}
}

func (l League) Valid() bool {
	_, ok := displayNames[l]
	return ok
}

func (l League) String() string {
	return string(l)
}

// DisplayName returns the human label used in source strings.
func (l League) DisplayName() string {
	if name, ok := displayNames[l]; ok {
		return name
	}
	return displayNames[Generic]
}
