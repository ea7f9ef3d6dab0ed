package catalog

// TeamInfo is one league franchise. The list is static for a season; it backs
// the team directory endpoint and the market event-title parser.
type TeamInfo struct {
	Name    string `json:"teamName"`
	Tricode string `json:"teamTricode"`
}

var leagueTeams = []TeamInfo{
	{"76ers", "PHI"}, {"Bucks", "MIL"}, {"Bulls", "CHI"}, {"Cavaliers", "CLE"},
	{"Celtics", "BOS"}, {"Clippers", "LAC"}, {"Grizzlies", "MEM"}, {"Hawks", "ATL"},
	{"Heat", "MIA"}, {"Hornets", "CHA"}, {"Jazz", "UTA"}, {"Kings", "SAC"},
	{"Knicks", "NYK"}, {"Lakers", "LAL"}, {"Magic", "ORL"}, {"Mavericks", "DAL"},
	{"Nets", "BKN"}, {"Nuggets", "DEN"}, {"Pacers", "IND"}, {"Pelicans", "NOP"},
	{"Pistons", "DET"}, {"Raptors", "TOR"}, {"Rockets", "HOU"}, {"Spurs", "SAS"},
	{"Suns", "PHX"}, {"Thunder", "OKC"}, {"Timberwolves", "MIN"}, {"Trail Blazers", "POR"},
	{"Warriors", "GSW"}, {"Wizards", "WAS"},
}

// Teams returns the league's team directory.
func Teams() []TeamInfo {
	teams := make([]TeamInfo, len(leagueTeams))
	copy(teams, leagueTeams)
	return teams
}
