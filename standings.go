package statsapi

import (
	"context"
	"strconv"
)

const standingsFields = "records,standingsType,teamRecords,team,name,division,id,nameShort,abbreviation,divisionRank,gamesBack," +
	"wildCardRank,wildCardGamesBack,wildCardEliminationNumber,divisionGamesBack,clinched,eliminationNumber,winningPercentage,type,wins,losses"

// StandingsOptions selects standings. Date is MM/DD/YYYY.
type StandingsOptions struct {
	// LeagueID defaults to "103,104" (American and National League).
	LeagueID string `schema:"leagueId,omitempty"`
	// Season defaults to the year of Date, or the current year.
	Season string `schema:"season,omitempty"`
	// StandingsTypes defaults to regularSeason.
	StandingsTypes string `schema:"standingsTypes,omitempty"`
	Date           string `schema:"date,omitempty" validate:"omitempty,min=4"`
}

// DivisionStandings is the table of one division.
type DivisionStandings struct {
	ID    int             `json:"id" yaml:"id"`
	Name  string          `json:"name" yaml:"name"`
	Teams []StandingsTeam `json:"teams" yaml:"teams"`
}

// StandingsTeam is one row. Wild card columns are "-" when the API omits them.
type StandingsTeam struct {
	Name      string `json:"name" yaml:"name"`
	DivRank   string `json:"div_rank" yaml:"div_rank"`
	W         int    `json:"w" yaml:"w"`
	L         int    `json:"l" yaml:"l"`
	GB        string `json:"gb" yaml:"gb"`
	WCRank    string `json:"wc_rank" yaml:"wc_rank"`
	WCGB      string `json:"wc_gb" yaml:"wc_gb"`
	WCElimNum string `json:"wc_elim_num" yaml:"wc_elim_num"`
	ElimNum   string `json:"elim_num" yaml:"elim_num"`
}

type standingsResponse struct {
	Records []struct {
		TeamRecords []struct {
			Team struct {
				Name     string  `json:"name"`
				Division teamRef `json:"division"`
			} `json:"team"`
			DivisionRank              Text  `json:"divisionRank"`
			Wins                      int   `json:"wins"`
			Losses                    int   `json:"losses"`
			GamesBack                 Text  `json:"gamesBack"`
			WildCardRank              *Text `json:"wildCardRank"`
			WildCardGamesBack         *Text `json:"wildCardGamesBack"`
			WildCardEliminationNumber *Text `json:"wildCardEliminationNumber"`
			EliminationNumber         Text  `json:"eliminationNumber"`
		} `json:"teamRecords"`
	} `json:"records"`
}

// Standings returns division standings with wild card columns. Divisions
// keep the order in which the response first mentions them.
func (c *Client) Standings(ctx context.Context, opts StandingsOptions) ([]DivisionStandings, error) {
	if opts.LeagueID == "" {
		opts.LeagueID = "103,104"
	}
	if opts.Season == "" {
		if len(opts.Date) >= 4 {
			opts.Season = opts.Date[len(opts.Date)-4:]
		} else {
			opts.Season = strconv.Itoa(c.now().Year())
		}
	}
	if opts.StandingsTypes == "" {
		opts.StandingsTypes = "regularSeason"
	}

	params, err := encodeOptions(opts)
	if err != nil {
		return nil, err
	}
	params.Set("hydrate", "team(division)")
	params.Set("fields", standingsFields)

	var resp standingsResponse
	if err := c.GetInto(ctx, "standings", params, &resp); err != nil {
		return nil, err
	}

	var out []DivisionStandings
	index := make(map[int]int)
	for _, rec := range resp.Records {
		for _, tr := range rec.TeamRecords {
			div := tr.Team.Division
			i, ok := index[div.ID]
			if !ok {
				i = len(out)
				index[div.ID] = i
				out = append(out, DivisionStandings{ID: div.ID, Name: div.Name})
			}
			out[i].Teams = append(out[i].Teams, StandingsTeam{
				Name:      tr.Team.Name,
				DivRank:   tr.DivisionRank.String(),
				W:         tr.Wins,
				L:         tr.Losses,
				GB:        tr.GamesBack.String(),
				WCRank:    orDash(tr.WildCardRank),
				WCGB:      orDash(tr.WildCardGamesBack),
				WCElimNum: orDash(tr.WildCardEliminationNumber),
				ElimNum:   tr.EliminationNumber.String(),
			})
		}
	}
	return out, nil
}

func orDash(t *Text) string {
	if t == nil {
		return "-"
	}
	return t.String()
}
