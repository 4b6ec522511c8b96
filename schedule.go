package statsapi

import (
	"context"
	"strconv"
)

// ScheduleOptions selects games. A single StartDate or EndDate is treated as
// Date. Dates are MM/DD/YYYY or YYYY-MM-DD.
type ScheduleOptions struct {
	Date       string `schema:"date,omitempty"`
	StartDate  string `schema:"startDate,omitempty"`
	EndDate    string `schema:"endDate,omitempty"`
	TeamID     int    `schema:"teamId,omitempty" validate:"gte=0"`
	OpponentID int    `schema:"opponentId,omitempty" validate:"gte=0"`
	// SportID defaults to 1 (MLB).
	SportID int `schema:"sportId,omitempty" validate:"gte=0"`
}

// Game is one scheduled game flattened for display. Scores are set for games
// in progress or final; decisions only for final games with a winner.
type Game struct {
	ID             int    `json:"game_id" yaml:"game_id"`
	DateTime       string `json:"game_datetime" yaml:"game_datetime"`
	Date           string `json:"game_date" yaml:"game_date"`
	Type           string `json:"game_type" yaml:"game_type"`
	Status         string `json:"status" yaml:"status"`
	Away           string `json:"away" yaml:"away"`
	Home           string `json:"home" yaml:"home"`
	AwayID         int    `json:"away_id" yaml:"away_id"`
	HomeID         int    `json:"home_id" yaml:"home_id"`
	Doubleheader   string `json:"doubleheader" yaml:"doubleheader"`
	GameNum        int    `json:"game_num" yaml:"game_num"`
	AwayScore      int    `json:"away_score" yaml:"away_score"`
	HomeScore      int    `json:"home_score" yaml:"home_score"`
	WinningTeam    string `json:"winning_team,omitempty" yaml:"winning_team,omitempty"`
	LosingTeam     string `json:"losing_team,omitempty" yaml:"losing_team,omitempty"`
	WinningPitcher string `json:"winning_pitcher,omitempty" yaml:"winning_pitcher,omitempty"`
	LosingPitcher  string `json:"losing_pitcher,omitempty" yaml:"losing_pitcher,omitempty"`
	SavePitcher    string `json:"save_pitcher,omitempty" yaml:"save_pitcher,omitempty"`
	Summary        string `json:"summary" yaml:"summary"`
}

type scheduleResponse struct {
	TotalItems int `json:"totalItems"`
	Dates      []struct {
		Date  string         `json:"date"`
		Games []scheduleGame `json:"games"`
	} `json:"dates"`
}

type scheduleGame struct {
	GamePk   int    `json:"gamePk"`
	GameDate string `json:"gameDate"`
	GameType string `json:"gameType"`
	Status   struct {
		DetailedState string `json:"detailedState"`
	} `json:"status"`
	Teams struct {
		Away scheduleSide `json:"away"`
		Home scheduleSide `json:"home"`
	} `json:"teams"`
	DoubleHeader string `json:"doubleHeader"`
	GameNumber   int    `json:"gameNumber"`
	IsTie        bool   `json:"isTie"`
	Decisions    struct {
		Winner personRef `json:"winner"`
		Loser  personRef `json:"loser"`
		Save   personRef `json:"save"`
	} `json:"decisions"`
}

type scheduleSide struct {
	Team     teamRef `json:"team"`
	Score    int     `json:"score"`
	IsWinner bool    `json:"isWinner"`
}

// Schedule lists the games for a date or date range, optionally limited to a
// team and opponent.
func (c *Client) Schedule(ctx context.Context, opts ScheduleOptions) ([]Game, error) {
	if opts.EndDate != "" && opts.StartDate == "" {
		opts.Date, opts.EndDate = opts.EndDate, ""
	}
	if opts.StartDate != "" && opts.EndDate == "" {
		opts.Date, opts.StartDate = opts.StartDate, ""
	}
	if opts.Date != "" {
		opts.StartDate, opts.EndDate = "", ""
	}
	if opts.SportID == 0 {
		opts.SportID = 1
	}

	params, err := encodeOptions(opts)
	if err != nil {
		return nil, err
	}
	params.Set("hydrate", "decisions")

	var resp scheduleResponse
	if err := c.GetInto(ctx, "schedule", params, &resp); err != nil {
		return nil, err
	}

	games := []Game{}
	if resp.TotalItems == 0 {
		return games, nil
	}
	for _, d := range resp.Dates {
		for _, g := range d.Games {
			games = append(games, flattenGame(d.Date, g))
		}
	}
	return games, nil
}

func flattenGame(date string, g scheduleGame) Game {
	away, home := g.Teams.Away, g.Teams.Home
	out := Game{
		ID:           g.GamePk,
		DateTime:     g.GameDate,
		Date:         date,
		Type:         g.GameType,
		Status:       g.Status.DetailedState,
		Away:         away.Team.Name,
		Home:         home.Team.Name,
		AwayID:       away.Team.ID,
		HomeID:       home.Team.ID,
		Doubleheader: g.DoubleHeader,
		GameNum:      g.GameNumber,
		AwayScore:    away.Score,
		HomeScore:    home.Score,
	}

	if out.Status != "Final" {
		out.Summary = date + " - " + away.Team.Name + " @ " + home.Team.Name + " (" + out.Status + ")"
		return out
	}

	switch {
	case g.IsTie:
		out.WinningTeam, out.LosingTeam = "Tie", "Tie"
	case away.IsWinner:
		out.WinningTeam, out.LosingTeam = away.Team.Name, home.Team.Name
	default:
		out.WinningTeam, out.LosingTeam = home.Team.Name, away.Team.Name
	}
	if !g.IsTie {
		out.WinningPitcher = g.Decisions.Winner.FullName
		out.LosingPitcher = g.Decisions.Loser.FullName
		out.SavePitcher = g.Decisions.Save.FullName
	}
	out.Summary = date + " - " + away.Team.Name + " (" + strconv.Itoa(away.Score) + ") @ " +
		home.Team.Name + " (" + strconv.Itoa(home.Score) + ")"
	return out
}
