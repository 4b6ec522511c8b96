package statsapi

import (
	"context"
	"strconv"
	"strings"
)

const linescoreFields = "gameData,teams,teamName,shortName,status,abstractGameState,liveData,linescore,innings,num,home,away,runs,hits,errors"

// Linescore is the inning-by-inning score of a game. Innings always holds at
// least nine labels; unplayed innings have empty run cells.
type Linescore struct {
	State   string        `json:"state" yaml:"state"`
	Innings []string      `json:"innings" yaml:"innings"`
	Away    LinescoreSide `json:"away" yaml:"away"`
	Home    LinescoreSide `json:"home" yaml:"home"`
}

type LinescoreSide struct {
	Team string   `json:"team" yaml:"team"`
	Runs []string `json:"runs_by_inning" yaml:"runs_by_inning"`
	R    int      `json:"r" yaml:"r"`
	H    int      `json:"h" yaml:"h"`
	E    int      `json:"e" yaml:"e"`
}

type liveFeedLinescore struct {
	GameData struct {
		Status struct {
			AbstractGameState string `json:"abstractGameState"`
		} `json:"status"`
		Teams struct {
			Away struct {
				TeamName string `json:"teamName"`
			} `json:"away"`
			Home struct {
				TeamName string `json:"teamName"`
			} `json:"home"`
		} `json:"teams"`
	} `json:"gameData"`
	LiveData struct {
		Linescore struct {
			Innings []struct {
				Num  int             `json:"num"`
				Away lineInningTotal `json:"away"`
				Home lineInningTotal `json:"home"`
			} `json:"innings"`
			Teams struct {
				Away lineInningTotal `json:"away"`
				Home lineInningTotal `json:"home"`
			} `json:"teams"`
		} `json:"linescore"`
	} `json:"liveData"`
}

type lineInningTotal struct {
	Runs   int `json:"runs"`
	Hits   int `json:"hits"`
	Errors int `json:"errors"`
}

// Linescore fetches the linescore of a game from the live feed. A non-empty
// timecode (YYYYMMDD_HHMMSS, UTC) returns the game as it stood at that time.
func (c *Client) Linescore(ctx context.Context, gamePk int, timecode string) (*Linescore, error) {
	params := Params{{Name: "gamePk", Value: gamePk}, {Name: "fields", Value: linescoreFields}}
	if timecode != "" {
		params.Set("timecode", timecode)
	}

	var feed liveFeedLinescore
	if err := c.GetInto(ctx, "game", params, &feed); err != nil {
		return nil, err
	}

	ls := feed.LiveData.Linescore
	out := &Linescore{
		State: feed.GameData.Status.AbstractGameState,
		Away: LinescoreSide{
			Team: feed.GameData.Teams.Away.TeamName,
			R:    ls.Teams.Away.Runs, H: ls.Teams.Away.Hits, E: ls.Teams.Away.Errors,
		},
		Home: LinescoreSide{
			Team: feed.GameData.Teams.Home.TeamName,
			R:    ls.Teams.Home.Runs, H: ls.Teams.Home.Hits, E: ls.Teams.Home.Errors,
		},
	}
	for _, inning := range ls.Innings {
		out.Innings = append(out.Innings, strconv.Itoa(inning.Num))
		out.Away.Runs = append(out.Away.Runs, strconv.Itoa(inning.Away.Runs))
		out.Home.Runs = append(out.Home.Runs, strconv.Itoa(inning.Home.Runs))
	}
	for i := len(ls.Innings) + 1; i <= 9; i++ {
		out.Innings = append(out.Innings, strconv.Itoa(i))
		out.Away.Runs = append(out.Away.Runs, "")
		out.Home.Runs = append(out.Home.Runs, "")
	}
	return out, nil
}

// String renders the linescore as a fixed-width table:
//
//	Final    1 2 3 4 5 6 7 8 9  R   H   E
//	Phillies 1 0 0 0 0 0 0 3 2  6   10  0
func (l *Linescore) String() string {
	width := len([]rune(l.State))
	for _, name := range []string{l.Away.Team, l.Home.Team} {
		if n := len([]rune(name)); n > width {
			width = n
		}
	}
	width++

	var b strings.Builder
	row := func(name string, cells []string, totals [3]string) {
		b.WriteString(padRight(name, width))
		for _, cell := range cells {
			b.WriteString(center(cell, 2))
		}
		for _, t := range totals {
			b.WriteString(center(t, 4))
		}
	}
	row(l.State, l.Innings, [3]string{"R", "H", "E"})
	b.WriteByte('\n')
	row(l.Away.Team, l.Away.Runs, sideTotals(l.Away))
	b.WriteByte('\n')
	row(l.Home.Team, l.Home.Runs, sideTotals(l.Home))
	return b.String()
}

func sideTotals(s LinescoreSide) [3]string {
	return [3]string{strconv.Itoa(s.R), strconv.Itoa(s.H), strconv.Itoa(s.E)}
}
