package statsapi

import (
	"context"
	"strconv"
)

const boxscoreFields = "gameData,teams,teamName,shortName,teamStats,batting,atBats,runs,hits,rbi,strikeOuts,baseOnBalls,leftOnBase," +
	"pitching,inningsPitched,earnedRuns,homeRuns,players,boxscoreName,liveData,boxscore,teams,players,id,fullName," +
	"allPositions,abbreviation,seasonStats,batting,avg,ops,era,battingOrder,info,title,fieldList,note,label,value"

// Boxscore is the box score of a game, split by side.
type Boxscore struct {
	Away BoxscoreSide `json:"away" yaml:"away"`
	Home BoxscoreSide `json:"home" yaml:"home"`
	// Info holds game-level lines: umpires, weather, attendance and so on.
	Info []InfoLine `json:"info" yaml:"info"`
}

type BoxscoreSide struct {
	Team           string        `json:"team" yaml:"team"`
	Batters        []BatterLine  `json:"batters" yaml:"batters"`
	BattingTotals  BattingStats  `json:"batting_totals" yaml:"batting_totals"`
	Pitchers       []PitcherLine `json:"pitchers" yaml:"pitchers"`
	PitchingTotals PitchingStats `json:"pitching_totals" yaml:"pitching_totals"`
	// Notes explain substitutions, e.g. "a-Popped out for Velasquez in the 6th.".
	Notes []string `json:"notes" yaml:"notes"`
	// Info holds the BATTING and FIELDING sections.
	Info []InfoSection `json:"info" yaml:"info"`
}

type BattingStats struct {
	AB  int `json:"ab" yaml:"ab"`
	R   int `json:"r" yaml:"r"`
	H   int `json:"h" yaml:"h"`
	RBI int `json:"rbi" yaml:"rbi"`
	BB  int `json:"bb" yaml:"bb"`
	K   int `json:"k" yaml:"k"`
	LOB int `json:"lob" yaml:"lob"`
}

type PitchingStats struct {
	IP string `json:"ip" yaml:"ip"`
	H  int    `json:"h" yaml:"h"`
	R  int    `json:"r" yaml:"r"`
	ER int    `json:"er" yaml:"er"`
	BB int    `json:"bb" yaml:"bb"`
	K  int    `json:"k" yaml:"k"`
	HR int    `json:"hr" yaml:"hr"`
}

// BatterLine is one batter. Order is the lineup slot; Substitute marks
// players who entered the game in that slot.
type BatterLine struct {
	ID           int    `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Position     string `json:"position" yaml:"position"`
	Order        int    `json:"order" yaml:"order"`
	Substitute   bool   `json:"substitute" yaml:"substitute"`
	Note         string `json:"note,omitempty" yaml:"note,omitempty"`
	BattingStats `yaml:",inline"`
	AVG          string `json:"avg" yaml:"avg"`
	OPS          string `json:"ops" yaml:"ops"`
}

type PitcherLine struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	// Note is the decision, e.g. "(W, 1-0)".
	Note          string `json:"note,omitempty" yaml:"note,omitempty"`
	PitchingStats `yaml:",inline"`
	ERA           string `json:"era" yaml:"era"`
}

type InfoSection struct {
	Title  string     `json:"title" yaml:"title"`
	Fields []InfoLine `json:"fields" yaml:"fields"`
}

type InfoLine struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

type liveFeedBoxscore struct {
	GameData struct {
		Teams struct {
			Away struct {
				TeamName string `json:"teamName"`
			} `json:"away"`
			Home struct {
				TeamName string `json:"teamName"`
			} `json:"home"`
		} `json:"teams"`
		Players map[string]struct {
			BoxscoreName string `json:"boxscoreName"`
		} `json:"players"`
	} `json:"gameData"`
	LiveData struct {
		Boxscore struct {
			Teams struct {
				Away boxscoreTeam `json:"away"`
				Home boxscoreTeam `json:"home"`
			} `json:"teams"`
			Info []labelValue `json:"info"`
		} `json:"boxscore"`
	} `json:"liveData"`
}

type boxscoreTeam struct {
	TeamStats struct {
		Batting  battingBlock  `json:"batting"`
		Pitching pitchingBlock `json:"pitching"`
	} `json:"teamStats"`
	Players  map[string]boxscorePlayer `json:"players"`
	Batters  []int                     `json:"batters"`
	Pitchers []int                     `json:"pitchers"`
	Note     []labelValue              `json:"note"`
	Info     []struct {
		Title     string       `json:"title"`
		FieldList []labelValue `json:"fieldList"`
	} `json:"info"`
}

type boxscorePlayer struct {
	Person   personRef `json:"person"`
	Position struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"position"`
	BattingOrder Text `json:"battingOrder"`
	Stats        struct {
		Batting  battingBlock  `json:"batting"`
		Pitching pitchingBlock `json:"pitching"`
	} `json:"stats"`
	SeasonStats struct {
		Batting struct {
			AVG string `json:"avg"`
			OPS string `json:"ops"`
		} `json:"batting"`
		Pitching struct {
			ERA string `json:"era"`
		} `json:"pitching"`
	} `json:"seasonStats"`
}

type battingBlock struct {
	Note        string `json:"note"`
	AtBats      int    `json:"atBats"`
	Runs        int    `json:"runs"`
	Hits        int    `json:"hits"`
	RBI         int    `json:"rbi"`
	BaseOnBalls int    `json:"baseOnBalls"`
	StrikeOuts  int    `json:"strikeOuts"`
	LeftOnBase  int    `json:"leftOnBase"`
}

func (b battingBlock) stats() BattingStats {
	return BattingStats{AB: b.AtBats, R: b.Runs, H: b.Hits, RBI: b.RBI, BB: b.BaseOnBalls, K: b.StrikeOuts, LOB: b.LeftOnBase}
}

type pitchingBlock struct {
	Note           string `json:"note"`
	InningsPitched Text   `json:"inningsPitched"`
	Hits           int    `json:"hits"`
	Runs           int    `json:"runs"`
	EarnedRuns     int    `json:"earnedRuns"`
	BaseOnBalls    int    `json:"baseOnBalls"`
	StrikeOuts     int    `json:"strikeOuts"`
	HomeRuns       int    `json:"homeRuns"`
}

func (p pitchingBlock) stats() PitchingStats {
	return PitchingStats{IP: p.InningsPitched.String(), H: p.Hits, R: p.Runs, ER: p.EarnedRuns, BB: p.BaseOnBalls, K: p.StrikeOuts, HR: p.HomeRuns}
}

// Boxscore fetches the box score of a game from the live feed, which carries
// the display names used in printed box scores. A non-empty timecode returns
// the game as it stood at that time.
func (c *Client) Boxscore(ctx context.Context, gamePk int, timecode string) (*Boxscore, error) {
	params := Params{{Name: "gamePk", Value: gamePk}, {Name: "fields", Value: boxscoreFields}}
	if timecode != "" {
		params.Set("timecode", timecode)
	}

	var feed liveFeedBoxscore
	if err := c.GetInto(ctx, "game", params, &feed); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(feed.GameData.Players))
	for id, p := range feed.GameData.Players {
		names[id] = p.BoxscoreName
	}
	teams := feed.LiveData.Boxscore.Teams
	out := &Boxscore{
		Away: buildSide(feed.GameData.Teams.Away.TeamName, teams.Away, names),
		Home: buildSide(feed.GameData.Teams.Home.TeamName, teams.Home, names),
	}
	for _, line := range feed.LiveData.Boxscore.Info {
		out.Info = append(out.Info, InfoLine(line))
	}
	return out, nil
}

func buildSide(team string, t boxscoreTeam, names map[string]string) BoxscoreSide {
	side := BoxscoreSide{
		Team:           team,
		BattingTotals:  t.TeamStats.Batting.stats(),
		PitchingTotals: t.TeamStats.Pitching.stats(),
	}

	for _, id := range t.Batters {
		key := "ID" + strconv.Itoa(id)
		p := t.Players[key]
		order := p.BattingOrder.String()
		if order == "" {
			continue
		}
		slot, _ := strconv.Atoi(order[:1])
		side.Batters = append(side.Batters, BatterLine{
			ID:           id,
			Name:         names[key],
			Position:     p.Position.Abbreviation,
			Order:        slot,
			Substitute:   order[len(order)-1] != '0',
			Note:         p.Stats.Batting.Note,
			BattingStats: p.Stats.Batting.stats(),
			AVG:          p.SeasonStats.Batting.AVG,
			OPS:          p.SeasonStats.Batting.OPS,
		})
	}

	for _, id := range t.Pitchers {
		key := "ID" + strconv.Itoa(id)
		p := t.Players[key]
		side.Pitchers = append(side.Pitchers, PitcherLine{
			ID:            id,
			Name:          names[key],
			Note:          p.Stats.Pitching.Note,
			PitchingStats: p.Stats.Pitching.stats(),
			ERA:           p.SeasonStats.Pitching.ERA,
		})
	}

	for _, n := range t.Note {
		side.Notes = append(side.Notes, n.Label+"-"+n.Value)
	}
	for _, section := range t.Info {
		if section.Title != "BATTING" && section.Title != "FIELDING" {
			continue
		}
		s := InfoSection{Title: section.Title}
		for _, f := range section.FieldList {
			s.Fields = append(s.Fields, InfoLine(f))
		}
		side.Info = append(side.Info, s)
	}
	return side
}
