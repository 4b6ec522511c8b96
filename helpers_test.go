package statsapi

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

const scheduleJSON = `{
  "totalItems": 3,
  "dates": [{
    "date": "2018-07-09",
    "games": [
      {
        "gamePk": 530769, "gameDate": "2018-07-09T17:10:00Z", "gameType": "R",
        "status": {"detailedState": "Final"},
        "teams": {
          "away": {"team": {"id": 143, "name": "Philadelphia Phillies"}, "score": 3, "isWinner": false},
          "home": {"team": {"id": 121, "name": "New York Mets"}, "score": 4, "isWinner": true}
        },
        "doubleHeader": "S", "gameNumber": 1,
        "decisions": {"winner": {"id": 1, "fullName": "Tim Peterson"}, "loser": {"id": 2, "fullName": "Victor Arano"}}
      },
      {
        "gamePk": 530770, "gameDate": "2018-07-09T23:10:00Z", "gameType": "R",
        "status": {"detailedState": "Final"}, "isTie": true,
        "teams": {
          "away": {"team": {"id": 143, "name": "Philadelphia Phillies"}, "score": 2},
          "home": {"team": {"id": 121, "name": "New York Mets"}, "score": 2}
        },
        "doubleHeader": "S", "gameNumber": 2
      },
      {
        "gamePk": 530771, "gameDate": "2018-07-10T23:10:00Z", "gameType": "R",
        "status": {"detailedState": "Scheduled"},
        "teams": {
          "away": {"team": {"id": 143, "name": "Philadelphia Phillies"}},
          "home": {"team": {"id": 121, "name": "New York Mets"}}
        },
        "doubleHeader": "N", "gameNumber": 1
      }
    ]
  }]
}`

func TestSchedule(t *testing.T) {
	t.Parallel()
	f, c := newFakeAPI(t, map[string]string{"/api/v1/schedule": scheduleJSON})

	games, err := c.Schedule(context.Background(), ScheduleOptions{StartDate: "07/01/2018", EndDate: "07/31/2018", TeamID: 143, OpponentID: 121})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("games = %d", len(games))
	}

	q := f.query("/api/v1/schedule")
	for name, want := range map[string]string{
		"startDate": "07/01/2018", "endDate": "07/31/2018", "teamId": "143",
		"opponentId": "121", "sportId": "1", "hydrate": "decisions",
	} {
		if got := q.Get(name); got != want {
			t.Errorf("query %s = %q, want %q", name, got, want)
		}
	}
	if q.Has("date") {
		t.Errorf("date should not be sent with a range")
	}

	final := games[0]
	if final.WinningTeam != "New York Mets" || final.LosingTeam != "Philadelphia Phillies" {
		t.Errorf("winner/loser = %q/%q", final.WinningTeam, final.LosingTeam)
	}
	if final.WinningPitcher != "Tim Peterson" || final.LosingPitcher != "Victor Arano" || final.SavePitcher != "" {
		t.Errorf("decisions = %+v", final)
	}
	if want := "2018-07-09 - Philadelphia Phillies (3) @ New York Mets (4)"; final.Summary != want {
		t.Errorf("summary = %q", final.Summary)
	}

	tie := games[1]
	if tie.WinningTeam != "Tie" || tie.LosingTeam != "Tie" || tie.WinningPitcher != "" {
		t.Errorf("tie = %+v", tie)
	}

	if want := "2018-07-09 - Philadelphia Phillies @ New York Mets (Scheduled)"; games[2].Summary != want {
		t.Errorf("scheduled summary = %q", games[2].Summary)
	}
}

func TestSchedule_SingleBoundBecomesDate(t *testing.T) {
	t.Parallel()
	f, c := newFakeAPI(t, map[string]string{"/api/v1/schedule": `{"totalItems":0,"dates":[]}`})

	games, err := c.Schedule(context.Background(), ScheduleOptions{EndDate: "07/31/2018"})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if games == nil || len(games) != 0 {
		t.Fatalf("expected empty, non-nil slice, got %#v", games)
	}
	q := f.query("/api/v1/schedule")
	if q.Get("date") != "07/31/2018" || q.Has("endDate") || q.Has("startDate") {
		t.Fatalf("query = %v", q)
	}
}

func TestLinescore(t *testing.T) {
	t.Parallel()
	f, c := newFakeAPI(t, map[string]string{"/api/v1.1/game/565997/feed/live": `{
	  "gameData": {"status": {"abstractGameState": "Final"},
	    "teams": {"away": {"teamName": "Phillies"}, "home": {"teamName": "Mets"}}},
	  "liveData": {"linescore": {
	    "innings": [
	      {"num": 1, "away": {"runs": 1}, "home": {"runs": 0}},
	      {"num": 2, "away": {"runs": 0}, "home": {"runs": 0}}
	    ],
	    "teams": {"away": {"runs": 6, "hits": 10, "errors": 0}, "home": {"runs": 0, "hits": 6, "errors": 3}}
	  }}
	}`})

	ls, err := c.Linescore(context.Background(), 565997, "20190425_012240")
	if err != nil {
		t.Fatalf("linescore: %v", err)
	}
	if got := f.query("/api/v1.1/game/565997/feed/live").Get("timecode"); got != "20190425_012240" {
		t.Fatalf("timecode = %q", got)
	}
	if len(ls.Innings) != 9 || ls.Innings[8] != "9" {
		t.Fatalf("innings = %v", ls.Innings)
	}
	if ls.Away.Runs[0] != "1" || ls.Away.Runs[5] != "" || ls.Away.R != 6 || ls.Home.E != 3 {
		t.Fatalf("linescore = %+v", ls)
	}

	lines := strings.Split(ls.String(), "\n")
	if len(lines) != 3 {
		t.Fatalf("rendered lines = %d", len(lines))
	}
	if want := "Final    1 2 3 4 5 6 7 8 9  R   H   E  "; lines[0] != want {
		t.Errorf("header = %q, want %q", lines[0], want)
	}
	if want := "Phillies 1 0                6   10  0  "; lines[1] != want {
		t.Errorf("away = %q, want %q", lines[1], want)
	}
}

func TestBoxscore(t *testing.T) {
	t.Parallel()
	_, c := newFakeAPI(t, map[string]string{"/api/v1.1/game/565997/feed/live": `{
	  "gameData": {
	    "teams": {"away": {"teamName": "Phillies"}, "home": {"teamName": "Mets"}},
	    "players": {"ID1": {"boxscoreName": "McCutchen"}, "ID2": {"boxscoreName": "Williams, N"},
	                "ID3": {"boxscoreName": "Velasquez"}, "ID4": {"boxscoreName": "Bench"}}
	  },
	  "liveData": {"boxscore": {
	    "teams": {
	      "away": {
	        "teamStats": {"batting": {"atBats": 38, "runs": 6, "hits": 10, "rbi": 6, "baseOnBalls": 3, "strikeOuts": 10, "leftOnBase": 21},
	                      "pitching": {"inningsPitched": "9.0", "hits": 6, "runs": 0, "earnedRuns": 0, "baseOnBalls": 3, "strikeOuts": 9, "homeRuns": 0}},
	        "players": {
	          "ID1": {"person": {"id": 1}, "position": {"abbreviation": "LF"}, "battingOrder": "100",
	                  "stats": {"batting": {"atBats": 5, "hits": 1, "strikeOuts": 1, "leftOnBase": 3}},
	                  "seasonStats": {"batting": {"avg": ".250", "ops": ".830"}}},
	          "ID2": {"person": {"id": 2}, "position": {"abbreviation": "PH"}, "battingOrder": "801",
	                  "stats": {"batting": {"note": "a-", "atBats": 1}},
	                  "seasonStats": {"batting": {"avg": ".150", "ops": ".427"}}},
	          "ID3": {"person": {"id": 3}, "position": {"abbreviation": "P"},
	                  "stats": {"pitching": {"note": "(W, 1-0)", "inningsPitched": "5.0", "strikeOuts": 6}},
	                  "seasonStats": {"pitching": {"era": "1.99"}}},
	          "ID4": {"person": {"id": 4}, "position": {"abbreviation": "C"}}
	        },
	        "batters": [1, 2, 4],
	        "pitchers": [3],
	        "note": [{"label": "a", "value": "Popped out for Velasquez in the 6th."}],
	        "info": [
	          {"title": "BATTING", "fieldList": [{"label": "2B", "value": "Harper (7, Vargas)."}]},
	          {"title": "BASERUNNING", "fieldList": [{"label": "SB", "value": "Quinn."}]},
	          {"title": "FIELDING", "fieldList": [{"label": "DP", "value": "(Hernandez, C-Hoskins)."}]}
	        ]
	      },
	      "home": {"players": {}, "batters": [], "pitchers": [], "note": [], "info": []}
	    },
	    "info": [{"label": "Weather", "value": "66 degrees, Clear."}, {"label": "April 24, 2019"}]
	  }}
	}`})

	box, err := c.Boxscore(context.Background(), 565997, "")
	if err != nil {
		t.Fatalf("boxscore: %v", err)
	}
	away := box.Away
	if away.Team != "Phillies" || len(away.Batters) != 2 {
		t.Fatalf("away = %+v", away)
	}
	starter, sub := away.Batters[0], away.Batters[1]
	if starter.Name != "McCutchen" || starter.Order != 1 || starter.Substitute || starter.AB != 5 || starter.AVG != ".250" {
		t.Errorf("starter = %+v", starter)
	}
	if sub.Name != "Williams, N" || sub.Order != 8 || !sub.Substitute || sub.Note != "a-" {
		t.Errorf("substitute = %+v", sub)
	}
	if len(away.Pitchers) != 1 || away.Pitchers[0].Note != "(W, 1-0)" || away.Pitchers[0].IP != "5.0" || away.Pitchers[0].ERA != "1.99" {
		t.Errorf("pitchers = %+v", away.Pitchers)
	}
	if away.BattingTotals.LOB != 21 || away.PitchingTotals.IP != "9.0" {
		t.Errorf("totals = %+v / %+v", away.BattingTotals, away.PitchingTotals)
	}
	if !reflect.DeepEqual(away.Notes, []string{"a-Popped out for Velasquez in the 6th."}) {
		t.Errorf("notes = %v", away.Notes)
	}
	if len(away.Info) != 2 || away.Info[0].Title != "BATTING" || away.Info[1].Title != "FIELDING" {
		t.Errorf("info sections = %+v", away.Info)
	}
	if len(box.Info) != 2 || box.Info[1].Value != "" {
		t.Errorf("game info = %+v", box.Info)
	}
}

func TestStandings(t *testing.T) {
	t.Parallel()
	f, c := newFakeAPI(t, map[string]string{"/api/v1/standings": `{"records": [
	  {"teamRecords": [
	    {"team": {"name": "Chicago Cubs", "division": {"id": 205, "name": "National League Central"}},
	     "divisionRank": "1", "wins": 97, "losses": 63, "gamesBack": "-", "eliminationNumber": "-"},
	    {"team": {"name": "Milwaukee Brewers", "division": {"id": 205, "name": "National League Central"}},
	     "divisionRank": "2", "wins": 89, "losses": 72, "gamesBack": "8.5", "eliminationNumber": "E",
	     "wildCardRank": "1", "wildCardGamesBack": "-", "wildCardEliminationNumber": "-"}
	  ]},
	  {"teamRecords": [
	    {"team": {"name": "Philadelphia Phillies", "division": {"id": 204, "name": "National League East"}},
	     "divisionRank": "1", "wins": 91, "losses": 70, "gamesBack": "-", "eliminationNumber": "-"}
	  ]}
	]}`})

	divs, err := c.Standings(context.Background(), StandingsOptions{LeagueID: "104", Date: "09/27/2008"})
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	q := f.query("/api/v1/standings")
	for name, want := range map[string]string{
		"leagueId": "104", "season": "2008", "date": "09/27/2008",
		"standingsTypes": "regularSeason", "hydrate": "team(division)",
	} {
		if got := q.Get(name); got != want {
			t.Errorf("query %s = %q, want %q", name, got, want)
		}
	}

	if len(divs) != 2 || divs[0].Name != "National League Central" || divs[1].ID != 204 {
		t.Fatalf("divisions = %+v", divs)
	}
	cubs, brewers := divs[0].Teams[0], divs[0].Teams[1]
	if cubs.WCRank != "-" || cubs.WCGB != "-" || cubs.W != 97 {
		t.Errorf("cubs = %+v", cubs)
	}
	if brewers.WCRank != "1" || brewers.GB != "8.5" || brewers.ElimNum != "E" {
		t.Errorf("brewers = %+v", brewers)
	}
}

func TestStandings_Defaults(t *testing.T) {
	t.Parallel()
	f, c := newFakeAPI(t, map[string]string{"/api/v1/standings": `{"records": []}`})
	if _, err := c.Standings(context.Background(), StandingsOptions{}); err != nil {
		t.Fatalf("standings: %v", err)
	}
	q := f.query("/api/v1/standings")
	if q.Get("leagueId") != "103,104" || q.Get("season") != "2019" {
		t.Fatalf("query = %v", q)
	}
}

func TestRoster(t *testing.T) {
	t.Parallel()
	f, c := newFakeAPI(t, map[string]string{"/api/v1/teams/143/roster": `{"roster": [
	  {"jerseyNumber": "27", "person": {"id": 605400, "fullName": "Aaron Nola"}, "position": {"abbreviation": "P"}},
	  {"jerseyNumber": 3, "person": {"id": 547180, "fullName": "Bryce Harper"}, "position": {"abbreviation": "RF"}}
	]}`})

	roster, err := c.Roster(context.Background(), RosterOptions{TeamID: 143})
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	want := []RosterEntry{
		{ID: 605400, JerseyNumber: "27", Position: "P", Name: "Aaron Nola"},
		{ID: 547180, JerseyNumber: "3", Position: "RF", Name: "Bryce Harper"},
	}
	if !reflect.DeepEqual(roster, want) {
		t.Fatalf("roster = %+v", roster)
	}
	q := f.query("/api/v1/teams/143/roster")
	if q.Get("rosterType") != "active" || q.Get("season") != "2019" || q.Has("teamId") {
		t.Fatalf("query = %v", q)
	}
}

func TestRoster_InvalidOptions(t *testing.T) {
	t.Parallel()
	_, c := newFakeAPI(t, nil)
	_, err := c.Roster(context.Background(), RosterOptions{})
	var oe *OptionsError
	if !errors.As(err, &oe) || oe.Fields["TeamID"] == "" {
		t.Fatalf("expected OptionsError for TeamID, got %v", err)
	}
}

func TestTeamLeaders(t *testing.T) {
	t.Parallel()
	f, c := newFakeAPI(t, map[string]string{"/api/v1/teams/143/leaders": `{"teamLeaders": [{"leaders": [
	  {"rank": 1, "value": "102", "person": {"fullName": "Pat Burrell"}},
	  {"rank": 2, "value": "81", "person": {"fullName": "Ryan Howard"}}
	]}]}`})

	leaders, err := c.TeamLeaders(context.Background(), TeamLeadersOptions{TeamID: 143, LeaderCategories: "walks", Season: 2008, Limit: 2})
	if err != nil {
		t.Fatalf("team leaders: %v", err)
	}
	want := []Leader{{Rank: 1, Name: "Pat Burrell", Value: "102"}, {Rank: 2, Name: "Ryan Howard", Value: "81"}}
	if !reflect.DeepEqual(leaders, want) {
		t.Fatalf("leaders = %+v", leaders)
	}
	q := f.query("/api/v1/teams/143/leaders")
	if q.Get("leaderGameTypes") != "R" || q.Get("season") != "2008" || q.Get("limit") != "2" {
		t.Fatalf("query = %v", q)
	}
}

func TestLeagueLeaders(t *testing.T) {
	t.Parallel()
	f, c := newFakeAPI(t, map[string]string{"/api/v1/stats/leaders": `{"leagueLeaders": [{"leaders": [
	  {"rank": 1, "value": "36", "person": {"fullName": "Chief Wilson"}, "team": {"name": "Pittsburgh Pirates"}}
	]}]}`})

	leaders, err := c.LeagueLeaders(context.Background(), LeagueLeadersOptions{LeaderCategories: "triples", StatGroup: "batting"})
	if err != nil {
		t.Fatalf("league leaders: %v", err)
	}
	if len(leaders) != 1 || leaders[0].Team != "Pittsburgh Pirates" || leaders[0].Value != "36" {
		t.Fatalf("leaders = %+v", leaders)
	}
	q := f.query("/api/v1/stats/leaders")
	for name, want := range map[string]string{
		"statGroup": "hitting", "statType": "statsSingleSeason", "limit": "10", "sportId": "1",
	} {
		if got := q.Get(name); got != want {
			t.Errorf("query %s = %q, want %q", name, got, want)
		}
	}
	if q.Has("season") {
		t.Errorf("season should be omitted")
	}

	_, err = c.LeagueLeaders(context.Background(), LeagueLeadersOptions{LeaderCategories: "triples", PlayerPool: "everyone"})
	var oe *OptionsError
	if !errors.As(err, &oe) || !strings.Contains(oe.Fields["PlayerPool"], "one of") {
		t.Fatalf("expected PlayerPool OptionsError, got %v", err)
	}
}
