package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mark3labs/statsapi"
)

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "List games for a date or date range",
		Long:  "List games for a date or date range. Dates are MM/DD/YYYY or YYYY-MM-DD; without dates the API returns today's games.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var opts statsapi.ScheduleOptions
			opts.Date, _ = f.GetString("date")
			opts.StartDate, _ = f.GetString("start")
			opts.EndDate, _ = f.GetString("end")
			opts.TeamID, _ = f.GetInt("team")
			opts.OpponentID, _ = f.GetInt("opponent")
			opts.SportID, _ = f.GetInt("sport")

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			games, err := s.client.Schedule(cmd.Context(), opts)
			if err != nil {
				return friendlyError(err)
			}
			return s.print(games)
		},
	}
	f := cmd.Flags()
	f.String("date", "", "Single date")
	f.String("start", "", "First date of a range")
	f.String("end", "", "Last date of a range")
	f.Int("team", 0, "Team id")
	f.Int("opponent", 0, "Opponent team id")
	f.Int("sport", 0, "Sport id (default 1, MLB)")
	return cmd
}

func newLinescoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linescore <gamePk>",
		Short: "Print the linescore of a game",
		Long:  "Print the linescore of a game. Use --output text for the fixed-width table.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gamePk, err := parseID("gamePk", args[0])
			if err != nil {
				return err
			}
			timecode, _ := cmd.Flags().GetString("timecode")
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			ls, err := s.client.Linescore(cmd.Context(), gamePk, timecode)
			if err != nil {
				return friendlyError(err)
			}
			return s.print(ls)
		},
	}
	cmd.Flags().String("timecode", "", "Game state at this time (YYYYMMDD_HHMMSS, UTC)")
	return cmd
}

func newBoxscoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boxscore <gamePk>",
		Short: "Print the box score of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gamePk, err := parseID("gamePk", args[0])
			if err != nil {
				return err
			}
			timecode, _ := cmd.Flags().GetString("timecode")
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			box, err := s.client.Boxscore(cmd.Context(), gamePk, timecode)
			if err != nil {
				return friendlyError(err)
			}
			return s.print(box)
		},
	}
	cmd.Flags().String("timecode", "", "Game state at this time (YYYYMMDD_HHMMSS, UTC)")
	return cmd
}

func newStandingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Print division standings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var opts statsapi.StandingsOptions
			opts.LeagueID, _ = f.GetString("league")
			opts.Season, _ = f.GetString("season")
			opts.StandingsTypes, _ = f.GetString("types")
			opts.Date, _ = f.GetString("date")

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			divisions, err := s.client.Standings(cmd.Context(), opts)
			if err != nil {
				return friendlyError(err)
			}
			return s.print(divisions)
		},
	}
	f := cmd.Flags()
	f.String("league", "", "League ids, comma separated (default 103,104)")
	f.String("season", "", "Season (default: year of --date, or the current year)")
	f.String("types", "", "Standings types (default regularSeason)")
	f.String("date", "", "Standings as of this date, MM/DD/YYYY")
	return cmd
}

func newRosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster <teamId>",
		Short: "Print a team roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, err := parseID("teamId", args[0])
			if err != nil {
				return err
			}
			f := cmd.Flags()
			opts := statsapi.RosterOptions{TeamID: teamID}
			opts.RosterType, _ = f.GetString("type")
			opts.Season, _ = f.GetInt("season")
			opts.Date, _ = f.GetString("date")

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			roster, err := s.client.Roster(cmd.Context(), opts)
			if err != nil {
				return friendlyError(err)
			}
			return s.print(roster)
		},
	}
	f := cmd.Flags()
	f.String("type", "", "Roster type (default active)")
	f.Int("season", 0, "Season (default current year)")
	f.String("date", "", "Roster as of this date, MM/DD/YYYY")
	return cmd
}

func newLeadersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaders",
		Short: "Print statistical leaders",
		Long: "Print statistical leaders in one category. With --team the leaders of that team are listed, " +
			"otherwise league or overall leaders. Categories are listed by `statsapi meta leagueLeaderTypes`.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			category, _ := f.GetString("category")
			team, _ := f.GetInt("team")
			season, _ := f.GetInt("season")
			limit, _ := f.GetInt("limit")
			gameTypes, _ := f.GetString("game-types")

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			var leaders []statsapi.Leader
			if team > 0 {
				leaders, err = s.client.TeamLeaders(cmd.Context(), statsapi.TeamLeadersOptions{
					TeamID:           team,
					LeaderCategories: category,
					Season:           season,
					LeaderGameTypes:  gameTypes,
					Limit:            limit,
				})
			} else {
				opts := statsapi.LeagueLeadersOptions{
					LeaderCategories: category,
					Season:           season,
					Limit:            limit,
					GameTypes:        gameTypes,
				}
				opts.StatGroup, _ = f.GetString("stat-group")
				opts.LeagueID, _ = f.GetInt("league")
				opts.PlayerPool, _ = f.GetString("player-pool")
				opts.SportID, _ = f.GetInt("sport")
				opts.StatType, _ = f.GetString("stat-type")
				leaders, err = s.client.LeagueLeaders(cmd.Context(), opts)
			}
			if err != nil {
				return friendlyError(err)
			}
			return s.print(leaders)
		},
	}
	f := cmd.Flags()
	f.String("category", "", "Leader category, e.g. homeRuns (required)")
	f.Int("team", 0, "Team id; lists team leaders")
	f.Int("season", 0, "Season")
	f.Int("limit", 0, "Number of leaders (default 10)")
	f.String("game-types", "", "Game types, e.g. R or P")
	f.String("stat-group", "", "Stat group: hitting, pitching, fielding")
	f.Int("league", 0, "League id: 103 (AL) or 104 (NL)")
	f.String("player-pool", "", "Player pool: all, qualified or rookies")
	f.Int("sport", 0, "Sport id (default 1)")
	f.String("stat-type", "", "Stat type, e.g. statsSingleSeason")
	return cmd
}

func parseID(name, arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, newUsageError(fmt.Sprintf("invalid %s %q (want a positive integer)", name, arg))
	}
	return id, nil
}
