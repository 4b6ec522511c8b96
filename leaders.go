package statsapi

import "context"

const (
	teamLeadersFields   = "teamLeaders,leaders,rank,value,person,fullName"
	leagueLeadersFields = "leagueLeaders,leaders,rank,value,team,name,league,name,person,fullName"
)

// TeamLeadersOptions selects the leaders of one team. Categories are listed
// by Meta(ctx, "leagueLeaderTypes").
type TeamLeadersOptions struct {
	TeamID           int    `schema:"teamId" validate:"required,gt=0"`
	LeaderCategories string `schema:"leaderCategories" validate:"required"`
	// Season defaults to the current year.
	Season int `schema:"season,omitempty" validate:"gte=0"`
	// LeaderGameTypes defaults to R (regular season).
	LeaderGameTypes string `schema:"leaderGameTypes,omitempty"`
	// Limit defaults to 10.
	Limit int `schema:"limit,omitempty" validate:"gte=0"`
}

// LeagueLeadersOptions selects overall or league leaders. Without a season
// the all-time single season leaders are returned.
type LeagueLeadersOptions struct {
	LeaderCategories string `schema:"leaderCategories" validate:"required"`
	Season           int    `schema:"season,omitempty" validate:"gte=0"`
	// Limit defaults to 10.
	Limit int `schema:"limit,omitempty" validate:"gte=0"`
	// StatGroup disambiguates categories such as earnedRunAverage; batting is
	// accepted as an alias of hitting.
	StatGroup string `schema:"statGroup,omitempty"`
	// LeagueID is 103 for the American League, 104 for the National League.
	LeagueID   int    `schema:"leagueId,omitempty" validate:"gte=0"`
	GameTypes  string `schema:"leaderGameTypes,omitempty"`
	PlayerPool string `schema:"playerPool,omitempty" validate:"omitempty,oneof=all qualified rookies"`
	// SportID defaults to 1.
	SportID  int    `schema:"sportId,omitempty" validate:"gte=0"`
	StatType string `schema:"statType,omitempty"`
}

// Leader is one ranked player. Team is empty for team leaders.
type Leader struct {
	Rank  int    `json:"rank" yaml:"rank"`
	Name  string `json:"name" yaml:"name"`
	Team  string `json:"team,omitempty" yaml:"team,omitempty"`
	Value string `json:"value" yaml:"value"`
}

type leaderEntry struct {
	Rank   int       `json:"rank"`
	Value  Text      `json:"value"`
	Person personRef `json:"person"`
	Team   teamRef   `json:"team"`
}

type leadersResponse struct {
	TeamLeaders []struct {
		Leaders []leaderEntry `json:"leaders"`
	} `json:"teamLeaders"`
	LeagueLeaders []struct {
		Leaders []leaderEntry `json:"leaders"`
	} `json:"leagueLeaders"`
}

// TeamLeaders returns the leaders of a team in one category.
func (c *Client) TeamLeaders(ctx context.Context, opts TeamLeadersOptions) ([]Leader, error) {
	if opts.Season == 0 {
		opts.Season = c.now().Year()
	}
	if opts.LeaderGameTypes == "" {
		opts.LeaderGameTypes = "R"
	}
	if opts.Limit == 0 {
		opts.Limit = 10
	}
	params, err := encodeOptions(opts)
	if err != nil {
		return nil, err
	}
	params.Set("fields", teamLeadersFields)

	var resp leadersResponse
	if err := c.GetInto(ctx, "team_leaders", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.TeamLeaders) == 0 {
		return []Leader{}, nil
	}
	return toLeaders(resp.TeamLeaders[0].Leaders, false), nil
}

// LeagueLeaders returns the leaders in one category across a league or all
// of baseball.
func (c *Client) LeagueLeaders(ctx context.Context, opts LeagueLeadersOptions) ([]Leader, error) {
	if opts.Season == 0 && opts.StatType == "" {
		opts.StatType = "statsSingleSeason"
	}
	if opts.StatGroup == "batting" {
		opts.StatGroup = "hitting"
	}
	if opts.Limit == 0 {
		opts.Limit = 10
	}
	if opts.SportID == 0 {
		opts.SportID = 1
	}
	params, err := encodeOptions(opts)
	if err != nil {
		return nil, err
	}
	params.Set("fields", leagueLeadersFields)

	var resp leadersResponse
	if err := c.GetInto(ctx, "stats_leaders", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.LeagueLeaders) == 0 {
		return []Leader{}, nil
	}
	return toLeaders(resp.LeagueLeaders[0].Leaders, true), nil
}

func toLeaders(entries []leaderEntry, withTeam bool) []Leader {
	out := make([]Leader, 0, len(entries))
	for _, e := range entries {
		l := Leader{Rank: e.Rank, Name: e.Person.FullName, Value: e.Value.String()}
		if withTeam {
			l.Team = e.Team.Name
		}
		out = append(out, l)
	}
	return out
}
