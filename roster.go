package statsapi

import "context"

// RosterOptions selects a team roster. Date is MM/DD/YYYY.
type RosterOptions struct {
	TeamID int `schema:"teamId" validate:"required,gt=0"`
	// RosterType defaults to active; see Meta(ctx, "rosterTypes").
	RosterType string `schema:"rosterType,omitempty"`
	// Season defaults to the current year.
	Season int    `schema:"season,omitempty" validate:"gte=0"`
	Date   string `schema:"date,omitempty"`
}

// RosterEntry is one player on a roster.
type RosterEntry struct {
	ID           int    `json:"id" yaml:"id"`
	JerseyNumber string `json:"jersey_number" yaml:"jersey_number"`
	Position     string `json:"position" yaml:"position"`
	Name         string `json:"name" yaml:"name"`
}

type rosterResponse struct {
	Roster []struct {
		JerseyNumber Text      `json:"jerseyNumber"`
		Person       personRef `json:"person"`
		Position     struct {
			Abbreviation string `json:"abbreviation"`
		} `json:"position"`
	} `json:"roster"`
}

// Roster returns the players on a team roster.
func (c *Client) Roster(ctx context.Context, opts RosterOptions) ([]RosterEntry, error) {
	if opts.RosterType == "" {
		opts.RosterType = "active"
	}
	if opts.Season == 0 {
		opts.Season = c.now().Year()
	}
	params, err := encodeOptions(opts)
	if err != nil {
		return nil, err
	}

	var resp rosterResponse
	if err := c.GetInto(ctx, "team_roster", params, &resp); err != nil {
		return nil, err
	}
	out := make([]RosterEntry, 0, len(resp.Roster))
	for _, p := range resp.Roster {
		out = append(out, RosterEntry{
			ID:           p.Person.ID,
			JerseyNumber: p.JerseyNumber.String(),
			Position:     p.Position.Abbreviation,
			Name:         p.Person.FullName,
		})
	}
	return out, nil
}
