package statsapi

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// MetaTypes lists the values accepted by Meta.
var MetaTypes = []string{
	"awards", "baseballStats", "eventTypes", "gameStatus", "gameTypes",
	"hitTrajectories", "jobTypes", "languages", "leagueLeaderTypes",
	"logicalEvents", "metrics", "pitchCodes", "pitchTypes", "platforms",
	"positions", "reviewReasons", "rosterTypes", "scheduleEventTypes",
	"situationCodes", "sky", "standingsTypes", "statGroups", "statTypes",
	"windDirection",
}

// MetaTypeError is returned by Meta for a type outside MetaTypes.
type MetaTypeError struct {
	Type    string
	Allowed []string
}

func (e *MetaTypeError) Error() string {
	return fmt.Sprintf("invalid meta type %q; available meta types: %s", e.Type, strings.Join(e.Allowed, ", "))
}

// Meta returns the lookup values of one meta type, e.g. leagueLeaderTypes
// for the categories accepted by TeamLeaders. The type is checked before any
// request is made.
func (c *Client) Meta(ctx context.Context, metaType string) (any, error) {
	if !slices.Contains(MetaTypes, metaType) {
		return nil, &MetaTypeError{Type: metaType, Allowed: slices.Clone(MetaTypes)}
	}
	return c.Get(ctx, "meta", Params{{Name: "type", Value: metaType}})
}
