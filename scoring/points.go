package scoring

import (
	"log/slog"
	"time"

	"github.com/S-Matheka/patrons-cup-live-sub000/models"
)

// PointsValue is the award for one head-to-head pairing under the Terms of
// Competition. A loss is always worth zero.
type PointsValue struct {
	Win float64
	Tie float64
}

// defaultPoints is the fallback for combinations outside the Terms of
// Competition table. Reaching it means the match metadata is malformed.
var defaultPoints = PointsValue{Win: 1, Tie: 0.5}

// PointsFor resolves the points on offer for a match from its calendar day,
// session, type and division:
//
//	Fri/Sat AM four-ball        5 / 2.5   all divisions
//	Fri/Sat PM foursomes        3 / 1.5   Trophy, Shield, Plaque
//	Fri/Sat PM foursomes        4 / 2     Bowl, Mug
//	Sun     singles             3 / 1.5   all divisions
//
// Any other combination is a data-entry error upstream: it falls back to
// 1 / 0.5 and is logged for operator attention rather than failing the
// computation. logger may be nil.
func PointsFor(logger *slog.Logger, date time.Time, session models.Session, matchType models.MatchType, division models.Division) PointsValue {
	day := date.Weekday()

	switch {
	case (day == time.Friday || day == time.Saturday) && session == models.SessionAM && matchType == models.MatchTypeFourBall:
		return PointsValue{Win: 5, Tie: 2.5}

	case (day == time.Friday || day == time.Saturday) && session == models.SessionPM && matchType == models.MatchTypeFoursomes:
		if division == models.DivisionBowl || division == models.DivisionMug {
			return PointsValue{Win: 4, Tie: 2}
		}
		return PointsValue{Win: 3, Tie: 1.5}

	case day == time.Sunday && matchType == models.MatchTypeSingles:
		return PointsValue{Win: 3, Tie: 1.5}
	}

	if logger != nil {
		logger.Warn("no points schedule entry for match, using default",
			slog.String("day", day.String()),
			slog.String("session", string(session)),
			slog.String("type", string(matchType)),
			slog.String("division", string(division)),
		)
	}
	return defaultPoints
}
