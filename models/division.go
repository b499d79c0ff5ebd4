package models

// Division is one of the five parallel competitions. Every team, match and
// standings table belongs to exactly one division; divisions never mix.
type Division string

const (
	DivisionTrophy Division = "trophy"
	DivisionShield Division = "shield"
	DivisionPlaque Division = "plaque"
	DivisionBowl   Division = "bowl"
	DivisionMug    Division = "mug"
)

// AllDivisions lists the divisions in presentation order.
var AllDivisions = []Division{
	DivisionTrophy,
	DivisionShield,
	DivisionPlaque,
	DivisionBowl,
	DivisionMug,
}

func (d Division) Valid() bool {
	switch d {
	case DivisionTrophy, DivisionShield, DivisionPlaque, DivisionBowl, DivisionMug:
		return true
	}
	return false
}

// ParseDivision maps a URL or payload value to a Division.
func ParseDivision(s string) (Division, bool) {
	d := Division(s)
	return d, d.Valid()
}
