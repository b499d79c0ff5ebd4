package models

// CourseHole describes one hole of the course used for the Stableford event:
// its par and its stroke index (1 = hardest hole, 18 = easiest). The stroke
// index decides which holes receive handicap strokes.
type CourseHole struct {
	Number      int `json:"number" db:"number"`
	Par         int `json:"par" db:"par"`
	StrokeIndex int `json:"stroke_index" db:"stroke_index"`
}

// Course is the fixed 18-hole table, loaded from storage as configuration
// data rather than embedded in code.
type Course struct {
	ID    int          `json:"id" db:"id"`
	Name  string       `json:"name" db:"name"`
	Holes []CourseHole `json:"holes" db:"-"`
}
