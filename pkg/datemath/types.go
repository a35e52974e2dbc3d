package datemath

import "time"

// Match is one date/time expression found in a longer text.
type Match struct {
	Text    string    // Substring as it appears in the input
	Start   int       // Byte offset of Text in the input
	End     int       // Byte offset just past Text
	Time    time.Time // Resolved absolute time in the parser's location
	HasTime bool      // True when the expression carries an explicit time of day
}
