package natal

import "time"

type leapStep struct {
	from    time.Time
	seconds int
}

// taiMinusUTC lists every change of TAI-UTC since the leap second system began.
var taiMinusUTC = []leapStep{
	{date(1972, 1, 1), 10},
	{date(1972, 7, 1), 11},
	{date(1973, 1, 1), 12},
	{date(1974, 1, 1), 13},
	{date(1975, 1, 1), 14},
	{date(1976, 1, 1), 15},
	{date(1977, 1, 1), 16},
	{date(1978, 1, 1), 17},
	{date(1979, 1, 1), 18},
	{date(1980, 1, 1), 19},
	{date(1981, 7, 1), 20},
	{date(1982, 7, 1), 21},
	{date(1983, 7, 1), 22},
	{date(1985, 7, 1), 23},
	{date(1988, 1, 1), 24},
	{date(1990, 1, 1), 25},
	{date(1991, 1, 1), 26},
	{date(1992, 7, 1), 27},
	{date(1993, 7, 1), 28},
	{date(1994, 7, 1), 29},
	{date(1996, 1, 1), 30},
	{date(1997, 7, 1), 31},
	{date(1999, 1, 1), 32},
	{date(2006, 1, 1), 33},
	{date(2009, 1, 1), 34},
	{date(2012, 7, 1), 35},
	{date(2015, 7, 1), 36},
	{date(2017, 1, 1), 37},
}

// LeapSeconds returns TAI-UTC in seconds at t. Instants before 1972 use the
// initial offset.
func LeapSeconds(t time.Time) int {
	out := taiMinusUTC[0].seconds
	for _, step := range taiMinusUTC {
		if t.Before(step.from) {
			break
		}
		out = step.seconds
	}
	return out
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
