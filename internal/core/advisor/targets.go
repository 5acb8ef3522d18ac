package advisor

import "time"

// Targets holds the age-banded recommended sleep values. Hours are civil
// hours; nap counts and wake windows are ranges because babies refuse to be
// averages.
type Targets struct {
	FromMonths  int
	TotalHours  float64
	NightHours  float64
	DayHours    float64
	MinNaps     int
	MaxNaps     int
	MinWake     float64 // shortest recommended wake window, hours
	MaxWake     float64 // longest recommended wake window, hours
	MaxNapHours float64 // longest single nap worth suggesting
}

// ageBands is a step function over age in months, based on the published
// age-banded defaults: roughly 16h total for a newborn tapering to 11h by
// three years, nap counts shrinking from 3-5 to 0-1, wake windows growing
// from about an hour to 6-7 hours. Bands are ordered by FromMonths.
var ageBands = []Targets{
	{FromMonths: 0, TotalHours: 16.0, NightHours: 8.5, DayHours: 7.5, MinNaps: 3, MaxNaps: 5, MinWake: 0.75, MaxWake: 1.0, MaxNapHours: 2.0},
	{FromMonths: 3, TotalHours: 15.0, NightHours: 9.5, DayHours: 4.5, MinNaps: 3, MaxNaps: 4, MinWake: 1.25, MaxWake: 2.0, MaxNapHours: 2.0},
	{FromMonths: 6, TotalHours: 14.0, NightHours: 10.0, DayHours: 2.75, MinNaps: 2, MaxNaps: 3, MinWake: 2.0, MaxWake: 3.0, MaxNapHours: 2.0},
	{FromMonths: 9, TotalHours: 13.5, NightHours: 10.5, DayHours: 2.5, MinNaps: 2, MaxNaps: 3, MinWake: 2.5, MaxWake: 3.5, MaxNapHours: 1.75},
	{FromMonths: 12, TotalHours: 13.0, NightHours: 10.75, DayHours: 2.25, MinNaps: 1, MaxNaps: 2, MinWake: 3.0, MaxWake: 4.0, MaxNapHours: 2.0},
	{FromMonths: 18, TotalHours: 12.5, NightHours: 11.0, DayHours: 1.75, MinNaps: 1, MaxNaps: 1, MinWake: 4.0, MaxWake: 5.5, MaxNapHours: 2.0},
	{FromMonths: 24, TotalHours: 12.0, NightHours: 10.75, DayHours: 1.25, MinNaps: 0, MaxNaps: 1, MinWake: 5.0, MaxWake: 6.0, MaxNapHours: 1.5},
	{FromMonths: 36, TotalHours: 11.0, NightHours: 10.5, DayHours: 0.5, MinNaps: 0, MaxNaps: 1, MinWake: 6.0, MaxWake: 7.0, MaxNapHours: 1.0},
}

// TargetsForAge selects the band whose lower bound is the largest value not
// exceeding the given age in months. No interpolation between bands.
func TargetsForAge(months int) Targets {
	selected := ageBands[0]
	for _, band := range ageBands {
		if band.FromMonths <= months {
			selected = band
		}
	}
	return selected
}

// AgeInMonths computes full months elapsed between a birth date and now.
func AgeInMonths(birth, now time.Time) int {
	months := (now.Year()-birth.Year())*12 + int(now.Month()) - int(birth.Month())
	if now.Day() < birth.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
