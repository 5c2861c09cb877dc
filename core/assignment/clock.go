package assignment

import "time"

// NowFunc is mockable in tests.
var NowFunc = time.Now

const dateLayout = "2006-01-02"

// campusTZ is the fixed timezone submission days are counted in.
var campusTZ = loadCampusTZ()

func loadCampusTZ() *time.Location {
	loc, err := time.LoadLocation("Asia/Dhaka")
	if err != nil {
		// UTC+6, no DST
		return time.FixedZone("BST", 6*60*60)
	}
	return loc
}

// Today returns the current calendar date in the campus timezone.
func Today() string {
	return NowFunc().In(campusTZ).Format(dateLayout)
}
