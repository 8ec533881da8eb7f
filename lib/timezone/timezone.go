package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/Chicago")
	if err != nil {
		panic(err)
	}
}

// force timezone to be Central because the scrapers run on
// whatever region the scheduler lands them in, while poll
// fieldwork windows and filing deadlines are published in
// Tennessee local time
func Now() time.Time {
	return time.Now().In(Location)
}
