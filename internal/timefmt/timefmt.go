// Package timefmt renders stored instants as the date and time strings the
// POS frontends display. Everything is presented in Mogadishu civil time no
// matter where the server runs; the stored instants are never touched.
package timefmt

import "time"

var mogadishu = loadLocation()

func loadLocation() *time.Location {
	loc, err := time.LoadLocation("Africa/Mogadishu")
	if err != nil {
		// No tzdata on the host. Mogadishu is UTC+3 year round.
		return time.FixedZone("EAT", 3*60*60)
	}
	return loc
}

// DateString formats t as "YYYY-MM-DD" in Mogadishu time.
func DateString(t time.Time) string {
	return t.In(mogadishu).Format("2006-01-02")
}

// TimeString formats t as 24-hour "HH:MM:SS" in Mogadishu time.
func TimeString(t time.Time) string {
	return t.In(mogadishu).Format("15:04:05")
}
