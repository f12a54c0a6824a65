package converter

import "time"

// day_of_week follows Postgres EXTRACT(DOW): Sunday is 0, same as time.Weekday.
func weekday(dow int16) time.Weekday {
	return time.Weekday(dow)
}

func DayOfWeek(w time.Weekday) int16 {
	return int16(w)
}
