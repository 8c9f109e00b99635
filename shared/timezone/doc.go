// Package timezone keeps every clock read and calendar-date parse in the hotel's
// configured timezone (APP_TIMEZONE, an IANA name such as "Asia/Jakarta").
//
// Instants come from Now and ToAppTime. Stay dates are calendar days: Date and Today
// project an instant onto its local day and return it as midnight UTC, the same shape
// ParseDate produces for "YYYY-MM-DD" input and a Postgres DATE column scans into, so
// check-in and check-out values compare with plain time operators.
//
//	today := timezone.Today()
//	checkIn, err := timezone.ParseDate("2030-05-01")
//	upcoming := !checkIn.Before(today)
package timezone
