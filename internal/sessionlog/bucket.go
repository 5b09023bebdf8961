package sessionlog

import (
	"fmt"
	"time"
)

// fixedFileName is used when rotation is disabled (bucket size zero).
const fixedFileName = "session.log"

// bucketFileName is a pure function of entry timestamp and bucket size.
// The timestamp's minute-of-day is floored to the next-lower multiple of
// bucketMinutes and rendered as a fixed-width date+time name, so every
// entry within one bucket maps to the same file.
func bucketFileName(ts time.Time, bucketMinutes int) string {
	if bucketMinutes <= 0 {
		return fixedFileName
	}

	minuteOfDay := ts.Hour()*60 + ts.Minute()
	floored := minuteOfDay - minuteOfDay%bucketMinutes

	return fmt.Sprintf("%s_%02d%02d.log", ts.Format("2006-01-02"), floored/60, floored%60)
}
