package model

import (
	"fmt"
	"time"
)

// FormatPubDate renders an episode publication time the way feed
// readers consuming legacy Launchpod feeds expect it:
// dd/MM/yyyy HH:mm:ss:SSS followed by the zone abbreviation.
// The milliseconds block is colon separated, so it can't be expressed
// as a single time layout string.
func FormatPubDate(t time.Time) string {
	t = t.Local()
	millis := t.Nanosecond() / int(time.Millisecond)
	return fmt.Sprintf("%s:%03d %s", t.Format("02/01/2006 15:04:05"), millis, t.Format("MST"))
}

// FormatPostTime renders a record creation timestamp (epoch millis)
// for feed listings: MM/dd/yyyy HH:mm:ss Z.
func FormatPostTime(millis int64) string {
	return time.UnixMilli(millis).Local().Format("01/02/2006 15:04:05 -0700")
}
