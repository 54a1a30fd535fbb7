package dashboard

import (
	"fmt"
	"time"
)

// NoDate is shown for messages without a timestamp.
const NoDate = "—"

// FormatDateTime renders t in loc as "dd/mm/yyyy h:mm AM".
func FormatDateTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return NoDate
	}
	if loc == nil {
		loc = time.Local
	}
	d := t.In(loc)
	return fmt.Sprintf("%02d/%02d/%d %s", d.Day(), int(d.Month()), d.Year(), d.Format("3:04 PM"))
}
