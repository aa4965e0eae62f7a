package pickup

import (
	"fmt"
	"strings"
	"time"
)

// ToPickupLocations maps submissions to display-ready locations, one per
// submission, order preserved. Each location carries its own DaysUntil
// computed against today; the rendered output must prefer this item-level
// value over any batch lead time.
func ToPickupLocations(subs []Submission, today time.Time) []PickupLocation {
	out := make([]PickupLocation, 0, len(subs))
	for i, s := range subs {
		out = append(out, PickupLocation{
			Name:      locationName(s.Address, i),
			Address:   s.Address,
			Time:      TimeLabelForDay(s.PickupDate.Weekday()),
			DaysUntil: DaysUntil(s.PickupDate, today),
		})
	}
	return out
}

// locationName extracts the first comma-delimited segment of the address,
// falling back to a positional label when the segment is empty.
func locationName(address string, index int) string {
	name := strings.TrimSpace(strings.SplitN(address, ",", 2)[0])
	if name == "" {
		return fmt.Sprintf("Pickup Location %d", index+1)
	}
	return name
}
