package model

import "encoding/json"

// HoursPerDay is the fixed width of an hourly bucket array.
const HoursPerDay = 24

// HourlyBuckets holds one transaction count per UTC hour of a single day.
// The array is always exactly 24 slots; shorter foreign data is zero-padded
// and longer data is truncated on decode.
type HourlyBuckets [HoursPerDay]int

// Ensure24 normalizes an arbitrary-length slice to exactly 24 hourly slots.
func Ensure24(hours []int) HourlyBuckets {
	var b HourlyBuckets
	copy(b[:], hours)
	return b
}

// Sum returns the total across all 24 hours.
func (b HourlyBuckets) Sum() int {
	total := 0
	for _, v := range b {
		total += v
	}
	return total
}

// PeakHour returns the hour with the highest count; the earliest hour wins
// ties. The second return is the count at that hour.
func (b HourlyBuckets) PeakHour() (hour, count int) {
	for h, v := range b {
		if v > count {
			hour, count = h, v
		}
	}
	return hour, count
}

// UnmarshalJSON accepts arrays of any length, normalizing to 24 slots so
// snapshots written by older builds stay loadable.
func (b *HourlyBuckets) UnmarshalJSON(data []byte) error {
	var hours []int
	if err := json.Unmarshal(data, &hours); err != nil {
		return err
	}
	*b = Ensure24(hours)
	return nil
}
