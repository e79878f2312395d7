package maps

import "strings"

// ParseWeekdayText turns the provider's "Monday: 11:00 AM – 10:00 PM"
// lines into ordered day/hours pairs. Lines without a day separator are
// skipped. Order is preserved as sent.
func ParseWeekdayText(lines []string) []DayHours {
	if len(lines) == 0 {
		return nil
	}
	hours := make([]DayHours, 0, len(lines))
	for _, line := range lines {
		day, rest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		hours = append(hours, DayHours{
			Day:   strings.TrimSpace(day),
			Hours: strings.TrimSpace(rest),
		})
	}
	return hours
}
