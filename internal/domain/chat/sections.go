package chat

import "time"

// Section is one day's worth of messages, oldest first.
type Section struct {
	Date     string `json:"date"`
	Messages []View `json:"messages"`
}

// GroupByDay splits views into per-day sections, preserving order. The date
// label is the ISO calendar date of the message in UTC.
func GroupByDay(views []View) []Section {
	var sections []Section
	for _, v := range views {
		date := v.SentAt.UTC().Format(time.DateOnly)
		if n := len(sections); n > 0 && sections[n-1].Date == date {
			sections[n-1].Messages = append(sections[n-1].Messages, v)
			continue
		}
		sections = append(sections, Section{Date: date, Messages: []View{v}})
	}
	return sections
}
