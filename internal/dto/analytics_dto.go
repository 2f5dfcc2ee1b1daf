package dto

type MoodDataPoint struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Mood    float64 `json:"mood"` // average for the day, 0 when no scored entries
	Entries int     `json:"entries"`
}

type KeywordData struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type AnalyticsResponse struct {
	Period       string          `json:"period"` // "week" | "month" | "year"
	MoodData     []MoodDataPoint `json:"mood_data"`
	Keywords     []KeywordData   `json:"keywords"`
	Insights     []string        `json:"insights"`
	Streak       int             `json:"streak"`
	TotalEntries int             `json:"total_entries"`
	AverageMood  float64         `json:"average_mood"`
}
