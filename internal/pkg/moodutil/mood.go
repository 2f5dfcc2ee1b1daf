package moodutil

import "math"

// Mood values run 1 (very bad) to 5 (very good). 0 means "not yet scored".
const (
	MoodMin     = 1
	MoodMax     = 5
	MoodNeutral = 3
)

var moodLabels = map[int]string{
	1: "Very bad",
	2: "Bad",
	3: "Neutral",
	4: "Good",
	5: "Very good",
}

var moodEmojis = map[int]string{
	1: "😢",
	2: "😔",
	3: "😐",
	4: "😊",
	5: "😄",
}

func Label(mood int) string {
	if label, ok := moodLabels[mood]; ok {
		return label
	}
	return "Unknown"
}

func Emoji(mood int) string {
	if emoji, ok := moodEmojis[mood]; ok {
		return emoji
	}
	return moodEmojis[MoodNeutral]
}

// Clamp forces a mood score into the valid 1-5 range.
func Clamp(mood int) int {
	if mood < MoodMin {
		return MoodMin
	}
	if mood > MoodMax {
		return MoodMax
	}
	return mood
}

// Average returns the mean mood rounded to 1 decimal place. Empty input yields 0.
func Average(moods []int) float64 {
	if len(moods) == 0 {
		return 0
	}
	sum := 0
	for _, m := range moods {
		sum += m
	}
	return math.Round(float64(sum)/float64(len(moods))*10) / 10
}
