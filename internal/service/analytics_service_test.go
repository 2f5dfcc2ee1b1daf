package service

import (
	"context"
	"testing"
	"time"

	"reflecta-journal-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func entryAt(userId uuid.UUID, at time.Time, mood int, content string) *entity.Entry {
	return &entity.Entry{
		Id:        uuid.New(),
		UserId:    userId,
		Content:   content,
		Mood:      mood,
		CreatedAt: at,
	}
}

func TestAnalyticsService_RejectsUnknownPeriod(t *testing.T) {
	svc := NewAnalyticsService(newFakeFactory(), time.UTC)
	_, err := svc.GetAnalytics(context.Background(), uuid.New(), "decade")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown analytics period")
}

func TestAnalyticsService_WeekWindow(t *testing.T) {
	factory := newFakeFactory()
	userId := uuid.New()

	// Anchor entries to noon so the test cannot straddle midnight.
	y, m, d := time.Now().UTC().Date()
	noon := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)

	factory.state.entries = []*entity.Entry{
		entryAt(userId, noon, 4, "calm and productive morning walk"),
		entryAt(userId, noon.AddDate(0, 0, -1), 2, "stressful afternoon meeting again"),
	}

	svc := NewAnalyticsService(factory, time.UTC)
	resp, err := svc.GetAnalytics(context.Background(), userId, "week")
	assert.NoError(t, err)

	assert.Equal(t, "week", resp.Period)
	assert.Len(t, resp.MoodData, 7, "one point per day across the window")
	assert.Equal(t, 2, resp.TotalEntries)
	assert.Equal(t, 3.0, resp.AverageMood)

	// Today and yesterday both have entries, so the streak spans both.
	assert.Equal(t, 2, resp.Streak)

	// Last point is today and carries today's entry.
	today := resp.MoodData[len(resp.MoodData)-1]
	assert.Equal(t, noon.Format("2006-01-02"), today.Date)
	assert.Equal(t, 1, today.Entries)
	assert.Equal(t, 4.0, today.Mood)
}

func TestAnalyticsService_EmptyDaysAreZeroed(t *testing.T) {
	factory := newFakeFactory()
	userId := uuid.New()

	svc := NewAnalyticsService(factory, time.UTC)
	resp, err := svc.GetAnalytics(context.Background(), userId, "week")
	assert.NoError(t, err)

	assert.Equal(t, 0, resp.TotalEntries)
	assert.Equal(t, 0, resp.Streak)
	assert.Equal(t, 0.0, resp.AverageMood)
	for _, point := range resp.MoodData {
		assert.Equal(t, 0, point.Entries)
		assert.Equal(t, 0.0, point.Mood)
	}
	assert.Contains(t, resp.Insights[0], "No entries yet")
}

func TestAnalyticsService_StreakEndingYesterday(t *testing.T) {
	factory := newFakeFactory()
	userId := uuid.New()
	y, m, d := time.Now().UTC().Date()
	noon := time.Date(y, m, d, 12, 0, 0, 0, time.UTC)

	// Entries yesterday and the day before, nothing today. The streak should
	// still count, anchored to yesterday.
	factory.state.entries = []*entity.Entry{
		entryAt(userId, noon.AddDate(0, 0, -1), 3, "one"),
		entryAt(userId, noon.AddDate(0, 0, -2), 3, "two"),
	}

	svc := NewAnalyticsService(factory, time.UTC)
	resp, err := svc.GetAnalytics(context.Background(), userId, "week")
	assert.NoError(t, err)
	assert.Equal(t, 2, resp.Streak)
}

func TestAnalyticsService_KeywordsSkipStopWords(t *testing.T) {
	factory := newFakeFactory()
	userId := uuid.New()
	now := time.Now().UTC()

	factory.state.entries = []*entity.Entry{
		entryAt(userId, now, 3, "the meeting about the project was fine"),
		entryAt(userId, now.Add(-time.Hour), 4, "another project meeting today"),
	}

	svc := NewAnalyticsService(factory, time.UTC)
	resp, err := svc.GetAnalytics(context.Background(), userId, "week")
	assert.NoError(t, err)

	words := make(map[string]int)
	for _, kw := range resp.Keywords {
		words[kw.Word] = kw.Count
	}
	assert.Equal(t, 2, words["meeting"])
	assert.Equal(t, 2, words["project"])
	assert.NotContains(t, words, "the")
	assert.NotContains(t, words, "was")
}

func TestQuestionService_RotatesByDayOfYear(t *testing.T) {
	factory := newFakeFactory()
	factory.state.questions = []*entity.DailyQuestion{
		{Id: uuid.New(), Text: "What made you smile today?", IsActive: true},
		{Id: uuid.New(), Text: "What are you grateful for?", IsActive: true},
		{Id: uuid.New(), Text: "Inactive question", IsActive: false},
	}

	svc := NewQuestionService(factory, time.UTC)
	resp, err := svc.GetDailyQuestion(context.Background())
	assert.NoError(t, err)

	active := factory.state.questions[:2]
	expected := active[time.Now().UTC().YearDay()%len(active)]
	assert.Equal(t, expected.Text, resp.QuestionText)
	assert.NotEqual(t, "Inactive question", resp.QuestionText)
}

func TestQuestionService_NoQuestionsConfigured(t *testing.T) {
	svc := NewQuestionService(newFakeFactory(), time.UTC)
	_, err := svc.GetDailyQuestion(context.Background())
	assert.Error(t, err)
}
