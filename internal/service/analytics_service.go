package service

import (
	"context"
	"fmt"
	"time"

	"reflecta-journal-be/internal/dto"
	"reflecta-journal-be/internal/entity"
	"reflecta-journal-be/internal/pkg/moodutil"
	"reflecta-journal-be/internal/repository/specification"
	"reflecta-journal-be/internal/repository/unitofwork"
	"reflecta-journal-be/pkg/utils"

	"github.com/google/uuid"
)

type IAnalyticsService interface {
	GetAnalytics(ctx context.Context, userId uuid.UUID, period string) (*dto.AnalyticsResponse, error)
}

type analyticsService struct {
	uowFactory unitofwork.RepositoryFactory
	location   *time.Location
}

func NewAnalyticsService(uowFactory unitofwork.RepositoryFactory, location *time.Location) IAnalyticsService {
	if location == nil {
		location = time.Local
	}
	return &analyticsService{
		uowFactory: uowFactory,
		location:   location,
	}
}

func (s *analyticsService) GetAnalytics(ctx context.Context, userId uuid.UUID, period string) (*dto.AnalyticsResponse, error) {
	days, err := periodDays(period)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(s.location)
	from := startOfDay(now.AddDate(0, 0, -(days - 1)), s.location)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.EntryRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.CreatedFrom{At: from},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	moodData := s.buildMoodData(entries, from, days)

	texts := make([]string, len(entries))
	moods := make([]int, 0, len(entries))
	for i, entry := range entries {
		texts[i] = entry.Content
		if entry.Mood != 0 {
			moods = append(moods, entry.Mood)
		}
	}

	keywords := make([]dto.KeywordData, 0)
	for _, kw := range utils.TopKeywords(texts, 10) {
		keywords = append(keywords, dto.KeywordData{Word: kw.Word, Count: kw.Count})
	}

	avgMood := moodutil.Average(moods)
	streak := s.currentStreak(entries, now)

	return &dto.AnalyticsResponse{
		Period:       period,
		MoodData:     moodData,
		Keywords:     keywords,
		Insights:     buildInsights(len(entries), avgMood, streak),
		Streak:       streak,
		TotalEntries: len(entries),
		AverageMood:  avgMood,
	}, nil
}

func periodDays(period string) (int, error) {
	switch period {
	case "week":
		return 7, nil
	case "month":
		return 30, nil
	case "year":
		return 365, nil
	default:
		return 0, fmt.Errorf("unknown analytics period: %s", period)
	}
}

// buildMoodData emits one point per day across the whole window, zeros for
// days without scored entries, so charts render a continuous axis.
func (s *analyticsService) buildMoodData(entries []*entity.Entry, from time.Time, days int) []dto.MoodDataPoint {
	type bucket struct {
		moods []int
		count int
	}
	buckets := make(map[string]*bucket)
	for _, entry := range entries {
		day := entry.CreatedAt.In(s.location).Format("2006-01-02")
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		b.count++
		if entry.Mood != 0 {
			b.moods = append(b.moods, entry.Mood)
		}
	}

	points := make([]dto.MoodDataPoint, 0, days)
	for i := 0; i < days; i++ {
		day := from.AddDate(0, 0, i).Format("2006-01-02")
		point := dto.MoodDataPoint{Date: day}
		if b, ok := buckets[day]; ok {
			point.Entries = b.count
			point.Mood = moodutil.Average(b.moods)
		}
		points = append(points, point)
	}
	return points
}

// currentStreak counts consecutive days with at least one entry, ending today
// or yesterday.
func (s *analyticsService) currentStreak(entries []*entity.Entry, now time.Time) int {
	daysWithEntries := make(map[string]bool)
	for _, entry := range entries {
		daysWithEntries[entry.CreatedAt.In(s.location).Format("2006-01-02")] = true
	}

	day := startOfDay(now, s.location)
	if !daysWithEntries[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for daysWithEntries[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func buildInsights(totalEntries int, avgMood float64, streak int) []string {
	insights := make([]string, 0, 3)

	switch {
	case totalEntries == 0:
		insights = append(insights, "No entries yet for this period. Start writing to see your patterns.")
	case totalEntries == 1:
		insights = append(insights, "You wrote 1 entry this period.")
	default:
		insights = append(insights, fmt.Sprintf("You wrote %d entries this period.", totalEntries))
	}

	if avgMood > 0 {
		label := moodutil.Label(int(avgMood + 0.5))
		insights = append(insights, fmt.Sprintf("Your average mood was %.1f (%s).", avgMood, label))
	}

	if streak >= 3 {
		insights = append(insights, fmt.Sprintf("You're on a %d-day journaling streak. Keep it up!", streak))
	}

	return insights
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
