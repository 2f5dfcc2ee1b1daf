package main

import (
	"log"

	"reflecta-journal-be/internal/model"

	"gorm.io/gorm"
)

// SeedDailyQuestions populates the rotation of daily reflection prompts.
func SeedDailyQuestions(db *gorm.DB) {
	questions := []model.DailyQuestion{
		{Text: "What made you smile today?", Category: "gratitude", IsActive: true},
		{Text: "What was the most challenging part of your day?", Category: "reflection", IsActive: true},
		{Text: "What are you grateful for right now?", Category: "gratitude", IsActive: true},
		{Text: "How did you take care of yourself today?", Category: "selfcare", IsActive: true},
		{Text: "What is something you learned about yourself recently?", Category: "growth", IsActive: true},
		{Text: "If today had a color, what would it be and why?", Category: "creative", IsActive: true},
		{Text: "What would you tell a friend who had the day you just had?", Category: "compassion", IsActive: true},
		{Text: "What are you looking forward to tomorrow?", Category: "outlook", IsActive: true},
		{Text: "Which moment today would you like to remember?", Category: "reflection", IsActive: true},
		{Text: "What drained your energy today, and what restored it?", Category: "selfcare", IsActive: true},
	}

	for _, q := range questions {
		var count int64
		db.Model(&model.DailyQuestion{}).Where("text = ?", q.Text).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&q).Error; err != nil {
			log.Printf("Warn: Failed to seed question %q: %v", q.Text, err)
			continue
		}
		log.Printf("Seeded question: %s", q.Text)
	}

	log.Println("✅ Daily question seeding complete")
}
