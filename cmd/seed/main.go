// Command seed populates the database with demo practice sets.
package main

import (
	"encoding/json"
	"log"

	"literacylab/internal/config"
	"literacylab/internal/database"
	"literacylab/internal/models"
	"literacylab/internal/repository"
)

type demoQuestion struct {
	text          string
	questionType  string
	options       interface{}
	correctAnswer string
}

type demoContent struct {
	title        string
	description  string
	difficulty   string
	timeEstimate string
	questionType string
	questions    []demoQuestion
}

type matchPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

var demoSets = []demoContent{
	{
		title:        "Reading Comprehension Practice",
		description:  "Practice your reading comprehension skills with this set of questions.",
		difficulty:   "medium",
		timeEstimate: "20",
		questionType: "multiple-choice",
		questions: []demoQuestion{
			{
				text:         "What was unusual about the night sky Maria saw?",
				questionType: "multiple-choice",
				options: []string{
					"She could see stars despite city lights",
					"It was stormy",
					"It was midday",
					"Stars were red",
				},
				correctAnswer: "She could see stars despite city lights",
			},
			{
				text:          "Why did Maria turn on her battery-powered radio?",
				questionType:  "short-answer",
				correctAnswer: "To check for news about the power outage",
			},
			{
				text:         "Explain how the author builds suspense in the passage. Provide at least two examples from the text.",
				questionType: "paragraph",
			},
			{
				text:         "Match each detail with its corresponding element from the story:",
				questionType: "matching",
				options: []matchPair{
					{Left: "Pulsating glow", Right: "The craft's exterior light"},
					{Left: "Soft humming sound", Right: "The musical note-like tone"},
					{Left: "Warm golden light", Right: "Interior of the craft"},
					{Left: "Sequential colored lights", Right: "Perimeter indicators"},
				},
			},
		},
	},
	{
		title:        "Critical Thinking Practice",
		description:  "Enhance your critical thinking abilities with these challenging questions.",
		difficulty:   "hard",
		timeEstimate: "30",
		questionType: "multiple-choice",
		questions: []demoQuestion{
			{
				text:         "What is the main theme of the passage?",
				questionType: "multiple-choice",
				options: []string{
					"Exploration of the unknown",
					"Fear of the supernatural",
					"Impact of technology on society",
					"Environmental awareness",
				},
				correctAnswer: "Exploration of the unknown",
			},
			{
				text:         "How does the protagonist's perspective change throughout the story?",
				questionType: "paragraph",
			},
		},
	},
	{
		title:        "Writing Skills Assessment",
		description:  "Practice your writing skills by responding to various prompts.",
		difficulty:   "easy",
		timeEstimate: "25",
		questionType: "paragraph",
		questions: []demoQuestion{
			{
				text:         "Write a short paragraph describing your ideal learning environment.",
				questionType: "paragraph",
			},
			{
				text:          "What makes effective communication important?",
				questionType:  "short-answer",
				correctAnswer: "Effective communication ensures clarity, understanding, and proper exchange of ideas.",
			},
		},
	},
}

func main() {
	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	contentRepo := repository.NewContentRepository(db)
	questionRepo := repository.NewQuestionRepository(db)

	for _, set := range demoSets {
		existing, err := contentRepo.ListContent(repository.ContentFilter{Search: set.title})
		if err != nil {
			log.Fatalf("Failed to check existing content: %v", err)
		}
		if containsTitle(existing, set.title) {
			log.Printf("Skipping %q: already seeded", set.title)
			continue
		}

		content, err := contentRepo.CreateContent(&models.PracticeContent{
			Title:        set.title,
			Description:  set.description,
			Difficulty:   set.difficulty,
			TimeEstimate: set.timeEstimate,
			QuestionType: set.questionType,
		})
		if err != nil {
			log.Fatalf("Failed to create %q: %v", set.title, err)
		}

		for _, q := range set.questions {
			var options json.RawMessage
			if q.options != nil {
				options, err = json.Marshal(q.options)
				if err != nil {
					log.Fatalf("Failed to encode options for %q: %v", q.text, err)
				}
			}

			if _, err := questionRepo.CreateQuestion(&models.Question{
				PracticeContentID: content.ID,
				QuestionText:      q.text,
				QuestionType:      q.questionType,
				Options:           options,
				CorrectAnswer:     q.correctAnswer,
			}); err != nil {
				log.Fatalf("Failed to create question for %q: %v", set.title, err)
			}
		}

		log.Printf("Seeded %q with %d questions", set.title, len(set.questions))
	}

	log.Println("Demo data seeded successfully")
}

func containsTitle(contents []models.PracticeContent, title string) bool {
	for _, c := range contents {
		if c.Title == title {
			return true
		}
	}
	return false
}
