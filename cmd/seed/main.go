package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Skotchmaster/job_board/internal/config"
	"github.com/Skotchmaster/job_board/internal/db"
	"github.com/Skotchmaster/job_board/internal/hash"
	"github.com/Skotchmaster/job_board/internal/models"
)

var categoryNames = []string{
	"IT", "Marketing", "Finance", "Healthcare",
	"Education", "Engineering", "Sales", "Customer Support",
}

var firstNames = []string{"Ona", "Jonas", "Greta", "Tomas", "Ieva", "Lukas", "Ugne", "Mantas", "Ruta", "Dovydas"}
var lastNames = []string{"Kazlauskas", "Petrauskaite", "Jankauskas", "Stankevicius", "Vasiliauskaite", "Urbonas"}

var jobTitles = []string{
	"Backend Developer", "Frontend Developer", "Data Analyst", "DevOps Engineer",
	"Accountant", "Nurse", "Teacher", "Sales Manager", "Support Specialist",
	"Marketing Coordinator", "Mechanical Engineer", "QA Engineer",
}

var jobTypes = []string{"full-time", "part-time", "freelance", "internship"}
var experienceLevels = []string{"entry", "mid", "senior"}

var commentLines = []string{
	"Is this position still open?",
	"What does the interview process look like?",
	"Can this be done fully remotely?",
	"Great opportunity, just applied.",
	"Is relocation support provided?",
	"What tech stack does the team use?",
}

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	gdb, err := db.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	rng := rand.New(rand.NewSource(42))

	gdb.Exec("TRUNCATE TABLE comments, jobs, refresh_tokens, users, categories RESTART IDENTITY CASCADE")
	log.Println("database cleared")

	categories := make([]models.Category, 0, len(categoryNames))
	for _, name := range categoryNames {
		category := models.Category{Name: name}
		if err := gdb.Create(&category).Error; err != nil {
			log.Fatalf("seed categories: %v", err)
		}
		categories = append(categories, category)
	}
	log.Printf("created %d categories", len(categories))

	pwHash, err := hash.HashPassword("password123")
	if err != nil {
		log.Fatalf("seed users: %v", err)
	}

	users := make([]models.User, 0, 10)
	for i := 0; i < 10; i++ {
		role := "user"
		if i == 0 {
			role = "admin"
		}
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		user := models.User{
			Name:         first + " " + last,
			Email:        fmt.Sprintf("%s.%s%d@example.com", first, last, i),
			PasswordHash: pwHash,
			Role:         role,
		}
		if err := gdb.Create(&user).Error; err != nil {
			log.Fatalf("seed users: %v", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	jobs := make([]models.Job, 0, 20)
	for i := 0; i < 20; i++ {
		job := models.Job{
			Title:           jobTitles[rng.Intn(len(jobTitles))],
			Description:     fmt.Sprintf("We are looking for a %s to join our team.", jobTitles[rng.Intn(len(jobTitles))]),
			CategoryID:      categories[rng.Intn(len(categories))].ID,
			UserID:          users[rng.Intn(len(users))].ID,
			Remote:          rng.Intn(2) == 0,
			JobType:         jobTypes[rng.Intn(len(jobTypes))],
			ExperienceLevel: experienceLevels[rng.Intn(len(experienceLevels))],
			CreatedAt:       time.Now().AddDate(0, 0, -rng.Intn(90)),
		}
		if err := gdb.Create(&job).Error; err != nil {
			log.Fatalf("seed jobs: %v", err)
		}
		jobs = append(jobs, job)
	}
	log.Printf("created %d jobs", len(jobs))

	for i := 0; i < 50; i++ {
		comment := models.Comment{
			Content:   commentLines[rng.Intn(len(commentLines))],
			JobID:     jobs[rng.Intn(len(jobs))].ID,
			UserID:    users[rng.Intn(len(users))].ID,
			CreatedAt: time.Now().AddDate(0, 0, -rng.Intn(60)),
		}
		if err := gdb.Create(&comment).Error; err != nil {
			log.Fatalf("seed comments: %v", err)
		}
	}
	log.Println("created 50 comments")

	log.Println("seeding complete")
}
