package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stemsi/placement-backend/internal/config"
	"github.com/stemsi/placement-backend/internal/database"
	"github.com/stemsi/placement-backend/internal/docstore"
	"github.com/stemsi/placement-backend/internal/logger"
	"github.com/stemsi/placement-backend/internal/metrics"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/repository"
	"github.com/stemsi/placement-backend/internal/service"
)

const seedPassword = "placement123"

func main() {
	var (
		collegeName = flag.String("college", "Demo Institute of Technology", "Institute to seed")
		students    = flag.Int("students", 25, "Number of students to register")
		jobs        = flag.Int("jobs", 5, "Number of jobs to post")
	)
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	store := docstore.NewPostgres(pool)
	m := metrics.New(prometheus.NewRegistry())
	paging := service.Paging{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize}

	instituteService := service.NewInstituteService(repository.NewInstituteRepository(store), nil, m, log)
	registrationService := service.NewRegistrationService(service.RegistrationDeps{
		Institutes: instituteService,
		Admins:     repository.NewAdminRepository(store),
		Recruiters: repository.NewRecruiterRepository(store),
		Students:   repository.NewStudentRepository(store),
		Requests:   repository.NewVerificationRequestRepository(store),
	}, cfg.BcryptCost, m, log)
	jobService := service.NewJobService(repository.NewJobRepository(store), instituteService, paging, m, log)

	fmt.Printf("=== Seeding %q ===\n", *collegeName)

	admin, err := registrationService.Register(ctx, model.RegisterRequest{
		Role:            model.RoleAdmin,
		Email:           "admin@demo.example",
		Phone:           "9000000000",
		Password:        seedPassword,
		ConfirmPassword: seedPassword,
		CollegeName:     *collegeName,
		Address:         "1 Campus Road",
		AdminName:       "Demo Admin",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to register admin")
	}
	fmt.Printf("Institute ID: %d\n", admin.InstituteID)

	recruiterEmail := "hr@acme.example"
	if _, err := registrationService.Register(ctx, model.RegisterRequest{
		Role:            model.RoleRecruiter,
		Email:           recruiterEmail,
		Password:        seedPassword,
		ConfirmPassword: seedPassword,
		CompanyName:     "Acme Corp",
		InstituteIDs:    []int{admin.InstituteID},
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to register recruiter")
	}

	successCount := 0
	for i := 0; i < *students; i++ {
		_, err := registrationService.Register(ctx, model.RegisterRequest{
			Role:            model.RoleStudent,
			Email:           fmt.Sprintf("student%02d@demo.example", i+1),
			Phone:           fmt.Sprintf("98%08d", i+1),
			Password:        seedPassword,
			ConfirmPassword: seedPassword,
			InstituteID:     admin.InstituteID,
			Age:             20 + i%5,
			StudentName:     fmt.Sprintf("Student %02d", i+1),
		})
		if err != nil {
			fmt.Printf("Error registering student %d: %v\n", i+1, err)
			continue
		}
		successCount++
		if (i+1)%10 == 0 {
			fmt.Printf("Registered %d students...\n", i+1)
		}
	}

	for i := 0; i < *jobs; i++ {
		if _, err := jobService.Create(ctx, recruiterEmail, model.CreateJobRequest{
			JobTitle:    fmt.Sprintf("Graduate Engineer %d", i+1),
			Description: "Entry-level engineering role.",
			Eligibility: "Final-year students",
			Location:    "Remote",
			Salary:      "6 LPA",
			InstituteID: admin.InstituteID,
		}); err != nil {
			log.Fatal().Err(err).Msg("Failed to post job")
		}
	}

	fmt.Printf("\nSeed completed! %d/%d students, %d jobs. Password for every account: %s\n",
		successCount, *students, *jobs, seedPassword)
}
