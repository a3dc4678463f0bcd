package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stemsi/placement-backend/internal/config"
	"github.com/stemsi/placement-backend/internal/database"
	"github.com/stemsi/placement-backend/internal/docstore"
	"github.com/stemsi/placement-backend/internal/logger"
	"github.com/stemsi/placement-backend/internal/metrics"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/repository"
	"github.com/stemsi/placement-backend/internal/service"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Service ────────────────────────────────────────────
	// No institute cache here; the server fills it on its next lookup.
	store := docstore.NewPostgres(pool)
	m := metrics.New(prometheus.NewRegistry())
	instituteService := service.NewInstituteService(repository.NewInstituteRepository(store), nil, m, log)
	registrationService := service.NewRegistrationService(service.RegistrationDeps{
		Institutes: instituteService,
		Admins:     repository.NewAdminRepository(store),
		Recruiters: repository.NewRecruiterRepository(store),
		Students:   repository.NewStudentRepository(store),
		Requests:   repository.NewVerificationRequestRepository(store),
	}, cfg.BcryptCost, m, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)
	prompt := func(label string) string {
		fmt.Print(label)
		v, _ := reader.ReadString('\n')
		return strings.TrimSpace(v)
	}

	fmt.Println("=== Register Institute Admin ===")

	req := model.RegisterRequest{
		Role:        model.RoleAdmin,
		CollegeName: prompt("College Name: "),
		AdminName:   prompt("Admin Name: "),
		Email:       prompt("Email: "),
		Phone:       prompt("Phone (10 digits): "),
		Address:     prompt("Address: "),
	}

	fmt.Print("Password: ")
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Newline after password input
	if err != nil {
		fmt.Println("Error reading password")
		os.Exit(1)
	}
	fmt.Print("Confirm Password: ")
	confirm, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Error reading password")
		os.Exit(1)
	}
	req.Password = string(pw)
	req.ConfirmPassword = string(confirm)

	// ─── Logic ─────────────────────────────────────────────────────────
	reg, err := registrationService.Register(ctx, req)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			fmt.Printf("Error: %v\n", ve.Err)
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("Failed to register admin")
	}

	fmt.Printf("\nSuccess! Admin %s registered for %q (institute ID %d)\n", reg.AccountID, reg.CollegeName, reg.InstituteID)
}
