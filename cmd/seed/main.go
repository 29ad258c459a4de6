package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/config"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/database"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/fees"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/logger"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/model"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/repository"
	"github.com/sumitchavan8070/snehvidya-sub001/internal/service"
)

// Seeds demo classes, students, fee structures and a few ledger entries so a
// fresh environment has something to aggregate.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	feeService := service.NewFeeService(
		repository.NewFeeStructureRepository(pool),
		repository.NewSectionExtraFeeRepository(pool),
		repository.NewLedgerRepository(pool),
		cfg.QuarterDueDates,
		log,
	)

	fmt.Println("=== Seeding students ===")

	students := []model.Student{
		{Name: "Aarav Sharma", ClassName: "5", Section: "A"},
		{Name: "Diya Patel", ClassName: "5", Section: "A"},
		{Name: "Ishaan Verma", ClassName: "5", Section: "A"},
		{Name: "Kavya Nair", ClassName: "5", Section: "B"},
		{Name: "Rohan Gupta", ClassName: "5", Section: "B"},
		{Name: "Ananya Iyer", ClassName: "6", Section: "A"},
		{Name: "Arjun Singh", ClassName: "6", Section: "A"},
		{Name: "Sneha Kulkarni", ClassName: "6", Section: "B"},
	}
	studentIDs := make([]int, len(students))
	for i, s := range students {
		err := pool.QueryRow(ctx,
			`INSERT INTO students (name, class_name, section) VALUES ($1, $2, $3) RETURNING id`,
			s.Name, s.ClassName, s.Section,
		).Scan(&studentIDs[i])
		if err != nil {
			log.Fatal().Err(err).Str("name", s.Name).Msg("Failed to seed student")
		}
	}
	fmt.Printf("Seeded %d students\n", len(students))

	fmt.Println("=== Seeding fee structures ===")

	structures := []model.FeeStructureRequest{
		{
			ClassName: "5",
			Tuition:   decimal.NewFromInt(3000),
			Annual:    decimal.NewFromInt(1000),
			Services: []fees.ServiceComponent{
				{Name: "transport", Amount: decimal.NewFromInt(200)},
				{Name: "lab", Amount: decimal.NewFromInt(300)},
			},
		},
		{
			ClassName: "6",
			Tuition:   decimal.NewFromInt(3500),
			Annual:    decimal.NewFromInt(1000),
			Services: []fees.ServiceComponent{
				{Name: "transport", Amount: decimal.NewFromInt(200)},
			},
		},
	}
	for i := range structures {
		if _, err := feeService.CreateStructure(ctx, &structures[i]); err != nil {
			log.Fatal().Err(err).Str("class", structures[i].ClassName).Msg("Failed to seed fee structure")
		}
	}
	fmt.Printf("Seeded %d fee structures\n", len(structures))

	fmt.Println("=== Seeding section extra fee ===")

	if _, err := feeService.CreateSectionFee(ctx, &model.SectionExtraFeeRequest{
		ClassName:   "5",
		Section:     "A",
		ServiceName: "smart-class",
		Amount:      decimal.NewFromInt(400),
	}, 0); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed section extra fee")
	}

	fmt.Println("=== Seeding payments ===")

	// First two students of class 5A pay their Q1 in full.
	for _, id := range studentIDs[:2] {
		if _, err := pool.Exec(ctx,
			`INSERT INTO fee_payments (student_id, quarter, amount) VALUES ($1, 1, $2)`,
			id, decimal.NewFromInt(1225),
		); err != nil {
			log.Fatal().Err(err).Int("student_id", id).Msg("Failed to seed payment")
		}
	}

	fmt.Println("Done")
}
