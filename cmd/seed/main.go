package main

import (
	"context"
	"log"
	"math/rand"
	"os"

	"golang.org/x/crypto/bcrypt"

	"altoev/internal/database"
	"altoev/internal/domain"
	"altoev/internal/repository"
)

const vinAlphabet = "ABCDEFGHJKLMNPRSTUVWXYZ0123456789"

func randomVIN() string {
	b := make([]byte, 17)
	for i := range b {
		b[i] = vinAlphabet[rand.Intn(len(vinAlphabet))]
	}
	return string(b)
}

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "altoev.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	ctx := context.Background()
	vehicleRepo := repository.NewVehicleRepository(db)
	extraRepo := repository.NewExtraRepository(db)
	userRepo := repository.NewUserRepository(db)

	vehicles := []domain.Vehicle{
		{CarName: "Tesla Model 3", Year: 2023, Make: "Tesla", Model: "Model 3", VIN: randomVIN(), DailyPrice: 99, Status: domain.VehicleActive},
		{CarName: "Tesla Model Y", Year: 2023, Make: "Tesla", Model: "Model Y", VIN: randomVIN(), DailyPrice: 119, Status: domain.VehicleActive},
		{CarName: "Tesla Model S", Year: 2023, Make: "Tesla", Model: "Model S", VIN: randomVIN(), DailyPrice: 139, Status: domain.VehicleActive},
	}
	for i := range vehicles {
		if err := vehicleRepo.Create(ctx, &vehicles[i]); err != nil {
			log.Printf("skipping vehicle %s: %v", vehicles[i].CarName, err)
			continue
		}
		log.Printf("seeded vehicle %s ($%.0f/day)", vehicles[i].CarName, vehicles[i].DailyPrice)
	}

	extras := []domain.Extra{
		{
			Name:        "Supplemental Liability Insurance (SLI)",
			Price:       29.99,
			PriceType:   domain.PricePerDay,
			Description: "Provides additional liability coverage beyond what's included in the base rental. Protects you from third-party claims in case of an accident.",
		},
		{
			Name:        "Supplemental Physical Damage Warranty (SPDW)",
			Price:       49.99,
			PriceType:   domain.PricePerDay,
			Description: "Covers the physical damage to the rental vehicle in the event of an accident, reducing the out-of-pocket expenses for repairs.",
		},
		{
			Name:        "Personal Effects Insurance (PEI)",
			Price:       9.99,
			PriceType:   domain.PricePerDay,
			Description: "Protects your personal belongings in case of theft or damage while they are inside the rental car.",
		},
		{
			Name:        "Unlimited Mileage",
			Price:       49.99,
			PriceType:   domain.PricePerDay,
			Description: "Allows you to drive unlimited miles without additional charges, perfect for long-distance trips.",
		},
		{
			Name:        "Prepaid Recharge",
			Price:       29.99,
			PriceType:   domain.PricePerReservation,
			Description: "Covers the cost of refueling the vehicle before it is returned. Convenient option to avoid finding a gas station before drop-off.",
		},
	}
	for i := range extras {
		if err := extraRepo.Create(ctx, &extras[i]); err != nil {
			log.Printf("skipping extra %s: %v", extras[i].Name, err)
			continue
		}
		log.Printf("seeded extra %s", extras[i].Name)
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail != "" && adminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("hashing admin password:", err)
		}
		admin := domain.User{Email: adminEmail, PasswordHash: string(hash), Role: domain.RoleAdmin}
		if err := userRepo.Create(ctx, &admin); err != nil {
			log.Printf("skipping admin user: %v", err)
		} else {
			log.Printf("seeded admin user %s", adminEmail)
		}
	} else {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin user")
	}

	log.Println("Seed complete")
}
