package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"cinebook/internal/halls"
	"cinebook/internal/movies"
	"cinebook/internal/shared/config"
	"cinebook/internal/shared/database"
	"cinebook/internal/showtimes"
	"cinebook/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting CineBook Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"booking_seats",
		"bookings",
		"showtimes",
		"seats",
		"halls",
		"movies",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	movieIDs, err := s.SeedMovies()
	if err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}

	hallIDs, err := s.SeedHalls(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed halls: %w", err)
	}

	if err := s.SeedShowtimes(movieIDs, hallIDs); err != nil {
		return fmt.Errorf("failed to seed showtimes: %w", err)
	}

	// Clear stale seat holds so availability starts fresh
	if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to clear Redis cache: %v", err)
	}

	return nil
}

// SeedUsers creates a customer, a receptionist and an admin account
func (s *Seeder) SeedUsers() error {
	fmt.Println("  👤 Seeding users...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		name  string
		email string
		role  users.Role
	}{
		{"Admin User", "admin@cinebook.local", users.RoleAdmin},
		{"Front Desk", "reception@cinebook.local", users.RoleReceptionist},
		{"Ada Moviegoer", "ada@cinebook.local", users.RoleCustomer},
		{"Ben Moviegoer", "ben@cinebook.local", users.RoleCustomer},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:       uuid.New(),
			Name:     userData.name,
			Email:    userData.email,
			Password: string(hashedPassword),
			Role:     userData.role,
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return nil
}

// SeedMovies creates the demo movie catalog
func (s *Seeder) SeedMovies() ([]uuid.UUID, error) {
	fmt.Println("  🎬 Seeding movies...")

	moviesData := []movies.Movie{
		{
			ID:          uuid.New(),
			Title:       "Midnight Orbit",
			Description: "A stranded crew races a decaying orbit to bring their ship home.",
			Genres:      "sci-fi,thriller",
			ReleaseDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			Rating:      8.1,
			Director:    "R. Okafor",
		},
		{
			ID:          uuid.New(),
			Title:       "The Paper Garden",
			Description: "A botanist rebuilds her late father's impossible greenhouse.",
			Genres:      "drama",
			ReleaseDate: time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC),
			Rating:      7.6,
			Director:    "L. Marchetti",
		},
		{
			ID:          uuid.New(),
			Title:       "Fast Lane Heist",
			Description: "Three retired drivers take one last job on opening night.",
			Genres:      "action,comedy",
			ReleaseDate: time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC),
			Rating:      6.9,
			Director:    "D. Sorensen",
		},
	}

	movieIDs := make([]uuid.UUID, 0, len(moviesData))
	for _, movie := range moviesData {
		if err := s.db.PostgreSQL.Create(&movie).Error; err != nil {
			return nil, fmt.Errorf("failed to create movie %s: %w", movie.Title, err)
		}
		movieIDs = append(movieIDs, movie.ID)
		fmt.Printf("    ✅ Created movie: %s\n", movie.Title)
	}

	return movieIDs, nil
}

// SeedHalls creates halls with their full seat grids
func (s *Seeder) SeedHalls(ctx context.Context) ([]uuid.UUID, error) {
	fmt.Println("  🏟️ Seeding halls...")

	hallService := halls.NewService(halls.NewRepository(s.db.PostgreSQL))

	hallsData := []struct {
		name    string
		rows    int
		columns int
	}{
		{"Hall A", 8, 12},
		{"Hall B", 6, 10},
		{"Screening Room", 4, 6},
	}

	hallIDs := make([]uuid.UUID, 0, len(hallsData))
	for _, hallData := range hallsData {
		hall, err := hallService.CreateHall(ctx, hallData.name, hallData.rows, hallData.columns)
		if err != nil {
			return nil, fmt.Errorf("failed to create hall %s: %w", hallData.name, err)
		}
		hallIDs = append(hallIDs, hall.ID)
		fmt.Printf("    ✅ Created hall: %s (%d seats)\n", hall.Name, hallData.rows*hallData.columns)
	}

	return hallIDs, nil
}

// SeedShowtimes schedules each movie across the halls over the next week
func (s *Seeder) SeedShowtimes(movieIDs, hallIDs []uuid.UUID) error {
	fmt.Println("  🕐 Seeding showtimes...")

	startTimes := []string{"14:00", "17:30", "21:00"}
	prices := []float64{9.50, 12.00, 14.50}

	showtimeService := showtimes.NewService(showtimes.NewRepository(s.db.PostgreSQL))

	count := 0
	for day := 1; day <= 7; day++ {
		date := time.Now().UTC().AddDate(0, 0, day).Truncate(24 * time.Hour)
		for i, movieID := range movieIDs {
			req := showtimes.CreateShowtimeRequest{
				MovieID: movieID.String(),
				HallID:  hallIDs[i%len(hallIDs)].String(),
				Date:    date,
				Time:    startTimes[i%len(startTimes)],
				Price:   prices[i%len(prices)],
			}

			if _, err := showtimeService.CreateShowtime(context.Background(), req); err != nil {
				return fmt.Errorf("failed to create showtime: %w", err)
			}
			count++
		}
	}

	fmt.Printf("    ✅ Created %d showtimes across %d days\n", count, 7)
	return nil
}
