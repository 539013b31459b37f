// Dev seed: migrates the schema and loads demo clinics and vets so the
// appointment wizard has something to select.
package main

import (
	"log/slog"
	"os"

	"petcare/internal/app"
	"petcare/internal/config"
	"petcare/internal/database"
	"petcare/internal/domain"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := database.Migrate(db, app.Models()...); err != nil {
		logger.Error("migrate failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	clinics := []domain.Clinic{
		{
			Name:    "Clinique des Animaux",
			Address: "12 rue des Fleurs, 75001 Paris",
			Phone:   "01 23 45 67 89",
			Image:   "🏥",
			Rating:  4.8,
			Vets: []domain.Vet{
				{Name: "Dr. Sophie Martin", Specialty: "Médecine générale"},
				{Name: "Dr. Pierre Dubois", Specialty: "Chirurgie"},
			},
		},
		{
			Name:    "Vétérinaire du Parc",
			Address: "45 avenue du Parc, 75002 Paris",
			Phone:   "01 98 76 54 32",
			Image:   "🏨",
			Rating:  4.5,
			Vets: []domain.Vet{
				{Name: "Dr. Jean Bernard", Specialty: "Dermatologie"},
			},
		},
	}

	for i := range clinics {
		if err := db.Create(&clinics[i]).Error; err != nil {
			logger.Error("seed failed", slog.String("clinic", clinics[i].Name), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("database seeded", slog.Int("clinics", len(clinics)))
}
