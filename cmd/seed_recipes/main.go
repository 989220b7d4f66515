package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/database"
	"github.com/pageza/pantrychef/backend/internal/logging"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/service"
)

type sampleRecipe struct {
	name         string
	ingredients  []string
	instructions string
}

var sampleRecipes = []sampleRecipe{
	{
		name:         "Tomato Basil Pasta",
		ingredients:  []string{"spaghetti", "tomatoes", "basil", "garlic", "olive oil"},
		instructions: "Boil the pasta. Saute garlic in olive oil, add tomatoes and simmer. Toss with pasta and basil.",
	},
	{
		name:         "Vegetable Stir Fry",
		ingredients:  []string{"broccoli", "carrot", "bell pepper", "soy sauce", "ginger"},
		instructions: "Stir fry the vegetables over high heat with ginger. Finish with soy sauce.",
	},
	{
		name:         "Overnight Oats",
		ingredients:  []string{"rolled oats", "milk", "honey", "blueberries"},
		instructions: "Combine oats, milk and honey. Refrigerate overnight and top with blueberries.",
	},
	{
		name:         "Lentil Soup",
		ingredients:  []string{"red lentils", "onion", "carrot", "cumin", "vegetable stock"},
		instructions: "Soften onion and carrot, add cumin, lentils and stock. Simmer for 25 minutes and blend.",
	},
	{
		name:         "Guacamole",
		ingredients:  []string{"avocado", "lime", "red onion", "cilantro", "salt"},
		instructions: "Mash the avocado with lime juice. Fold in onion, cilantro and salt.",
	},
}

var (
	username string
	password string
)

var rootCmd = &cobra.Command{
	Use:   "seed_recipes",
	Short: "Save a set of sample recipes for a seed user",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		logger, err := logging.New(config.GetEnvironment(), cfg.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		db, err := database.New(cfg, logger)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()
		if cfg.DBDriver == config.DriverSQLite {
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
		}

		ctx := cmd.Context()
		users := service.NewUserService(db, logger)
		recipes := service.NewRecipeService(db, logger)

		user, err := seedUser(ctx, users, db)
		if err != nil {
			return err
		}

		for _, r := range sampleRecipes {
			res, err := recipes.SaveRecipe(ctx, service.SaveRecipeInput{
				Name:         r.name,
				Ingredients:  r.ingredients,
				Instructions: r.instructions,
				UserID:       user.ID.String(),
			})
			if err != nil {
				logger.Error("failed to seed recipe", zap.String("name", r.name), zap.Error(err))
				continue
			}
			logger.Info("seeded recipe", zap.String("name", r.name), zap.String("outcome", string(res.Outcome)))
		}
		return nil
	},
}

// seedUser creates the seed account, reusing it when it already exists
func seedUser(ctx context.Context, users *service.UserService, db *gorm.DB) (*models.User, error) {
	user, err := users.CreateUser(ctx, service.CreateUserInput{Username: username, Password: password})
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, service.ErrConflict) {
		return nil, err
	}

	var existing models.User
	if err := db.WithContext(ctx).Where("username = ?", username).First(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to load seed user: %w", err)
	}
	return &existing, nil
}

func init() {
	rootCmd.Flags().StringVar(&username, "username", "seed_user", "username of the seed account")
	rootCmd.Flags().StringVar(&password, "password", "seedpassword123", "password of the seed account")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
