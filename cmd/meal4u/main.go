package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Zhengdong-uga/meal4u-sub000/internal/app"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/cache"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/config"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/database"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/gen"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/identity"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/images"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/llm"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/logger"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/metrics"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/plan"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/prefs"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/remote"
)

func main() {
	ctx := context.Background()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.InitWithConfig(logger.Config{Level: slog.LevelInfo, Format: cfg.LogFormat})

	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	fileCache, err := cache.NewFileCache(cfg.DataDir)
	if err != nil {
		logger.Error("failed to initialize plan cache", "error", err)
		os.Exit(1)
	}

	var ids identity.Provider = identity.Anonymous{}
	if cfg.AuthToken != "" {
		tokenProvider, err := identity.NewTokenProvider(cfg.AuthToken, cfg.AuthSecret)
		if err != nil {
			logger.Error("failed to resolve identity from auth token", "error", err)
			os.Exit(1)
		}
		ids = tokenProvider
	}

	store := plan.NewStore(ids, remote.NewSQLiteStore(db.SQL), fileCache)
	metricsStore := metrics.NewStore(db.SQL)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		genCmd := flag.NewFlagSet("generate", flag.ExitOnError)
		goal := genCmd.String("goal", "", "Dietary goal, e.g. 'gain muscle'")
		diet := genCmd.String("diet", "", "Diet type, e.g. 'vegetarian'")
		restrictions := genCmd.String("restrictions", "", "Comma-separated allergies/intolerances")
		dislikes := genCmd.String("dislikes", "", "Comma-separated disliked ingredients")
		likes := genCmd.String("likes", "", "Comma-separated favorite ingredients")
		pantry := genCmd.String("pantry", "", "Comma-separated ingredients at home")
		other := genCmd.Bool("other-ingredients", false, "Allow ingredients beyond the pantry list")
		request := genCmd.String("request", "", "Special request")
		timeBudget := genCmd.String("time-budget", "", "Available cooking time, e.g. '30 minutes'")
		mealType := genCmd.String("meal-type", string(prefs.MealTypeMeals), "Meals, Drinks, or Dessert")
		prepareTime := genCmd.String("prepare-time", "", "Target preparation time bucket")
		dishType := genCmd.String("dish-type", "", "Cuisine label, e.g. 'Italian'")
		date := genCmd.String("date", "", "Optional date (YYYY-MM-DD) to place the recipe on")
		slot := genCmd.String("slot", "", "Optional slot: breakfast, lunch, dinner, or snacks")
		genCmd.Parse(os.Args[2:])

		textGen, closeGen, err := newTextGenerator(ctx, cfg)
		if err != nil {
			logger.Error("failed to initialize text generator", "error", err)
			os.Exit(1)
		}
		defer closeGen()

		var imageLookup gen.ImageLookup
		if cfg.PexelsAPIKey != "" {
			imageLookup = images.NewPexelsClient(cfg.PexelsAPIKey)
		}

		genService := gen.NewService(textGen, imageLookup, metricsStore)
		application := app.NewApp(store, genService, metricsStore, cfg.DataDir)

		p := prefs.UserPreferences{
			Goal:              *goal,
			DietType:          *diet,
			Restrictions:      splitList(*restrictions),
			Dislikes:          splitList(*dislikes),
			Likes:             splitList(*likes),
			PantryIngredients: splitList(*pantry),
			ConsiderOther:     *other,
			SpecialRequest:    *request,
			TimeBudget:        *timeBudget,
			MealType:          prefs.MealType(*mealType),
			PrepareTime:       *prepareTime,
			DishType:          *dishType,
		}

		if err := application.GenerateRecipe(ctx, p, *date, plan.Slot(*slot)); err != nil {
			logger.Error("generation failed", "error", err)
			os.Exit(1)
		}

	case "plan":
		application := app.NewApp(store, nil, metricsStore, cfg.DataDir)
		if err := runPlanCommand(ctx, application, os.Args[2:]); err != nil {
			logger.Error("plan command failed", "error", err)
			os.Exit(1)
		}

	case "markers":
		application := app.NewApp(store, nil, metricsStore, cfg.DataDir)
		if err := application.ShowMarkers(ctx); err != nil {
			logger.Error("markers command failed", "error", err)
			os.Exit(1)
		}

	case "usage":
		usageCmd := flag.NewFlagSet("usage", flag.ExitOnError)
		days := usageCmd.Int("days", 30, "Report usage for the last N days")
		usageCmd.Parse(os.Args[2:])

		application := app.NewApp(store, nil, metricsStore, cfg.DataDir)
		if err := application.ShowUsage(ctx, *days); err != nil {
			logger.Error("usage command failed", "error", err)
			os.Exit(1)
		}

	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(ctx, *days)
		if err != nil {
			logger.Error("cleanup failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runPlanCommand(ctx context.Context, application *app.App, args []string) error {
	if len(args) == 0 {
		return application.ShowPlan(ctx)
	}

	switch args[0] {
	case "show":
		return application.ShowPlan(ctx)

	case "place":
		placeCmd := flag.NewFlagSet("plan place", flag.ExitOnError)
		date := placeCmd.String("date", "", "Date (YYYY-MM-DD)")
		slot := placeCmd.String("slot", "", "Slot: breakfast, lunch, dinner, or snacks")
		name := placeCmd.String("name", "", "Recipe name")
		displayTime := placeCmd.String("time", "", "Optional display time, e.g. '6:30 pm'")
		placeCmd.Parse(args[1:])
		return application.PlaceRecipe(ctx, *date, plan.Slot(*slot), *name, *displayTime)

	case "remove":
		removeCmd := flag.NewFlagSet("plan remove", flag.ExitOnError)
		date := removeCmd.String("date", "", "Date (YYYY-MM-DD)")
		slot := removeCmd.String("slot", "", "Slot: breakfast, lunch, dinner, or snacks")
		index := removeCmd.Int("index", -1, "Position within the slot")
		removeCmd.Parse(args[1:])
		return application.RemoveRecipe(ctx, *date, plan.Slot(*slot), *index)

	case "reschedule":
		reschedCmd := flag.NewFlagSet("plan reschedule", flag.ExitOnError)
		date := reschedCmd.String("date", "", "Date (YYYY-MM-DD)")
		slot := reschedCmd.String("slot", "", "Slot: breakfast, lunch, dinner, or snacks")
		id := reschedCmd.String("id", "", "Placement id (see 'plan show')")
		newTime := reschedCmd.String("time", "", "New display time, e.g. '6:30 pm'")
		reschedCmd.Parse(args[1:])
		return application.RescheduleRecipe(ctx, *date, plan.Slot(*slot), *id, *newTime)

	default:
		return fmt.Errorf("unknown plan subcommand: %s", args[0])
	}
}

func newTextGenerator(ctx context.Context, cfg *config.Config) (llm.TextGenerator, func(), error) {
	switch cfg.TextBackend {
	case config.BackendGroq:
		return llm.NewGroqClient(cfg.GroqAPIKey), func() {}, nil
	default:
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { client.Close() }, nil
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func printUsage() {
	fmt.Println("Usage: meal4u <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  generate           Generate a recipe from preferences (optionally place it)")
	fmt.Println("  plan [show]        Show the current meal plan")
	fmt.Println("  plan place         Place a recipe on a date and slot")
	fmt.Println("  plan remove        Remove a recipe by slot index")
	fmt.Println("  plan reschedule    Change a placed recipe's display time")
	fmt.Println("  markers            Show which dates have meals planned")
	fmt.Println("  usage              Show generation usage for the last N days")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}
