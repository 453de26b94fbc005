package main

import (
	"context"

	"thinkpad-notes-be/internal/config"
	"thinkpad-notes-be/internal/constant"
	"thinkpad-notes-be/internal/controller"
	"thinkpad-notes-be/internal/pkg/serverutils"
	"thinkpad-notes-be/internal/repository"
	"thinkpad-notes-be/internal/service"
	"thinkpad-notes-be/pkg/database"
	"thinkpad-notes-be/pkg/identity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		logrus.Fatalf("loading config: %v", err)
	}

	db := database.ConnectDB(cfg.DBConnString)
	if err := database.Migrate(context.Background(), db); err != nil {
		logrus.Fatalf("migrating database: %v", err)
	}

	verifier := identity.NewTokenVerifier(cfg.TokenSecret, cfg.ProjectId)

	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	publisherService := service.NewPublisherService(constant.NoteChangedTopicName, pubSub)

	noteRepository := repository.NewNoteRepository(db)
	noteService := service.NewNoteService(noteRepository, publisherService)

	noteController := controller.NewNoteController(noteService)
	authController := controller.NewAuthController(verifier)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowedOrigin,
		AllowMethods: "GET,POST,PUT,DELETE",
	}))
	app.Use(func(c *fiber.Ctx) error {
		logrus.Infof("%s %s", c.Method(), c.OriginalURL())
		return c.Next()
	})
	app.Use(serverutils.ErrorHandlerMiddleware())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ThinkPad Notes API is running")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	authController.RegisterRoutes(api)
	noteController.RegisterRoutes(api, serverutils.Protected(verifier))

	logrus.Infof("serving project %s (bucket %s) on port %s", cfg.ProjectId, cfg.StorageBucket, cfg.Port)
	logrus.Fatal(app.Listen(":" + cfg.Port))
}
