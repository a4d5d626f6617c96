package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/FlavioCraftsCode/Jogo-de-Damas/internal/config"
	"github.com/FlavioCraftsCode/Jogo-de-Damas/internal/controller"
	"github.com/FlavioCraftsCode/Jogo-de-Damas/internal/log2"
	"github.com/FlavioCraftsCode/Jogo-de-Damas/internal/model"
	"github.com/FlavioCraftsCode/Jogo-de-Damas/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log2.Configure(cfg.LogLevel)

	if err := newApp(cfg).Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("exiting")
	}
}

func newApp(cfg config.Config) *cli.App {
	return &cli.App{
		Name:  "checkers",
		Usage: "Play checkers against a greedy AI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "trace, debug, info, warn or error",
				Value: cfg.LogLevel,
			},
		},
		Before: func(cCtx *cli.Context) error {
			log2.Configure(cCtx.String("log-level"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP and WebSocket server",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Usage:   "port number",
						Value:   cfg.Port,
					},
					&cli.DurationFlag{
						Name:  "ai-delay",
						Usage: "pause before the AI answers a move",
						Value: cfg.AIDelay,
					},
				},
				Action: func(cCtx *cli.Context) error {
					return serve(cCtx.Int("port"), cCtx.Duration("ai-delay"), cfg.AllowedOrigins)
				},
			},
			{
				Name:  "play",
				Usage: "Play a game in the terminal",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "ai-delay",
						Usage: "pause before the AI answers a move",
						Value: cfg.AIDelay,
					},
				},
				Action: func(cCtx *cli.Context) error {
					return play(cCtx.App.Reader, cCtx.App.Writer, cCtx.Duration("ai-delay"))
				},
			},
		},
	}
}

func serve(port int, aiDelay time.Duration, allowedOrigins string) error {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: allowedOrigins != "*",
	}))
	app.Use(func(c *fiber.Ctx) error {
		log.Debug().Str("method", c.Method()).Str("path", c.Path()).Msg("incoming request")
		return c.Next()
	})

	settings := model.DefaultGameSettings()
	settings.AIDelay = aiDelay
	gameManager := service.NewGameManager(settings)
	gameService := service.NewGameService(gameManager)

	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)
	controller.SetupRoutes(app, gameController, wsController, splitOrigins(allowedOrigins))

	addr := fmt.Sprintf(":%d", port)
	log.Info().Str("addr", addr).Dur("ai_delay", aiDelay).Msg("server listening")
	return app.Listen(addr)
}

func splitOrigins(origins string) []string {
	var out []string
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}
