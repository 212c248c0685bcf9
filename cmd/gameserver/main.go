package main

import (
	"time"

	"github.com/duddn2012/GameServer/internal/api"
	"github.com/duddn2012/GameServer/internal/config"
	"github.com/duddn2012/GameServer/internal/constants"
	"github.com/duddn2012/GameServer/internal/logging"
	"github.com/duddn2012/GameServer/internal/service"
	"github.com/duddn2012/GameServer/internal/version"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"
)

func main() {
	// A local .env file is optional; real deployments set the variables
	// directly.
	_ = godotenv.Load()

	env, err := config.ParseEnv()
	if err != nil {
		logging.Fatal("Invalid environment configuration", err, nil)
	}
	if env.JWTSecret == "" {
		logging.Warn("JWT_SECRET not set, using an in-memory secret; sessions will not survive a restart", nil)
	}

	cfg := loadConfigOrExit(env.ConfigPath)
	repo := createRepositoryOrExit(env.DBPath, cfg)
	svc := service.NewService(repo)

	startRoomSweeper(svc, env.RoomStaleTTL, env.SweepEvery)

	handler := api.NewHandler(repo, svc)
	authHandler := api.NewAuthHandler(repo, env.SessionTTL)
	playHub := api.NewPlayHub(svc)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.POST(constants.RouteSignup, authHandler.Signup)
		apiRoutes.POST(constants.RouteLogin, authHandler.Login)
		apiRoutes.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)
		apiRoutes.GET(constants.RouteSkills, handler.ListSkills)
		apiRoutes.GET(constants.RouteItems, handler.ListItems)
		apiRoutes.GET(constants.RouteMatchRooms, handler.ListMatchRooms)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.POST(constants.RouteSessionToken, authHandler.SessionToken)

		protected.POST(constants.RouteCharacters, handler.CreateCharacter)
		protected.GET(constants.RouteCharacters, handler.ListCharacters)
		protected.GET(constants.RouteCharacterByID, handler.GetCharacter)
		protected.GET(constants.RouteCharacterStat, handler.GetTotalStat)
		protected.GET(constants.RouteCharacterSkills, handler.ListCharacterSkills)
		protected.POST(constants.RouteCharacterLearn, handler.LearnSkill)
		protected.PUT(constants.RouteCharacterEquipment, handler.SetEquipment)

		protected.POST(constants.RouteMatchRooms, handler.CreateMatchRoom)
		protected.POST(constants.RouteMatchRoomEnter, handler.EnterMatchRoom)
		protected.GET(constants.RouteMatchHistories, handler.ListMatchHistories)
	}

	// Websocket play channel. Tokens travel in the query string, so the
	// handler authenticates itself instead of using the header middleware.
	router.GET(constants.RoutePlayWebSocket, playHub.ServePlay)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr, "version": version.Version, "commit": version.Commit})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

// startRoomSweeper resets rooms stuck in play after both clients
// disconnected without finishing the match.
func startRoomSweeper(svc *service.Service, staleTTL, every time.Duration) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		logging.Fatal("Failed to create scheduler", err, nil)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			if _, err := svc.ExpireStaleRooms(staleTTL); err != nil {
				logging.Error("room sweep failed", err, nil)
			}
		}),
	)
	if err != nil {
		logging.Fatal("Failed to schedule room sweeper", err, nil)
	}
	scheduler.Start()
}
