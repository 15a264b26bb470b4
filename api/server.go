package api

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	db "github.com/HilomPH/Hilom-Backend/db/sqlc"
	basemodels "github.com/HilomPH/Hilom-Backend/models"
	"github.com/HilomPH/Hilom-Backend/services"
	"github.com/HilomPH/Hilom-Backend/services/booking"
	"github.com/HilomPH/Hilom-Backend/services/chat"
	"github.com/HilomPH/Hilom-Backend/services/location"
	"github.com/HilomPH/Hilom-Backend/services/monitoring/logging"
	"github.com/HilomPH/Hilom-Backend/services/monitoring/metrics"
	"github.com/HilomPH/Hilom-Backend/services/monitoring/tasks"
	"github.com/HilomPH/Hilom-Backend/services/notification"
	"github.com/HilomPH/Hilom-Backend/services/notification/notification_channel"
	"github.com/HilomPH/Hilom-Backend/services/reminder"
	"github.com/HilomPH/Hilom-Backend/services/wallet"
	"github.com/HilomPH/Hilom-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const liveLocationTTL = 5 * time.Minute

type Server struct {
	router        *gin.Engine
	store         *db.Store
	config        *utils.Config
	logger        *logging.Logger
	tokens        *utils.JWTToken
	registry      *prometheus.Registry
	metrics       *metrics.Metrics
	scheduler     *tasks.TaskScheduler
	hub           *chat.Hub
	hubCancel     context.CancelFunc
	bookings      *booking.BookingService
	wallets       *wallet.WalletService
	notifications *notification.NotificationService
	reminders     *reminder.ReminderService
	chats         *chat.ChatService
}

func NewServer(envPath string) *Server {
	c, err := utils.LoadConfig(envPath)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	conn, err := sql.Open(c.DBDriver, utils.GetDBSource(c, c.DBName))
	if err != nil {
		panic(fmt.Sprintf("Could not load DB: %v", err))
	}

	m, err := migrate.New(
		"file://db/migrations",
		utils.GetDBSource(c, c.DBName),
	)
	if err != nil {
		log.Fatalf("Unable to instantiate the database schema migrator - %v", err)
	}

	if err := m.Up(); err != nil {
		if err != migrate.ErrNoChange {
			log.Fatalf("Unable to migrate up to the latest database schema - %v", err)
		}
	}

	store := db.NewStore(conn)
	g := gin.Default()
	l := logging.NewLogger()
	l.Info(fmt.Sprintf("booting %v with config: %+v", c.Env, c.Redact()))

	registry := prometheus.NewRegistry()
	mtr := metrics.New(registry)

	redisService, err := services.NewRedisService(&services.RedisConfig{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPassword,
	})
	if err != nil {
		panic(fmt.Sprintf("Could not reach redis: %v", err))
	}
	locations := location.NewCache(redisService, liveLocationTTL)

	// The push channel degrades to log lines when firebase credentials
	// are absent, so local environments come up without them.
	var push notification.PushSender
	if p := notification_channel.NewPushNotificationService(l); p != nil {
		push = p
	}
	notifications := notification.NewNotificationService(
		store,
		push,
		&notification.SMSChannel{Config: c},
		notification.NewEmailChannel(c),
		mtr,
		l,
	)

	numbers, err := booking.NewNumberGenerator(c.SigningKey)
	if err != nil {
		panic(fmt.Sprintf("Could not build booking number generator: %v", err))
	}

	wallets := wallet.NewWalletService(store, l, c.CashFeeRate)
	bookings := booking.NewBookingService(store, wallets, notifications, locations, numbers, mtr, l, c)

	scheduler := tasks.NewTaskScheduler(l)
	reminders, err := reminder.NewReminderService(store, notifications, mtr, l, reminder.ConfigFromApp(c))
	if err != nil {
		panic(fmt.Sprintf("Could not build reminder service: %v", err))
	}

	hub := chat.NewHub(l)
	chats := chat.NewChatService(store, hub, mtr, l)

	g.Use(CORSMiddleware())
	g.Use(l.LoggingMiddleWare())

	return &Server{
		router:        g,
		store:         store,
		config:        c,
		logger:        l,
		tokens:        utils.NewJWTToken(c),
		registry:      registry,
		metrics:       mtr,
		scheduler:     scheduler,
		hub:           hub,
		bookings:      bookings,
		wallets:       wallets,
		notifications: notifications,
		reminders:     reminders,
		chats:         chats,
	}
}

func (s *Server) Start() {

	hubCtx, cancel := context.WithCancel(context.Background())
	s.hubCancel = cancel
	go s.hub.Run(hubCtx)

	if err := s.reminders.RegisterWith(s.scheduler); err != nil {
		panic(fmt.Sprintf("Could not schedule reminder scans: %v", err))
	}

	dr := basemodels.SuccessResponse{
		Status:  "success",
		Message: "Welcome to Hilom!",
		Version: utils.REVISION,
	}

	s.router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dr)
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	/// Register Object Routers Below
	Bookings{}.router(s)
	Wallets{}.router(s)
	Notifications{}.router(s)
	ChatGateway{}.router(s)

	s.router.Run(fmt.Sprintf(":%v", s.config.ServerPort))
}

// Stop winds down the background loops. The HTTP listener is left to
// the process supervisor, matching router.Run's blocking behavior.
func (s *Server) Stop() {
	if s.hubCancel != nil {
		s.hubCancel()
	}
	s.scheduler.Shutdown()
}
