package app

import (
	"os"

	"github.com/esnupy/lafa/internal/chat"
	"github.com/esnupy/lafa/internal/driver"
	"github.com/esnupy/lafa/internal/messaging/kafka"
	"github.com/esnupy/lafa/internal/opsview"
	"github.com/esnupy/lafa/internal/payroll"
	"github.com/esnupy/lafa/internal/payrule"
	"github.com/esnupy/lafa/internal/rbac"
	"github.com/esnupy/lafa/internal/shift"
	"github.com/esnupy/lafa/internal/trip"
	"github.com/esnupy/lafa/internal/vehicle"
	"github.com/esnupy/lafa/internal/week"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	cal, err := week.NewCalendar(os.Getenv("FLEET_TIMEZONE"), nil)
	if err != nil {
		return err
	}
	rules := payrule.DefaultRules()

	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Repositories ---
	driverRepo := driver.NewRepository(gormDB)
	vehicleRepo := vehicle.NewRepository(gormDB)
	shiftRepo := shift.NewRepository(gormDB)
	tripRepo := trip.NewRepository(gormDB)
	earningsRepo := trip.NewEarningsRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	driverService := driver.NewService(driverRepo)
	vehicleService := vehicle.NewService(vehicleRepo)
	shiftService := shift.NewService(gormDB, shiftRepo, vehicleRepo, week.SystemClock())
	tripService := trip.NewService(gormDB, tripRepo, earningsRepo, outboxRepo, driverService.Directory(), cal)
	payrollService := payroll.NewService(
		gormDB, payrollRepo,
		driverService.Directory(), earningsRepo, tripRepo,
		shiftService, outboxRepo, cal, rules,
	)
	opsviewService := opsview.NewService(
		driverService.Directory(), vehicleService, shiftService,
		tripService, earningsRepo, payrollService,
		cal, rules, rdb,
	)
	chatService := chat.NewService(chat.NewAnthropicClient(), opsviewService, rules)

	// --- Handlers ---
	driverHandler := driver.NewHandler(driverService)
	vehicleHandler := vehicle.NewHandler(vehicleService)
	shiftHandler := shift.NewHandler(shiftService)
	tripHandler := trip.NewHandler(tripService, rdb)
	payrollHandler := payroll.NewHandler(payrollService, rdb)
	opsviewHandler := opsview.NewHandler(opsviewService)
	chatHandler := chat.NewHandler(chatService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		driver.RegisterRoutes(api, driverHandler, rbacService)
		vehicle.RegisterRoutes(api, vehicleHandler, rbacService)
		shift.RegisterRoutes(api, shiftHandler, rbacService)
		trip.RegisterRoutes(api, tripHandler, rbacService, rdb)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		opsview.RegisterRoutes(api, opsviewHandler, rbacService)
		chat.RegisterRoutes(api, chatHandler, rbacService)
	}

	return nil
}
