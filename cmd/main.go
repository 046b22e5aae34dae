package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/housecheck/inspections-service/internal/app"
	"github.com/housecheck/inspections-service/internal/config"
	"github.com/housecheck/inspections-service/internal/constants"
	"github.com/housecheck/inspections-service/internal/controllers"
	"github.com/housecheck/inspections-service/internal/middleware"
	"github.com/housecheck/inspections-service/internal/repositories"
	"github.com/housecheck/inspections-service/internal/routes"
	"github.com/housecheck/inspections-service/internal/services"
	"github.com/housecheck/inspections-service/internal/storage"
	"github.com/housecheck/inspections-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()
	defer cfg.Close()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize inspections-service:", err)
	}
	defer application.Close()

	propRepo := repositories.NewPropertyRepository(application.DB)
	unitRepo := repositories.NewUnitRepository(application.DB)
	inspRepo := repositories.NewInspectionRepository(application.DB)
	subtaskRepo := repositories.NewSubtaskRepository(application.DB)
	tmplRepo := repositories.NewTemplateRepository(application.DB)
	invRepo := repositories.NewInventoryTypeRepository(application.DB)
	profileRepo := repositories.NewProfileRepository(application.DB)

	store, err := storage.NewClient(cfg.StorageBaseURL, cfg.StorageServiceKey)
	if err != nil {
		utils.Logger.Fatal("Failed to create storage client:", err)
	}

	notifier := services.NewNotificationService(cfg)
	profileService := services.NewProfileService(profileRepo)
	propService := services.NewPropertyService(propRepo)
	unitService := services.NewUnitService(unitRepo, propService)
	tmplService := services.NewTemplateService(tmplRepo, subtaskRepo)
	inspService := services.NewInspectionService(inspRepo, subtaskRepo, propService, tmplService)
	subtaskService := services.NewSubtaskService(subtaskRepo, inspService, propService, profileService, notifier)
	analyticsService := services.NewAnalyticsService(inspRepo, subtaskRepo, propService)
	invService := services.NewInventoryTypeService(invRepo)
	cascadeService := services.NewCascadeDeleteService(application.DB)
	scheduler := services.NewSchedulerService(inspRepo, subtaskRepo, propRepo, profileService, notifier)

	if cfg.SeedTestData {
		if err := app.SeedTestData(
			context.Background(),
			propRepo, unitRepo, inspRepo, subtaskRepo, tmplRepo, invRepo, profileRepo,
		); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed test data")
		} else {
			utils.Logger.Info("Seeded test data successfully")
		}
	}

	healthController := controllers.NewHealthController(application.DB)
	propController := controllers.NewPropertyController(propService)
	unitController := controllers.NewUnitController(unitService)
	inspController := controllers.NewInspectionController(inspService, analyticsService)
	subtaskController := controllers.NewSubtaskController(subtaskService)
	tmplController := controllers.NewTemplateController(tmplService, inspService)
	invController := controllers.NewInventoryTypeController(invService)
	profileController := controllers.NewProfileController(profileService)
	attachmentController := controllers.NewAttachmentController(store)
	cascadeController := controllers.NewCascadeController(cascadeService)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheck).Methods(http.MethodGet)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.Properties, propController.CreateProperty).Methods(http.MethodPost)
	secured.HandleFunc(routes.Properties, propController.ListProperties).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertyByID, propController.GetProperty).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertyByID, propController.UpdateProperty).Methods(http.MethodPatch, http.MethodPut)
	secured.HandleFunc(routes.PropertyByID, cascadeController.DeleteProperty).Methods(http.MethodDelete)

	secured.HandleFunc(routes.Units, unitController.CreateUnit).Methods(http.MethodPost)
	secured.HandleFunc(routes.Units, unitController.ListUnits).Methods(http.MethodGet)
	secured.HandleFunc(routes.UnitByID, unitController.GetUnit).Methods(http.MethodGet)
	secured.HandleFunc(routes.UnitByID, unitController.UpdateUnit).Methods(http.MethodPatch, http.MethodPut)
	secured.HandleFunc(routes.UnitByID, cascadeController.DeleteUnit).Methods(http.MethodDelete)

	secured.HandleFunc(routes.Inspections, inspController.CreateInspection).Methods(http.MethodPost)
	secured.HandleFunc(routes.Inspections, inspController.ListInspections).Methods(http.MethodGet)
	secured.HandleFunc(routes.InspectionsComplete, inspController.CompleteInspections).Methods(http.MethodPost)
	secured.HandleFunc(routes.InspectionsDelete, inspController.DeleteInspections).Methods(http.MethodPost)
	secured.HandleFunc(routes.InspectionConnected, inspController.ListConnected).Methods(http.MethodGet)
	secured.HandleFunc(routes.InspectionByID, inspController.GetInspection).Methods(http.MethodGet)
	secured.HandleFunc(routes.InspectionByID, inspController.UpdateInspection).Methods(http.MethodPatch, http.MethodPut)
	secured.HandleFunc(routes.InspectionsAnalytics, inspController.AnalyticsSummary).Methods(http.MethodGet)

	secured.HandleFunc(routes.Subtasks, subtaskController.CreateSubtask).Methods(http.MethodPost)
	secured.HandleFunc(routes.Subtasks, subtaskController.ListSubtasks).Methods(http.MethodGet)
	secured.HandleFunc(routes.SubtaskAssign, subtaskController.AssignSubtask).Methods(http.MethodPost)
	secured.HandleFunc(routes.SubtaskByID, subtaskController.GetSubtask).Methods(http.MethodGet)
	secured.HandleFunc(routes.SubtaskByID, subtaskController.UpdateSubtask).Methods(http.MethodPatch, http.MethodPut)
	secured.HandleFunc(routes.SubtaskByID, subtaskController.DeleteSubtask).Methods(http.MethodDelete)

	secured.HandleFunc(routes.Templates, tmplController.CreateTemplate).Methods(http.MethodPost)
	secured.HandleFunc(routes.Templates, tmplController.ListTemplates).Methods(http.MethodGet)
	secured.HandleFunc(routes.TemplatesApply, tmplController.ApplyTemplate).Methods(http.MethodPost)
	secured.HandleFunc(routes.TemplateByID, tmplController.GetTemplate).Methods(http.MethodGet)
	secured.HandleFunc(routes.TemplateByID, tmplController.DeleteTemplate).Methods(http.MethodDelete)

	secured.HandleFunc(routes.InventoryTypes, invController.CreateInventoryType).Methods(http.MethodPost)
	secured.HandleFunc(routes.InventoryTypes, invController.ListInventoryTypes).Methods(http.MethodGet)
	secured.HandleFunc(routes.InventoryTypeByID, invController.GetInventoryType).Methods(http.MethodGet)
	secured.HandleFunc(routes.InventoryTypeByID, invController.UpdateInventoryType).Methods(http.MethodPatch, http.MethodPut)
	secured.HandleFunc(routes.InventoryTypeByID, invController.DeleteInventoryType).Methods(http.MethodDelete)

	secured.HandleFunc(routes.Profiles, profileController.UpsertProfile).Methods(http.MethodPost)
	secured.HandleFunc(routes.Profiles, profileController.ListProfiles).Methods(http.MethodGet)
	secured.HandleFunc(routes.ProfileByID, profileController.GetProfile).Methods(http.MethodGet)

	secured.HandleFunc(routes.CascadeDelete, cascadeController.CascadeDelete).Methods(http.MethodPost)
	secured.HandleFunc(routes.Attachments, attachmentController.DownloadAttachment).Methods(http.MethodGet)

	c := cron.New()
	_, dailyErr := c.AddFunc("5 0 * * *", func() {
		if e := scheduler.RunDailyOccurrenceMaintenance(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled occurrence maintenance failed")
		}
	})
	if dailyErr != nil {
		utils.Logger.WithError(dailyErr).Fatal("Failed to schedule occurrence maintenance cron")
	}

	_, sweepErr := c.AddFunc("@every 1h", func() {
		if e := scheduler.RunOverdueSweep(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Overdue sweep failed")
		}
	})
	if sweepErr != nil {
		utils.Logger.WithError(sweepErr).Fatal("Failed to schedule overdue sweep cron")
	}
	c.Start()

	allowedOrigins := []string{cfg.AppUrl}
	if cfg.CORSAllowLocalhost {
		allowedOrigins = append(allowedOrigins, constants.CORSAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "ngrok-skip-browser-warning"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("inspections-service failed to start:", err)
	}
}
