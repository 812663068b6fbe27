package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"workhub-project/tasks-service/auth"
	"workhub-project/tasks-service/handlers"
	"workhub-project/tasks-service/logging"
	"workhub-project/tasks-service/middleware"
	"workhub-project/tasks-service/repositories"
	"workhub-project/tasks-service/services"
	"workhub-project/tasks-service/storage"
	"workhub-project/tasks-service/utils"
	"workhub-project/tasks-service/validators"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	logging.InitLogger()

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Tasks Service...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_ERROR, Description: Error loading .env file: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoDBName == "" {
		mongoDBName = "workhub_tasks"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	if err := mongoClient.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	db := mongoClient.Database(mongoDBName)

	neo4jURI := os.Getenv("NEO4J_DB")
	neo4jUser := os.Getenv("NEO4J_USERNAME")
	neo4jPass := os.Getenv("NEO4J_PASS")
	graphDriver, err := neo4j.NewDriverWithContext(neo4jURI, neo4j.BasicAuth(neo4jUser, neo4jPass, ""))
	if err != nil {
		logging.Logger.Fatalf("Event ID: GRAPH_CONNECTION_FAILED, Description: Neo4j driver creation failed: %v", err)
	}
	defer graphDriver.Close(context.Background())

	if err := graphDriver.VerifyConnectivity(ctx); err != nil {
		logging.Logger.Fatalf("Event ID: GRAPH_PING_FAILED, Description: Neo4j connectivity check failed: %v", err)
	}
	logging.Logger.Infof("Event ID: GRAPH_CONNECTED, Description: Successfully connected to Neo4j at %s.", neo4jURI)

	notificationRepo, err := repositories.NewCassandraNotificationRepository()
	if err != nil {
		logging.Logger.Fatalf("Event ID: CASS_CONNECTION_FAILED, Description: Cassandra connection failed: %v", err)
	}
	defer notificationRepo.CloseSession()
	notificationRepo.CreateTable()

	attachmentDir := os.Getenv("ATTACHMENT_DIR")
	if attachmentDir == "" {
		attachmentDir = "attachments"
	}
	fileStorage, err := storage.NewLocalFileStorage(attachmentDir)
	if err != nil {
		logging.Logger.Fatalf("Event ID: STORAGE_INIT_FAILED, Description: Attachment storage init failed: %v", err)
	}

	taskRepo := repositories.NewMongoTaskRepository(db)
	commentRepo := repositories.NewMongoCommentRepository(db)
	tagRepo := repositories.NewMongoTagRepository(db)
	attachmentRepo := repositories.NewMongoAttachmentRepository(db)
	employeeRepo := repositories.NewMongoEmployeeRepository(db)
	projectRepo := repositories.NewMongoProjectRepository(db)
	dependencyRepo := repositories.NewNeo4jDependencyRepository(graphDriver)

	validator := validators.NewTaskValidator()
	authorizer := auth.NewRoleAuthorizer()
	mailer := utils.NewSMTPMailer()

	automationService := services.NewAutomationService(notificationRepo, employeeRepo, mailer)
	progressService := services.NewProgressService(taskRepo, automationService)
	dependencyService := services.NewDependencyService(dependencyRepo, taskRepo, validator, automationService, authorizer)
	commentService := services.NewCommentService(commentRepo, taskRepo, validator, automationService, authorizer)
	attachmentService := services.NewAttachmentService(attachmentRepo, taskRepo, fileStorage, automationService, authorizer)
	tagService := services.NewTagService(tagRepo, authorizer)
	notificationService := services.NewNotificationService(notificationRepo, authorizer)
	taskService := services.NewTaskService(
		taskRepo, employeeRepo, projectRepo, tagRepo, commentRepo, attachmentRepo,
		dependencyRepo, fileStorage, validator, progressService, dependencyService,
		automationService, authorizer,
	)

	taskHandler := handlers.NewTaskHandler(taskService)
	dependencyHandler := handlers.NewDependencyHandler(dependencyService)
	commentHandler := handlers.NewCommentHandler(commentService)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentService)
	tagHandler := handlers.NewTagHandler(tagService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	r := mux.NewRouter()

	r.HandleFunc("/api/tasks", taskHandler.CreateTask).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/my", taskHandler.GetMyTasks).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks/due-soon", taskHandler.CheckDueSoon).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/overdue", taskHandler.CheckOverdue).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/project/{projectID}", taskHandler.GetTasksByProject).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks/organization/{organizationID}", taskHandler.GetTasksByOrganization).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks/project/{projectID}/has-active", taskHandler.HasActiveTasks).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks/{taskID}", taskHandler.GetTask).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks/{taskID}", taskHandler.UpdateTask).Methods(http.MethodPut)
	r.HandleFunc("/api/tasks/{taskID}", taskHandler.DeleteTask).Methods(http.MethodDelete)
	r.HandleFunc("/api/tasks/{taskID}/status", taskHandler.ChangeTaskStatus).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{taskID}/priority", taskHandler.ChangeTaskPriority).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{taskID}/assignees", taskHandler.AssignUsers).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{taskID}/assignees/{employeeID}", taskHandler.UnassignUser).Methods(http.MethodDelete)
	r.HandleFunc("/api/tasks/{taskID}/progress/recalculate", taskHandler.RecalculateProgress).Methods(http.MethodPost)

	r.HandleFunc("/api/dependencies", dependencyHandler.AddDependency).Methods(http.MethodPost)
	r.HandleFunc("/api/dependencies/{edgeID}", dependencyHandler.RemoveDependency).Methods(http.MethodDelete)
	r.HandleFunc("/api/tasks/{taskID}/dependencies", dependencyHandler.GetDependencies).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks/{taskID}/dependents", dependencyHandler.GetDependents).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks/{taskID}/dependencies/unresolved", dependencyHandler.HasUnresolvedDependencies).Methods(http.MethodGet)

	r.HandleFunc("/api/tasks/{taskID}/comments", commentHandler.AddComment).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{taskID}/comments", commentHandler.GetCommentsByTask).Methods(http.MethodGet)
	r.HandleFunc("/api/comments/{commentID}/replies", commentHandler.ReplyToComment).Methods(http.MethodPost)
	r.HandleFunc("/api/comments/{commentID}", commentHandler.DeleteComment).Methods(http.MethodDelete)

	r.HandleFunc("/api/tasks/{taskID}/attachments", attachmentHandler.UploadAttachment).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks/{taskID}/attachments", attachmentHandler.GetAttachmentsByTask).Methods(http.MethodGet)
	r.HandleFunc("/api/attachments/{attachmentID}", attachmentHandler.DeleteAttachment).Methods(http.MethodDelete)

	r.HandleFunc("/api/tags", tagHandler.CreateTag).Methods(http.MethodPost)
	r.HandleFunc("/api/tags", tagHandler.GetTags).Methods(http.MethodGet)
	r.HandleFunc("/api/tags/{tagID}", tagHandler.DeleteTag).Methods(http.MethodDelete)

	r.HandleFunc("/api/notifications", notificationHandler.GetMyNotifications).Methods(http.MethodGet)
	r.HandleFunc("/api/notifications/{notificationID}/read", notificationHandler.MarkAsRead).Methods(http.MethodPost)
	r.HandleFunc("/api/notifications/{notificationID}", notificationHandler.DeleteNotification).Methods(http.MethodDelete)

	handler := middleware.EnableCORS(middleware.JWTAuthMiddleware(r))

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}
	serverAddress := fmt.Sprintf(":%s", serverPort)

	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)
	if err := srv.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
