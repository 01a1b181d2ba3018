package api

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/z3r0n3br4instorm/duothan-onboarding/api/controllers"
	"github.com/z3r0n3br4instorm/duothan-onboarding/api/transport"
	"github.com/z3r0n3br4instorm/duothan-onboarding/logging"
	"github.com/z3r0n3br4instorm/duothan-onboarding/storage"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

func (s *Server) Start() {
	r := transport.NewRouter(gin.DebugMode)

	// Create storage
	cfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logging.Log.Errorf("failed to load AWS config: %v", err)
		panic("failed to load AWS config")
	}

	dynamoClient := dynamodb.NewFromConfig(cfg)

	codeStorage := &storage.DynamoTeamCodeStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameTeamCodes,
	}
	teamStorage := &storage.DynamoTeamStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameTeams,
	}
	sessionStorage := &storage.DynamoSessionStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameSessions,
	}
	submissionStorage := &storage.DynamoSubmissionStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameSubmissions,
	}
	healthStorage := &storage.DynamoHealthStorage{
		Client:    dynamoClient,
		TableName: s.config.TableNameSessions,
	}

	//Register controllers
	registrationController := controllers.NewRegistrationController(codeStorage, teamStorage)
	registrationController.RegisterRoutes(r)
	sessionController := controllers.NewSessionController(codeStorage, sessionStorage, submissionStorage)
	sessionController.RegisterRoutes(r)
	submissionController := controllers.NewSubmissionController(sessionStorage, submissionStorage)
	submissionController.RegisterRoutes(r)
	adminController := controllers.NewAdminController(teamStorage, codeStorage)
	adminController.RegisterRoutes(r)
	healthController := controllers.NewHealthController(healthStorage)
	healthController.RegisterRoutes(r)

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		startLocal(r, s.config.Port)
	} else {
		startLambda(r)
	}
}

// StartLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// StartLocal starts a normal HTTP server on the configured port
func startLocal(engine *gin.Engine, port int) {
	logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))

	if err := engine.Run(fmt.Sprintf(":%d", port)); err != nil {
		logging.Log.Fatalf("Failed to run server: %v", err)
	}
}
