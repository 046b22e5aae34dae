package config

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/pem"
	"os"

	"github.com/golang-jwt/jwt/v5"

	"github.com/housecheck/inspections-service/internal/utils"
)

const (
	OrganizationName = "HouseCheck"
	AppName          = "inspections-service"
)

type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string

	// Database
	DBUrl string

	// Auth
	RSAPublicKey *rsa.PublicKey

	// Attachment storage
	StorageBaseURL    string
	StorageServiceKey string

	// Notifications
	SendGridAPIKey      string
	SendgridFromEmail   string
	SendgridSandboxMode bool
	TwilioAccountSID    string
	TwilioAuthToken     string
	TwilioFromPhone     string

	// Flags
	SeedTestData       bool
	CORSAllowLocalhost bool
}

func LoadConfig() *Config {
	utils.Logger.Info("Loading config for app: ", AppName)

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	appUrl := os.Getenv("APP_URL")
	if appUrl == "" {
		utils.Logger.Fatal("APP_URL env var is missing")
	}
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DB_URL env var is missing")
	}

	pubB64 := os.Getenv("RSA_PUBLIC_KEY_BASE64")
	if pubB64 == "" {
		utils.Logger.Fatal("RSA_PUBLIC_KEY_BASE64 env var is missing")
	}
	pubPEM, _ := base64.StdEncoding.DecodeString(pubB64)
	if block, _ := pem.Decode(pubPEM); block == nil {
		utils.Logger.Fatal("Failed to decode PEM block for public key")
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	storageBase := os.Getenv("STORAGE_BASE_URL")
	if storageBase == "" {
		utils.Logger.Fatal("STORAGE_BASE_URL env var is missing")
	}
	storageKey := os.Getenv("STORAGE_SERVICE_KEY")
	if storageKey == "" {
		utils.Logger.Fatal("STORAGE_SERVICE_KEY env var is missing")
	}

	// Notification credentials are optional; without them the
	// notification service logs instead of sending.
	sgAPIKey := os.Getenv("SENDGRID_API_KEY")
	sgFrom := os.Getenv("SENDGRID_FROM_EMAIL")
	if sgFrom == "" {
		utils.Logger.Warn("SENDGRID_FROM_EMAIL is empty, defaulting to no-reply@housecheck.app")
		sgFrom = "no-reply@housecheck.app"
	}
	twilioSID := os.Getenv("TWILIO_ACCOUNT_SID")
	twilioToken := os.Getenv("TWILIO_AUTH_TOKEN")
	twilioFrom := os.Getenv("TWILIO_FROM_PHONE")
	if twilioFrom == "" {
		utils.Logger.Warn("TWILIO_FROM_PHONE is empty, defaulting to +10005550006")
		twilioFrom = "+10005550006"
	}

	return &Config{
		OrganizationName:    OrganizationName,
		AppName:             AppName,
		AppPort:             appPort,
		AppUrl:              appUrl,
		DBUrl:               dbURL,
		RSAPublicKey:        pubKey,
		StorageBaseURL:      storageBase,
		StorageServiceKey:   storageKey,
		SendGridAPIKey:      sgAPIKey,
		SendgridFromEmail:   sgFrom,
		SendgridSandboxMode: os.Getenv("SENDGRID_SANDBOX_MODE") == "true",
		TwilioAccountSID:    twilioSID,
		TwilioAuthToken:     twilioToken,
		TwilioFromPhone:     twilioFrom,
		SeedTestData:        os.Getenv("SEED_TEST_DATA") == "true",
		CORSAllowLocalhost:  os.Getenv("CORS_ALLOW_LOCALHOST") == "true",
	}
}

func (c *Config) Close() {}
