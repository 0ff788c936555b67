package config

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/altkdf/schnorr-canister/internal/util"
)

// EchoServer configures the HTTP layer.
type EchoServer struct {
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	EnableCORSMiddleware           bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableLoggerMiddleware         bool
}

// LoggerServer configures zerolog.
type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	PrettyPrintConsole bool
}

// AuthServer configures caller identification.
type AuthServer struct {
	JWTSecret string
	JWTIssuer string
	TokenDuration time.Duration
	// AnonymousPrincipal is the textual principal assumed for unauthenticated callers.
	AnonymousPrincipal string
}

// SchnorrServer configures root key provisioning and derivation limits.
type SchnorrServer struct {
	// KeyNames are the root key names provisioned at startup for every algorithm.
	KeyNames []string
	// MaxDerivationPathLength bounds the number of caller-supplied path segments.
	MaxDerivationPathLength int
}

// StorageServer selects and configures the seed store backend.
type StorageServer struct {
	Backend              string // file, redis or memory
	FileDir              string
	EncryptionPassphrase string
	RedisURL             string
}

// ManagementServer configures the management endpoints.
type ManagementServer struct {
	Secret string
}

// Server is the central service configuration.
type Server struct {
	Echo       EchoServer
	Logger     LoggerServer
	Auth       AuthServer
	Schnorr    SchnorrServer
	Storage    StorageServer
	Management ManagementServer
}

// DefaultServiceConfigFromEnv assembles the server configuration from
// environment variables, falling back to development defaults.
func DefaultServiceConfigFromEnv() Server {
	return Server{
		Echo: EchoServer{
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8077"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			EnableCORSMiddleware:           util.GetEnvAsBool("SERVER_ECHO_ENABLE_CORS_MIDDLEWARE", true),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableLoggerMiddleware:         util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
		},
		Logger: LoggerServer{
			Level:              parseLogLevel(util.GetEnv("SERVER_LOGGER_LEVEL", "info")),
			RequestLevel:       parseLogLevel(util.GetEnv("SERVER_LOGGER_REQUEST_LEVEL", "debug")),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		Auth: AuthServer{
			JWTSecret:     util.GetEnv("SERVER_AUTH_JWT_SECRET", ""),
			JWTIssuer:     util.GetEnv("SERVER_AUTH_JWT_ISSUER", "schnorr-canister"),
			TokenDuration: time.Duration(util.GetEnvAsInt("SERVER_AUTH_TOKEN_DURATION_HOURS", 24)) * time.Hour,
			// The single-byte 0x04 principal, textually "2vxsx-fae".
			AnonymousPrincipal: util.GetEnv("SERVER_AUTH_ANONYMOUS_PRINCIPAL", "2vxsx-fae"),
		},
		Schnorr: SchnorrServer{
			KeyNames:                util.GetEnvAsStringArr("SERVER_SCHNORR_KEY_NAMES", []string{"dfx_test_key", "test_key_1"}),
			MaxDerivationPathLength: util.GetEnvAsInt("SERVER_SCHNORR_MAX_DERIVATION_PATH_LENGTH", 255),
		},
		Storage: StorageServer{
			Backend:              util.GetEnv("SERVER_STORAGE_BACKEND", "file"),
			FileDir:              util.GetEnv("SERVER_STORAGE_FILE_DIR", "data/seeds"),
			EncryptionPassphrase: util.GetEnv("SERVER_STORAGE_ENCRYPTION_PASSPHRASE", "insecure-dev-passphrase"),
			RedisURL:             util.GetEnv("SERVER_STORAGE_REDIS_URL", "redis://localhost:6379/0"),
		},
		Management: ManagementServer{
			Secret: util.GetEnv("SERVER_MANAGEMENT_SECRET", "mgmtsecret"),
		},
	}
}

func parseLogLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		log.Warn().Str("level", s).Msg("Unknown log level, falling back to info")
		return zerolog.InfoLevel
	}
	return level
}
