package ranger

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/guard"
	"github.com/xy-planning-network/switchback/logger"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// App metadata
	AppTitleEnvVar   = "APP_TITLE"
	ContactUsEnvVar  = "CONTACT_US_EMAIL"
	defaultContactUs = "hello@xyplanningnetwork.com"

	// Base URL defaults
	BaseURLEnvVar = "BASE_URL"

	// Content defaults
	CacheTTLEnvVar     = "CONTENT_CACHE_TTL"
	PagesDirEnvVar     = "PAGES_DIR"
	defaultPagesDir    = "pages"
	StaticDirEnvVar    = "STATIC_DIR"
	defaultStaticDir   = "."
	CORSOriginEnvVar   = "CORS_ORIGIN"
	environmentEnvVar  = "ENVIRONMENT"
	JWTSecretEnvVar    = "JWT_SECRET"
	LoginPathEnvVar    = "LOGIN_PATH"
	defaultLoginPath   = "/login"
	MaxRedirectsEnvVar = "MAX_REDIRECTS"
	RoutesFileEnvVar   = "ROUTES_FILE"
	defaultRoutesFile  = "routes.yaml"

	// Log defaults
	logLevelEnvVar  = "LOG_LEVEL"
	sentryDsnEnvVar = "SENTRY_DSN"

	// Redis defaults
	RedisURLEnvVar  = "REDIS_URL"
	RedisPassEnvVar = "REDIS_PASSWORD"

	// Web server defaults
	DefaultHost               = "localhost"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second

	// Session defaults
	SessionAuthKeyEnvVar    = "SESSION_AUTH_KEY"
	SessionEncryptKeyEnvVar = "SESSION_ENCRYPTION_KEY"
	sessionMaxAge           = 3600 * 24 * 7
)

var defaultBaseURL = "http://" + DefaultHost + DefaultPort

// A Config holds the settings a Ranger builds its defaults from.
type Config struct {
	AppTitle   string
	BaseURL    *url.URL
	ContactUs  string
	CORSOrigin string
	Env        switchback.Environment
	LogLevel   logger.LogLevel
	SentryDSN  string

	// Routing
	LoginPath    string
	MaxRedirects int
	RoutesFile   string

	// Content
	CacheTTL  time.Duration
	PagesDir  string
	StaticDir string

	// Credentials
	JWTSecret         string
	RedisPassword     string
	RedisURL          string
	SessionAuthKey    string
	SessionEncryptKey string

	// Web server
	Port         string
	IdleTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewConfig reads a Config from environment variables, falling back to defaults.
// Confer the package documentation for the full list.
func NewConfig() Config {
	port := switchback.EnvVarOrString(portEnvVar, DefaultPort)
	if port[0] != ':' {
		port = ":" + port
	}

	return Config{
		AppTitle:          switchback.EnvVarOrString(AppTitleEnvVar, ""),
		BaseURL:           switchback.EnvVarOrURL(BaseURLEnvVar, defaultBaseURL),
		CacheTTL:          switchback.EnvVarOrDuration(CacheTTLEnvVar, 0),
		ContactUs:         switchback.EnvVarOrString(ContactUsEnvVar, defaultContactUs),
		CORSOrigin:        switchback.EnvVarOrString(CORSOriginEnvVar, ""),
		Env:               switchback.EnvVarOrEnv(environmentEnvVar, switchback.Development),
		IdleTimeout:       switchback.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		JWTSecret:         switchback.EnvVarOrString(JWTSecretEnvVar, ""),
		LoginPath:         switchback.EnvVarOrString(LoginPathEnvVar, defaultLoginPath),
		LogLevel:          switchback.EnvVarOrLogLevel(logLevelEnvVar, logger.LogLevelInfo),
		MaxRedirects:      switchback.EnvVarOrInt(MaxRedirectsEnvVar, guard.DefaultMaxRedirects),
		PagesDir:          switchback.EnvVarOrString(PagesDirEnvVar, defaultPagesDir),
		Port:              port,
		ReadTimeout:       switchback.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		RedisPassword:     switchback.EnvVarOrString(RedisPassEnvVar, ""),
		RedisURL:          switchback.EnvVarOrString(RedisURLEnvVar, ""),
		RoutesFile:        switchback.EnvVarOrString(RoutesFileEnvVar, defaultRoutesFile),
		SentryDSN:         switchback.EnvVarOrString(sentryDsnEnvVar, ""),
		SessionAuthKey:    switchback.EnvVarOrString(SessionAuthKeyEnvVar, ""),
		SessionEncryptKey: switchback.EnvVarOrString(SessionEncryptKeyEnvVar, ""),
		StaticDir:         switchback.EnvVarOrString(StaticDirEnvVar, defaultStaticDir),
		WriteTimeout:      switchback.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
}

var (
	sessionNameStrip = regexp.MustCompile(`[,':]`)
	sessionNameSpace = regexp.MustCompile(`\s+`)
)

// SessionName derives the name sessions are stored under from the app's title,
// e.g. "Bob's Shop" becomes "switchback-bobs-shop".
func (c Config) SessionName() string {
	name := cases.Lower(language.English).String(strings.TrimSpace(c.AppTitle))
	name = sessionNameStrip.ReplaceAllString(name, "")
	name = sessionNameSpace.ReplaceAllString(name, "-")
	if name == "" {
		return "switchback"
	}

	return "switchback-" + name
}
