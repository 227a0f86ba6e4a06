/*
Package ranger initializes and manages a switchback app with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type, constructed with [New].
Every component left unset by the [RangerOption]s passed to [New] is built from a [Config]
read from environment variables:

  - a route table loaded from ROUTES_FILE, whose guards reference [guard.Builtins] by name
  - a [guard.Resolver] redirecting rejected parties to LOGIN_PATH
  - templates and markdown from PAGES_DIR, optionally cached
  - a cookie or Redis backed session store
  - a JWT [auth.Service]
  - a [router.Router] serving /static/, /metrics and, for everything else, the pages handler

[*Ranger.Guide] begins a switchback app's web server.
By default, [*Ranger.Guide] listens on [DefaultHost]:[DefaultPort] (localhost:3000),
assuming either a reverse proxy proxies requests
or only a client application makes direct requests to the switchback web server.

Stop that web server with [*Ranger.Shutdown],
cancel the context.Context passed in with [WithContext],
or send a signal [*Ranger.Guide] listens for.

# Configuration

Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.

Here are the available environment variables.
  - APP_TITLE: a short title for the application; names the session cookie
  - BASE_URL: the base URL the application runs on; default: http://localhost:3000
  - CONTACT_US_EMAIL: the email address end users can contact; default: hello@xyplanningnetwork.com
  - CONTENT_CACHE_TTL: how long - as understood by [time.ParseDuration] - rendered pages are cached; default: not cached
  - CORS_ORIGIN: an origin allowed to fetch pages cross-origin
  - ENVIRONMENT: the environment the application is running in; cf. [switchback.Environment]
  - JWT_SECRET: the key bearer tokens are signed with; unset disables bearer tokens
  - LOGIN_PATH: where guards rejecting anonymous parties redirect to; default: /login
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - MAX_REDIRECTS: how many guard redirects a single request may follow; default: 5
  - PAGES_DIR: the directory holding page templates and markdown; default: pages
  - PORT: the port the application should listen on; default: :3000
  - REDIS_PASSWORD: the password for authenticating to REDIS_URL
  - REDIS_URL: a Redis server backing sessions and the page cache
  - ROUTES_FILE: the YAML route table; default: routes.yaml; cf. [route.File]
  - SENTRY_DSN: reports errors to Sentry when set
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 5s
  - SESSION_AUTH_KEY: a hex-encoded key for authenticating cookies; cf. [encoding/hex]
  - SESSION_ENCRYPTION_KEY: a hex-encoded key for encrypting cookies; cf. [encoding/hex]
  - STATIC_DIR: the directory whose static/ subdirectory is served at /static/; default: the working directory
*/
package ranger
