package envvar

const (
	// SpeeddialEnv is the environment variable used to determine the environment
	SpeeddialEnv = "SPEEDDIAL_ENV"

	// SpeeddialConfig is the environment variable used to locate the config file
	SpeeddialConfig = "SPEEDDIAL_CONFIG"

	// SpeeddialServerHTTPPort is the environment variable used to determine the HTTP port
	SpeeddialServerHTTPPort = "SPEEDDIAL_SERVER_HTTP_PORT"

	// SpeeddialServerGRPCPort is the environment variable used to determine the gRPC port
	SpeeddialServerGRPCPort = "SPEEDDIAL_SERVER_GRPC_PORT"

	// SpeeddialLogLevel is the environment variable used to override the log level
	SpeeddialLogLevel = "SPEEDDIAL_LOG_LEVEL"
)
