package config

const (
	defaultAPIHost        = "apigw.it.umich.edu"
	defaultAPIVersion     = "v1"
	defaultTimeoutSeconds = 10
	defaultBackend        = "mivideo"
	defaultKalturaHost    = "www.kaltura.com"
	defaultCategoryPrefix = "Canvas_UMich"
	defaultChunkSeconds   = 120
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			Host:           defaultAPIHost,
			TimeoutSeconds: defaultTimeoutSeconds,
			Version:        defaultAPIVersion,
			Backend:        defaultBackend,
		},
		Kaltura: Kaltura{
			Host:           defaultKalturaHost,
			CategoryPrefix: defaultCategoryPrefix,
		},
		Loader: Loader{
			ChunkSeconds: defaultChunkSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
