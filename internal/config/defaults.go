package config

const (
	defaultFeedURL        = "https://rss.dw.com/xml/DKpodcast_alltagsdeutsch_de"
	defaultMaxEpisodes    = 10
	defaultRequestTimeout = 30
	defaultUserAgent      = "Mozilla/5.0 (compatible; glosscast)"
	defaultOutputPath     = "index.html"
	defaultOutputTitle    = "Subtitled Podcasts - Alltagsdeutsch"
	defaultCacheDir       = "~/.cache/glosscast"
	defaultLogDir         = "~/.local/share/glosscast/logs"
	defaultLLMBaseURL     = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel       = "google/gemini-3-flash-preview"
	defaultLLMTitle       = "Glosscast Word Selector"
	defaultLLMTimeout     = 60
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Feed: Feed{
			URL:            defaultFeedURL,
			MaxEpisodes:    defaultMaxEpisodes,
			RequestTimeout: defaultRequestTimeout,
			UserAgent:      defaultUserAgent,
		},
		Output: Output{
			Path:  defaultOutputPath,
			Title: defaultOutputTitle,
		},
		Paths: Paths{
			CacheDir: defaultCacheDir,
			LogDir:   defaultLogDir,
		},
		LLM: LLM{
			BaseURL:        defaultLLMBaseURL,
			Model:          defaultLLMModel,
			Title:          defaultLLMTitle,
			TimeoutSeconds: defaultLLMTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
