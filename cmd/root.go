package cmd

import (
	"log"

	"github.com/job-matcher/internal/match"
	"github.com/job-matcher/internal/theirstack"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "job-matcher"
)

type Config struct {
	Resume      string                   `mapstructure:"resume"`
	Search      *theirstack.SearchParams `mapstructure:"search"`
	Match       *match.Config            `mapstructure:"match"`
	Preferences *PreferencesConfig       `mapstructure:"preferences"`
	Results     *ResultsConfig           `mapstructure:"results"`
	Extraction  *ExtractionConfig        `mapstructure:"extraction"`
	TheirStack  *TheirStackConfig        `mapstructure:"theirstack"`
	Server      *ServerConfig            `mapstructure:"server"`
	UserAgent   string                   `mapstructure:"user-agent"`
}

// PreferencesConfig carries candidate preferences that are not part of
// the resume itself.
type PreferencesConfig struct {
	DesiredLocations []string `mapstructure:"desired-locations"`
}

// ResultsConfig configures the post-ranking filters and scoring
// concurrency.
type ResultsConfig struct {
	MinScore    int      `mapstructure:"min-score"`
	Locations   []string `mapstructure:"locations"`
	RemoteTypes []string `mapstructure:"remote-types"`
	Concurrency int      `mapstructure:"concurrency"`
}

type ExtractionConfig struct {
	Provider     string `mapstructure:"provider"`
	Model        string `mapstructure:"model"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	BaseURL      string `mapstructure:"base-url"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type TheirStackConfig struct {
	APIKeyFile string  `mapstructure:"api-key-file"`
	RateLimit  float64 `mapstructure:"rate-limit"`
	MaxRetries int     `mapstructure:"max-retries"`
}

type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-matcher scores job listings against your resume and ranks the best fits",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("theirstack.api-key-file", "THEIRSTACK_API_KEY_FILE"); err != nil {
		log.Fatalf("binding THEIRSTACK_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("extraction.api-key-file", "EXTRACTION_API_KEY_FILE"); err != nil {
		log.Fatalf("binding EXTRACTION_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// A local .env file may carry the api key file locations.
	_ = godotenv.Load()

	// Config needed only for run and serve commands. If there is no
	// config, we can skip initialization.
	if runCmd.CalledAs() == "" && serveCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		return nil, nil
	}

	if config.Match == nil {
		config.Match = match.DefaultConfig()
	} else if config.Match.SkillMatchMode == "" {
		config.Match.SkillMatchMode = match.SkillMatchNormalized
	}
	if config.Preferences == nil {
		config.Preferences = &PreferencesConfig{}
	}
	if config.Results == nil {
		config.Results = &ResultsConfig{}
	}

	return config, nil
}
