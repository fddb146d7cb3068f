package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-matcher/internal/extract"
	"github.com/spigell/resume-matcher/internal/report"
)

const (
	app = "resume-matcher"

	defaultConcurrency = 4
)

type Config struct {
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	Matching   MatchingConfig   `mapstructure:"matching"`
	Report     ReportConfig     `mapstructure:"report"`
	Batch      BatchConfig      `mapstructure:"batch"`
	Storage    StorageConfig    `mapstructure:"storage"`
}

type VocabularyConfig struct {
	Skills  []string `mapstructure:"skills"`
	Degrees []string `mapstructure:"degrees"`
}

type MatchingConfig struct {
	Mode                    string `mapstructure:"mode"`
	ZeroExperienceSatisfied bool   `mapstructure:"zero-experience-satisfied"`
}

type ReportConfig struct {
	PreviewLength int `mapstructure:"preview-length"`
}

type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

type StorageConfig struct {
	S3 S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Region        string `mapstructure:"region"`
	Endpoint      string `mapstructure:"endpoint"`
	PathStyle     bool   `mapstructure:"path-style"`
	AccessKeyFile string `mapstructure:"access-key-file"`
	SecretKeyFile string `mapstructure:"secret-key-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-matcher scores how well a resume matches a job description",
		// main prints errors so analysis failures are not reported twice
		SilenceErrors: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("storage.s3.access-key-file", "RESUME_MATCHER_S3_ACCESS_KEY_FILE"); err != nil {
		log.Fatalf("binding RESUME_MATCHER_S3_ACCESS_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("storage.s3.secret-key-file", "RESUME_MATCHER_S3_SECRET_KEY_FILE"); err != nil {
		log.Fatalf("binding RESUME_MATCHER_S3_SECRET_KEY_FILE environment variable: %v", err)
	}

	viper.SetDefault("vocabulary.skills", extract.DefaultSkills())
	viper.SetDefault("vocabulary.degrees", extract.DefaultDegrees())
	viper.SetDefault("matching.mode", string(extract.MatchSubstring))
	viper.SetDefault("matching.zero-experience-satisfied", false)
	viper.SetDefault("report.preview-length", report.DefaultPreviewLength)
	viper.SetDefault("batch.concurrency", defaultConcurrency)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-matcher.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The default config file is optional. An explicit one must exist and parse.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.Batch.Concurrency <= 0 {
		config.Batch.Concurrency = defaultConcurrency
	}

	return config, nil
}
