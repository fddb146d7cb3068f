package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/resume-matcher/internal/extract"
	"github.com/spigell/resume-matcher/internal/report"
	"github.com/spigell/resume-matcher/internal/textproc"
)

var vocabularyCmd = &cobra.Command{
	Use:   "vocabulary",
	Short: "Print the effective vocabularies and matching settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := getConfig()
		if err != nil {
			return fmt.Errorf("getting a config: %w", err)
		}

		output, _ := cmd.Flags().GetString("output")
		format, err := report.ParseFormat(output)
		if err != nil {
			return err
		}

		view, err := newSettingsView(config)
		if err != nil {
			return err
		}

		return report.Encode(cmd.OutOrStdout(), format, view)
	},
}

func init() {
	rootCmd.AddCommand(vocabularyCmd)

	vocabularyCmd.Flags().StringP("output", "o", string(report.FormatYAML), "output format: json or yaml")
}

type settingsView struct {
	Skills                  []string `json:"skills" yaml:"skills"`
	Degrees                 []string `json:"degrees" yaml:"degrees"`
	MatchMode               string   `json:"match_mode" yaml:"match_mode"`
	ZeroExperienceSatisfied bool     `json:"zero_experience_satisfied" yaml:"zero_experience_satisfied"`
	PreviewLength           int      `json:"preview_length" yaml:"preview_length"`
	Stopwords               int      `json:"stopwords" yaml:"stopwords"`
}

func newSettingsView(config *Config) (*settingsView, error) {
	mode, err := extract.ParseMatchMode(config.Matching.Mode)
	if err != nil {
		return nil, fmt.Errorf("matching.mode: %w", err)
	}

	skills, degrees, err := vocabularies(config)
	if err != nil {
		return nil, err
	}

	previewLength := config.Report.PreviewLength
	if previewLength <= 0 {
		previewLength = report.DefaultPreviewLength
	}

	return &settingsView{
		Skills:                  skills.Terms(),
		Degrees:                 degrees.Terms(),
		MatchMode:               string(mode),
		ZeroExperienceSatisfied: config.Matching.ZeroExperienceSatisfied,
		PreviewLength:           previewLength,
		Stopwords:               textproc.EnglishStopwords().Len(),
	}, nil
}
