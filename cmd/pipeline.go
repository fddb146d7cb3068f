package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/analyzer"
	"github.com/spigell/resume-matcher/internal/extract"
	"github.com/spigell/resume-matcher/internal/ingest"
	"github.com/spigell/resume-matcher/internal/report"
	"github.com/spigell/resume-matcher/internal/secrets"
	"github.com/spigell/resume-matcher/internal/textproc"
)

// vocabularies builds the effective skill and degree vocabularies.
func vocabularies(config *Config) (*extract.Vocabulary, *extract.Vocabulary, error) {
	skills, err := extract.NewVocabulary("skills", config.Vocabulary.Skills)
	if err != nil {
		return nil, nil, fmt.Errorf("vocabulary.skills: %w", err)
	}

	degrees, err := extract.NewVocabulary("degrees", config.Vocabulary.Degrees)
	if err != nil {
		return nil, nil, fmt.Errorf("vocabulary.degrees: %w", err)
	}

	return skills, degrees, nil
}

func newAnalyzer(ctx context.Context, config *Config, logger *zap.Logger, withS3 bool) (*analyzer.Analyzer, error) {
	mode, err := extract.ParseMatchMode(config.Matching.Mode)
	if err != nil {
		return nil, fmt.Errorf("matching.mode: %w", err)
	}

	skills, degrees, err := vocabularies(config)
	if err != nil {
		return nil, err
	}

	lemmatizer, err := textproc.NewDictionaryLemmatizer()
	if err != nil {
		return nil, fmt.Errorf("loading lemmatizer: %w", err)
	}

	opts := []ingest.Option{ingest.WithLogger(logger)}
	if withS3 {
		fetcher, err := newS3Fetcher(ctx, config.Storage.S3, logger)
		if err != nil {
			return nil, fmt.Errorf("building s3 fetcher: %w", err)
		}
		opts = append(opts, ingest.WithFetcher("s3", fetcher))
	}

	composer := report.NewComposer(
		report.WithPreviewLength(config.Report.PreviewLength),
		report.WithZeroExperienceSatisfied(config.Matching.ZeroExperienceSatisfied),
	)

	logger.Debug("pipeline configured",
		zap.String("match_mode", string(mode)),
		zap.Int("skills", skills.Len()),
		zap.Int("degrees", degrees.Len()),
		zap.Int("preview_length", config.Report.PreviewLength),
		zap.Int("concurrency", config.Batch.Concurrency),
	)

	return analyzer.New(&analyzer.Config{Concurrency: config.Batch.Concurrency}, &analyzer.Deps{
		Ingestor:   ingest.New(opts...),
		Normalizer: textproc.NewNormalizer(textproc.EnglishStopwords(), lemmatizer),
		Skills:     extract.NewExtractor(skills, mode),
		Education:  extract.NewExtractor(degrees, mode),
		Experience: extract.ExperienceYears,
		Composer:   composer,
		Logger:     logger,
	})
}

func newS3Fetcher(ctx context.Context, cfg S3Config, logger *zap.Logger) (*ingest.S3Fetcher, error) {
	accessKey, err := secrets.LoadOptional(secrets.Source{
		Name: "s3 access key",
		Env:  "RESUME_MATCHER_S3_ACCESS_KEY",
		File: cfg.AccessKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set storage.s3.access-key-file or RESUME_MATCHER_S3_ACCESS_KEY_FILE)", err)
	}

	secretKey, err := secrets.LoadOptional(secrets.Source{
		Name: "s3 secret key",
		Env:  "RESUME_MATCHER_S3_SECRET_KEY",
		File: cfg.SecretKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set storage.s3.secret-key-file or RESUME_MATCHER_S3_SECRET_KEY_FILE)", err)
	}

	if (accessKey == "") != (secretKey == "") {
		return nil, fmt.Errorf("both s3 access key and secret key must be set")
	}

	if accessKey == "" {
		logger.Debug("using default aws credential chain for s3")
	}

	return ingest.NewS3Fetcher(ctx, ingest.S3Config{
		Region:    cfg.Region,
		Endpoint:  cfg.Endpoint,
		PathStyle: cfg.PathStyle,
		AccessKey: accessKey,
		SecretKey: secretKey,
	})
}
