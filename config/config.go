package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spacesedan/docscore/internal/clients"
)

var ErrUnknownBackend = errors.New("unknown sentiment backend")

const (
	BackendLocal  = "local"
	BackendVader  = "vader"
	BackendOpenAI = "openai"
	BackendRemote = "remote"
)

const (
	EmptyPolicyZero    = "zero"
	EmptyPolicyNeutral = "neutral"
)

// Config is read once at startup and passed down explicitly.
type Config struct {
	Env string

	SegmentMaxBytes int

	KeywordTopK     int
	KeywordExtended bool

	TopicCount       int
	TopicTopWords    int
	TopicMaxFeatures int
	TopicMaxIter     int
	TopicSeed        uint64

	SentimentBackend     string
	SentimentEmptyPolicy string
	SentimentModelName   string
	SentimentModelDir    string
	RemoteEndpoint       string
	OpenAIAPIKey         string
	OpenAIModel          string
	RequestTimeout       time.Duration

	TargetTopic string
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

// Load builds the configuration from the environment, filling in defaults.
func Load() (Config, error) {
	cfg := Config{
		Env:                getEnv("APP_ENV", "dev"),
		SentimentBackend:   strings.ToLower(getEnv("SENTIMENT_BACKEND", BackendLocal)),
		SentimentModelName: getEnv("SENTIMENT_MODEL_NAME", "uer/roberta-base-finetuned-jd-binary-chinese"),
		SentimentModelDir:  getEnv("SENTIMENT_MODEL_DIR", "./models"),
		RemoteEndpoint:     getEnv("SENTIMENT_REMOTE_ENDPOINT", "http://localhost:8000/classify"),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		TargetTopic:        getEnv("TARGET_TOPIC", "民营经济发展"),
	}

	ints := []struct {
		key  string
		def  int
		dest *int
	}{
		{"SEGMENT_MAX_BYTES", 512, &cfg.SegmentMaxBytes},
		{"KEYWORD_TOP_K", 40, &cfg.KeywordTopK},
		{"TOPIC_COUNT", 5, &cfg.TopicCount},
		{"TOPIC_TOP_WORDS", 10, &cfg.TopicTopWords},
		{"TOPIC_MAX_FEATURES", 2000, &cfg.TopicMaxFeatures},
		{"TOPIC_MAX_ITER", 50, &cfg.TopicMaxIter},
	}
	for _, f := range ints {
		v, err := getEnvInt(f.key, f.def)
		if err != nil {
			return Config{}, err
		}
		if v <= 0 {
			return Config{}, fmt.Errorf("invalid %s %d: must be positive", f.key, v)
		}
		*f.dest = v
	}

	seed, err := getEnvInt("TOPIC_SEED", 42)
	if err != nil {
		return Config{}, err
	}
	cfg.TopicSeed = uint64(seed)

	if cfg.KeywordExtended, err = getEnvBool("KEYWORD_EXTENDED", true); err != nil {
		return Config{}, err
	}

	switch cfg.SentimentBackend {
	case BackendLocal, BackendVader, BackendOpenAI, BackendRemote:
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.SentimentBackend)
	}

	cfg.SentimentEmptyPolicy = strings.ToLower(getEnv("SENTIMENT_EMPTY_POLICY", DefaultEmptyPolicy(cfg.SentimentBackend)))
	if cfg.SentimentEmptyPolicy != EmptyPolicyZero && cfg.SentimentEmptyPolicy != EmptyPolicyNeutral {
		return Config{}, fmt.Errorf("invalid SENTIMENT_EMPTY_POLICY %q", cfg.SentimentEmptyPolicy)
	}

	timeout := clients.DEFAULT_TIMEOUT
	if cfg.Env == "production" {
		timeout = clients.PRODUCTION_TIMEOUT
	}
	if raw := getEnv("REQUEST_TIMEOUT", ""); raw != "" {
		if timeout, err = time.ParseDuration(raw); err != nil {
			return Config{}, fmt.Errorf("invalid REQUEST_TIMEOUT %q: %w", raw, err)
		}
	}
	cfg.RequestTimeout = timeout

	return cfg, nil
}

// DefaultEmptyPolicy keeps the two historical answers for an empty document:
// in-process backends answer 0, remote ones answer {neutral, 0.0}.
func DefaultEmptyPolicy(backend string) string {
	switch backend {
	case BackendOpenAI, BackendRemote:
		return EmptyPolicyNeutral
	default:
		return EmptyPolicyZero
	}
}
