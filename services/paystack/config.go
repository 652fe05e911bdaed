package paystack

import (
	"fmt"
	"strings"

	"github.com/MarcGrol/shopreconciler/lib/myerrors"
)

type Mode string

const (
	ModeMock Mode = "mock"
	ModeTest Mode = "test"
	ModeLive Mode = "live"
)

const (
	defaultPublicBaseURL = "http://localhost:8080"
	defaultAPIBaseURL    = "https://api.paystack.co"
)

type Config struct {
	Mode          Mode
	SecretKey     string
	WebhookSecret string
	PublicBaseURL string
	APIBaseURL    string
}

func (c Config) IsMock() bool {
	return c.Mode == ModeMock
}

// LoadConfig selects the gateway mode once per process.
// It never falls back into live mode without a key.
func LoadConfig(getenv func(string) string) (Config, error) {
	testKey := strings.TrimSpace(getenv("PAYSTACK_TEST_SECRET_KEY"))
	liveKey := strings.TrimSpace(getenv("PAYSTACK_LIVE_SECRET_KEY"))

	cfg := Config{
		PublicBaseURL: strings.TrimSuffix(valueOrDefault(getenv("PUBLIC_BASE_URL"), defaultPublicBaseURL), "/"),
		APIBaseURL:    strings.TrimSuffix(valueOrDefault(getenv("PAYSTACK_API_URL"), defaultAPIBaseURL), "/"),
	}

	switch Mode(strings.ToLower(strings.TrimSpace(getenv("PAYSTACK_MODE")))) {
	case ModeMock:
		cfg.Mode = ModeMock
	case ModeTest:
		cfg.Mode = ModeTest
		cfg.SecretKey = valueOrDefault(testKey, liveKey)
	case ModeLive:
		cfg.Mode = ModeLive
		cfg.SecretKey = liveKey
	case "":
		if testKey != "" {
			cfg.Mode = ModeTest
			cfg.SecretKey = testKey
		} else if liveKey != "" {
			cfg.Mode = ModeLive
			cfg.SecretKey = liveKey
		} else {
			return Config{}, myerrors.NewConfigurationError(fmt.Errorf("no paystack secret key configured (set PAYSTACK_TEST_SECRET_KEY or PAYSTACK_LIVE_SECRET_KEY, or PAYSTACK_MODE=mock)"))
		}
	default:
		return Config{}, myerrors.NewConfigurationError(fmt.Errorf("unknown PAYSTACK_MODE '%s'", getenv("PAYSTACK_MODE")))
	}

	if cfg.Mode != ModeMock && cfg.SecretKey == "" {
		return Config{}, myerrors.NewConfigurationError(fmt.Errorf("no paystack secret key available for %s mode", cfg.Mode))
	}

	cfg.WebhookSecret = valueOrDefault(strings.TrimSpace(getenv("PAYSTACK_SECRET_KEY")), cfg.SecretKey)

	return cfg, nil
}

func valueOrDefault(value string, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
