package paystack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/shopreconciler/lib/myerrors"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoadConfig(t *testing.T) {
	testCases := []struct {
		name          string
		env           map[string]string
		expectedMode  Mode
		expectedKey   string
		expectedError bool
	}{
		{
			name:         "Explicit mock needs no key",
			env:          map[string]string{"PAYSTACK_MODE": "mock"},
			expectedMode: ModeMock,
		},
		{
			name:         "Explicit mode is case insensitive",
			env:          map[string]string{"PAYSTACK_MODE": "MOCK"},
			expectedMode: ModeMock,
		},
		{
			name:         "Test key preferred over live key",
			env:          map[string]string{"PAYSTACK_TEST_SECRET_KEY": "sk_test", "PAYSTACK_LIVE_SECRET_KEY": "sk_live"},
			expectedMode: ModeTest,
			expectedKey:  "sk_test",
		},
		{
			name:         "Live key only",
			env:          map[string]string{"PAYSTACK_LIVE_SECRET_KEY": "sk_live"},
			expectedMode: ModeLive,
			expectedKey:  "sk_live",
		},
		{
			name:         "Explicit live ignores test key",
			env:          map[string]string{"PAYSTACK_MODE": "live", "PAYSTACK_TEST_SECRET_KEY": "sk_test", "PAYSTACK_LIVE_SECRET_KEY": "sk_live"},
			expectedMode: ModeLive,
			expectedKey:  "sk_live",
		},
		{
			name:         "Explicit test falls back to live key",
			env:          map[string]string{"PAYSTACK_MODE": "test", "PAYSTACK_LIVE_SECRET_KEY": "sk_live"},
			expectedMode: ModeTest,
			expectedKey:  "sk_live",
		},
		{
			name:          "No key at all",
			env:           map[string]string{},
			expectedError: true,
		},
		{
			name:          "Explicit live without key",
			env:           map[string]string{"PAYSTACK_MODE": "live", "PAYSTACK_TEST_SECRET_KEY": "sk_test"},
			expectedError: true,
		},
		{
			name:          "Unknown mode",
			env:           map[string]string{"PAYSTACK_MODE": "sandbox", "PAYSTACK_TEST_SECRET_KEY": "sk_test"},
			expectedError: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadConfig(envOf(tc.env))
			if tc.expectedError {
				assert.Error(t, err)
				assert.True(t, myerrors.IsKind(err, myerrors.KindConfiguration))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expectedMode, cfg.Mode)
			assert.Equal(t, tc.expectedKey, cfg.SecretKey)
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig(envOf(map[string]string{"PAYSTACK_TEST_SECRET_KEY": "sk_test"}))
		assert.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", cfg.PublicBaseURL)
		assert.Equal(t, "https://api.paystack.co", cfg.APIBaseURL)
		assert.Equal(t, "sk_test", cfg.WebhookSecret)
	})

	t.Run("Overrides", func(t *testing.T) {
		cfg, err := LoadConfig(envOf(map[string]string{
			"PAYSTACK_TEST_SECRET_KEY": "sk_test",
			"PAYSTACK_SECRET_KEY":      "whsec",
			"PUBLIC_BASE_URL":          "https://shop.example.com/",
			"PAYSTACK_API_URL":         "http://localhost:9999",
		}))
		assert.NoError(t, err)
		assert.Equal(t, "https://shop.example.com", cfg.PublicBaseURL)
		assert.Equal(t, "http://localhost:9999", cfg.APIBaseURL)
		assert.Equal(t, "whsec", cfg.WebhookSecret)
	})

	t.Run("Mock mode without webhook secret", func(t *testing.T) {
		cfg, err := LoadConfig(envOf(map[string]string{"PAYSTACK_MODE": "mock"}))
		assert.NoError(t, err)
		assert.True(t, cfg.IsMock())
		assert.Empty(t, cfg.WebhookSecret)
	})
}
