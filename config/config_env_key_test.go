package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"geocoding": map[string]any{
			"baseUrl":        "",
			"minQueryLength": 3,
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"workspace": map[string]any{
			"defaultCenterLat": 20,
		},
		"http": map[string]any{
			"timeouts": map[string]any{
				"readTimeout": "10s",
			},
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "GEOCODING_BASEURL", want: "geocoding.baseUrl"},
		{envKey: "GEOCODING_MINQUERYLENGTH", want: "geocoding.minQueryLength"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "WORKSPACE_DEFAULTCENTERLAT", want: "workspace.defaultCenterLat"},
		{envKey: "HTTP_TIMEOUTS_READTIMEOUT", want: "http.timeouts.readTimeout"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	require.NotNil(t, cfg.Geocoding)
	require.NotNil(t, cfg.Workspace)
	require.NotNil(t, cfg.Export)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, 3, cfg.Geocoding.MinQueryLength)
	assert.Equal(t, 5, cfg.Geocoding.SuggestionLimit)
	assert.Equal(t, 300*time.Millisecond, cfg.Geocoding.Debounce)
	assert.Equal(t, 20.0, cfg.Workspace.DefaultCenterLat)
	assert.Equal(t, 3.0, cfg.Workspace.DefaultZoom)
	assert.Equal(t, "mem://", cfg.Export.BucketURL)

	require.NotNil(t, cfg.Worker)
	assert.Equal(t, 8081, cfg.Worker.Port)
	assert.Equal(t, 100, cfg.Worker.HistorySize)
	assert.Equal(t, ActivityStoreMemory, cfg.Worker.Store)
	assert.Nil(t, cfg.Postgres)
}

func TestBuildReplicasFromEnv(t *testing.T) {
	t.Setenv("POSTGRES_REPLICAS_0_HOST", "replica-a")
	t.Setenv("POSTGRES_REPLICAS_0_PORT", "5432")
	t.Setenv("POSTGRES_REPLICAS_0_USERNAME", "reader")
	t.Setenv("POSTGRES_REPLICAS_1_HOST", "replica-b")
	// Missing port ends the list

	replicas := buildReplicasFromEnv()
	require.Len(t, replicas, 1)
	assert.Equal(t, "replica-a", replicas[0].Host)
	assert.Equal(t, "5432", replicas[0].Port)
	assert.Equal(t, "reader", replicas[0].UserName)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Geocoding: &GeocodingConfig{MinQueryLength: 5, Debounce: time.Second},
		Workspace: &WorkspaceConfig{DefaultZoom: 8},
	}
	cfg.ApplyDefaults()

	assert.Equal(t, 5, cfg.Geocoding.MinQueryLength)
	assert.Equal(t, time.Second, cfg.Geocoding.Debounce)
	assert.Equal(t, 8.0, cfg.Workspace.DefaultZoom)
	assert.Equal(t, 0.0, cfg.Workspace.DefaultCenterLat)
}

func TestLoadWithEnv_ReadsYAMLAndEnvOverride(t *testing.T) {
	t.Setenv("GEOCODING_USERAGENT", "mapnote-test")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeouts.ReadTimeout)
	require.NotNil(t, cfg.Geocoding)
	assert.Equal(t, "mapnote-test", cfg.Geocoding.UserAgent)
	assert.Equal(t, 300*time.Millisecond, cfg.Geocoding.Debounce)
}
