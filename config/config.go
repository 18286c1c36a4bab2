package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultGeocodingBaseURL   = "https://nominatim.openstreetmap.org"
	defaultGeocodingUserAgent = "mapnote/1.0"
	defaultGeocodingTimeout   = 10 * time.Second
	defaultMinQueryLength     = 3
	defaultSuggestionLimit    = 5
	defaultDebounceWindow     = 300 * time.Millisecond
	defaultSearchZoom         = 13

	defaultCenterLat = 20.0
	defaultCenterLng = 0.0
	defaultZoom      = 3

	defaultExportBucketURL = "mem://"

	defaultWorkerPort        = 8081
	defaultWorkerHistorySize = 100

	// Worker activity stores
	ActivityStoreMemory   = "memory"
	ActivityStorePostgres = "postgres"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Geocoding configuration for the place search collaborator
	Geocoding *GeocodingConfig `json:"geocoding" yaml:"geocoding"`

	// Workspace configuration for in-memory map instances
	Workspace *WorkspaceConfig `json:"workspace" yaml:"workspace"`

	// QRCode configuration for feature share codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// Export configuration for GeoJSON snapshots
	Export *ExportConfig `json:"export" yaml:"export"`

	// PubSub configuration for map event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
	// Worker configuration for the map activity consumer
	Worker *WorkerConfig `json:"worker" yaml:"worker"`
	// Postgres connection, only read when worker.store is postgres
	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// GeocodingConfig defines the Nominatim-compatible search endpoint and the
// suggestion box behaviour.
type GeocodingConfig struct {
	BaseURL   string        `json:"baseUrl" yaml:"baseUrl"`
	UserAgent string        `json:"userAgent" yaml:"userAgent"`
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`

	// Queries shorter than this never reach the geocoder
	MinQueryLength int `json:"minQueryLength" yaml:"minQueryLength"`

	// Number of suggestions requested per keystroke burst
	SuggestionLimit int `json:"suggestionLimit" yaml:"suggestionLimit"`

	// Quiet window before a suggestion fetch is issued
	Debounce time.Duration `json:"debounce" yaml:"debounce"`

	// Zoom applied when a search result recenters the map
	SearchZoom float64 `json:"searchZoom" yaml:"searchZoom"`
}

// WorkspaceConfig defines limits and defaults for map instances
type WorkspaceConfig struct {
	// Maximum number of live map instances, 0 means unlimited
	MaxMaps int `json:"maxMaps" yaml:"maxMaps"`

	DefaultCenterLat float64 `json:"defaultCenterLat" yaml:"defaultCenterLat"`
	DefaultCenterLng float64 `json:"defaultCenterLng" yaml:"defaultCenterLng"`
	DefaultZoom      float64 `json:"defaultZoom" yaml:"defaultZoom"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
}

// ExportConfig defines where GeoJSON snapshots are written
type ExportConfig struct {
	// Bucket URL understood by gocloud.dev/blob, e.g. mem:// or file:///var/lib/mapnote
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`

	// Key prefix inside the bucket
	Prefix string `json:"prefix" yaml:"prefix"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// WorkerConfig defines the push endpoint that records map activity
type WorkerConfig struct {
	Port int `json:"port" yaml:"port"`
	// Events kept per map; older entries are evicted first
	HistorySize int `json:"historySize" yaml:"historySize"`
	// Store is memory or postgres
	Store string `json:"store" yaml:"store"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// GEOCODING_BASEURL -> geocoding.baseUrl, matched against the YAML keys
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}

// ApplyDefaults fills every optional section so that consumers never see nil
// sub-configs or zero limits.
func (cfg *Config) ApplyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Geocoding == nil {
		cfg.Geocoding = &GeocodingConfig{}
	}
	g := cfg.Geocoding
	if g.BaseURL == "" {
		g.BaseURL = defaultGeocodingBaseURL
	}
	if g.UserAgent == "" {
		g.UserAgent = defaultGeocodingUserAgent
	}
	if g.Timeout <= 0 {
		g.Timeout = defaultGeocodingTimeout
	}
	if g.MinQueryLength <= 0 {
		g.MinQueryLength = defaultMinQueryLength
	}
	if g.SuggestionLimit <= 0 {
		g.SuggestionLimit = defaultSuggestionLimit
	}
	if g.Debounce <= 0 {
		g.Debounce = defaultDebounceWindow
	}
	if g.SearchZoom <= 0 {
		g.SearchZoom = defaultSearchZoom
	}

	if cfg.Workspace == nil {
		cfg.Workspace = &WorkspaceConfig{
			DefaultCenterLat: defaultCenterLat,
			DefaultCenterLng: defaultCenterLng,
		}
	}
	if cfg.Workspace.DefaultZoom <= 0 {
		cfg.Workspace.DefaultZoom = defaultZoom
	}

	if cfg.Export == nil {
		cfg.Export = &ExportConfig{}
	}
	if cfg.Export.BucketURL == "" {
		cfg.Export.BucketURL = defaultExportBucketURL
	}

	if cfg.Worker == nil {
		cfg.Worker = &WorkerConfig{}
	}
	if cfg.Worker.Port <= 0 {
		cfg.Worker.Port = defaultWorkerPort
	}
	if cfg.Worker.HistorySize <= 0 {
		cfg.Worker.HistorySize = defaultWorkerHistorySize
	}
	if cfg.Worker.Store == "" {
		cfg.Worker.Store = ActivityStoreMemory
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
