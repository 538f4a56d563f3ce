package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath = "."

	defaultArrivalThresholdMeters = 50.0
	defaultAnimationDuration      = 2 * time.Second
	defaultAnimationSteps         = 60
	defaultSubscriberBuffer       = 16
	defaultRequestTimeout         = 5 * time.Second
	defaultOSRMBaseURL            = "https://router.project-osrm.org"
	defaultOSRMProfile            = "foot"
	defaultOSRMRequestsPerSecond  = 1.0
	defaultGazetteerSource        = "builtin"
	defaultRoutingProvider        = "osrm"
	defaultPubSubProvider         = "noop"
	defaultQRCodeSize             = 256
	defaultQRCodeRecovery         = "medium"
	defaultQRCodeBaseURL          = "campusnav://destination/"
	defaultMaxRequestBodySize     = "1M"
	defaultWorkerPort             = 8090
)

// Routing provider names accepted by routing.provider.
const (
	ProviderOSRM     = "osrm"
	ProviderPMTiles  = "pmtiles"
	ProviderStraight = "straight"
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

	// Gazetteer selects where points of interest are loaded from
	Gazetteer *GazetteerConfig `json:"gazetteer" yaml:"gazetteer"`

	// Navigation tunes the progress tracker and route animator
	Navigation *NavigationConfig `json:"navigation" yaml:"navigation"`

	// Routing configures the route geometry provider
	Routing *RoutingConfig `json:"routing" yaml:"routing"`

	// PMTiles configuration for offline campus routing
	PMTiles *PMTilesConfig `json:"pmtiles" yaml:"pmtiles"`

	// PubSub configuration for navigation event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// QRCode configuration for destination deep-link codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// Worker configures the navigation event push receiver
	Worker *WorkerConfig `json:"worker" yaml:"worker"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// GazetteerConfig defines the point-of-interest source
type GazetteerConfig struct {
	// Source is "builtin" or a path to a .yaml/.yml/.csv file
	Source string `json:"source" yaml:"source"`
}

// NavigationConfig defines progress tracking and animation parameters
type NavigationConfig struct {
	// Distance in meters below which the destination counts as reached
	ArrivalThresholdMeters float64 `json:"arrivalThresholdMeters" yaml:"arrivalThresholdMeters"`

	Animation AnimationConfig `json:"animation" yaml:"animation"`

	// Buffered updates per stream subscriber before updates start being dropped
	SubscriberBuffer int `json:"subscriberBuffer" yaml:"subscriberBuffer"`
}

// AnimationConfig defines the cosmetic route reveal
type AnimationConfig struct {
	Duration time.Duration `json:"duration" yaml:"duration"`
	Steps    int           `json:"steps" yaml:"steps"`
}

// RoutingConfig defines route geometry provider configuration
type RoutingConfig struct {
	// Provider type: "osrm", "pmtiles" or "straight"
	Provider string `json:"provider" yaml:"provider"`

	// Upper bound for a single geometry request before falling back to a straight line
	RequestTimeout time.Duration `json:"requestTimeout" yaml:"requestTimeout"`

	OSRM OSRMConfig `json:"osrm" yaml:"osrm"`
}

// OSRMConfig defines the OSRM HTTP routing backend
type OSRMConfig struct {
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// OSRM profile segment, e.g. "foot" or "driving"
	Profile string `json:"profile" yaml:"profile"`

	// Client side throttle; the public demo server allows about one request per second
	RequestsPerSecond float64 `json:"requestsPerSecond" yaml:"requestsPerSecond"`
}

// PMTilesConfig defines PMTiles routing configuration
type PMTilesConfig struct {
	// Enable PMTiles-based routing
	Enabled bool `json:"enabled" yaml:"enabled"`

	// PMTiles source URL (local file path, HTTP URL, or GCS URL)
	Source string `json:"source" yaml:"source"`

	// Road layer name in the MVT tiles
	RoadLayer string `json:"roadLayer" yaml:"roadLayer"`

	// Zoom level for tile queries
	ZoomLevel int `json:"zoomLevel" yaml:"zoomLevel"`

	// Maximum distance in meters between a point and the footpath network
	MaxSnapMeters float64 `json:"maxSnapMeters" yaml:"maxSnapMeters"`
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

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
	BaseURL              string `json:"baseUrl" yaml:"baseUrl"`
}

// WorkerConfig defines the event worker HTTP listener
type WorkerConfig struct {
	Port int `json:"port" yaml:"port"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// ROUTING_OSRM_BASEURL -> routing.osrm.baseUrl
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
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

	return cfg, nil
}

// ApplyDefaults fills every optional section so downstream constructors never see nil
func (c *Config) ApplyDefaults() {
	if c.HTTP.MaxRequestBodySize == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if c.Gazetteer == nil {
		c.Gazetteer = &GazetteerConfig{}
	}
	if strings.TrimSpace(c.Gazetteer.Source) == "" {
		c.Gazetteer.Source = defaultGazetteerSource
	}

	if c.Navigation == nil {
		c.Navigation = &NavigationConfig{}
	}
	if c.Navigation.ArrivalThresholdMeters <= 0 {
		c.Navigation.ArrivalThresholdMeters = defaultArrivalThresholdMeters
	}
	if c.Navigation.Animation.Duration <= 0 {
		c.Navigation.Animation.Duration = defaultAnimationDuration
	}
	if c.Navigation.Animation.Steps <= 0 {
		c.Navigation.Animation.Steps = defaultAnimationSteps
	}
	if c.Navigation.SubscriberBuffer <= 0 {
		c.Navigation.SubscriberBuffer = defaultSubscriberBuffer
	}

	if c.Routing == nil {
		c.Routing = &RoutingConfig{}
	}
	if c.Routing.Provider == "" {
		c.Routing.Provider = defaultRoutingProvider
	}
	if c.Routing.RequestTimeout <= 0 {
		c.Routing.RequestTimeout = defaultRequestTimeout
	}
	if c.Routing.OSRM.BaseURL == "" {
		c.Routing.OSRM.BaseURL = defaultOSRMBaseURL
	}
	if c.Routing.OSRM.Profile == "" {
		c.Routing.OSRM.Profile = defaultOSRMProfile
	}
	if c.Routing.OSRM.RequestsPerSecond <= 0 {
		c.Routing.OSRM.RequestsPerSecond = defaultOSRMRequestsPerSecond
	}

	if c.PMTiles == nil {
		c.PMTiles = &PMTilesConfig{}
	}

	if c.PubSub == nil {
		c.PubSub = &PubSubConfig{}
	}
	if c.PubSub.Provider == "" {
		c.PubSub.Provider = defaultPubSubProvider
	}

	if c.QRCode == nil {
		c.QRCode = &QRCodeConfig{}
	}
	if c.QRCode.Size <= 0 {
		c.QRCode.Size = defaultQRCodeSize
	}
	if c.QRCode.ErrorCorrectionLevel == "" {
		c.QRCode.ErrorCorrectionLevel = defaultQRCodeRecovery
	}
	if c.QRCode.BaseURL == "" {
		c.QRCode.BaseURL = defaultQRCodeBaseURL
	}

	if c.Worker == nil {
		c.Worker = &WorkerConfig{}
	}
	if c.Worker.Port <= 0 {
		c.Worker.Port = defaultWorkerPort
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
