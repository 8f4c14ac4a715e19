package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"dorry-backend/internal/config"
	"dorry-backend/internal/domain"
	"dorry-backend/internal/store"
)

// WeatherClient is the environmental data provider. It tries
// WeatherAPI first, falls back to OpenWeatherMap for wind data, and
// degrades to fixed defaults when both are down: environmental lookups
// must never fail outward, because design generation has to stay
// usable when third-party services are flaky.
type WeatherClient struct {
	weatherAPI  *resty.Client
	openWeather *resty.Client
	cfg         config.WeatherConfig
	cache       store.KV
	logger      *zap.Logger
}

// Fallback environmental constants (typical Cairo conditions).
const (
	fallbackWindDirection   = "North-East"
	fallbackWindSpeed       = 12
	fallbackSolarIrradiance = 5.8
	fallbackTemperature     = 25
	fallbackHumidity        = 50
	fallbackLocationName    = "Egypt"
)

// NewWeatherClient creates the provider chain. cache may be nil to
// disable caching.
func NewWeatherClient(cfg config.WeatherConfig, cache store.KV, logger *zap.Logger) *WeatherClient {
	newClient := func(baseURL string) *resty.Client {
		return resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10 * time.Second).
			SetRetryCount(2).
			SetRetryWaitTime(500 * time.Millisecond).
			SetRetryMaxWaitTime(2 * time.Second).
			SetHeader("Accept", "application/json")
	}
	return &WeatherClient{
		weatherAPI:  newClient(cfg.WeatherAPIBaseURL),
		openWeather: newClient(cfg.OpenWeatherBaseURL),
		cfg:         cfg,
		cache:       cache,
		logger:      logger,
	}
}

// weatherAPIResponse is the subset of the WeatherAPI current.json
// payload this service reads.
type weatherAPIResponse struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Current struct {
		TempC      float64 `json:"temp_c"`
		WindKph    float64 `json:"wind_kph"`
		WindDegree float64 `json:"wind_degree"`
		Humidity   float64 `json:"humidity"`
		Cloud      float64 `json:"cloud"`
		UV         float64 `json:"uv"`
	} `json:"current"`
}

// openWeatherResponse is the subset of the OpenWeatherMap payload used
// for the wind fallback.
type openWeatherResponse struct {
	Wind struct {
		Speed float64 `json:"speed"` // m/s
		Deg   float64 `json:"deg"`
	} `json:"wind"`
}

// cardinals covers the 16-wind rose; index round(degrees/22.5), with
// 360° wrapping back to North.
var cardinals = []string{
	"North", "North-Northeast", "Northeast", "East-Northeast",
	"East", "East-Southeast", "Southeast", "South-Southeast",
	"South", "South-Southwest", "Southwest", "West-Southwest",
	"West", "West-Northwest", "Northwest", "North-Northwest",
	"North",
}

func degreesToCardinal(degrees float64) string {
	index := int(math.Round(degrees / 22.5))
	if index < 0 || index >= len(cardinals) {
		return "North"
	}
	return cardinals[index]
}

// GetEnvironmentalData returns the environmental snapshot for a
// coordinate pair. Cached per rounded coordinate; never returns an
// error — fallback defaults are substituted field by field.
func (c *WeatherClient) GetEnvironmentalData(ctx context.Context, lat, lon float64) domain.WeatherData {
	cacheKey := fmt.Sprintf("weather:%.2f:%.2f", lat, lon)
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey); err == nil {
			var data domain.WeatherData
			if err := json.Unmarshal([]byte(cached), &data); err == nil {
				return data
			}
		}
	}

	data := c.fetchEnvironmentalData(ctx, lat, lon)

	if c.cache != nil {
		if encoded, err := json.Marshal(data); err == nil {
			ttl := time.Duration(c.cfg.CacheTTLSeconds) * time.Second
			if setErr := c.cache.Set(ctx, cacheKey, string(encoded), ttl); setErr != nil {
				c.logger.Warn("Failed to cache environmental data", zap.Error(setErr))
			}
		}
	}

	return data
}

func (c *WeatherClient) fetchEnvironmentalData(ctx context.Context, lat, lon float64) domain.WeatherData {
	data := domain.WeatherData{
		WindDirection:   fallbackWindDirection,
		WindSpeed:       fallbackWindSpeed,
		SolarIrradiance: fallbackSolarIrradiance,
		Temperature:     fallbackTemperature,
		Humidity:        fallbackHumidity,
		Location: domain.GeoPoint{
			Lat:  lat,
			Lon:  lon,
			Name: fallbackLocationName,
		},
		Timestamp: time.Now(),
	}

	current, err := c.fetchCurrent(ctx, lat, lon)
	if err == nil {
		data.WindDirection = degreesToCardinal(current.Current.WindDegree)
		data.WindSpeed = current.Current.WindKph
		data.SolarIrradiance = estimateSolarIrradiance(current.Current.UV, current.Current.Cloud)
		data.Temperature = current.Current.TempC
		data.Humidity = current.Current.Humidity
		if current.Location.Name != "" {
			data.Location.Name = current.Location.Name
		}
		return data
	}
	c.logger.Warn("WeatherAPI request failed, trying OpenWeatherMap",
		zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))

	if wind, owErr := c.fetchOpenWeatherWind(ctx, lat, lon); owErr == nil {
		data.WindDirection = degreesToCardinal(wind.Wind.Deg)
		data.WindSpeed = wind.Wind.Speed * 3.6 // m/s -> km/h
	} else {
		c.logger.Warn("OpenWeatherMap request failed, using fallback defaults", zap.Error(owErr))
	}

	return data
}

func (c *WeatherClient) fetchCurrent(ctx context.Context, lat, lon float64) (*weatherAPIResponse, error) {
	var out weatherAPIResponse
	resp, err := c.weatherAPI.R().
		SetContext(ctx).
		SetQueryParam("key", c.cfg.WeatherAPIKey).
		SetQueryParam("q", fmt.Sprintf("%v,%v", lat, lon)).
		SetResult(&out).
		Get("/v1/current.json")
	if err != nil {
		return nil, fmt.Errorf("weatherapi request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("weatherapi returned status %d", resp.StatusCode())
	}
	return &out, nil
}

func (c *WeatherClient) fetchOpenWeatherWind(ctx context.Context, lat, lon float64) (*openWeatherResponse, error) {
	var out openWeatherResponse
	resp, err := c.openWeather.R().
		SetContext(ctx).
		SetQueryParam("lat", fmt.Sprintf("%v", lat)).
		SetQueryParam("lon", fmt.Sprintf("%v", lon)).
		SetQueryParam("appid", c.cfg.OpenWeatherAPIKey).
		SetResult(&out).
		Get("/data/2.5/weather")
	if err != nil {
		return nil, fmt.Errorf("openweathermap request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("openweathermap returned status %d", resp.StatusCode())
	}
	return &out, nil
}

// estimateSolarIrradiance approximates kWh/m² from UV index and cloud
// cover, rounded to one decimal. Simplistic but sufficient for the
// orientation analysis shown to the user.
func estimateSolarIrradiance(uvIndex, cloudCover float64) float64 {
	baseIrradiance := 5.0 * (uvIndex / 10)
	cloudFactor := 1 - (cloudCover/100)*0.7
	return math.Round(baseIrradiance*cloudFactor*10) / 10
}
