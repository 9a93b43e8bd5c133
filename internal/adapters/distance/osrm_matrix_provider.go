package distance

import (
	"context"
	"errors"
	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/platform/obs"
	"fleet-route-service/internal/ports"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBatchSize   = 100
	defaultMaxAttempts = 4
	defaultBackoff     = 200 * time.Millisecond
)

// OSRMMatrixProvider implements MatrixProvider using the OSRM Table API.
//
// It coordinates:
//   - Persistent leg caching
//   - Splitting large point sets into source × destination blocks
//   - Request pacing and retry/backoff
//
// The provider is safe for concurrent use.
type OSRMMatrixProvider struct {
	session     *http.Client
	baseURL     string
	profile     string
	batchSize   int
	limiter     *rate.Limiter
	maxAttempts int
	backoff     time.Duration
	cache       ports.LegCache
}

type Option func(*OSRMMatrixProvider)

func WithHTTPClient(c *http.Client) Option {
	return func(o *OSRMMatrixProvider) { o.session = c }
}

// WithProfile selects the OSRM routing profile ("driving", "bike", ...).
func WithProfile(profile string) Option {
	return func(o *OSRMMatrixProvider) { o.profile = profile }
}

// WithBatchSize caps how many sources and destinations go into one request.
func WithBatchSize(n int) Option {
	return func(o *OSRMMatrixProvider) {
		if n > 0 {
			o.batchSize = n
		}
	}
}

// WithRateLimit paces requests to rps per second.
func WithRateLimit(rps float64) Option {
	return func(o *OSRMMatrixProvider) {
		if rps > 0 {
			o.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

func WithRetry(maxAttempts int, backoff time.Duration) Option {
	return func(o *OSRMMatrixProvider) {
		if maxAttempts > 0 {
			o.maxAttempts = maxAttempts
		}
		o.backoff = backoff
	}
}

// NewOSRMMatrixProvider builds a provider for the OSRM server at baseURL.
// cache may be nil.
func NewOSRMMatrixProvider(baseURL string, cache ports.LegCache, opts ...Option) (*OSRMMatrixProvider, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("OSRM base url is empty")
	}

	provider := &OSRMMatrixProvider{
		session:     &http.Client{Timeout: 30 * time.Second},
		baseURL:     baseURL,
		profile:     "driving",
		batchSize:   defaultBatchSize,
		limiter:     rate.NewLimiter(rate.Limit(5), 1),
		maxAttempts: defaultMaxAttempts,
		backoff:     defaultBackoff,
		cache:       cache,
	}
	for _, opt := range opts {
		opt(provider)
	}

	return provider, nil
}

// BuildMatrix returns road distances (km) and durations (minutes) between
// every pair of points. Cached legs are reused; only blocks with at least one
// unknown leg are fetched, and fetched legs are written back to the cache.
func (o *OSRMMatrixProvider) BuildMatrix(
	ctx context.Context,
	points []domain.Coordinates,
) (_ *domain.Matrix, err error) {
	defer obs.Time(ctx, "osrm.BuildMatrix")(&err)

	n := len(points)
	if n == 0 {
		return nil, errors.New("build matrix: points must be non-empty")
	}

	keys := make([]string, n)
	for i, p := range points {
		keys[i] = p.Key()
	}

	m := &domain.Matrix{DistancesKm: square(n), DurationsMin: square(n)}
	known := make([][]bool, n)
	for i := range known {
		known[i] = make([]bool, n)
		known[i][i] = true
	}

	// Check persistent leg cache before issuing external API calls.
	if o.cache != nil {
		for i := range points {
			hits, err := o.cache.GetMany(ctx, keys[i], keys)
			if err != nil {
				return nil, fmt.Errorf("build matrix: get leg cache: %w", err)
			}
			for j := range points {
				if leg, ok := hits[keys[j]]; ok && i != j {
					m.DistancesKm[i][j] = leg.DistanceMeters / 1000
					m.DurationsMin[i][j] = leg.DurationSeconds / 60
					known[i][j] = true
				}
			}
		}
	}

	fresh := make(map[int]map[string]ports.Leg)
	for s := 0; s < n; s += o.batchSize {
		se := min(s+o.batchSize, n)
		for d := 0; d < n; d += o.batchSize {
			de := min(d+o.batchSize, n)
			if blockKnown(known, s, se, d, de) {
				continue
			}

			meters, seconds, err := o.fetchTable(ctx, points[s:se], points[d:de])
			if err != nil {
				return nil, fmt.Errorf("build matrix: block [%d:%d]x[%d:%d]: %w", s, se, d, de, err)
			}

			for i := s; i < se; i++ {
				for j := d; j < de; j++ {
					if known[i][j] {
						continue
					}
					leg := ports.Leg{DistanceMeters: meters[i-s][j-d], DurationSeconds: seconds[i-s][j-d]}
					m.DistancesKm[i][j] = leg.DistanceMeters / 1000
					m.DurationsMin[i][j] = leg.DurationSeconds / 60
					known[i][j] = true

					if fresh[i] == nil {
						fresh[i] = make(map[string]ports.Leg)
					}
					fresh[i][keys[j]] = leg
				}
			}
		}
	}

	if o.cache != nil {
		for i, legs := range fresh {
			if err := o.cache.PutMany(ctx, keys[i], legs); err != nil {
				log.Printf("leg cache write failed: %v", err)
			}
		}
	}

	return m, nil
}

func blockKnown(known [][]bool, s, se, d, de int) bool {
	for i := s; i < se; i++ {
		for j := d; j < de; j++ {
			if !known[i][j] {
				return false
			}
		}
	}
	return true
}

func square(n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
	}
	return out
}
