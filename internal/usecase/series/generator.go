package series

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/simaogato/cryptodash-backend/internal/domain"
)

// RandomSource yields uniform values in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// globalSource draws from the math/rand top-level generator, which is
// safe for concurrent use
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Generator produces synthetic chart series. It is safe for concurrent use
// as long as its RandomSource is.
type Generator struct {
	random RandomSource
	now    func() time.Time
}

// Option configures a Generator
type Option func(*Generator)

// WithRandom replaces the entropy source, e.g. with a fixed sequence in tests
func WithRandom(src RandomSource) Option {
	return func(g *Generator) { g.random = src }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// NewGenerator creates a Generator backed by real entropy and the wall clock
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{random: globalSource{}, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Historical returns days+1 daily points ending today (UTC), oldest first
// Logic, with i = days back from today:
//   - trend = sin(i/10) * volatility * base
//   - noise = (r - 0.5) * volatility * base
//   - price = base + trend + noise
func (g *Generator) Historical(basePrice, volatility float64, days int) ([]domain.PricePoint, error) {
	if err := validate(basePrice, volatility, days); err != nil {
		return nil, err
	}

	today := startOfDay(g.now())
	points := make([]domain.PricePoint, 0, days+1)

	for i := days; i >= 0; i-- {
		trend := math.Sin(float64(i)/10) * volatility * basePrice
		noise := (g.random.Float64() - 0.5) * volatility * basePrice

		points = append(points, domain.PricePoint{
			Timestamp: today.AddDate(0, 0, -i),
			Price:     basePrice + trend + noise,
		})
	}
	return points, nil
}

// Prediction returns days forecast points starting tomorrow (UTC)
// Logic, for horizon i = 1..days with p(0) = base:
//   - trend = cos(i/5) * 0.01 * p(i-1)
//   - noise = (r - 0.48) * volatility * p(i-1) / 10
//   - p(i) = p(i-1) + trend + noise
//   - uncertainty = volatility * p(i) * i / days, bounds = p(i) -/+ uncertainty
func (g *Generator) Prediction(basePrice, volatility float64, days int) ([]domain.PredictionPoint, error) {
	if err := validate(basePrice, volatility, days); err != nil {
		return nil, err
	}

	today := startOfDay(g.now())
	points := make([]domain.PredictionPoint, 0, days)
	last := basePrice

	for i := 1; i <= days; i++ {
		trend := math.Cos(float64(i)/5) * 0.01 * last
		noise := (g.random.Float64() - 0.48) * volatility * last / 10

		prediction := last + trend + noise
		uncertainty := volatility * prediction * (float64(i) / float64(days))

		points = append(points, domain.PredictionPoint{
			Date:       today.AddDate(0, 0, i),
			Prediction: prediction,
			LowerBound: prediction - uncertainty,
			UpperBound: prediction + uncertainty,
		})
		last = prediction
	}
	return points, nil
}

func validate(basePrice, volatility float64, days int) error {
	if math.IsNaN(basePrice) || math.IsInf(basePrice, 0) || basePrice <= 0 {
		return fmt.Errorf("%w: base price must be a finite positive number, got %v", domain.ErrInvalidParameters, basePrice)
	}
	if math.IsNaN(volatility) || math.IsInf(volatility, 0) || volatility < 0 {
		return fmt.Errorf("%w: volatility must be finite and non-negative, got %v", domain.ErrInvalidParameters, volatility)
	}
	if days < 0 {
		return fmt.Errorf("%w: days must not be negative, got %d", domain.ErrInvalidParameters, days)
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
