package domain

import "time"

// PricePoint is one sample of a historical series
type PricePoint struct {
	Timestamp time.Time
	Price     float64
}

// PredictionPoint is one forecast day with its uncertainty band
type PredictionPoint struct {
	Date       time.Time
	Prediction float64
	LowerBound float64
	UpperBound float64
}

// BandWidth is UpperBound - LowerBound
func (p PredictionPoint) BandWidth() float64 {
	return p.UpperBound - p.LowerBound
}
