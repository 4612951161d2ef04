package response

import (
	"github.com/tickergate/tickergate/internal/model"
	"github.com/tickergate/tickergate/internal/services/price"
)

// Session represents the active session in API responses
type Session struct {
	Email string `json:"email"`
	// EstablishedAt is epoch milliseconds, matching the persisted record
	EstablishedAt int64 `json:"established_at"`
}

// SessionFromModel converts a model.Session to a response Session
func SessionFromModel(s *model.Session) Session {
	return Session{
		Email:         s.Email,
		EstablishedAt: s.EstablishedAt.UnixMilli(),
	}
}

// Price represents the ticker state in API responses
type Price struct {
	USD          float64 `json:"usd"`
	INR          float64 `json:"inr"`
	USDDirection string  `json:"usd_direction,omitempty"`
	INRDirection string  `json:"inr_direction,omitempty"`
	// UpdatedAt is epoch milliseconds of the last successful fetch,
	// zero when no fetch has succeeded yet
	UpdatedAt int64 `json:"updated_at,omitempty"`
	Countdown int   `json:"countdown"`
	Failed    bool  `json:"failed,omitempty"`
	Live      bool  `json:"live"`
}

// PriceFromSnapshot converts a price.Snapshot to a response Price
func PriceFromSnapshot(s price.Snapshot) Price {
	p := Price{
		USD:          s.Quote.USD,
		INR:          s.Quote.INR,
		USDDirection: string(s.USDDirection),
		INRDirection: string(s.INRDirection),
		Countdown:    s.Countdown,
		Failed:       s.Failed,
		Live:         s.Live,
	}
	if !s.UpdatedAt.IsZero() {
		p.UpdatedAt = s.UpdatedAt.UnixMilli()
	}
	return p
}
