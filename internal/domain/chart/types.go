package chart

import (
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/kundali/internal/domain/natal"
)

// Request is the birth data submitted by a client.
type Request struct {
	Name  string   `json:"name"`
	DOB   string   `json:"dob"`
	TOB   string   `json:"tob"`
	Place string   `json:"place"`
	Lat   *float64 `json:"lat"`
	Lon   *float64 `json:"lon"`
	TZ    string   `json:"tz"`
}

// Response is a computed chart along with its derived views.
type Response struct {
	ID        string            `json:"id,omitempty"`
	Name      string            `json:"name,omitempty"`
	Place     string            `json:"place,omitempty"`
	Birth     natal.BirthInput  `json:"birth"`
	Chart     natal.ChartResult `json:"chart"`
	Houses    [12]natal.Sign    `json:"houses"`
	Aspects   []natal.Aspect    `json:"aspects"`
	Cached    bool              `json:"cached"`
	CreatedAt *time.Time        `json:"createdAt,omitempty"`
}

// Summary is the list view of a stored chart.
type Summary struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Place         string     `json:"place,omitempty"`
	Date          string     `json:"dob"`
	Time          string     `json:"tob"`
	LagnaSign     natal.Sign `json:"lagnaSign"`
	SunSign       natal.Sign `json:"sunSign"`
	MoonSign      natal.Sign `json:"moonSign"`
	MoonNakshatra string     `json:"moonNakshatra"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Record is a persisted chart owned by a single subject.
type Record struct {
	ID        uuid.UUID
	Owner     string
	Name      string
	Place     string
	Birth     natal.BirthInput
	Chart     natal.ChartResult
	CreatedAt time.Time
}
