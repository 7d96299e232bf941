package domain

import "time"

type DeliveryStatus string

const (
	DeliveryConfirmed    DeliveryStatus = "yes"
	DeliveryNotConfirmed DeliveryStatus = "no"
)

// DeliveryRecord is the structured fact extracted from one delivery email.
// ID and CreatedAt are assigned by the store on insert; records are never
// updated afterwards.
type DeliveryRecord struct {
	ID             int64          `json:"id"`
	Delivery       DeliveryStatus `json:"delivery"`
	PriceNum       float64        `json:"price_num"`
	Description    string         `json:"description"`
	OrderID        string         `json:"order_id"`
	DeliveryDate   string         `json:"delivery_date,omitempty"`
	Store          string         `json:"store"`
	TrackingNumber string         `json:"tracking_number"`
	Carrier        string         `json:"carrier"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Submission is one email handed to the pipeline, already fetched and
// filtered by the mailbox collaborator.
type Submission struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Sender  string `json:"sender"`
	Date    string `json:"date"`
	Body    string `json:"body"`
}

// AnalyzeResult is what one pipeline run hands back to the caller. The
// validated record is present even when persistence failed, and RawOutput
// keeps the normalized completion text so malformed replies stay visible.
type AnalyzeResult struct {
	Record    DeliveryRecord `json:"record"`
	Saved     bool           `json:"saved"`
	Defaulted []string       `json:"defaulted,omitempty"`
	RawOutput string         `json:"raw_output,omitempty"`
}

type StatsSummary struct {
	Total        int     `json:"total"`
	Confirmed    int     `json:"confirmed"`
	ConfirmedPct float64 `json:"confirmed_pct"`
	TotalSpent   float64 `json:"total_spent"`
}
