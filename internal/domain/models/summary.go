package models

import "time"

// Totals is the sum of the three tracked quantities over a window.
type Totals struct {
	Received float64 `json:"received"`
	Produced float64 `json:"produced"`
	Wasted   float64 `json:"wasted"`
}

// OrdersSummary holds the daily, weekly, monthly and yearly totals, in that order.
type OrdersSummary struct {
	Received []float64 `json:"received"`
	Produced []float64 `json:"produced"`
	Wasted   []float64 `json:"wasted"`
	Error    string    `json:"error,omitempty"`
}

// DateSummary is the aggregate for a single calendar date.
type DateSummary struct {
	Date string `json:"date"`
	Totals
	Error string `json:"error,omitempty"`
}

// OperatorSummary lists produced quantity per operator.
type OperatorSummary struct {
	Names       []string  `json:"names"`
	Performance []float64 `json:"performance"`
	Error       string    `json:"error,omitempty"`
}

// MachineSummary lists efficiency percentages per machine.
type MachineSummary struct {
	Names      []string `json:"names"`
	Efficiency []int64  `json:"efficiency"`
	Error      string   `json:"error,omitempty"`
}

// Comparison holds day-over-day received and dispatched figures.
type Comparison struct {
	Date               string  `json:"date"`
	ReceivedQty        float64 `json:"receivedQty"`
	DispatchedQty      float64 `json:"dispatchedQty"`
	PreviousReceived   float64 `json:"previousReceived"`
	PreviousDispatched float64 `json:"previousDispatched"`
	ReceivedChange     float64 `json:"receivedChange"`
	DispatchedChange   float64 `json:"dispatchedChange"`
	Error              string  `json:"error,omitempty"`
}

// Forecast is the predicted produced quantity for the day after the last
// observed date.
type Forecast struct {
	PredictedQty int64  `json:"predictedQty"`
	Error        string `json:"error,omitempty"`
}

// GroupTotal is a produced/wasted sum for one group-by key.
type GroupTotal struct {
	Key      string `gorm:"column:group_key"`
	Produced float64
	Wasted   float64
}

// TimedQuantity is one entry's produced quantity with its timestamp.
type TimedQuantity struct {
	EntryDate   time.Time
	ProducedQty float64
}
