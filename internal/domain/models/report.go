package models

import "time"

// DailyReport is the end-of-day digest delivered to external report sinks.
type DailyReport struct {
	Date         string    `bson:"date" json:"date"`
	Entries      int64     `bson:"entries" json:"entries"`
	Received     float64   `bson:"received" json:"received"`
	Produced     float64   `bson:"produced" json:"produced"`
	Wasted       float64   `bson:"wasted" json:"wasted"`
	WastePercent float64   `bson:"waste_percent" json:"waste_percent"`
	Forecast     int64     `bson:"forecast" json:"forecast"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
