package models

import (
	"strings"
	"time"
)

// EntryStatus enumerates the lifecycle states an operator can report for an order.
type EntryStatus string

const (
	StatusPending    EntryStatus = "pending"
	StatusInProgress EntryStatus = "in_progress"
	StatusCompleted  EntryStatus = "completed"
	StatusOnHold     EntryStatus = "on_hold"
)

// ParseEntryStatus normalizes free-form status text. An empty value maps to
// StatusCompleted; ok is false for values outside the enumeration.
func ParseEntryStatus(value string) (EntryStatus, bool) {
	normalized := strings.ReplaceAll(strings.TrimSpace(strings.ToLower(value)), "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")

	switch EntryStatus(normalized) {
	case "":
		return StatusCompleted, true
	case StatusPending, StatusInProgress, StatusCompleted, StatusOnHold:
		return EntryStatus(normalized), true
	default:
		return "", false
	}
}

// Entry is one persisted production event.
type Entry struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	OrderNo        string      `gorm:"column:order_no;size:64;not null;index" json:"order_no"`
	ItemName       string      `gorm:"column:item_name;size:255" json:"item_name"`
	OperatorID     string      `gorm:"column:operator_id;size:64;not null;index" json:"operator_id"`
	MachineID      string      `gorm:"column:machine_id;size:64;not null;index" json:"machine_id"`
	MaterialPicked float64     `gorm:"column:material_picked;not null;default:0" json:"material_picked"`
	ProducedQty    float64     `gorm:"column:produced_qty;not null;default:0" json:"produced_qty"`
	WastedQty      float64     `gorm:"column:wasted_qty;not null;default:0" json:"wasted_qty"`
	WastageReason  string      `gorm:"column:wastage_reason;size:255" json:"wastage_reason"`
	Status         EntryStatus `gorm:"column:status;size:16;not null" json:"status"`
	EnteredBy      string      `gorm:"column:entered_by;size:64;index" json:"entered_by"`
	EntryDate      time.Time   `gorm:"column:entry_date;not null;index" json:"entry_date"`
}

// TableName keeps the table name used by the existing dashboard database.
func (Entry) TableName() string {
	return "production_data"
}

// EntryPayload mirrors the JSON body submitted by the entry form. Quantities
// are pointers so an absent field can be told apart from an explicit zero.
type EntryPayload struct {
	OrderNo        string   `json:"orderNo"`
	ItemName       string   `json:"itemName"`
	OperatorID     string   `json:"operatorId"`
	MachineID      string   `json:"machineId"`
	MaterialPicked *float64 `json:"materialPicked"`
	ProducedQty    *float64 `json:"producedQty"`
	WastedQty      *float64 `json:"wastedQty"`
	WastageReason  string   `json:"wastageReason"`
	Status         string   `json:"status"`
	EnteredBy      string   `json:"enteredBy"`
}

// Quantity dereferences an optional quantity, treating nil as zero.
func Quantity(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}

// EntryAck is returned to the submitter once the entry has been handled.
type EntryAck struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	ID      uint     `json:"id,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}
