package domain

import "time"

type WasteType string

const (
	WasteTypePlastic    WasteType = "plastic"
	WasteTypePaper      WasteType = "paper"
	WasteTypeMetal      WasteType = "metal"
	WasteTypeGlass      WasteType = "glass"
	WasteTypeElectronic WasteType = "electronic"
)

// WasteTypes lists the accepted waste types in display order.
var WasteTypes = []WasteType{
	WasteTypePlastic,
	WasteTypePaper,
	WasteTypeMetal,
	WasteTypeGlass,
	WasteTypeElectronic,
}

func (w WasteType) Valid() bool {
	for _, t := range WasteTypes {
		if w == t {
			return true
		}
	}
	return false
}

func (w WasteType) Label() string {
	switch w {
	case WasteTypePlastic:
		return "Plastic"
	case WasteTypePaper:
		return "Paper & Cardboard"
	case WasteTypeMetal:
		return "Metal"
	case WasteTypeGlass:
		return "Glass"
	case WasteTypeElectronic:
		return "Electronic Waste"
	}
	return string(w)
}

type PickupStatus string

const PickupStatusScheduled PickupStatus = "scheduled"

type Pickup struct {
	ID           string       `json:"id"`
	WasteType    WasteType    `json:"wasteType"`
	Quantity     int          `json:"quantity"`
	DateTime     time.Time    `json:"dateTime"`
	Instructions string       `json:"instructions,omitempty"`
	Status       PickupStatus `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
}
