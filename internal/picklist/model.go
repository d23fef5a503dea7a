package picklist

import (
	"time"

	"github.com/jccirs09/picklist/constants"
)

// PickingList is the structured record extracted from one picking-list PDF.
// OrderNumber is the business key; every other field is best-effort and nil
// (or empty for slices) when the document did not yield it.
type PickingList struct {
	OrderNumber         string     `json:"order_number"`
	PrintDateTime       *time.Time `json:"print_date_time,omitempty"`
	PickingGroup        *string    `json:"picking_group,omitempty"`
	Buyer               *string    `json:"buyer,omitempty"`
	ShipDate            *time.Time `json:"ship_date,omitempty"`
	PurchaseOrderNumber *string    `json:"purchase_order_number,omitempty"`
	OrderDate           *time.Time `json:"order_date,omitempty"`
	JobName             *string    `json:"job_name,omitempty"`
	SalesRep            *string    `json:"sales_rep,omitempty"`
	ShipVia             *string    `json:"ship_via,omitempty"`
	SoldTo              Party      `json:"sold_to"`
	ShipTo              Party      `json:"ship_to"`
	FOBPoint            *string    `json:"fob_point,omitempty"`
	Route               *string    `json:"route,omitempty"`
	Terms               *string    `json:"terms,omitempty"`
	ReceivingHours      *string    `json:"receiving_hours,omitempty"`
	CallBeforePhone     *string    `json:"call_before_phone,omitempty"`
	TotalWeightLbs      *float64   `json:"total_weight_lbs,omitempty"`
	Items               []Item     `json:"items"`
}

// Party is one of the two address blocks (sold-to / ship-to).
// A nil field means "not found in document", not "blank on the document".
type Party struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	AddressLine *string `json:"address_line,omitempty"`
	City        *string `json:"city,omitempty"`
	Province    *string `json:"province,omitempty"`
	PostalCode  *string `json:"postal_code,omitempty"`
}

// Item is one line of the picking table. Line numbers restart per page, so
// they are not unique within a document.
type Item struct {
	LineNo         int                    `json:"line_no"`
	Quantity       int                    `json:"quantity"`
	QuantityUnit   constants.QuantityUnit `json:"quantity_unit"`
	QuantityStaged *int                   `json:"quantity_staged,omitempty"`
	ItemCode       string                 `json:"item_code"`
	WidthIn        *float64               `json:"width_in,omitempty"`
	LengthIn       *float64               `json:"length_in,omitempty"`
	WeightLbs      *float64               `json:"weight_lbs,omitempty"`
	Description    *string                `json:"description,omitempty"`
	ProcessType    *constants.ProcessType `json:"process_type,omitempty"`
	TagDetails     []TagDetail            `json:"tag_details"`
}

// TagDetail is one traceability row (tag/heat/mill) nested under an item.
type TagDetail struct {
	TagNo       *string                 `json:"tag_no,omitempty"`
	HeatNo      *string                 `json:"heat_no,omitempty"`
	MillRef     *string                 `json:"mill_ref,omitempty"`
	Qty         *int                    `json:"qty,omitempty"`
	QtyUnit     *constants.QuantityUnit `json:"qty_unit,omitempty"`
	ThicknessIn *float64                `json:"thickness_in,omitempty"`
	Size        *string                 `json:"size,omitempty"`
	Location    *string                 `json:"location,omitempty"`
}
