package picklist

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jccirs09/picklist/constants"
	"github.com/jccirs09/picklist/internal/common"
)

// BuildRecordJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing a serialized PickingList. Only the order number is
// required; everything else is best-effort by design.
func BuildRecordJSONSchema() map[string]any {
	partyProps := map[string]any{
		"name":         map[string]any{"type": "string"},
		"email":        map[string]any{"type": "string"},
		"address_line": map[string]any{"type": "string"},
		"city":         map[string]any{"type": "string"},
		"province":     map[string]any{"type": "string"},
		"postal_code":  map[string]any{"type": "string"},
	}
	party := map[string]any{"type": "object", "properties": partyProps}

	tagProps := map[string]any{
		"tag_no":       map[string]any{"type": "string"},
		"heat_no":      map[string]any{"type": "string"},
		"mill_ref":     map[string]any{"type": "string"},
		"qty":          map[string]any{"type": "integer"},
		"qty_unit":     map[string]any{"type": "string", "enum": []string{"PCS", "LBS"}},
		"thickness_in": map[string]any{"type": "number"},
		"size":         map[string]any{"type": "string"},
		"location":     map[string]any{"type": "string"},
	}

	itemProps := map[string]any{
		"line_no":         map[string]any{"type": "integer", "minimum": 1},
		"quantity":        map[string]any{"type": "integer"},
		"quantity_unit":   map[string]any{"type": "string", "enum": []string{"PCS", "LBS"}},
		"quantity_staged": map[string]any{"type": "integer"},
		"item_code":       map[string]any{"type": "string", "minLength": 1},
		"width_in":        map[string]any{"type": "number"},
		"length_in":       map[string]any{"type": "number"},
		"weight_lbs":      map[string]any{"type": "number"},
		"description":     map[string]any{"type": "string"},
		"process_type":    map[string]any{"type": "string", "enum": constants.ProcessTypeStrings()},
		"tag_details":     map[string]any{"type": "array", "items": map[string]any{"type": "object", "properties": tagProps}},
	}

	props := map[string]any{
		"order_number":          map[string]any{"type": "string", "minLength": 1},
		"print_date_time":       map[string]any{"type": "string"},
		"picking_group":         map[string]any{"type": "string"},
		"buyer":                 map[string]any{"type": "string"},
		"ship_date":             map[string]any{"type": "string"},
		"purchase_order_number": map[string]any{"type": "string"},
		"order_date":            map[string]any{"type": "string"},
		"job_name":              map[string]any{"type": "string"},
		"sales_rep":             map[string]any{"type": "string"},
		"ship_via":              map[string]any{"type": "string"},
		"sold_to":               party,
		"ship_to":               party,
		"fob_point":             map[string]any{"type": "string"},
		"route":                 map[string]any{"type": "string"},
		"terms":                 map[string]any{"type": "string"},
		"receiving_hours":       map[string]any{"type": "string"},
		"call_before_phone":     map[string]any{"type": "string"},
		"total_weight_lbs":      map[string]any{"type": "number"},
		"items": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "object", "properties": itemProps, "required": []string{"line_no", "item_code"}},
		},
	}

	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   []string{"order_number"},
	}
}

// Validate checks a record against the schema. A record without an order
// number is not considered successfully parsed.
func Validate(pl *PickingList) error {
	data, err := json.Marshal(pl)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return validateJSONAgainstSchema(BuildRecordJSONSchema(), data)
}

// validateJSONAgainstSchema validates "data" against "schemaMap".
func validateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: record does not match schema: %w", common.ErrValidation, err)
	}
	return nil
}
