package constants

import "strings"

// QuantityUnit is the unit a picked quantity is expressed in.
type QuantityUnit string

// Stable values (store these exact strings in DB).
const (
	UnitPCS QuantityUnit = "PCS"
	UnitLBS QuantityUnit = "LBS"
)

// ParseQuantityUnit canonicalizes a unit token from the document.
func ParseQuantityUnit(s string) (QuantityUnit, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(UnitPCS):
		return UnitPCS, true
	case string(UnitLBS):
		return UnitLBS, true
	}
	return "", false
}
