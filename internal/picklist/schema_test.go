package picklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jccirs09/picklist/constants"
	"github.com/jccirs09/picklist/internal/common"
)

func TestValidateRequiresOrderNumber(t *testing.T) {
	err := Validate(&PickingList{Items: []Item{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestValidateAcceptsMinimalRecord(t *testing.T) {
	err := Validate(&PickingList{OrderNumber: "441200", Items: []Item{}})
	assert.NoError(t, err)
}

func TestValidateAcceptsFullRecord(t *testing.T) {
	p := NewParser(nil)
	pl := p.ParseText(headerSample + addressSample +
		"LINE QTY UNIT STAGED ITEM WIDTH WGT\n" +
		`1 1990 LBS ____ PP2448IO/C 15.875" 1990` + "\n" +
		"24 GA DB IRON ORE SHEET\n" +
		"SOURCE: WAREHOUSE 4\n")

	require.Equal(t, "441200", pl.OrderNumber)
	assert.NoError(t, Validate(pl))
}

func TestValidateRejectsEmptyItemCode(t *testing.T) {
	pl := &PickingList{
		OrderNumber: "441200",
		Items: []Item{{
			LineNo:       1,
			Quantity:     10,
			QuantityUnit: constants.UnitPCS,
			ItemCode:     "",
			TagDetails:   []TagDetail{},
		}},
	}
	assert.Error(t, Validate(pl))
}
