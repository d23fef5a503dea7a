package picklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const addressSample = "" +
	"SOLD TO                          SHIP TO                          SHIP VIA OUR TRUCK\n" +
	"ACME METALS LTD                  ACME JOBSITE\n" +
	"12345 88 AVE\n" +
	"SURREY, BC V3W4N5\n"

func TestExtractParties(t *testing.T) {
	soldTo, shipTo := extractParties(addressSample)

	require.NotNil(t, soldTo.Name)
	assert.Equal(t, "ACME METALS LTD", *soldTo.Name)
	require.NotNil(t, soldTo.AddressLine)
	assert.Equal(t, "12345 88 AVE", *soldTo.AddressLine)
	require.NotNil(t, soldTo.City)
	assert.Equal(t, "SURREY", *soldTo.City)
	require.NotNil(t, soldTo.Province)
	assert.Equal(t, "BC", *soldTo.Province)
	require.NotNil(t, soldTo.PostalCode)
	assert.Equal(t, "V3W4N5", *soldTo.PostalCode)

	require.NotNil(t, shipTo.Name)
	assert.Equal(t, "ACME JOBSITE", *shipTo.Name)
}

func TestExtractPartiesShipToInheritsGeography(t *testing.T) {
	soldTo, shipTo := extractParties(addressSample)

	require.NotNil(t, shipTo.City)
	assert.Equal(t, "SURREY", *shipTo.City)
	require.NotNil(t, shipTo.Province)
	assert.Equal(t, "BC", *shipTo.Province)
	require.NotNil(t, shipTo.PostalCode)
	assert.Equal(t, "V3W4N5", *shipTo.PostalCode)

	// Independent copies, never aliases of the sold-to fields.
	assert.NotSame(t, soldTo.City, shipTo.City)
	assert.NotSame(t, soldTo.PostalCode, shipTo.PostalCode)
}

func TestExtractPartiesPostalCodeWithSpace(t *testing.T) {
	sample := "" +
		"SOLD TO                SHIP TO\n" +
		"NORTHERN STEEL         SITE 9\n" +
		"UNIT 4 700 CLIVEDEN    VANCOUVER, BC V5K 0A1\n" +
		"DELTA, BC V3M 6H3\n"

	soldTo, shipTo := extractParties(sample)

	require.NotNil(t, soldTo.PostalCode)
	assert.Equal(t, "V3M6H3", *soldTo.PostalCode)
	require.NotNil(t, shipTo.PostalCode)
	assert.Equal(t, "V5K0A1", *shipTo.PostalCode)
	require.NotNil(t, shipTo.City)
	assert.Equal(t, "VANCOUVER", *shipTo.City)
}

func TestExtractPartiesEmailLine(t *testing.T) {
	sample := "" +
		"SOLD TO                SHIP TO\n" +
		"ACME METALS LTD        ACME JOBSITE\n" +
		"orders@acme.example    \n" +
		"SURREY, BC V3W4N5\n"

	soldTo, _ := extractParties(sample)

	require.NotNil(t, soldTo.Email)
	assert.Equal(t, "orders@acme.example", *soldTo.Email)
	assert.Nil(t, soldTo.AddressLine)
}

func TestExtractPartiesFOBTruncation(t *testing.T) {
	sample := "" +
		"SOLD TO                SHIP TO\n" +
		"ACME METALS LTD        ACME JOBSITE FOB POINT DELIVERED\n" +
		"12345 88 AVE\n" +
		"SURREY, BC V3W4N5\n"

	_, shipTo := extractParties(sample)

	require.NotNil(t, shipTo.Name)
	assert.Equal(t, "ACME JOBSITE", *shipTo.Name)
}

func TestExtractPartiesNoLabelsFound(t *testing.T) {
	soldTo, shipTo := extractParties("no address block in this text")
	assert.Nil(t, soldTo.Name)
	assert.Nil(t, shipTo.Name)
}
