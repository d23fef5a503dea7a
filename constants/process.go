package constants

// ProcessType is the handling classification of a line item.
type ProcessType string

const (
	ProcessCTL        ProcessType = "CTL"
	ProcessSheetStock ProcessType = "SHEET STOCK"
	ProcessSlitter    ProcessType = "SLITTER"
)

var allProcessTypes = []ProcessType{
	ProcessCTL,
	ProcessSheetStock,
	ProcessSlitter,
}

// ProcessTypeStrings returns the process types as plain strings,
// in a stable order suitable for schema enums.
func ProcessTypeStrings() []string {
	result := make([]string, len(allProcessTypes))
	for i, pt := range allProcessTypes {
		result[i] = string(pt)
	}
	return result
}
