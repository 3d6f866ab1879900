package outcome

import "fmt"

// Column names of the clinical dataset and its derived columns.
const (
	// GroupColumn is the categorical onset-age bracket assigned to every
	// patient record.
	GroupColumn = "Binned_Onset_Age"

	// TimeToSuccessColumn holds the first follow-up year with a success
	// indicator of 1, or NaN when no year qualifies.
	TimeToSuccessColumn = "Time_to_Success"
)

// ILAEColumn returns the source score column for a follow-up year
func ILAEColumn(year int) string {
	return fmt.Sprintf("ILAE_Year%d", year)
}

// SuccessColumn returns the derived binary indicator column for a follow-up year
func SuccessColumn(year int) string {
	return fmt.Sprintf("Success_Year%d", year)
}
