package dto

// StudentStandingResponse reports payment and sanction status for one
// student.
type StudentStandingResponse struct {
	Username      string   `json:"username"`
	DisplayName   string   `json:"display_name"`
	PaymentStatus string   `json:"payment_status"`
	OwingAmount   *float64 `json:"owing_amount,omitempty"`
	Sanctioned    bool     `json:"sanctioned"`
	SanctionLabel string   `json:"sanction_label"`
	SanctionNote  string   `json:"sanction_note,omitempty"`
}
