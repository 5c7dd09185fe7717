package domain

type SchemeType string

const (
	SchemeTypeLoan    SchemeType = "loan"
	SchemeTypeSubsidy SchemeType = "subsidy"
)

type Scheme struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        SchemeType `json:"type"`
	Eligibility string     `json:"eligibility"`
	Interest    string     `json:"interest,omitempty"`
	Amount      string     `json:"amount,omitempty"`
	Deadline    string     `json:"deadline,omitempty"`
}
