// Package schemes lists government support schemes available to MSMEs.
package schemes

import (
	"strings"

	"github.com/joao-fontenele/msme-business-hub/internal/domain"
)

var catalogue = []domain.Scheme{
	{
		ID:    1,
		Title: "Pradhan Mantri MUDRA Yojana (PMMY)",
		Description: "Loans up to ₹10 lakh for non-corporate, non-farm small/micro enterprises. Three categories: " +
			"Shishu (up to ₹50,000), Kishor (₹50,001 to ₹5 lakh), and Tarun (₹5,00,001 to ₹10 lakh).",
		Type:        domain.SchemeTypeLoan,
		Eligibility: "Micro and small enterprises",
		Interest:    "6.5% - 12%",
		Deadline:    "Ongoing",
	},
	{
		ID:          2,
		Title:       "Credit Guarantee Fund Scheme (CGTMSE)",
		Description: "Collateral-free credit up to ₹2 crore for new and existing micro and small enterprises. Covers term loans and working capital.",
		Type:        domain.SchemeTypeLoan,
		Eligibility: "New and existing MSEs",
		Interest:    "8.5% - 11.5%",
		Deadline:    "Ongoing",
	},
	{
		ID:    3,
		Title: "Stand-Up India Scheme",
		Description: "Bank loans between ₹10 lakh and ₹1 crore to at least one SC/ST borrower and one woman borrower " +
			"per bank branch for setting up a greenfield enterprise.",
		Type:        domain.SchemeTypeLoan,
		Eligibility: "SC/ST and women entrepreneurs",
		Interest:    "7.5% - 10%",
		Deadline:    "Ongoing",
	},
	{
		ID:          4,
		Title:       "PSB Loans in 59 Minutes",
		Description: "Online platform for quick loan approvals up to ₹5 crore for MSMEs. Integrates with credit bureaus and banks for faster processing.",
		Type:        domain.SchemeTypeLoan,
		Eligibility: "All MSMEs",
		Interest:    "8.5% - 12%",
		Deadline:    "Ongoing",
	},
	{
		ID:          5,
		Title:       "Technology Upgradation Fund",
		Description: "Subsidy for technology upgradation in manufacturing units. Covers 25% of project cost up to ₹10 lakh.",
		Type:        domain.SchemeTypeSubsidy,
		Eligibility: "Manufacturing MSMEs",
		Amount:      "Up to ₹10 lakh",
		Deadline:    "March 31, 2025",
	},
}

// All returns a copy of the scheme catalogue.
func All() []domain.Scheme {
	out := make([]domain.Scheme, len(catalogue))
	copy(out, catalogue)
	return out
}

// Filter keeps schemes of the given type whose title or description contains
// term. An empty type or "all" matches every type.
func Filter(schemes []domain.Scheme, typ domain.SchemeType, term string) []domain.Scheme {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]domain.Scheme, 0, len(schemes))
	for _, s := range schemes {
		if typ != "" && typ != "all" && s.Type != typ {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(s.Title), term) &&
			!strings.Contains(strings.ToLower(s.Description), term) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func Find(id int) (domain.Scheme, bool) {
	for _, s := range catalogue {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Scheme{}, false
}
