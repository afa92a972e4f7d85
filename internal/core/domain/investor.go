package domain

import "github.com/shopspring/decimal"

// Investor-network records stored in the external Airtable base. The id is
// assigned by the store; an empty id means the record has not been persisted
// yet. Cross-entity references (Contact.Company, Sale.Company, and so on) are
// free-text matches against another entity's identifying field, resolved by
// search, not by referential integrity.

type Company struct {
	ID              string   `json:"id,omitempty"`
	CompanyName     string   `json:"company_name" validate:"required"`
	Industry        string   `json:"industry" validate:"required"`
	FundingPrograms []string `json:"funding_programs"`
	PhysicalAddress string   `json:"physical_address"`
	Website         string   `json:"website" validate:"omitempty,url"`
	LinkedinPage    string   `json:"linkedin_page" validate:"omitempty,url"`
	KeyContacts     []string `json:"key_contacts"`
	RecentEvents    []string `json:"recent_events"`
}

type Contact struct {
	ID              string `json:"id,omitempty"`
	Name            string `json:"name" validate:"required"`
	Position        string `json:"position"`
	Email           string `json:"email" validate:"omitempty,email"`
	LinkedinProfile string `json:"linkedin_profile" validate:"omitempty,url"`
	Company         string `json:"company"`
	RecentPosts     string `json:"recent_posts"`
}

type Program struct {
	ID                  string          `json:"id,omitempty"`
	ProgramName         string          `json:"program_name" validate:"required"`
	Description         string          `json:"description"`
	EligibilityCriteria string          `json:"eligibility_criteria"`
	ApplicationProcess  string          `json:"application_process"`
	FundingAmount       decimal.Decimal `json:"funding_amount"`
}

type Event struct {
	ID             string   `json:"id,omitempty"`
	EventName      string   `json:"event_name" validate:"required"`
	Date           string   `json:"date"`
	Location       string   `json:"location"`
	Keywords       []string `json:"keywords"`
	TargetAudience string   `json:"target_audience"`
}

type BlogPost struct {
	ID                string `json:"id,omitempty"`
	PostTitle         string `json:"post_title" validate:"required"`
	Date              string `json:"date"`
	ContentSummary    string `json:"content_summary"`
	EngagementMetrics int    `json:"engagement_metrics"`
	RelatedCompany    string `json:"related_company"`
}

type Sale struct {
	ID           string          `json:"id,omitempty"`
	ProductName  string          `json:"product_name" validate:"required"`
	Price        decimal.Decimal `json:"price"`
	Details      string          `json:"details"`
	Company      string          `json:"company"`
	SalesMetrics int             `json:"sales_metrics"`
}

type FundedCompany struct {
	ID              string `json:"id,omitempty"`
	CompanyName     string `json:"company_name" validate:"required"`
	Description     string `json:"description"`
	FundingDetails  string `json:"funding_details"`
	FundingPageLink string `json:"funding_page_link" validate:"omitempty,url"`
	TargetAudience  string `json:"target_audience"`
}
