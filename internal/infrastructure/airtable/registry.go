package airtable

import (
	"github.com/rs/zerolog"

	"github.com/geniusforceai/familydash/internal/core/domain"
)

// Per-entity schemas. Adding an entity means declaring its schema and
// binding below; no other component changes.

var companySchema = Schema{
	{Name: "company_name", Kind: KindText},
	{Name: "industry", Kind: KindText},
	{Name: "funding_programs", Kind: KindTextList},
	{Name: "physical_address", Kind: KindText},
	{Name: "website", Kind: KindURL},
	{Name: "linkedin_page", Kind: KindURL},
	{Name: "key_contacts", Kind: KindTextList},
	{Name: "recent_events", Kind: KindTextList},
}

var contactSchema = Schema{
	{Name: "name", Kind: KindText},
	{Name: "position", Kind: KindText},
	{Name: "email", Kind: KindText},
	{Name: "linkedin_profile", Kind: KindURL},
	{Name: "company", Kind: KindText},
	{Name: "recent_posts", Kind: KindText},
}

var programSchema = Schema{
	{Name: "program_name", Kind: KindText},
	{Name: "description", Kind: KindText},
	{Name: "eligibility_criteria", Kind: KindText},
	{Name: "application_process", Kind: KindText},
	{Name: "funding_amount", Kind: KindNumber},
}

var eventSchema = Schema{
	{Name: "event_name", Kind: KindText},
	{Name: "date", Kind: KindDate},
	{Name: "location", Kind: KindText},
	{Name: "keywords", Kind: KindTextList},
	{Name: "target_audience", Kind: KindText},
}

var blogPostSchema = Schema{
	{Name: "post_title", Kind: KindText},
	{Name: "date", Kind: KindDate},
	{Name: "content_summary", Kind: KindText},
	{Name: "engagement_metrics", Kind: KindNumber},
	{Name: "related_company", Kind: KindText},
}

var saleSchema = Schema{
	{Name: "product_name", Kind: KindText},
	{Name: "price", Kind: KindNumber},
	{Name: "details", Kind: KindText},
	{Name: "company", Kind: KindText},
	{Name: "sales_metrics", Kind: KindNumber},
}

var fundedCompanySchema = Schema{
	{Name: "company_name", Kind: KindText},
	{Name: "description", Kind: KindText},
	{Name: "funding_details", Kind: KindText},
	{Name: "funding_page_link", Kind: KindURL},
	{Name: "target_audience", Kind: KindText},
}

// Registry binds the generic adapter to each concrete entity and its
// external table. Purely declarative; constructed once at startup and
// injected into the handlers.
type Registry struct {
	Companies       *Table[domain.Company]
	Contacts        *Table[domain.Contact]
	Programs        *Table[domain.Program]
	Events          *Table[domain.Event]
	BlogPosts       *Table[domain.BlogPost]
	Sales           *Table[domain.Sale]
	FundedCompanies *Table[domain.FundedCompany]
}

func NewRegistry(client *Client, logger zerolog.Logger) *Registry {
	return &Registry{
		Companies:       NewTable[domain.Company](client, "Companies", companySchema, logger),
		Contacts:        NewTable[domain.Contact](client, "Contacts", contactSchema, logger),
		Programs:        NewTable[domain.Program](client, "Programs", programSchema, logger),
		Events:          NewTable[domain.Event](client, "Events", eventSchema, logger),
		BlogPosts:       NewTable[domain.BlogPost](client, "BlogPosts", blogPostSchema, logger),
		Sales:           NewTable[domain.Sale](client, "Sales", saleSchema, logger),
		FundedCompanies: NewTable[domain.FundedCompany](client, "FundedCompanies", fundedCompanySchema, logger),
	}
}
