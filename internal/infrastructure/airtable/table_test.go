package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/geniusforceai/familydash/internal/core/domain"
)

// fakeBase is an in-memory stand-in for one Airtable base.
type fakeBase struct {
	mu          sync.Mutex
	seq         int
	rows        map[string]Fields
	lastFormula string
	failWith    int // when set, every response uses this status
}

func newFakeBase() *fakeBase {
	return &fakeBase{rows: map[string]Fields{}}
}

func (f *fakeBase) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if f.failWith != 0 {
			http.Error(w, `{"error":"server error"}`, f.failWith)
			return
		}

		// Path shape: /<baseID>/<table>[/<recordID>]
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		var id string
		if len(parts) == 3 {
			id = parts[2]
		}

		switch {
		case r.Method == http.MethodGet && id == "":
			f.lastFormula = r.URL.Query().Get("filterByFormula")
			records := []Record{}
			for rid, fields := range f.rows {
				records = append(records, Record{ID: rid, Fields: fields})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"records": records})

		case r.Method == http.MethodGet:
			fields, ok := f.rows[id]
			if !ok {
				http.Error(w, `{"error":"NOT_FOUND"}`, http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(Record{ID: id, Fields: fields})

		case r.Method == http.MethodPost:
			var body struct {
				Fields Fields `json:"fields"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			f.seq++
			rid := fmt.Sprintf("rec%03d", f.seq)
			f.rows[rid] = body.Fields
			_ = json.NewEncoder(w).Encode(Record{ID: rid, Fields: body.Fields})

		case r.Method == http.MethodPatch:
			fields, ok := f.rows[id]
			if !ok {
				http.Error(w, `{"error":"NOT_FOUND"}`, http.StatusNotFound)
				return
			}
			var body struct {
				Fields Fields `json:"fields"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			for k, v := range body.Fields {
				fields[k] = v
			}
			_ = json.NewEncoder(w).Encode(Record{ID: id, Fields: fields})

		case r.Method == http.MethodDelete:
			if _, ok := f.rows[id]; !ok {
				http.Error(w, `{"error":"NOT_FOUND"}`, http.StatusNotFound)
				return
			}
			delete(f.rows, id)
			_ = json.NewEncoder(w).Encode(map[string]any{"id": id, "deleted": true})

		default:
			http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
		}
	}
}

func newTestTable[T any](t *testing.T, f *fakeBase, table string, schema Schema) *Table[T] {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	client := NewClient(Config{APIKey: "key", BaseID: "appTEST", BaseURL: srv.URL})
	return NewTable[T](client, table, schema, zerolog.Nop())
}

// jsonEqual compares two values through their JSON projection, so decimal
// representation and struct-versus-map differences do not matter.
func jsonEqual(t *testing.T, want, got any) {
	t.Helper()
	wb, _ := json.Marshal(want)
	gb, _ := json.Marshal(got)
	var wv, gv any
	_ = json.Unmarshal(wb, &wv)
	_ = json.Unmarshal(gb, &gv)
	if !reflect.DeepEqual(wv, gv) {
		t.Fatalf("round trip mismatch:\nwant %s\ngot  %s", wb, gb)
	}
}

// Every entity schema must reproduce a record exactly across
// decode(encode(record)), list fields in original order included.
func TestRoundTrip_AllEntities(t *testing.T) {
	client := NewClient(Config{APIKey: "key", BaseID: "appTEST"})
	log := zerolog.Nop()

	t.Run("company", func(t *testing.T) {
		tbl := NewTable[domain.Company](client, "Companies", companySchema, log)
		orig := domain.Company{
			CompanyName:     "Acme Robotics",
			Industry:        "Robotics",
			FundingPrograms: []string{"SBIR", "Series A"},
			PhysicalAddress: "1 Main St",
			Website:         "https://acme.test",
			LinkedinPage:    "https://linkedin.com/company/acme",
			KeyContacts:     []string{"Ana Ruiz", "Bob Lee"},
			RecentEvents:    []string{},
		}
		roundTrip(t, tbl, &orig)
	})

	t.Run("contact", func(t *testing.T) {
		tbl := NewTable[domain.Contact](client, "Contacts", contactSchema, log)
		orig := domain.Contact{
			Name: "Ana Ruiz", Position: "CTO", Email: "ana@acme.test",
			LinkedinProfile: "https://linkedin.com/in/ana", Company: "Acme Robotics",
			RecentPosts: "Series A announcement",
		}
		roundTrip(t, tbl, &orig)
	})

	t.Run("program", func(t *testing.T) {
		tbl := NewTable[domain.Program](client, "Programs", programSchema, log)
		orig := domain.Program{
			ProgramName: "Deep Tech Grant", Description: "Hardware startups",
			EligibilityCriteria: "Pre-seed", ApplicationProcess: "Rolling",
			FundingAmount: decimal.RequireFromString("150000"),
		}
		roundTrip(t, tbl, &orig)
	})

	t.Run("event", func(t *testing.T) {
		tbl := NewTable[domain.Event](client, "Events", eventSchema, log)
		orig := domain.Event{
			EventName: "Demo Day", Date: "2026-03-01", Location: "Austin",
			Keywords: []string{"pitch", "seed"}, TargetAudience: "Founders",
		}
		roundTrip(t, tbl, &orig)
	})

	t.Run("blog_post", func(t *testing.T) {
		tbl := NewTable[domain.BlogPost](client, "BlogPosts", blogPostSchema, log)
		orig := domain.BlogPost{
			PostTitle: "Why We Invested", Date: "2026-01-15",
			ContentSummary: "Thesis write-up", EngagementMetrics: 42,
			RelatedCompany: "Acme Robotics",
		}
		roundTrip(t, tbl, &orig)
	})

	t.Run("sale", func(t *testing.T) {
		tbl := NewTable[domain.Sale](client, "Sales", saleSchema, log)
		orig := domain.Sale{
			ProductName: "Gripper v2", Price: decimal.RequireFromString("99.99"),
			Details: "Bulk order", Company: "Acme Robotics", SalesMetrics: 7,
		}
		roundTrip(t, tbl, &orig)
	})

	t.Run("funded_company", func(t *testing.T) {
		tbl := NewTable[domain.FundedCompany](client, "FundedCompanies", fundedCompanySchema, log)
		orig := domain.FundedCompany{
			CompanyName: "Acme Robotics", Description: "Robotics",
			FundingDetails: "Series A, 2025", FundingPageLink: "https://fund.test/acme",
			TargetAudience: "LPs",
		}
		roundTrip(t, tbl, &orig)
	})
}

func roundTrip[T any](t *testing.T, tbl *Table[T], orig *T) {
	t.Helper()
	fields, err := tbl.encode(*orig)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, ok := fields["id"]; ok {
		t.Fatalf("encoded fields must not carry the identifier")
	}

	got, err := tbl.decode(&Record{ID: "rec001", Fields: fields})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// The identifier is assigned by the store on the way back.
	want := map[string]any{}
	buf, _ := json.Marshal(orig)
	_ = json.Unmarshal(buf, &want)
	want["id"] = "rec001"
	jsonEqual(t, want, got)
}

func TestTable_CreateAssignsID(t *testing.T) {
	f := newFakeBase()
	tbl := newTestTable[domain.Company](t, f, "Companies", companySchema)

	created, err := tbl.Create(context.Background(), domain.Company{
		CompanyName: "Acme Robotics", Industry: "Robotics",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned identifier")
	}
	if created.CompanyName != "Acme Robotics" {
		t.Fatalf("unexpected record: %+v", created)
	}
	if created.FundingPrograms == nil {
		t.Fatalf("list fields must decode to empty lists, not nil")
	}
}

func TestTable_GetByID_AbsentOnNotFound(t *testing.T) {
	f := newFakeBase()
	tbl := newTestTable[domain.Company](t, f, "Companies", companySchema)

	if _, ok := tbl.GetByID(context.Background(), "recNOPE"); ok {
		t.Fatalf("expected absent result")
	}
}

// Transport failures collapse to absent at the adapter boundary.
func TestTable_GetByID_AbsentOnServerError(t *testing.T) {
	f := newFakeBase()
	f.failWith = http.StatusInternalServerError
	tbl := newTestTable[domain.Company](t, f, "Companies", companySchema)

	if _, ok := tbl.GetByID(context.Background(), "rec001"); ok {
		t.Fatalf("expected absent result on upstream failure")
	}
}

func TestTable_ListAll_SkipsMalformedRows(t *testing.T) {
	f := newFakeBase()
	f.rows["recGOOD"] = Fields{"post_title": "Fine", "engagement_metrics": 3}
	f.rows["recBAD"] = Fields{"post_title": "Broken", "engagement_metrics": "not-a-number"}
	tbl := newTestTable[domain.BlogPost](t, f, "BlogPosts", blogPostSchema)

	posts, err := tbl.ListAll(context.Background(), "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(posts) != 1 || posts[0].PostTitle != "Fine" {
		t.Fatalf("expected only the decodable row, got %+v", posts)
	}
}

func TestTable_ListAll_ForwardsFilterFormula(t *testing.T) {
	f := newFakeBase()
	tbl := newTestTable[domain.Company](t, f, "Companies", companySchema)

	if _, err := tbl.ListAll(context.Background(), "{status} = 'pending'"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if f.lastFormula != "{status} = 'pending'" {
		t.Fatalf("formula = %q", f.lastFormula)
	}
}

func TestTable_Search_EscapesValue(t *testing.T) {
	f := newFakeBase()
	tbl := newTestTable[domain.Contact](t, f, "Contacts", contactSchema)

	if _, err := tbl.Search(context.Background(), "company", `O'Brien \ Co`); err != nil {
		t.Fatalf("search: %v", err)
	}
	want := `{company} = 'O\'Brien \\ Co'`
	if f.lastFormula != want {
		t.Fatalf("formula = %q, want %q", f.lastFormula, want)
	}
}

func TestTable_DeleteIdempotence(t *testing.T) {
	f := newFakeBase()
	tbl := newTestTable[domain.Company](t, f, "Companies", companySchema)

	created, err := tbl.Create(context.Background(), domain.Company{CompanyName: "Acme", Industry: "Robotics"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !tbl.Delete(context.Background(), created.ID) {
		t.Fatalf("first delete should succeed")
	}
	if tbl.Delete(context.Background(), created.ID) {
		t.Fatalf("second delete should report false")
	}
}

func TestTable_Update_AbsentOnMissing(t *testing.T) {
	f := newFakeBase()
	tbl := newTestTable[domain.Company](t, f, "Companies", companySchema)

	if _, ok := tbl.Update(context.Background(), "recNOPE", domain.Company{CompanyName: "X", Industry: "Y"}); ok {
		t.Fatalf("expected absent result")
	}
}

func TestTable_Update_ReplacesFields(t *testing.T) {
	f := newFakeBase()
	tbl := newTestTable[domain.Company](t, f, "Companies", companySchema)

	created, err := tbl.Create(context.Background(), domain.Company{CompanyName: "Acme", Industry: "Robotics"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, ok := tbl.Update(context.Background(), created.ID, domain.Company{CompanyName: "Acme Labs", Industry: "Robotics"})
	if !ok {
		t.Fatalf("expected update to succeed")
	}
	if updated.CompanyName != "Acme Labs" || updated.ID != created.ID {
		t.Fatalf("unexpected record: %+v", updated)
	}
}

func TestClient_ListFollowsPagination(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("offset") == "" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"records": []Record{{ID: "rec001", Fields: Fields{}}},
				"offset":  "page2",
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"records": []Record{{ID: "rec002", Fields: Fields{}}},
		})
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "key", BaseID: "appTEST", BaseURL: srv.URL})
	records, err := client.List(context.Background(), "Companies", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if calls != 2 || len(records) != 2 {
		t.Fatalf("calls = %d, records = %d", calls, len(records))
	}
}
