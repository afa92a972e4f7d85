package airtable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/geniusforceai/familydash/internal/api/metrics"
)

// Table is the generic CRUD+search adapter for one external table,
// parametrised over the entity it stores. The entity must marshal to JSON
// with an "id" field holding the store-assigned identifier.
//
// Every operation except Create and ListAll is fail-soft: underlying
// transport and not-found errors are collapsed into an absent/false result.
// Callers turn "not found" into a user-visible 404; the adapter never
// distinguishes "truly absent" from "transient failure" at its boundary,
// but it logs and counts transport failures internally so outages stay
// observable.
type Table[T any] struct {
	client *Client
	name   string
	schema Schema
	logger zerolog.Logger
}

func NewTable[T any](client *Client, name string, schema Schema, logger zerolog.Logger) *Table[T] {
	return &Table[T]{
		client: client,
		name:   name,
		schema: schema,
		logger: logger.With().Str("table", name).Logger(),
	}
}

// Create encodes and inserts the record, returning the stored copy with its
// assigned identifier. No duplicate check beyond what the store does itself.
func (t *Table[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	fields, err := t.encode(rec)
	if err != nil {
		return zero, err
	}
	stored, err := t.client.Create(ctx, t.name, fields)
	if err != nil {
		t.observe("create", err)
		return zero, err
	}
	return t.decode(stored)
}

// GetByID fetches one record. Absent (not an error) when the record does not
// exist or the external call fails for any reason.
func (t *Table[T]) GetByID(ctx context.Context, id string) (T, bool) {
	var zero T
	stored, err := t.client.Get(ctx, t.name, id)
	if err != nil {
		t.observe("get", err)
		return zero, false
	}
	rec, err := t.decode(stored)
	if err != nil {
		t.logger.Warn().Err(err).Str("id", id).Msg("discarding undecodable record")
		return zero, false
	}
	return rec, true
}

// ListAll fetches every row matching the optional filter formula. A row that
// fails to decode is skipped and logged, not fatal to the whole list:
// partial results beat total failure for a listing endpoint.
func (t *Table[T]) ListAll(ctx context.Context, formula string) ([]T, error) {
	stored, err := t.client.List(ctx, t.name, formula)
	if err != nil {
		t.observe("list", err)
		return nil, err
	}

	out := make([]T, 0, len(stored))
	for i := range stored {
		rec, err := t.decode(&stored[i])
		if err != nil {
			metrics.RecordsSkippedTotal.WithLabelValues(t.name).Inc()
			t.logger.Warn().Err(err).Str("id", stored[i].ID).Msg("skipping malformed row")
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// Update encodes and overwrites the record. Absent on any failure,
// including not-found.
func (t *Table[T]) Update(ctx context.Context, id string, rec T) (T, bool) {
	var zero T
	fields, err := t.encode(rec)
	if err != nil {
		t.logger.Warn().Err(err).Str("id", id).Msg("cannot encode record")
		return zero, false
	}
	stored, err := t.client.Update(ctx, t.name, id, fields)
	if err != nil {
		t.observe("update", err)
		return zero, false
	}
	updated, err := t.decode(stored)
	if err != nil {
		t.logger.Warn().Err(err).Str("id", id).Msg("discarding undecodable record")
		return zero, false
	}
	return updated, true
}

// Delete removes the record, reporting false on any failure including
// not-found. Deleting twice therefore returns true then false.
func (t *Table[T]) Delete(ctx context.Context, id string) bool {
	if err := t.client.Delete(ctx, t.name, id); err != nil {
		t.observe("delete", err)
		return false
	}
	return true
}

// Search is an equality-filter shorthand: {field} = 'value', delegated to
// ListAll. The value is escaped before interpolation so quote characters
// cannot break out of the formula literal.
func (t *Table[T]) Search(ctx context.Context, field, value string) ([]T, error) {
	formula := fmt.Sprintf("{%s} = '%s'", field, escapeFormulaValue(value))
	return t.ListAll(ctx, formula)
}

// observe records a failed store call. Plain not-found responses are
// expected traffic and log at debug; everything else is a transport or API
// failure that must not vanish silently even though the public contract
// stays absent/false.
func (t *Table[T]) observe(op string, err error) {
	var se *StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		t.logger.Debug().Str("op", op).Msg("record not found")
		return
	}
	metrics.UpstreamFailuresTotal.WithLabelValues(t.name, op).Inc()
	t.logger.Warn().Err(err).Str("op", op).Msg("external store call failed")
}

// encode maps the entity to external fields through the schema codec: the
// identifier is stripped, absent fields dropped, lists joined.
func (t *Table[T]) encode(rec T) (Fields, error) {
	buf, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", t.name, err)
	}
	var fields Fields
	if err := json.Unmarshal(buf, &fields); err != nil {
		return nil, fmt.Errorf("encode %s: %w", t.name, err)
	}
	delete(fields, "id")
	return t.schema.Encode(fields), nil
}

// decode rebuilds the entity from a stored row, filling schema defaults for
// fields the row is missing.
func (t *Table[T]) decode(stored *Record) (T, error) {
	var rec T
	fields := t.schema.Decode(stored.Fields)
	fields["id"] = stored.ID

	buf, err := json.Marshal(fields)
	if err != nil {
		return rec, fmt.Errorf("decode %s: %w", t.name, err)
	}
	if err := json.Unmarshal(buf, &rec); err != nil {
		return rec, fmt.Errorf("decode %s %q: %w", t.name, stored.ID, err)
	}
	return rec, nil
}

// escapeFormulaValue neutralises the formula language's escape and quote
// characters in a value interpolated into a single-quoted literal.
func escapeFormulaValue(v string) string {
	out := make([]byte, 0, len(v))
	for i := 0; i < len(v); i++ {
		switch v[i] {
		case '\\', '\'':
			out = append(out, '\\')
		}
		out = append(out, v[i])
	}
	return string(out)
}
