// Package validate checks public form submissions against JSON Schemas
// before they are bound and persisted. Schemas are compiled once at startup;
// an invalid built-in schema is a programming error and panics.
package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"
)

// Schema names, one per public submission entity.
const (
	Claim        = "claims"
	Quote        = "quotes"
	Consultation = "consultations"
	Outsourcing  = "outsourcing"
	Diaspora     = "diaspora"
	Payment      = "payments"
)

var schemas = map[string]*jsonschema.Schema{
	Claim: mustSchema(`{
		"type": "object",
		"required": ["policy_number", "claim_type", "incident_date", "description", "full_name", "email"],
		"properties": {
			"policy_number":  {"type": "string", "minLength": 1, "maxLength": 64},
			"claim_type":     {"type": "string", "minLength": 1, "maxLength": 64},
			"incident_date":  {"type": "string", "format": "date-time"},
			"estimated_loss": {"type": "number", "minimum": 0},
			"description":    {"type": "string", "minLength": 1, "maxLength": 5000},
			"full_name":      {"type": "string", "minLength": 1, "maxLength": 128},
			"email":          {"type": "string", "format": "email", "minLength": 3},
			"phone":          {"type": "string", "maxLength": 32}
		}
	}`),
	Quote: mustSchema(`{
		"type": "object",
		"required": ["product", "full_name", "email"],
		"properties": {
			"product":        {"type": "string", "minLength": 1, "maxLength": 128},
			"budget":         {"type": "string", "maxLength": 128},
			"coverage":       {"type": "string", "maxLength": 1000},
			"contact_method": {"type": "string", "enum": ["email", "phone", "whatsapp"]},
			"full_name":      {"type": "string", "minLength": 1, "maxLength": 128},
			"email":          {"type": "string", "format": "email", "minLength": 3},
			"phone":          {"type": "string", "maxLength": 32}
		}
	}`),
	Consultation: mustSchema(`{
		"type": "object",
		"required": ["service_type", "full_name", "email"],
		"properties": {
			"service_type": {"type": "string", "minLength": 1, "maxLength": 128},
			"notes":        {"type": "string", "maxLength": 2000},
			"full_name":    {"type": "string", "minLength": 1, "maxLength": 128},
			"email":        {"type": "string", "format": "email", "minLength": 3},
			"phone":        {"type": "string", "maxLength": 32}
		}
	}`),
	Outsourcing: mustSchema(`{
		"type": "object",
		"required": ["organization_name", "services", "contact_name", "email"],
		"properties": {
			"organization_name":     {"type": "string", "minLength": 1, "maxLength": 128},
			"services":              {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}},
			"nature_of_outsourcing": {"type": "string", "enum": ["full", "partial", ""]},
			"budget_range":          {"type": "string", "maxLength": 128},
			"contact_name":          {"type": "string", "minLength": 1, "maxLength": 128},
			"email":                 {"type": "string", "format": "email", "minLength": 3},
			"phone":                 {"type": "string", "maxLength": 32}
		}
	}`),
	Diaspora: mustSchema(`{
		"type": "object",
		"required": ["country", "service_interest", "full_name", "email"],
		"properties": {
			"country":          {"type": "string", "minLength": 1, "maxLength": 64},
			"timezone":         {"type": "string", "maxLength": 64},
			"service_interest": {"type": "string", "minLength": 1, "maxLength": 256},
			"full_name":        {"type": "string", "minLength": 1, "maxLength": 128},
			"email":            {"type": "string", "format": "email", "minLength": 3},
			"phone":            {"type": "string", "maxLength": 32}
		}
	}`),
	Payment: mustSchema(`{
		"type": "object",
		"required": ["amount", "payment_method", "reference", "email"],
		"properties": {
			"amount":         {"type": "number", "exclusiveMinimum": 0},
			"currency":       {"type": "string", "minLength": 3, "maxLength": 3},
			"payment_method": {"type": "string", "enum": ["mpesa", "card", "bank_transfer"]},
			"reference":      {"type": "string", "minLength": 1, "maxLength": 64},
			"email":          {"type": "string", "format": "email", "minLength": 3},
			"metadata":       {"type": "object"}
		}
	}`),
}

func mustSchema(src string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return rs
}

// Submission validates a raw request body against the named entity's schema.
// It returns nil when the body conforms and a joined, human-readable error
// otherwise.
func Submission(ctx context.Context, entity string, body []byte) error {
	rs, ok := schemas[entity]
	if !ok {
		return fmt.Errorf("no schema for entity %q", entity)
	}
	verrs, err := rs.ValidateBytes(ctx, body)
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if len(verrs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(verrs))
	for _, v := range verrs {
		msgs = append(msgs, v.Message)
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
