package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"insurance/internal/insurance/models"
)

// mapHealthDocument copies the allow-listed keys of a stored health document.
// Scalars of any JSON type are turned into strings; dependents is kept only
// when every element is a string, and an empty list stays non-nil. A nil result means the document is JSON null.
func mapHealthDocument(doc []byte) (*models.HealthDetails, error) {
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("decode health document: %w", err)
	}
	if fields == nil {
		return nil, nil
	}

	h := &models.HealthDetails{
		PolicyNumber:  stringField(fields, "policyNumber"),
		CoverageType:  stringField(fields, "coverageType"),
		PrimaryHolder: stringField(fields, "primaryHolder"),
		PlanType:      stringField(fields, "planType"),
		ProviderName:  stringField(fields, "providerName"),
		NetworkType:   stringField(fields, "networkType"),
	}
	if deps, ok := stringList(fields["dependents"]); ok {
		h.Dependents = deps
	}
	return h, nil
}

func stringField(fields map[string]any, key string) *string {
	v, ok := fields[key]
	if !ok || v == nil {
		return nil
	}
	s, ok := stringify(v)
	if !ok {
		return nil
	}
	return &s
}

func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return "", false
		}
		return string(raw), true
	}
}

func stringList(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
