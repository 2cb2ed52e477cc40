// Package source loads invoices and issuer profiles from JSON documents,
// XLSX workbooks and Google Sheets.
package source

import (
	"encoding/json"
	"fmt"
	"io"

	"invoicer/pkg/models"
)

// LoadJSON decodes one invoice. Amounts may be JSON numbers or strings.
func LoadJSON(r io.Reader) (*models.Invoice, error) {
	const op = "LoadJSON"

	var inv models.Invoice
	if err := json.NewDecoder(r).Decode(&inv); err != nil {
		return nil, fmt.Errorf("%s: failed to decode invoice: %w", op, err)
	}
	return &inv, nil
}

// LoadProfileJSON decodes an issuer profile.
func LoadProfileJSON(r io.Reader) (*models.IssuerProfile, error) {
	const op = "LoadProfileJSON"

	var p models.IssuerProfile
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("%s: failed to decode issuer profile: %w", op, err)
	}
	return &p, nil
}
