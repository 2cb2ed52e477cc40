package models

import "strings"

// IssuerProfile describes the organization issuing invoices. Every field is
// optional; empty fields are left out of the document entirely.
type IssuerProfile struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	TaxID   string `json:"tax_id,omitempty"` // GSTIN

	Bank BankDetails `json:"bank"`

	// PaymentApp is a payment-app handle such as a UPI id
	PaymentApp string `json:"payment_app,omitempty"`
}

// BankDetails holds the issuer's account for bank transfers.
type BankDetails struct {
	Name          string `json:"name,omitempty"`
	AccountName   string `json:"account_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	IFSC          string `json:"ifsc,omitempty"`
}

// HasPaymentDetails reports whether any bank or payment-app field is set.
func (p *IssuerProfile) HasPaymentDetails() bool {
	if p == nil {
		return false
	}
	return anySet(p.Bank.Name, p.Bank.AccountName, p.Bank.AccountNumber, p.Bank.IFSC, p.PaymentApp)
}

// IsEmpty reports whether the profile carries nothing printable.
func (p *IssuerProfile) IsEmpty() bool {
	if p == nil {
		return true
	}
	return !anySet(p.Name, p.Address, p.Phone, p.Email, p.TaxID) && !p.HasPaymentDetails()
}

func anySet(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
