package models

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// Date accepts "2006-01-02" or RFC 3339 in JSON. Empty strings decode to the
// zero value, which TimePtr turns into NULL.
type Date struct {
	time.Time
}

var dateLayouts = []string{time.DateOnly, time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05"}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*d = Date{}
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

// TimePtr converts an optional Date into a nullable timestamp.
func TimePtr(d *Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// CreatePaymentRequest is the payload of POST /payment-fms/create.
type CreatePaymentRequest struct {
	UniqueNo     string  `json:"uniqueNo"`
	FMSName      string  `json:"fmsName"`
	PayTo        string  `json:"payTo"`
	Amount       float64 `json:"amount"`
	Remarks      *string `json:"remarks"`
	Attachment   *string `json:"attachment"`
	Planned1     *Date   `json:"planned1"`
	Status       *string `json:"status"`
	StageRemarks *string `json:"stageRemarks"`
	Planned2     *Date   `json:"planned2"`
	PaymentType  *string `json:"paymentType"`
	Planned3     *Date   `json:"planned3"`
}

// UpdatePaymentRequest patches a payment record. Nil fields keep their
// stored value. Actual stage columns are only written by transitions.
type UpdatePaymentRequest struct {
	UniqueNo     *string  `json:"uniqueNo"`
	FMSName      *string  `json:"fmsName"`
	PayTo        *string  `json:"payTo"`
	Amount       *float64 `json:"amount"`
	Remarks      *string  `json:"remarks"`
	Attachment   *string  `json:"attachment"`
	Planned1     *Date    `json:"planned1"`
	Status       *string  `json:"status"`
	StageRemarks *string  `json:"stageRemarks"`
	Planned2     *Date    `json:"planned2"`
	PaymentType  *string  `json:"paymentType"`
	Planned3     *Date    `json:"planned3"`
}

type ApprovalRequest struct {
	Status       *string `json:"status"`
	StageRemarks *string `json:"stageRemarks"`
}

type MakePaymentRequest struct {
	PaymentType *string `json:"paymentType"`
}

type TallyEntryRequest struct {
	IDs []string `json:"ids"`
}

type CreateLoanRequest struct {
	LoanName             string  `json:"loan_name"`
	BankName             string  `json:"bank_name"`
	Amount               float64 `json:"amount"`
	EMI                  float64 `json:"emi"`
	LoanStartDate        *Date   `json:"loan_start_date"`
	LoanEndDate          *Date   `json:"loan_end_date"`
	ProvidedDocumentName *string `json:"provided_document_name"`
	UploadDocument       *string `json:"upload_document"`
	Remarks              *string `json:"remarks"`
}

type UpdateLoanRequest struct {
	LoanName             *string  `json:"loan_name"`
	BankName             *string  `json:"bank_name"`
	Amount               *float64 `json:"amount"`
	EMI                  *float64 `json:"emi"`
	LoanStartDate        *Date    `json:"loan_start_date"`
	LoanEndDate          *Date    `json:"loan_end_date"`
	ProvidedDocumentName *string  `json:"provided_document_name"`
	UploadDocument       *string  `json:"upload_document"`
	Remarks              *string  `json:"remarks"`
}

type ForeclosureRequestInput struct {
	SerialNo      string  `json:"serial_no"`
	LoanName      string  `json:"loan_name"`
	BankName      string  `json:"bank_name"`
	Amount        float64 `json:"amount"`
	EMI           float64 `json:"emi"`
	LoanStartDate *Date   `json:"loan_start_date"`
	LoanEndDate   *Date   `json:"loan_end_date"`
	RequestDate   *Date   `json:"request_date"`
	RequesterName *string `json:"requester_name"`
}

type NOCRequest struct {
	SerialNo           string  `json:"serial_no"`
	LoanName           *string `json:"loan_name"`
	BankName           *string `json:"bank_name"`
	LoanStartDate      *Date   `json:"loan_start_date"`
	LoanEndDate        *Date   `json:"loan_end_date"`
	ClosureRequestDate *Date   `json:"closure_request_date"`
	CollectNOC         bool    `json:"collect_noc"`
}

// DocumentRequest serves both create and partial update.
type DocumentRequest struct {
	DocumentName      *string `json:"document_name"`
	DocumentType      *string `json:"document_type"`
	Category          *string `json:"category"`
	CompanyDepartment *string `json:"company_department"`
	Tags              *string `json:"tags"`
	PersonName        *string `json:"person_name"`
	NeedRenewal       *string `json:"need_renewal"`
	RenewalDate       *Date   `json:"renewal_date"`
	Image             *string `json:"image"`
	Email             *string `json:"email"`
	Mobile            *string `json:"mobile"`
}

type CreateDocumentsRequest struct {
	Documents []DocumentRequest `json:"documents"`
}

type MasterRequest struct {
	CompanyName   string `json:"company_name"`
	DocumentType  string `json:"document_type"`
	Category      string `json:"category"`
	RenewalFilter bool   `json:"renewal_filter"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateUserRequest struct {
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
}

// UpdateUserRequest addresses a user by numeric id or username.
type UpdateUserRequest struct {
	Identifier *string `json:"identifier"`
	Username   *string `json:"username"`
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Password   *string `json:"password"`
	Role       *string `json:"role"`
}

type AccessRequest struct {
	Systems []string `json:"systems"`
	Pages   []string `json:"pages"`
}

type SubscriptionApprovalRequest struct {
	SubscriptionNo string  `json:"subscriptionNo"`
	Approval       string  `json:"approval"`
	Note           *string `json:"note"`
	RequestedOn    *Date   `json:"requestedOn"`
}

// SessionUser is the profile returned alongside a login token.
type SessionUser struct {
	ID           int64    `json:"id"`
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Email        *string  `json:"email"`
	Department   *string  `json:"department"`
	SystemAccess []string `json:"systemAccess"`
	PageAccess   []string `json:"pageAccess"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}
