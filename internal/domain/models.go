package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentFMS is a miscellaneous payment request that moves through
// approval, payment and tally entry.
type PaymentFMS struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	UniqueNo     string     `json:"unique_no" db:"unique_no"`
	FMSName      string     `json:"fms_name" db:"fms_name"`
	PayTo        string     `json:"pay_to" db:"pay_to"`
	Amount       float64    `json:"amount" db:"amount"`
	Remarks      *string    `json:"remarks" db:"remarks"`
	Attachment   *string    `json:"attachment" db:"attachment"`
	Planned1     *time.Time `json:"planned1" db:"planned1"`
	Actual1      *time.Time `json:"actual1" db:"actual1"`
	Status       string     `json:"status" db:"status"`
	StageRemarks *string    `json:"stage_remarks" db:"stage_remarks"`
	Planned2     *time.Time `json:"planned2" db:"planned2"`
	Actual2      *time.Time `json:"actual2" db:"actual2"`
	PaymentType  *string    `json:"payment_type" db:"payment_type"`
	Planned3     *time.Time `json:"planned3" db:"planned3"`
	Actual3      *time.Time `json:"actual3" db:"actual3"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

func (p PaymentFMS) RecordID() string { return p.ID.String() }

func (p PaymentFMS) StageStates() []StageState {
	return []StageState{
		{Planned: p.Planned1, Actual: p.Actual1},
		{Planned: p.Planned2, Actual: p.Actual2},
		{Planned: p.Planned3, Actual: p.Actual3},
	}
}

// Loan is a row of all_loans. Deleted loans stay in the table with IsDeleted set.
type Loan struct {
	ID                   int64      `json:"id" db:"id"`
	LoanName             string     `json:"loan_name" db:"loan_name"`
	BankName             string     `json:"bank_name" db:"bank_name"`
	Amount               float64    `json:"amount" db:"amount"`
	EMI                  float64    `json:"emi" db:"emi"`
	LoanStartDate        *time.Time `json:"loan_start_date" db:"loan_start_date"`
	LoanEndDate          *time.Time `json:"loan_end_date" db:"loan_end_date"`
	ProvidedDocumentName *string    `json:"provided_document_name" db:"provided_document_name"`
	UploadDocument       *string    `json:"upload_document" db:"upload_document"`
	Remarks              *string    `json:"remarks" db:"remarks"`
	IsDeleted            bool       `json:"-" db:"is_deleted"`
	CreatedAt            time.Time  `json:"created_at" db:"created_at"`
}

// LoanKey is the natural identity shared by a loan and its foreclosure request.
// It is matched by value; duplicate pairs make the correlation ambiguous.
type LoanKey struct {
	LoanName string
	BankName string
}

func (l Loan) Key() LoanKey { return LoanKey{LoanName: l.LoanName, BankName: l.BankName} }

// ForeclosureRequest is a row of request_forclosure.
type ForeclosureRequest struct {
	ID            int64      `json:"id" db:"id"`
	SerialNo      string     `json:"serial_no" db:"serial_no"`
	LoanName      string     `json:"loan_name" db:"loan_name"`
	BankName      string     `json:"bank_name" db:"bank_name"`
	Amount        float64    `json:"amount" db:"amount"`
	EMI           float64    `json:"emi" db:"emi"`
	LoanStartDate *time.Time `json:"loan_start_date" db:"loan_start_date"`
	LoanEndDate   *time.Time `json:"loan_end_date" db:"loan_end_date"`
	RequestDate   *time.Time `json:"request_date" db:"request_date"`
	RequesterName *string    `json:"requester_name" db:"requester_name"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

func (r ForeclosureRequest) Key() LoanKey {
	return LoanKey{LoanName: r.LoanName, BankName: r.BankName}
}

// NOC is a row of collect_noc, keyed by the foreclosure request's serial number.
type NOC struct {
	ID                 int64      `json:"id" db:"id"`
	SerialNo           string     `json:"serial_no" db:"serial_no"`
	LoanName           *string    `json:"loan_name" db:"loan_name"`
	BankName           *string    `json:"bank_name" db:"bank_name"`
	LoanStartDate      *time.Time `json:"loan_start_date" db:"loan_start_date"`
	LoanEndDate        *time.Time `json:"loan_end_date" db:"loan_end_date"`
	ClosureRequestDate *time.Time `json:"closure_request_date" db:"closure_request_date"`
	CollectNOC         bool       `json:"collect_noc" db:"collect_noc"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
}

// Document is an uploaded company, personal or director record.
type Document struct {
	DocumentID        int64      `json:"document_id" db:"document_id"`
	DocumentName      string     `json:"document_name" db:"document_name"`
	DocumentType      *string    `json:"document_type" db:"document_type"`
	Category          *string    `json:"category" db:"category"`
	CompanyDepartment *string    `json:"company_department" db:"company_department"`
	Tags              *string    `json:"tags" db:"tags"`
	PersonName        *string    `json:"person_name" db:"person_name"`
	NeedRenewal       string     `json:"need_renewal" db:"need_renewal"`
	RenewalDate       *time.Time `json:"renewal_date" db:"renewal_date"`
	Image             *string    `json:"image" db:"image"`
	Email             *string    `json:"email" db:"email"`
	Mobile            *string    `json:"mobile" db:"mobile"`
	IsDeleted         bool       `json:"-" db:"is_deleted"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
}

// DocumentStats counts live documents.
type DocumentStats struct {
	Total        int64 `json:"total" db:"total"`
	Personal     int64 `json:"personal" db:"personal"`
	Company      int64 `json:"company" db:"company"`
	Director     int64 `json:"director" db:"director"`
	NeedsRenewal int64 `json:"needs_renewal" db:"needs_renewal"`
	Recent       int64 `json:"recent" db:"recent"`
}

// MasterRecord feeds the document form dropdowns. ID is an ordinal assigned
// at read time; the table has no surrogate key.
type MasterRecord struct {
	ID            int    `json:"id" db:"-"`
	CompanyName   string `json:"company_name" db:"company_name"`
	DocumentType  string `json:"document_type" db:"document_type"`
	Category      string `json:"category" db:"category"`
	RenewalFilter bool   `json:"renewal_filter" db:"renewal_filter"`
}

// AccessSettings lists the systems and front-end pages a user may open.
type AccessSettings struct {
	Systems []string `json:"systems"`
	Pages   []string `json:"pages"`
}

// DefaultSystems applies when a user has no stored access settings.
var DefaultSystems = []string{"subscription", "document", "payment"}

// User is an account from the login database.
type User struct {
	ID         int64          `json:"id"`
	Username   string         `json:"username"`
	Name       string         `json:"name"`
	Email      *string        `json:"email"`
	Role       string         `json:"role"`
	Department *string        `json:"department"`
	Status     *string        `json:"status"`
	Access     AccessSettings `json:"access"`
	LastLogin  *time.Time     `json:"last_login"`
	Password   string         `json:"-"`
}

// Subscription is a company software or service subscription.
type Subscription struct {
	ID               int64      `json:"id" db:"id"`
	SubscriptionNo   string     `json:"subscription_no" db:"subscription_no"`
	SubscriberName   *string    `json:"subscriber_name" db:"subscriber_name"`
	SubscriptionName *string    `json:"subscription_name" db:"subscription_name"`
	Price            float64    `json:"price" db:"price"`
	Frequency        *string    `json:"frequency" db:"frequency"`
	Planned2         *time.Time `json:"planned_2" db:"planned_2"`
	Actual2          *time.Time `json:"actual_2" db:"actual_2"`
	ApprovalStatus   *string    `json:"approval_status" db:"approval_status"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

func (s Subscription) RecordID() string { return s.SubscriptionNo }

func (s Subscription) StageStates() []StageState {
	return []StageState{{Planned: s.Planned2, Actual: s.Actual2}}
}

// ApprovalHistory is one subscription approval decision.
type ApprovalHistory struct {
	ID             int64      `json:"id" db:"id"`
	ApprovalNo     string     `json:"approval_no" db:"approval_no"`
	SubscriptionNo string     `json:"subscription_no" db:"subscription_no"`
	Approval       string     `json:"approval" db:"approval"`
	Note           *string    `json:"note" db:"note"`
	ApprovedBy     *string    `json:"approved_by" db:"approved_by"`
	RequestedOn    *time.Time `json:"requested_on" db:"requested_on"`
	SubscriberName *string    `json:"subscriber_name" db:"subscriber_name"`
}

// DashboardStats aggregates the subscriptions visible to one caller.
type DashboardStats struct {
	SubscriptionSheet []Subscription `json:"subscriptionSheet"`
	Stats             struct {
		TotalValue         float64 `json:"totalValue"`
		TotalSubscriptions int     `json:"totalSubscriptions"`
	} `json:"stats"`
}
