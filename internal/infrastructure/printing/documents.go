package printing

import (
	"time"

	"github.com/shopspring/decimal"
)

// TenancyAgreementData is the view model for the tenancy agreement template
type TenancyAgreementData struct {
	TenantName       string
	TenantAddress    string
	PropertyName     string
	PropertyAddress  string
	LandlordName     string
	RentAmount       decimal.Decimal
	PaymentFrequency string
	StartDate        time.Time
	EndDate          time.Time
	SecurityDeposit  *decimal.Decimal
	AdditionalTerms  string
	IssuedOn         time.Time
}

// PaymentReceiptData is the view model for the payment receipt template
type PaymentReceiptData struct {
	ReceiptNumber string
	TenantName    string
	PropertyName  string
	Amount        decimal.Decimal
	PaymentDate   time.Time
	PaymentType   string
	Reference     string
	IssuedOn      time.Time
}

// PaymentNoticeData is the view model for the overdue payment notice template
type PaymentNoticeData struct {
	TenantName   string
	PropertyName string
	AmountDue    decimal.Decimal
	DueDate      time.Time
	IssuedOn     time.Time
}

// QuitNoticeData is the view model for the notice to quit template
type QuitNoticeData struct {
	TenantName      string
	PropertyName    string
	PropertyAddress string
	Reason          string
	IssuedOn        time.Time
}
