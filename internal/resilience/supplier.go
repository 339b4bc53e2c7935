package resilience

import (
	"fmt"
	"time"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
)

// Supplier provides fixed sample records per entity so list endpoints keep
// rendering when the store is unreachable or empty. Fixtures carry distinct
// statuses and realistic field values; responses built from them are tagged
// with Message so callers can tell sample data from live data. Supplier
// methods never fail.
type Supplier struct{}

// NewSupplier builds a Supplier.
func NewSupplier() *Supplier { return &Supplier{} }

// Message returns the diagnostic note attached to responses that carry
// sample records instead of live rows.
func (s *Supplier) Message(entity string) string {
	return fmt.Sprintf("showing sample %s; live data is temporarily unavailable", entity)
}

func daysAgo(n int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -n).Truncate(time.Second)
}

// Claims returns sample claim records.
func (s *Supplier) Claims() []model.Claim {
	return []model.Claim{
		{
			ID:            "demo-claim-001",
			PolicyNumber:  "POL-2024-0817",
			ClaimType:     "Motor",
			IncidentDate:  daysAgo(12),
			EstimatedLoss: 185000,
			Description:   "Rear-end collision on Mombasa Road, bumper and boot damage",
			Status:        model.ClaimStatusPending,
			FullName:      "Grace Wanjiru",
			Email:         "grace.wanjiru@example.com",
			Phone:         "+254712000111",
			CreatedAt:     daysAgo(11),
			UpdatedAt:     daysAgo(11),
		},
		{
			ID:            "demo-claim-002",
			PolicyNumber:  "POL-2023-5542",
			ClaimType:     "Medical",
			IncidentDate:  daysAgo(30),
			EstimatedLoss: 96400,
			Description:   "Inpatient admission, three nights at Aga Khan Hospital",
			Status:        model.ClaimStatusInReview,
			FullName:      "Daniel Otieno",
			Email:         "d.otieno@example.com",
			Phone:         "+254722000222",
			CreatedAt:     daysAgo(28),
			UpdatedAt:     daysAgo(14),
		},
		{
			ID:            "demo-claim-003",
			PolicyNumber:  "POL-2022-1190",
			ClaimType:     "Property",
			IncidentDate:  daysAgo(60),
			EstimatedLoss: 450000,
			Description:   "Warehouse roof damage after storm, stock water damage",
			Status:        model.ClaimStatusApproved,
			FullName:      "Amina Hassan",
			Email:         "amina.h@example.com",
			Phone:         "+254733000333",
			CreatedAt:     daysAgo(58),
			UpdatedAt:     daysAgo(20),
		},
	}
}

// Quotes returns sample quote requests.
func (s *Supplier) Quotes() []model.Quote {
	return []model.Quote{
		{
			ID:            "demo-quote-001",
			Product:       "Comprehensive Motor",
			Budget:        "40,000 - 60,000",
			Coverage:      "Private vehicle, 2.2M value",
			ContactMethod: "phone",
			Status:        model.QuoteStatusPending,
			FullName:      "Peter Kamau",
			Email:         "p.kamau@example.com",
			Phone:         "+254701000444",
			CreatedAt:     daysAgo(3),
			UpdatedAt:     daysAgo(3),
		},
		{
			ID:            "demo-quote-002",
			Product:       "Family Medical Cover",
			Budget:        "120,000 annual",
			Coverage:      "Inpatient + outpatient, family of four",
			ContactMethod: "email",
			Status:        model.QuoteStatusQuoted,
			FullName:      "Lucy Njeri",
			Email:         "lucy.njeri@example.com",
			Phone:         "+254711000555",
			CreatedAt:     daysAgo(9),
			UpdatedAt:     daysAgo(5),
		},
	}
}

// Consultations returns sample consultation requests.
func (s *Supplier) Consultations() []model.Consultation {
	scheduled := time.Now().UTC().AddDate(0, 0, 2).Truncate(time.Hour)
	return []model.Consultation{
		{
			ID:          "demo-consult-001",
			ServiceType: "Pension Planning",
			Status:      model.ConsultationStatusPending,
			FullName:    "Joseph Mwangi",
			Email:       "j.mwangi@example.com",
			Phone:       "+254720000666",
			CreatedAt:   daysAgo(2),
			UpdatedAt:   daysAgo(2),
		},
		{
			ID:              "demo-consult-002",
			ServiceType:     "Corporate Risk Review",
			ScheduledAt:     &scheduled,
			MeetingLink:     "https://meet.example.com/brk-risk-review",
			DurationMinutes: 45,
			Notes:           "Bring last year's loss runs",
			Status:          model.ConsultationStatusScheduled,
			FullName:        "Sarah Achieng",
			Email:           "s.achieng@example.com",
			Phone:           "+254734000777",
			CreatedAt:       daysAgo(7),
			UpdatedAt:       daysAgo(1),
		},
	}
}

// Outsourcing returns sample outsourcing requests.
func (s *Supplier) Outsourcing() []model.OutsourcingRequest {
	return []model.OutsourcingRequest{
		{
			ID:                  "demo-outsrc-001",
			OrganizationName:    "Savannah Logistics Ltd",
			Services:            []string{"claims management", "fleet cover administration"},
			NatureOfOutsourcing: "full",
			BudgetRange:         "500k - 1M",
			Status:              model.OutsourcingStatusPending,
			ContactName:         "Brian Kiprop",
			Email:               "b.kiprop@savannah.example.com",
			Phone:               "+254700000888",
			CreatedAt:           daysAgo(15),
			UpdatedAt:           daysAgo(15),
		},
		{
			ID:                  "demo-outsrc-002",
			OrganizationName:    "Harbor View Sacco",
			Services:            []string{"member medical scheme"},
			NatureOfOutsourcing: "partial",
			BudgetRange:         "1M - 3M",
			Status:              model.OutsourcingStatusInProgress,
			ContactName:         "Esther Moraa",
			Email:               "e.moraa@harborview.example.com",
			Phone:               "+254710000999",
			CreatedAt:           daysAgo(40),
			UpdatedAt:           daysAgo(6),
		},
	}
}

// Diaspora returns sample diaspora-service requests.
func (s *Supplier) Diaspora() []model.DiasporaRequest {
	return []model.DiasporaRequest{
		{
			ID:              "demo-diaspora-001",
			Country:         "United Kingdom",
			Timezone:        "Europe/London",
			ServiceInterest: "Property cover back home",
			Status:          model.DiasporaStatusPending,
			FullName:        "Kevin Ouma",
			Email:           "k.ouma@example.co.uk",
			Phone:           "+447700900123",
			CreatedAt:       daysAgo(4),
			UpdatedAt:       daysAgo(4),
		},
		{
			ID:              "demo-diaspora-002",
			Country:         "United States",
			Timezone:        "America/New_York",
			ServiceInterest: "Education policy for dependents",
			Status:          model.DiasporaStatusScheduled,
			FullName:        "Mercy Wambui",
			Email:           "m.wambui@example.com",
			Phone:           "+12025550147",
			CreatedAt:       daysAgo(18),
			UpdatedAt:       daysAgo(2),
		},
	}
}

// Payments returns sample payment records.
func (s *Supplier) Payments() []model.Payment {
	return []model.Payment{
		{
			ID:            "demo-payment-001",
			Amount:        45200,
			Currency:      "KES",
			PaymentMethod: "mpesa",
			Reference:     "PRM-2024-1101",
			TransactionID: "1849022211334455",
			Status:        model.PaymentStatusCompleted,
			Email:         "p.kamau@example.com",
			CreatedAt:     daysAgo(21),
			UpdatedAt:     daysAgo(21),
		},
		{
			ID:            "demo-payment-002",
			Amount:        118000,
			Currency:      "KES",
			PaymentMethod: "bank_transfer",
			Reference:     "PRM-2024-1188",
			TransactionID: "1849022211334874",
			Status:        model.PaymentStatusPending,
			Email:         "lucy.njeri@example.com",
			CreatedAt:     daysAgo(1),
			UpdatedAt:     daysAgo(1),
		},
	}
}
