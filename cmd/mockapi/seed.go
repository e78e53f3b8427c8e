package main

import (
	"strings"
	"time"

	"coopdesk/internal/domain"
)

const seedPassword = "password"

func (s *server) seed() {
	now := s.now()
	date := func(days int) string { return now.AddDate(0, 0, days).Format("2006-01-02") }
	ts := func(days int) string { return now.AddDate(0, 0, days).UTC().Format(time.RFC3339) }

	add := func(m domain.Member) *account {
		m.ID = s.nextID()
		if m.Business == "" && m.Role != domain.RoleSuperAdmin {
			m.Business, m.TenantSlug = "Demo Housing Cooperative", "demo"
		}
		a := &account{Member: m, Password: seedPassword}
		s.accounts = append(s.accounts, a)
		return a
	}
	member := add(domain.Member{
		MemberID: "DHC-0001", FirstName: "Amaka", LastName: "Eze", Email: "member@demo.test",
		Phone: "+2348000000001", Status: "active", KYCStatus: "verified", Role: domain.RoleMember, CreatedAt: ts(-400),
	})
	admin := add(domain.Member{
		MemberID: "DHC-ADM", FirstName: "Tunde", LastName: "Bello", Email: "admin@demo.test",
		Status: "active", Role: domain.RoleAdmin, CreatedAt: ts(-500),
	})
	add(domain.Member{
		FirstName: "Platform", LastName: "Owner", Email: "root@platform.test",
		Status: "active", Role: domain.RoleSuperAdmin, CreatedAt: ts(-600),
	})
	add(domain.Member{
		MemberID: "DHC-0002", FirstName: "Chidi", LastName: "Okafor", Email: "chidi@demo.test",
		Status: "pending", Role: domain.RoleMember, CreatedAt: ts(-2),
	})

	s.wallets[member.ID] = &domain.Wallet{
		ID: s.nextID(), Balance: 250000, LedgerBalance: 250000, Currency: "NGN", Status: "active", UpdatedAt: ts(-1),
	}
	s.txns[member.ID] = []domain.WalletTransaction{
		{ID: s.nextID(), Reference: "FND-0001", Type: "credit", Amount: 300000, Status: "completed",
			Description: "Wallet top-up via transfer", CreatedAt: ts(-30)},
		{ID: s.nextID(), Reference: "CHG-0001", Type: "debit", Amount: 50000, Status: "completed",
			Description: "Annual service charge", CreatedAt: ts(-20)},
	}

	s.loans = append(s.loans,
		&domain.Loan{
			ID: s.nextID(), Reference: "LN-1001", MemberID: member.ID, MemberName: member.FullName(),
			Product: "Housing loan", Principal: 1200000, InterestRate: 12, TenureMonths: 24,
			AmountPaid: 400000, OutstandingBal: 800000, Status: "active",
			DisbursedAt: date(-180), LastRepaymentAt: date(-15), CreatedAt: ts(-190),
			Repayments: []domain.LoanRepayment{
				{ID: s.nextID(), DueDate: date(-15), Principal: 50000, Interest: 12000, Total: 62000, Status: "paid", PaidAt: ts(-15)},
				{ID: s.nextID(), DueDate: date(15), Principal: 50000, Interest: 8000, Total: 58000, Status: "pending"},
			},
		},
		&domain.Loan{
			ID: s.nextID(), Reference: "LN-1002", MemberID: member.ID, MemberName: member.FullName(),
			Product: "Emergency loan", Principal: 150000, InterestRate: 10, TenureMonths: 6,
			Status: "pending", CreatedAt: ts(-3),
		},
	)

	s.mortgages[member.ID] = []domain.Mortgage{{
		ID: s.nextID(), Reference: "MTG-01", PropertyTitle: "Block C, Flat 4", Provider: "FMBN",
		Principal: 15000000, InterestRate: 6, TenureYears: 20, MonthlyPayment: 107465,
		AmountPaid: 1500000, OutstandingBal: 13500000, Status: "active", StartDate: date(-365),
	}}

	s.charges[member.ID] = []*domain.StatutoryCharge{
		{ID: s.nextID(), Title: "Estate service charge", Type: "service", Amount: 60000, DueDate: date(-10), Status: "pending"},
		{ID: s.nextID(), Title: "Development levy", Type: "levy", Amount: 25000, AmountPaid: 10000, DueDate: date(20), Status: "partially_paid"},
		{ID: s.nextID(), Title: "Annual service charge", Type: "service", Amount: 50000, AmountPaid: 50000, DueDate: date(-20), Status: "paid", PaidAt: ts(-20)},
	}

	s.mail = append(s.mail, &mailItem{
		MailMessage: domain.MailMessage{
			ID: s.nextID(), Subject: "Welcome to Demo Housing Cooperative", Body: "Your membership is active.",
			From: admin.FullName(), FromEmail: admin.Email, To: []string{member.FullName()},
			Folder: "inbox", CreatedAt: ts(-400),
		},
		owner: member.ID,
	})

	p1, p2 := s.nextID(), s.nextID()
	s.properties = []domain.Property{
		{ID: p1, Title: "Block C, Flat 4", Location: "Lekki, Lagos", Type: "apartment", Price: 15000000, Units: 0, Status: "sold_out"},
		{ID: p2, Title: "Palm Court Terrace", Location: "Abuja", Type: "terrace", Price: 42000000, Units: 6, Status: "active",
			Description: "Four-bedroom terraces with boys' quarters."},
	}
	s.plans[member.ID] = []domain.PaymentPlan{
		{
			ID: s.nextID(), PropertyID: p2, PropertyTitle: "Palm Court Terrace", FundingOption: "mix",
			TotalAmount: 42000000, AmountPaid: 4200000, Status: "active", CreatedAt: ts(-60),
			Configuration: domain.PlanConfiguration{MixAllocations: &domain.MixAllocations{
				Percentages: map[string]domain.Amount{"equity": 10, "mortgage": 60, "cooperative_loan": 30},
				Amounts:     map[string]*domain.Amount{"equity": amountPtr(4200000)},
			}},
		},
		{
			ID: s.nextID(), PropertyID: p1, PropertyTitle: "Block C, Flat 4", FundingOption: "mortgage",
			TotalAmount: 15000000, AmountPaid: 1500000, Status: "active", CreatedAt: ts(-365),
		},
	}

	for _, name := range []string{"members.view", "members.approve", "loans.view", "loans.approve", "bulk.upload", "branding.update"} {
		s.permissions = append(s.permissions, domain.Permission{ID: s.nextID(), Name: name, Group: groupOf(name)})
	}
	s.roles = []*domain.AccessRole{
		{ID: s.nextID(), Name: "Loan officer", Description: "Reviews loan applications",
			Permissions: []string{"loans.view", "loans.approve"}, Users: 1},
	}
	s.branding = domain.Branding{
		CompanyName: "Demo Housing Cooperative", PrimaryColor: "#0f766e", SecondaryColor: "#f59e0b",
		SupportEmail: "support@demo.test",
	}

	basic, pro := s.nextID(), s.nextID()
	s.packages = []domain.Package{
		{ID: basic, Name: "Basic", Price: 25000, BillingCycle: "monthly", MaxMembers: 200, Features: []string{"wallet", "loans"}},
		{ID: pro, Name: "Professional", Price: 75000, BillingCycle: "monthly", MaxMembers: 2000,
			Features: []string{"wallet", "loans", "mortgages", "white-label"}},
	}
	s.businesses = []*domain.Business{
		{ID: s.nextID(), Name: "Demo Housing Cooperative", Slug: "demo", Email: "ops@demo.test",
			Status: "active", Package: "Professional", MembersCount: 3, CreatedAt: ts(-700)},
		{ID: s.nextID(), Name: "Harbour View Cooperative", Slug: "harbour-view", Email: "hello@harbour.test",
			Status: "suspended", Package: "Basic", MembersCount: 41, CreatedAt: ts(-300)},
	}
	s.subscriptions = []domain.Subscription{
		{ID: s.nextID(), BusinessName: "Demo Housing Cooperative", Package: "Professional", Amount: 75000,
			Status: "active", StartsAt: date(-10), EndsAt: date(20)},
		{ID: s.nextID(), BusinessName: "Harbour View Cooperative", Package: "Basic", Amount: 25000,
			Status: "expired", StartsAt: date(-70), EndsAt: date(-40)},
	}
}

func groupOf(permission string) string {
	group, _, _ := strings.Cut(permission, ".")
	return group
}

func amountPtr(f float64) *domain.Amount {
	a := domain.Amount(f)
	return &a
}
