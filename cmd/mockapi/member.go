package main

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"coopdesk/internal/domain"
)

func (s *server) memberRoutes(ctx *fasthttp.RequestCtx, method string, rest []string, me *account) {
	get, post := method == http.MethodGet, method == http.MethodPost
	switch {
	case get && match(rest, "wallet"):
		writeData(ctx, http.StatusOK, s.wallet(me.ID), nil)
	case get && match(rest, "wallet", "transactions"):
		list := append([]domain.WalletTransaction(nil), s.txns[me.ID]...)
		newestFirst(list, func(t domain.WalletTransaction) string { return t.CreatedAt })
		args := ctx.QueryArgs()
		if typ := string(args.Peek("type")); typ != "" {
			kept := list[:0]
			for _, t := range list {
				if strings.EqualFold(t.Type, typ) {
					kept = append(kept, t)
				}
			}
			list = kept
		}
		items, pg := page(ctx, list,
			func(t domain.WalletTransaction) string { return t.Status },
			func(t domain.WalletTransaction) string { return t.Reference + " " + t.Description })
		writeData(ctx, http.StatusOK, items, pg)
	case post && match(rest, "wallet", "fund"):
		s.fundWallet(ctx, me)

	case get && match(rest, "loans"):
		var mine []domain.Loan
		for _, l := range s.loans {
			if l.MemberID == me.ID {
				mine = append(mine, *l)
			}
		}
		items, pg := page(ctx, mine, func(l domain.Loan) string { return l.Status },
			func(l domain.Loan) string { return l.Reference + " " + l.Product })
		writeData(ctx, http.StatusOK, items, pg)
	case get && match(rest, "loans", "*"):
		l := s.loan(domain.ID(rest[1]))
		if l == nil || l.MemberID != me.ID {
			writeError(ctx, http.StatusNotFound, "Loan not found.", nil)
			return
		}
		writeData(ctx, http.StatusOK, l, nil)
	case post && match(rest, "loans"):
		s.applyLoan(ctx, me)

	case get && match(rest, "mortgages"):
		items, pg := page(ctx, s.mortgages[me.ID], func(m domain.Mortgage) string { return m.Status },
			func(m domain.Mortgage) string { return m.PropertyTitle })
		writeData(ctx, http.StatusOK, items, pg)

	case get && match(rest, "statutory-charges"):
		var list []domain.StatutoryCharge
		for _, c := range s.charges[me.ID] {
			list = append(list, *c)
		}
		items, pg := page(ctx, list, func(c domain.StatutoryCharge) string { return c.Status },
			func(c domain.StatutoryCharge) string { return c.Title })
		writeData(ctx, http.StatusOK, items, pg)
	case get && match(rest, "statutory-charges", "*"):
		c := s.charge(me.ID, domain.ID(rest[1]))
		if c == nil {
			writeError(ctx, http.StatusNotFound, "Charge not found.", nil)
			return
		}
		writeData(ctx, http.StatusOK, c, nil)
	case post && match(rest, "statutory-charges", "*", "pay"):
		s.payCharge(ctx, me, domain.ID(rest[1]))

	case get && match(rest, "mail"):
		folder := string(ctx.QueryArgs().Peek("folder"))
		if folder == "" {
			folder = "inbox"
		}
		var list []domain.MailMessage
		for _, m := range s.mail {
			if m.owner == me.ID && m.Folder == folder {
				list = append(list, m.MailMessage)
			}
		}
		newestFirst(list, func(m domain.MailMessage) string { return m.CreatedAt })
		items, pg := page(ctx, list, nil, func(m domain.MailMessage) string { return m.Subject + " " + m.From })
		writeData(ctx, http.StatusOK, items, pg)
	case get && match(rest, "mail", "*"):
		m := s.mailItem(me.ID, domain.ID(rest[1]))
		if m == nil {
			writeError(ctx, http.StatusNotFound, "Message not found.", nil)
			return
		}
		m.Read = true
		writeData(ctx, http.StatusOK, m.MailMessage, nil)
	case post && match(rest, "mail"):
		s.sendMail(ctx, me)
	case method == http.MethodDelete && match(rest, "mail", "*"):
		for i, m := range s.mail {
			if m.owner == me.ID && m.ID == domain.ID(rest[1]) {
				s.mail = append(s.mail[:i], s.mail[i+1:]...)
				writeMessage(ctx, "Message deleted.")
				return
			}
		}
		writeError(ctx, http.StatusNotFound, "Message not found.", nil)

	case get && match(rest, "activity-logs"):
		s.activityList(ctx, me.ID)

	case get && match(rest, "properties"):
		list := s.properties
		if typ := string(ctx.QueryArgs().Peek("type")); typ != "" {
			list = nil
			for _, p := range s.properties {
				if strings.EqualFold(p.Type, typ) {
					list = append(list, p)
				}
			}
		}
		items, pg := page(ctx, list, func(p domain.Property) string { return p.Status },
			func(p domain.Property) string { return p.Title + " " + p.Location })
		writeData(ctx, http.StatusOK, items, pg)
	case post && match(rest, "eoi"):
		s.expressInterest(ctx, me)

	case get && match(rest, "payment-plans"):
		items, pg := page(ctx, s.plans[me.ID], func(p domain.PaymentPlan) string { return p.Status },
			func(p domain.PaymentPlan) string { return p.PropertyTitle })
		writeData(ctx, http.StatusOK, items, pg)
	case get && match(rest, "payment-plans", "*"):
		for _, p := range s.plans[me.ID] {
			if p.ID == domain.ID(rest[1]) {
				writeData(ctx, http.StatusOK, p, nil)
				return
			}
		}
		writeError(ctx, http.StatusNotFound, "Payment plan not found.", nil)

	default:
		writeError(ctx, http.StatusNotFound, "Not found", nil)
	}
}

func (s *server) wallet(id domain.ID) *domain.Wallet {
	w, ok := s.wallets[id]
	if !ok {
		w = &domain.Wallet{ID: s.nextID(), Currency: "NGN", Status: "active", UpdatedAt: s.stamp()}
		s.wallets[id] = w
	}
	return w
}

func (s *server) fundWallet(ctx *fasthttp.RequestCtx, me *account) {
	var req domain.FundWalletRequest
	if !decode(ctx, &req) {
		return
	}
	if req.Amount <= 0 {
		writeError(ctx, http.StatusUnprocessableEntity, "The given data was invalid.",
			map[string][]string{"amount": {"The amount must be greater than 0."}})
		return
	}
	ref := req.Reference
	if ref == "" {
		ref = "FND-" + strings.ToUpper(uuid.NewString()[:8])
	}
	w := s.wallet(me.ID)
	w.Balance += req.Amount
	w.LedgerBalance += req.Amount
	w.UpdatedAt = s.stamp()
	s.txns[me.ID] = append(s.txns[me.ID], domain.WalletTransaction{
		ID:          s.nextID(),
		Reference:   ref,
		Type:        "credit",
		Amount:      req.Amount,
		Status:      "completed",
		Description: "Wallet top-up via " + req.Method,
		CreatedAt:   s.stamp(),
	})
	s.record(ctx, me, "wallet.fund", "Funded wallet")
	writeData(ctx, http.StatusCreated, domain.FundWalletResult{Reference: ref, Status: "completed"}, nil)
}

func (s *server) loan(id domain.ID) *domain.Loan {
	for _, l := range s.loans {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func (s *server) applyLoan(ctx *fasthttp.RequestCtx, me *account) {
	var req domain.LoanApplication
	if !decode(ctx, &req) {
		return
	}
	fields := map[string][]string{}
	if req.Amount <= 0 {
		fields["amount"] = []string{"The amount must be greater than 0."}
	}
	if req.TenureMonths <= 0 {
		fields["tenure_months"] = []string{"The tenure must be at least 1 month."}
	}
	if len(fields) > 0 {
		writeError(ctx, http.StatusUnprocessableEntity, "The given data was invalid.", fields)
		return
	}
	product := req.Product
	if product == "" {
		product = "Personal loan"
	}
	id := s.nextID()
	l := &domain.Loan{
		ID:           id,
		Reference:    "LN-" + id.String(),
		MemberID:     me.ID,
		MemberName:   me.FullName(),
		Product:      product,
		Principal:    req.Amount,
		InterestRate: 12,
		TenureMonths: req.TenureMonths,
		Status:       "pending",
		CreatedAt:    s.stamp(),
	}
	s.loans = append(s.loans, l)
	s.record(ctx, me, "loan.apply", "Applied for "+l.Reference)
	writeData(ctx, http.StatusCreated, l, nil)
}

func (s *server) charge(owner, id domain.ID) *domain.StatutoryCharge {
	for _, c := range s.charges[owner] {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *server) payCharge(ctx *fasthttp.RequestCtx, me *account, id domain.ID) {
	c := s.charge(me.ID, id)
	if c == nil {
		writeError(ctx, http.StatusNotFound, "Charge not found.", nil)
		return
	}
	var req domain.ChargePayment
	if !decode(ctx, &req) {
		return
	}
	if req.Amount <= 0 {
		writeError(ctx, http.StatusUnprocessableEntity, "The given data was invalid.",
			map[string][]string{"amount": {"The amount must be greater than 0."}})
		return
	}
	if req.Method == "wallet" {
		w := s.wallet(me.ID)
		if w.Balance < req.Amount {
			writeError(ctx, http.StatusUnprocessableEntity, "Insufficient wallet balance.", nil)
			return
		}
		w.Balance -= req.Amount
		w.LedgerBalance -= req.Amount
		s.txns[me.ID] = append(s.txns[me.ID], domain.WalletTransaction{
			ID: s.nextID(), Reference: "CHG-" + id.String(), Type: "debit", Amount: req.Amount,
			Status: "completed", Description: c.Title, CreatedAt: s.stamp(),
		})
	}
	c.AmountPaid += req.Amount
	if c.AmountPaid >= c.Amount {
		c.Status = "paid"
		c.PaidAt = s.stamp()
	} else {
		c.Status = "partially_paid"
	}
	s.record(ctx, me, "charge.pay", "Paid "+c.Title)
	writeMessage(ctx, "Payment recorded.")
}

func (s *server) mailItem(owner, id domain.ID) *mailItem {
	for _, m := range s.mail {
		if m.owner == owner && m.ID == id {
			return m
		}
	}
	return nil
}

func (s *server) sendMail(ctx *fasthttp.RequestCtx, me *account) {
	var req domain.ComposeMail
	if !decode(ctx, &req) {
		return
	}
	if len(req.Recipients) == 0 || strings.TrimSpace(req.Subject) == "" {
		writeError(ctx, http.StatusUnprocessableEntity, "Recipients and subject are required.", nil)
		return
	}
	var names []string
	var targets []*account
	for _, rid := range req.Recipients {
		a := s.account(rid)
		if a == nil {
			writeError(ctx, http.StatusUnprocessableEntity, "The given data was invalid.",
				map[string][]string{"recipient_ids": {"Unknown recipient " + rid.String() + "."}})
			return
		}
		names = append(names, a.FullName())
		targets = append(targets, a)
	}
	msg := domain.MailMessage{
		Subject:   req.Subject,
		Body:      req.Body,
		From:      me.FullName(),
		FromEmail: me.Email,
		To:        names,
		CreatedAt: s.stamp(),
	}
	sent := msg
	sent.ID, sent.Folder, sent.Read = s.nextID(), "sent", true
	s.mail = append(s.mail, &mailItem{MailMessage: sent, owner: me.ID})
	for _, t := range targets {
		in := msg
		in.ID, in.Folder = s.nextID(), "inbox"
		s.mail = append(s.mail, &mailItem{MailMessage: in, owner: t.ID})
	}
	s.record(ctx, me, "mail.send", "Sent \""+req.Subject+"\"")
	writeData(ctx, http.StatusCreated, sent, nil)
}

func (s *server) activityList(ctx *fasthttp.RequestCtx, only domain.ID) {
	var list []domain.ActivityLog
	for _, a := range s.activity {
		if only == "" || a.userID == only {
			list = append(list, a.ActivityLog)
		}
	}
	newestFirst(list, func(l domain.ActivityLog) string { return l.CreatedAt })
	items, pg := page(ctx, list, nil, func(l domain.ActivityLog) string { return l.Action + " " + l.Description })
	writeData(ctx, http.StatusOK, items, pg)
}

func (s *server) expressInterest(ctx *fasthttp.RequestCtx, me *account) {
	var req domain.EOIRequest
	if !decode(ctx, &req) {
		return
	}
	for _, p := range s.properties {
		if p.ID != req.PropertyID {
			continue
		}
		eoi := domain.EOI{
			ID:            s.nextID(),
			PropertyID:    p.ID,
			PropertyTitle: p.Title,
			FundingOption: req.FundingOption,
			Status:        "pending",
			CreatedAt:     s.stamp(),
		}
		s.eois = append(s.eois, eoi)
		s.record(ctx, me, "eoi.create", "Expressed interest in "+p.Title)
		writeData(ctx, http.StatusCreated, eoi, nil)
		return
	}
	writeError(ctx, http.StatusNotFound, "Property not found.", nil)
}
