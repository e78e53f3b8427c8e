package main

import (
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"

	"coopdesk/internal/domain"
)

func (s *server) platformRoutes(ctx *fasthttp.RequestCtx, method string, rest []string, me *account) {
	get, post := method == http.MethodGet, method == http.MethodPost
	switch {
	case get && match(rest, "businesses"):
		list := make([]domain.Business, 0, len(s.businesses))
		for _, b := range s.businesses {
			list = append(list, *b)
		}
		items, pg := page(ctx, list, func(b domain.Business) string { return b.Status },
			func(b domain.Business) string { return b.Name + " " + b.Slug })
		writeData(ctx, http.StatusOK, items, pg)
	case get && match(rest, "businesses", "*"):
		if b := s.business(domain.ID(rest[1])); b != nil {
			writeData(ctx, http.StatusOK, b, nil)
			return
		}
		writeError(ctx, http.StatusNotFound, "Business not found.", nil)
	case post && match(rest, "businesses"):
		s.createBusiness(ctx, me)
	case post && match(rest, "businesses", "*", "suspend"):
		s.setBusinessStatus(ctx, me, domain.ID(rest[1]), "suspended")
	case post && match(rest, "businesses", "*", "activate"):
		s.setBusinessStatus(ctx, me, domain.ID(rest[1]), "active")
	case get && match(rest, "subscriptions"):
		items, pg := page(ctx, s.subscriptions, func(x domain.Subscription) string { return x.Status },
			func(x domain.Subscription) string { return x.BusinessName + " " + x.Package })
		writeData(ctx, http.StatusOK, items, pg)
	case get && match(rest, "packages"):
		writeData(ctx, http.StatusOK, s.packages, nil)
	default:
		writeError(ctx, http.StatusNotFound, "Not found", nil)
	}
}

func (s *server) business(id domain.ID) *domain.Business {
	for _, b := range s.businesses {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (s *server) createBusiness(ctx *fasthttp.RequestCtx, me *account) {
	var req domain.BusinessRequest
	if !decode(ctx, &req) {
		return
	}
	fields := map[string][]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = []string{"The name field is required."}
	}
	for _, b := range s.businesses {
		if b.Slug == req.Slug {
			fields["slug"] = []string{"The slug has already been taken."}
		}
	}
	if len(fields) > 0 {
		writeError(ctx, http.StatusUnprocessableEntity, "The given data was invalid.", fields)
		return
	}
	pkg := ""
	for _, p := range s.packages {
		if p.ID == req.Package {
			pkg = p.Name
		}
	}
	b := &domain.Business{
		ID:        s.nextID(),
		Name:      req.Name,
		Slug:      req.Slug,
		Email:     req.Email,
		Status:    "active",
		Package:   pkg,
		CreatedAt: s.stamp(),
	}
	s.businesses = append(s.businesses, b)
	s.record(ctx, me, "business.create", "Created "+b.Name)
	writeData(ctx, http.StatusCreated, b, nil)
}

func (s *server) setBusinessStatus(ctx *fasthttp.RequestCtx, me *account, id domain.ID, status string) {
	b := s.business(id)
	if b == nil {
		writeError(ctx, http.StatusNotFound, "Business not found.", nil)
		return
	}
	b.Status = status
	s.record(ctx, me, "business."+status, b.Name+" "+status)
	writeMessage(ctx, "Business "+status+".")
}
