package main

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"coopdesk/internal/bulkupload"
	"coopdesk/internal/domain"
)

var hexColour = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func (s *server) adminRoutes(ctx *fasthttp.RequestCtx, method string, rest []string, me *account) {
	get, post := method == http.MethodGet, method == http.MethodPost
	switch {
	case get && match(rest, "members"):
		list := make([]domain.Member, 0, len(s.accounts))
		for _, a := range s.accounts {
			if a.Role != domain.RoleSuperAdmin {
				list = append(list, a.Member)
			}
		}
		items, pg := page(ctx, list, func(m domain.Member) string { return m.Status },
			func(m domain.Member) string { return m.FullName() + " " + m.Email + " " + m.MemberID })
		writeData(ctx, http.StatusOK, items, pg)
	case get && match(rest, "members", "*"):
		a := s.account(domain.ID(rest[1]))
		if a == nil {
			writeError(ctx, http.StatusNotFound, "Member not found.", nil)
			return
		}
		writeData(ctx, http.StatusOK, a.Member, nil)
	case post && match(rest, "members", "*", "approve"):
		s.decideMember(ctx, me, domain.ID(rest[1]), "approved", "")
	case post && match(rest, "members", "*", "reject"):
		var req domain.RejectRequest
		if decode(ctx, &req) {
			s.decideMember(ctx, me, domain.ID(rest[1]), "rejected", req.Reason)
		}
	case method == http.MethodDelete && match(rest, "members", "*"):
		for i, a := range s.accounts {
			if a.ID == domain.ID(rest[1]) {
				s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
				s.record(ctx, me, "member.delete", "Deleted "+a.FullName())
				writeMessage(ctx, "Member deleted.")
				return
			}
		}
		writeError(ctx, http.StatusNotFound, "Member not found.", nil)

	case get && match(rest, "loans"):
		list := make([]domain.Loan, 0, len(s.loans))
		for _, l := range s.loans {
			list = append(list, *l)
		}
		newestFirst(list, func(l domain.Loan) string { return l.CreatedAt })
		items, pg := page(ctx, list, func(l domain.Loan) string { return l.Status },
			func(l domain.Loan) string { return l.Reference + " " + l.MemberName })
		writeData(ctx, http.StatusOK, items, pg)
	case get && match(rest, "loans", "*"):
		l := s.loan(domain.ID(rest[1]))
		if l == nil {
			writeError(ctx, http.StatusNotFound, "Loan not found.", nil)
			return
		}
		writeData(ctx, http.StatusOK, l, nil)
	case post && match(rest, "loans", "*", "approve"):
		s.decideLoan(ctx, me, domain.ID(rest[1]), "approved", "")
	case post && match(rest, "loans", "*", "reject"):
		var req domain.RejectRequest
		if decode(ctx, &req) {
			s.decideLoan(ctx, me, domain.ID(rest[1]), "rejected", req.Reason)
		}

	case post && match(rest, "bulk-upload", "*"):
		s.bulkUpload(ctx, me, rest[1])

	case get && match(rest, "roles"):
		writeData(ctx, http.StatusOK, s.roles, nil)
	case post && match(rest, "roles"):
		var req domain.RoleRequest
		if !decode(ctx, &req) {
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeError(ctx, http.StatusUnprocessableEntity, "The given data was invalid.",
				map[string][]string{"name": {"The name field is required."}})
			return
		}
		r := &domain.AccessRole{ID: s.nextID(), Name: req.Name, Description: req.Description, Permissions: req.Permissions}
		s.roles = append(s.roles, r)
		s.record(ctx, me, "role.create", "Created role "+r.Name)
		writeData(ctx, http.StatusCreated, r, nil)
	case post && match(rest, "roles", "assign"):
		s.assignRole(ctx, me)
	case get && match(rest, "permissions"):
		writeData(ctx, http.StatusOK, s.permissions, nil)

	case get && match(rest, "branding"):
		writeData(ctx, http.StatusOK, s.branding, nil)
	case method == http.MethodPut && match(rest, "branding"):
		var b domain.Branding
		if !decode(ctx, &b) {
			return
		}
		fields := map[string][]string{}
		for name, v := range map[string]string{
			"primary_color": b.PrimaryColor, "secondary_color": b.SecondaryColor, "accent_color": b.AccentColor,
		} {
			if v != "" && !hexColour.MatchString(v) {
				fields[name] = []string{"The " + strings.ReplaceAll(name, "_", " ") + " must be a valid hex colour."}
			}
		}
		if len(fields) > 0 {
			writeError(ctx, http.StatusUnprocessableEntity, "The given data was invalid.", fields)
			return
		}
		s.branding = b
		s.record(ctx, me, "branding.update", "Updated branding")
		writeMessage(ctx, "Branding updated.")

	case get && match(rest, "activity-logs"):
		s.activityList(ctx, "")

	default:
		writeError(ctx, http.StatusNotFound, "Not found", nil)
	}
}

func (s *server) decideMember(ctx *fasthttp.RequestCtx, me *account, id domain.ID, status, reason string) {
	a := s.account(id)
	if a == nil {
		writeError(ctx, http.StatusNotFound, "Member not found.", nil)
		return
	}
	if a.Status != "pending" {
		writeError(ctx, http.StatusUnprocessableEntity, "Only pending members can be "+status+".", nil)
		return
	}
	if status == "approved" {
		a.Status = "active"
		a.ApprovedAt = s.stamp()
	} else {
		a.Status = status
	}
	desc := strings.TrimSpace(status + " " + a.FullName() + " " + reason)
	s.record(ctx, me, "member."+status, desc)
	writeMessage(ctx, "Member "+status+".")
}

func (s *server) decideLoan(ctx *fasthttp.RequestCtx, me *account, id domain.ID, status, reason string) {
	l := s.loan(id)
	if l == nil {
		writeError(ctx, http.StatusNotFound, "Loan not found.", nil)
		return
	}
	if l.Status != "pending" {
		writeError(ctx, http.StatusUnprocessableEntity, "Only pending loans can be "+status+".", nil)
		return
	}
	l.Status = status
	if status == "approved" {
		l.Status = "active"
		l.DisbursedAt = s.stamp()
		l.OutstandingBal = l.Principal
	}
	s.record(ctx, me, "loan."+status, strings.TrimSpace(l.Reference+" "+reason))
	writeMessage(ctx, "Loan "+status+".")
}

// bulkUpload revalidates the raw file with the same rules the client
// previews with and reports per-row failures.
func (s *server) bulkUpload(ctx *fasthttp.RequestCtx, me *account, kind string) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		writeError(ctx, http.StatusUnprocessableEntity, "The file field is required.", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(ctx, http.StatusBadRequest, "Could not read the uploaded file.", nil)
		return
	}
	defer f.Close()

	p, err := bulkupload.Parse(kind, f, 1)
	if err != nil {
		writeError(ctx, http.StatusUnprocessableEntity, err.Error(), nil)
		return
	}
	res := domain.BulkUploadResult{
		BatchID:   uuid.NewString(),
		Processed: p.ValidRows(),
		Failed:    p.BadRows,
	}
	for _, e := range p.Errors {
		res.Errors = append(res.Errors, domain.BulkUploadError{Row: e.Line, Message: e.String()})
	}
	s.record(ctx, me, "bulk.upload", "Uploaded "+fh.Filename+" ("+string(p.Kind)+")")
	writeData(ctx, http.StatusOK, res, nil)
}

func (s *server) assignRole(ctx *fasthttp.RequestCtx, me *account) {
	var req domain.RoleAssignment
	if !decode(ctx, &req) {
		return
	}
	a := s.account(req.UserID)
	var role *domain.AccessRole
	for _, r := range s.roles {
		if r.ID == req.RoleID {
			role = r
		}
	}
	if a == nil || role == nil {
		writeError(ctx, http.StatusNotFound, "User or role not found.", nil)
		return
	}
	a.Permissions = append([]string(nil), role.Permissions...)
	role.Users++
	s.record(ctx, me, "role.assign", "Assigned "+role.Name+" to "+a.FullName())
	writeMessage(ctx, "Role assigned.")
}
