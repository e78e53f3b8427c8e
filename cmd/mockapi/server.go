package main

import (
	"bytes"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"coopdesk/internal/domain"
)

const (
	defaultPerPage = 15
	tokenTTL       = 24 * time.Hour
)

type envelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message,omitempty"`
	Data       any                 `json:"data,omitempty"`
	Pagination *domain.Pagination  `json:"pagination,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
}

type account struct {
	domain.Member
	Password string
}

type token struct {
	userID  domain.ID
	expires time.Time
}

// server holds all state behind one mutex.
type server struct {
	mu  sync.Mutex
	log *zap.Logger
	now func() time.Time
	seq int

	tokens        map[string]token
	accounts      []*account
	wallets       map[domain.ID]*domain.Wallet
	txns          map[domain.ID][]domain.WalletTransaction
	loans         []*domain.Loan
	mortgages     map[domain.ID][]domain.Mortgage
	charges       map[domain.ID][]*domain.StatutoryCharge
	mail          []*mailItem
	activity      []activityItem
	properties    []domain.Property
	eois          []domain.EOI
	plans         map[domain.ID][]domain.PaymentPlan
	roles         []*domain.AccessRole
	permissions   []domain.Permission
	branding      domain.Branding
	businesses    []*domain.Business
	subscriptions []domain.Subscription
	packages      []domain.Package
}

type mailItem struct {
	domain.MailMessage
	owner domain.ID
}

type activityItem struct {
	domain.ActivityLog
	userID domain.ID
}

func newServer(log *zap.Logger) *server {
	s := &server{
		log:       log,
		now:       time.Now,
		tokens:    make(map[string]token),
		wallets:   make(map[domain.ID]*domain.Wallet),
		txns:      make(map[domain.ID][]domain.WalletTransaction),
		mortgages: make(map[domain.ID][]domain.Mortgage),
		charges:   make(map[domain.ID][]*domain.StatutoryCharge),
		plans:     make(map[domain.ID][]domain.PaymentPlan),
	}
	s.seed()
	return s
}

func (s *server) nextID() domain.ID {
	s.seq++
	return domain.ID(strconv.Itoa(s.seq))
}

func (s *server) stamp() string { return s.now().UTC().Format(time.RFC3339) }

// handle is the fasthttp entry point.
func (s *server) handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	if tenant := ctx.Request.Header.Peek("X-Tenant-Slug"); len(tenant) > 0 {
		ctx.Response.Header.SetBytesV("X-Tenant-Slug", tenant)
	}
	if rid := ctx.Request.Header.Peek("X-Request-ID"); len(rid) > 0 {
		ctx.Response.Header.SetBytesV("X-Request-ID", rid)
	}

	s.mu.Lock()
	s.route(ctx)
	s.mu.Unlock()

	s.log.Debug("request",
		zap.ByteString("method", ctx.Method()),
		zap.ByteString("path", ctx.Path()),
		zap.Int("status", ctx.Response.StatusCode()),
		zap.Int("bytes", len(ctx.Response.Body())),
		zap.Duration("duration", time.Since(start)),
	)
}

func (s *server) route(ctx *fasthttp.RequestCtx) {
	parts := strings.Split(strings.Trim(string(ctx.Path()), "/"), "/")
	if len(parts) < 3 || parts[0] != "api" {
		writeError(ctx, http.StatusNotFound, "Not found", nil)
		return
	}
	method := string(ctx.Method())
	area, rest := parts[1], parts[2:]

	if area == "auth" && len(rest) == 1 && rest[0] == "login" && method == http.MethodPost {
		s.login(ctx)
		return
	}
	me, ok := s.authenticate(ctx)
	if !ok {
		writeError(ctx, http.StatusUnauthorized, "Unauthenticated.", nil)
		return
	}

	switch area {
	case "auth":
		s.authRoutes(ctx, method, rest, me)
	case "member":
		if s.tenant(ctx) {
			s.memberRoutes(ctx, method, rest, me)
		}
	case "admin":
		if me.Role != domain.RoleAdmin && me.Role != domain.RoleSuperAdmin {
			writeError(ctx, http.StatusForbidden, "You do not have permission to perform this action.", nil)
			return
		}
		if s.tenant(ctx) {
			s.adminRoutes(ctx, method, rest, me)
		}
	case "super-admin":
		if me.Role != domain.RoleSuperAdmin {
			writeError(ctx, http.StatusForbidden, "You do not have permission to perform this action.", nil)
			return
		}
		s.platformRoutes(ctx, method, rest, me)
	default:
		writeError(ctx, http.StatusNotFound, "Not found", nil)
	}
}

func (s *server) authenticate(ctx *fasthttp.RequestCtx) (*account, bool) {
	h := ctx.Request.Header.Peek("Authorization")
	tok, ok := bytes.CutPrefix(h, []byte("Bearer "))
	if !ok || len(tok) == 0 {
		return nil, false
	}
	t, ok := s.tokens[string(tok)]
	if !ok || !s.now().Before(t.expires) {
		return nil, false
	}
	a := s.account(t.userID)
	return a, a != nil
}

// tenant checks the tenant header names an active business.
func (s *server) tenant(ctx *fasthttp.RequestCtx) bool {
	slug := string(ctx.Request.Header.Peek("X-Tenant-Slug"))
	for _, b := range s.businesses {
		if b.Slug != slug {
			continue
		}
		if b.Status != "active" {
			writeError(ctx, http.StatusForbidden, "This business has been suspended.", nil)
			return false
		}
		return true
	}
	writeError(ctx, http.StatusNotFound, "Unknown business.", nil)
	return false
}

func (s *server) account(id domain.ID) *account {
	for _, a := range s.accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (s *server) record(ctx *fasthttp.RequestCtx, who *account, action, desc string) {
	s.activity = append(s.activity, activityItem{
		ActivityLog: domain.ActivityLog{
			ID:          s.nextID(),
			Actor:       who.FullName(),
			Action:      action,
			Description: desc,
			IPAddress:   ctx.RemoteIP().String(),
			CreatedAt:   s.stamp(),
		},
		userID: who.ID,
	})
}

func (s *server) login(ctx *fasthttp.RequestCtx) {
	var c domain.Credentials
	if !decode(ctx, &c) {
		return
	}
	fields := map[string][]string{}
	if c.Email == "" {
		fields["email"] = []string{"The email field is required."}
	}
	if c.Password == "" {
		fields["password"] = []string{"The password field is required."}
	}
	if len(fields) > 0 {
		writeError(ctx, http.StatusUnprocessableEntity, "The given data was invalid.", fields)
		return
	}
	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, c.Email) && a.Password == c.Password {
			if a.Status != "active" && a.Status != "approved" {
				writeError(ctx, http.StatusForbidden, "Your account is "+a.Status+".", nil)
				return
			}
			tok := uuid.NewString()
			exp := s.now().Add(tokenTTL)
			s.tokens[tok] = token{userID: a.ID, expires: exp}
			s.record(ctx, a, "login", "Signed in")
			writeData(ctx, http.StatusOK, domain.AuthResult{
				Token:     tok,
				ExpiresAt: exp.UTC().Format(time.RFC3339),
				User:      a.Member,
			}, nil)
			return
		}
	}
	writeError(ctx, http.StatusUnauthorized, "Invalid credentials.", nil)
}

func (s *server) authRoutes(ctx *fasthttp.RequestCtx, method string, rest []string, me *account) {
	switch {
	case method == http.MethodPost && match(rest, "logout"):
		h := ctx.Request.Header.Peek("Authorization")
		delete(s.tokens, string(bytes.TrimPrefix(h, []byte("Bearer "))))
		writeMessage(ctx, "Logged out.")
	case method == http.MethodGet && match(rest, "me"):
		writeData(ctx, http.StatusOK, me.Member, nil)
	default:
		writeError(ctx, http.StatusNotFound, "Not found", nil)
	}
}

// match reports whether path segments equal want, "*" matching any one.
func match(parts []string, want ...string) bool {
	if len(parts) != len(want) {
		return false
	}
	for i, w := range want {
		if w != "*" && parts[i] != w {
			return false
		}
	}
	return true
}

func decode(ctx *fasthttp.RequestCtx, v any) bool {
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body.", nil)
		return false
	}
	return true
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, env envelope) {
	b, err := json.Marshal(env)
	if err != nil {
		ctx.Error(`{"success":false,"message":"encode failed"}`, http.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(b)
}

func writeData(ctx *fasthttp.RequestCtx, status int, data any, pg *domain.Pagination) {
	writeJSON(ctx, status, envelope{Success: true, Data: data, Pagination: pg})
}

func writeMessage(ctx *fasthttp.RequestCtx, msg string) {
	writeJSON(ctx, http.StatusOK, envelope{Success: true, Message: msg})
}

func writeError(ctx *fasthttp.RequestCtx, status int, msg string, fields map[string][]string) {
	writeJSON(ctx, status, envelope{Success: false, Message: msg, Errors: fields})
}

// page filters items by status and search text and slices out the
// requested page.
func page[T any](ctx *fasthttp.RequestCtx, items []T, status func(T) string, text func(T) string) ([]T, *domain.Pagination) {
	args := ctx.QueryArgs()
	want := strings.ToLower(string(args.Peek("status")))
	search := strings.ToLower(string(args.Peek("search")))

	filtered := make([]T, 0, len(items))
	for _, it := range items {
		if want != "" && status != nil && strings.ToLower(status(it)) != want {
			continue
		}
		if search != "" && text != nil && !strings.Contains(strings.ToLower(text(it)), search) {
			continue
		}
		filtered = append(filtered, it)
	}

	per := args.GetUintOrZero("per_page")
	if per <= 0 {
		per = defaultPerPage
	}
	cur := args.GetUintOrZero("page")
	if cur <= 0 {
		cur = 1
	}
	last := (len(filtered) + per - 1) / per
	if last == 0 {
		last = 1
	}
	from := (cur - 1) * per
	if from > len(filtered) {
		from = len(filtered)
	}
	to := min(from+per, len(filtered))
	return filtered[from:to], &domain.Pagination{
		CurrentPage: cur,
		PerPage:     per,
		Total:       len(filtered),
		LastPage:    last,
	}
}

// newestFirst sorts by a created_at accessor, latest first.
func newestFirst[T any](items []T, created func(T) string) {
	sort.SliceStable(items, func(i, j int) bool { return created(items[i]) > created(items[j]) })
}
