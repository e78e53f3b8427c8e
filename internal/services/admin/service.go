package admin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"coopdesk/internal/bulkupload"
	"coopdesk/internal/domain"
	"coopdesk/internal/services/resource"
)

const (
	pathMembers     = "/api/admin/members"
	pathLoans       = "/api/admin/loans"
	pathRoles       = "/api/admin/roles"
	pathRoleAssign  = "/api/admin/roles/assign"
	pathPermissions = "/api/admin/permissions"
	pathBranding    = "/api/admin/branding"
	pathActivity    = "/api/admin/activity-logs"
)

// maxUploadBytes caps the size of a bulk upload file.
const maxUploadBytes = 20 << 20

// PreviewRows is how many rows a preview keeps for display.
const PreviewRows = 20

var (
	// ErrReasonRequired is returned when rejecting without a reason.
	ErrReasonRequired = errors.New("a reason is required")
	// ErrFileTooLarge is returned for uploads over the size cap.
	ErrFileTooLarge = fmt.Errorf("file is larger than %d MiB", maxUploadBytes>>20)
)

var hexColour = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// PreviewError reports a file that failed the local check. The preview is
// attached so the caller can show every problem.
type PreviewError struct {
	Preview bulkupload.Preview
}

func (e *PreviewError) Error() string {
	return fmt.Sprintf("%s file has %d problem(s) on %d row(s); fix them or upload with --force",
		e.Preview.Kind, len(e.Preview.Errors), e.Preview.BadRows)
}

// Service implements domain.AdminService.
type Service struct {
	api domain.APIClient
}

// New returns an admin service.
func New(api domain.APIClient) *Service {
	return &Service{api: api}
}

// Members lists the tenant's members.
func (s *Service) Members(ctx context.Context, q domain.ListQuery) ([]domain.Member, *domain.Pagination, error) {
	return resource.List[domain.Member](ctx, s.api, pathMembers, q)
}

// ApproveMember approves a pending member and returns the refetched record.
func (s *Service) ApproveMember(ctx context.Context, id domain.ID) (domain.Member, error) {
	return s.memberAction(ctx, id, "approve", nil)
}

// RejectMember rejects a pending member with a reason.
func (s *Service) RejectMember(ctx context.Context, id domain.ID, reason string) (domain.Member, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.Member{}, ErrReasonRequired
	}
	return s.memberAction(ctx, id, "reject", domain.RejectRequest{Reason: reason})
}

func (s *Service) memberAction(ctx context.Context, id domain.ID, action string, body any) (domain.Member, error) {
	if _, err := s.api.Do(ctx, http.MethodPost, resource.ID(pathMembers, id, action), nil, body, nil); err != nil {
		return domain.Member{}, fmt.Errorf("%s member %s: %w", action, id, err)
	}
	m, err := resource.Get[domain.Member](ctx, s.api, resource.ID(pathMembers, id))
	if err != nil {
		return domain.Member{}, fmt.Errorf("refetch member %s: %w", id, err)
	}
	return m, nil
}

// DeleteMember removes a member.
func (s *Service) DeleteMember(ctx context.Context, id domain.ID) error {
	_, err := s.api.Do(ctx, http.MethodDelete, resource.ID(pathMembers, id), nil, nil, nil)
	return err
}

// Loans lists loan applications across the tenant.
func (s *Service) Loans(ctx context.Context, q domain.ListQuery) ([]domain.Loan, *domain.Pagination, error) {
	return resource.List[domain.Loan](ctx, s.api, pathLoans, q)
}

// ApproveLoan approves a loan application.
func (s *Service) ApproveLoan(ctx context.Context, id domain.ID) (domain.Loan, error) {
	return s.loanAction(ctx, id, "approve", nil)
}

// RejectLoan rejects a loan application with a reason.
func (s *Service) RejectLoan(ctx context.Context, id domain.ID, reason string) (domain.Loan, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.Loan{}, ErrReasonRequired
	}
	return s.loanAction(ctx, id, "reject", domain.RejectRequest{Reason: reason})
}

func (s *Service) loanAction(ctx context.Context, id domain.ID, action string, body any) (domain.Loan, error) {
	if _, err := s.api.Do(ctx, http.MethodPost, resource.ID(pathLoans, id, action), nil, body, nil); err != nil {
		return domain.Loan{}, fmt.Errorf("%s loan %s: %w", action, id, err)
	}
	l, err := resource.Get[domain.Loan](ctx, s.api, resource.ID(pathLoans, id))
	if err != nil {
		return domain.Loan{}, fmt.Errorf("refetch loan %s: %w", id, err)
	}
	return l, nil
}

// PreviewBulk checks a CSV file without uploading it.
func (s *Service) PreviewBulk(kind string, r io.Reader) (bulkupload.Preview, error) {
	return bulkupload.Parse(kind, r, PreviewRows)
}

// UploadBulk checks the file locally and uploads the original bytes. A
// file with problems is refused with a *PreviewError unless force is set.
func (s *Service) UploadBulk(ctx context.Context, kind, filename string, r io.Reader, force bool) (domain.BulkUploadResult, error) {
	schema, err := bulkupload.Lookup(kind)
	if err != nil {
		return domain.BulkUploadResult{}, err
	}
	raw, err := io.ReadAll(io.LimitReader(r, maxUploadBytes+1))
	if err != nil {
		return domain.BulkUploadResult{}, fmt.Errorf("read %s: %w", filename, err)
	}
	if len(raw) > maxUploadBytes {
		return domain.BulkUploadResult{}, ErrFileTooLarge
	}

	preview, err := schema.Parse(bytes.NewReader(raw), PreviewRows)
	if err != nil {
		return domain.BulkUploadResult{}, fmt.Errorf("check %s: %w", filename, err)
	}
	if !preview.Valid() && !force {
		return domain.BulkUploadResult{}, &PreviewError{Preview: preview}
	}

	var res domain.BulkUploadResult
	fields := map[string]string{"type": string(schema.Kind)}
	if err := s.api.Upload(ctx, schema.Endpoint(), "file", filename, bytes.NewReader(raw), fields, &res); err != nil {
		return domain.BulkUploadResult{}, fmt.Errorf("upload %s: %w", filename, err)
	}
	return res, nil
}

// Roles lists tenant roles.
func (s *Service) Roles(ctx context.Context) ([]domain.AccessRole, error) {
	return resource.All[domain.AccessRole](ctx, s.api, pathRoles)
}

// Permissions lists the permissions a role can be granted.
func (s *Service) Permissions(ctx context.Context) ([]domain.Permission, error) {
	return resource.All[domain.Permission](ctx, s.api, pathPermissions)
}

// CreateRole creates a role.
func (s *Service) CreateRole(ctx context.Context, req domain.RoleRequest) (domain.AccessRole, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return domain.AccessRole{}, errors.New("role name is required")
	}
	return resource.Send[domain.AccessRole](ctx, s.api, http.MethodPost, pathRoles, req)
}

// AssignRole grants a role to a user.
func (s *Service) AssignRole(ctx context.Context, req domain.RoleAssignment) error {
	if req.UserID == "" || req.RoleID == "" {
		return errors.New("user and role are required")
	}
	_, err := s.api.Do(ctx, http.MethodPost, pathRoleAssign, nil, req, nil)
	return err
}

// Branding returns the tenant's white-label settings.
func (s *Service) Branding(ctx context.Context) (domain.Branding, error) {
	return resource.Get[domain.Branding](ctx, s.api, pathBranding)
}

// UpdateBranding validates and saves branding, then returns it as
// refetched from the API.
func (s *Service) UpdateBranding(ctx context.Context, b domain.Branding) (domain.Branding, error) {
	if err := ValidateBranding(b); err != nil {
		return domain.Branding{}, err
	}
	if _, err := s.api.Do(ctx, http.MethodPut, pathBranding, nil, b, nil); err != nil {
		return domain.Branding{}, err
	}
	return s.Branding(ctx)
}

// ValidateBranding checks the fields the API would otherwise reject.
func ValidateBranding(b domain.Branding) error {
	var errs []error
	if strings.TrimSpace(b.CompanyName) == "" {
		errs = append(errs, errors.New("company name is required"))
	}
	for _, c := range []struct{ name, value string }{
		{"primary colour", b.PrimaryColor},
		{"secondary colour", b.SecondaryColor},
		{"accent colour", b.AccentColor},
	} {
		if c.value != "" && !hexColour.MatchString(c.value) {
			errs = append(errs, fmt.Errorf("%s %q is not a hex colour like #1a73e8", c.name, c.value))
		}
	}
	if b.SupportEmail != "" && !strings.Contains(b.SupportEmail, "@") {
		errs = append(errs, fmt.Errorf("support email %q is not an email address", b.SupportEmail))
	}
	return errors.Join(errs...)
}

// ActivityLogs lists the tenant audit log.
func (s *Service) ActivityLogs(ctx context.Context, q domain.ListQuery) ([]domain.ActivityLog, *domain.Pagination, error) {
	return resource.List[domain.ActivityLog](ctx, s.api, pathActivity, q)
}

// Compile-time assertion that Service implements domain.AdminService.
var _ domain.AdminService = (*Service)(nil)
