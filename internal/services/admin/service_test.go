package admin_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coopdesk/internal/domain"
	"coopdesk/internal/services/admin"
	"coopdesk/internal/services/servicetest"
)

const goodContributions = "member_id,amount,type,date\nM001,5000,monthly,2024-01-31\nM002,\"12,500.00\",monthly,2024-01-31\n"

func TestApproveMember_PostsThenRefetches(t *testing.T) {
	fake := servicetest.New().
		On(http.MethodPost, "/api/admin/members/12/approve", nil).
		On(http.MethodGet, "/api/admin/members/12", map[string]any{"id": 12, "first_name": "Ada", "status": "approved"})

	m, err := admin.New(fake).ApproveMember(context.Background(), "12")
	require.NoError(t, err)
	assert.Equal(t, "approved", m.Status)
	assert.Equal(t, domain.ID("12"), m.ID)

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Nil(t, calls[0].Body)
}

func TestRejectMember_RequiresReason(t *testing.T) {
	fake := servicetest.New()
	_, err := admin.New(fake).RejectMember(context.Background(), "12", "  ")
	assert.ErrorIs(t, err, admin.ErrReasonRequired)
	assert.Empty(t, fake.Calls())
}

func TestRejectLoan_SendsReason(t *testing.T) {
	fake := servicetest.New().
		On(http.MethodPost, "/api/admin/loans/4/reject", nil).
		On(http.MethodGet, "/api/admin/loans/4", map[string]any{"id": 4, "status": "rejected"})

	l, err := admin.New(fake).RejectLoan(context.Background(), "4", "insufficient savings")
	require.NoError(t, err)
	assert.Equal(t, "rejected", l.Status)
	assert.Equal(t, domain.RejectRequest{Reason: "insufficient savings"}, fake.Calls()[0].Body)
}

func TestApproveLoan_FailureSkipsRefetch(t *testing.T) {
	fake := servicetest.New().Fail(http.MethodPost, "/api/admin/loans/4/approve", errors.New("offline"))
	_, err := admin.New(fake).ApproveLoan(context.Background(), "4")
	require.Error(t, err)
	assert.Len(t, fake.Calls(), 1)
}

func TestUploadBulk_SendsOriginalBytes(t *testing.T) {
	fake := servicetest.New().On(http.MethodPost, "/api/admin/bulk-upload/contributions",
		map[string]any{"batch_id": "b-1", "processed": 2, "failed": 0})

	res, err := admin.New(fake).UploadBulk(context.Background(), "contributions", "jan.csv",
		strings.NewReader(goodContributions), false)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Processed)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, goodContributions, calls[0].File)
	assert.Equal(t, "file", calls[0].Field)
	assert.Equal(t, "jan.csv", calls[0].Filename)
	assert.Equal(t, map[string]string{"type": "contributions"}, calls[0].Fields)
}

func TestUploadBulk_RefusesInvalidUnlessForced(t *testing.T) {
	bad := "member_id,loan_id,principal,interest,total,date\nM1,L1,100,10,120,2024-01-01\n"
	path := "/api/admin/bulk-upload/loan-repayments"

	fake := servicetest.New().On(http.MethodPost, path, map[string]any{"processed": 0, "failed": 1})
	svc := admin.New(fake)

	_, err := svc.UploadBulk(context.Background(), "loan-repayments", "r.csv", strings.NewReader(bad), false)
	var pe *admin.PreviewError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Preview.BadRows)
	assert.Contains(t, err.Error(), "--force")
	assert.Empty(t, fake.Calls())

	res, err := svc.UploadBulk(context.Background(), "loan-repayments", "r.csv", strings.NewReader(bad), true)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.True(t, fake.Called(http.MethodPost, path))
}

func TestUploadBulk_UnknownKind(t *testing.T) {
	_, err := admin.New(servicetest.New()).UploadBulk(context.Background(), "shares", "x.csv", strings.NewReader(""), true)
	assert.Error(t, err)
}

func TestPreviewBulk(t *testing.T) {
	p, err := admin.New(servicetest.New()).PreviewBulk("contributions", strings.NewReader(goodContributions))
	require.NoError(t, err)
	assert.True(t, p.Valid())
	assert.Equal(t, 2, p.TotalRows)
}

func TestValidateBranding(t *testing.T) {
	ok := domain.Branding{CompanyName: "Acme Housing", PrimaryColor: "#1a73e8", SecondaryColor: "#fff"}
	assert.NoError(t, admin.ValidateBranding(ok))

	bad := ok
	bad.CompanyName = ""
	bad.PrimaryColor = "blue"
	bad.SupportEmail = "nobody"
	err := admin.ValidateBranding(bad)
	require.Error(t, err)
	for _, want := range []string{"company name", "primary colour", "support email"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestUpdateBranding_RefetchesAfterPut(t *testing.T) {
	fake := servicetest.New().
		On(http.MethodPut, "/api/admin/branding", nil).
		On(http.MethodGet, "/api/admin/branding", map[string]any{"company_name": "Acme", "primary_color": "#000000"})

	b, err := admin.New(fake).UpdateBranding(context.Background(), domain.Branding{CompanyName: "Acme", PrimaryColor: "#000000"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", b.CompanyName)
	assert.Len(t, fake.Calls(), 2)
}

func TestAssignRole_Validation(t *testing.T) {
	fake := servicetest.New().On(http.MethodPost, "/api/admin/roles/assign", nil)
	svc := admin.New(fake)
	assert.Error(t, svc.AssignRole(context.Background(), domain.RoleAssignment{UserID: "1"}))
	assert.NoError(t, svc.AssignRole(context.Background(), domain.RoleAssignment{UserID: "1", RoleID: "2"}))
}
