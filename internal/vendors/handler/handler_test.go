package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	enrichModels "bloodhound/internal/enrichment/models"
	"bloodhound/internal/registry"
	"bloodhound/internal/risk"
	"bloodhound/internal/vendors"
	"bloodhound/internal/vendors/handler/mocks"
	id "bloodhound/pkg/domain"
	dErrors "bloodhound/pkg/domain-errors"
	"bloodhound/pkg/requestcontext"
	"bloodhound/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/vendor-mocks.go -package=mocks Service
type VendorHandlerSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *VendorHandlerSuite) SetupSuite() {
	s.ctx = context.Background()
}

func TestVendorHandlerSuite(t *testing.T) {
	suite.Run(t, new(VendorHandlerSuite))
}

func newTestHandler(t *testing.T) (*Handler, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(mockService, logger), mockService
}

func newRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func sampleAssessment() *vendor.Assessment {
	return &vendor.Assessment{
		VendorID: id.NewVendorID(),
		GSTIN:    "27ABCDE1234F1Z5",
		PAN:      "ABCDE1234F",
		Score:    45,
		Tier:     risk.TierMedium,
		Factors:  []string{"🏢 High-risk address type: Rented Room"},
		Actions:  []string{"✅ Continue monitoring vendor compliance"},
		Breaches: []string{},
		Inputs:   risk.Inputs{ITCAmount: 1200000},
		Sources: map[registry.Source]enrichModels.SourceOutcome{
			registry.SourceGSTN:  {OK: true},
			registry.SourceMCA:   {OK: true},
			registry.SourceIBBI:  {OK: true},
			registry.SourceUdyam: {OK: false, FailureKind: registry.FetchUnreachable},
		},
		Degraded:    true,
		EvaluatedAt: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
	}
}

func (s *VendorHandlerSuite) TestHandleEvaluate() {
	handler, mockService := newTestHandler(s.T())
	assessment := sampleAssessment()
	mockService.EXPECT().Evaluate(gomock.Any(), vendor.EvaluateRequest{
		GSTIN: "27ABCDE1234F1Z5",
		Name:  "Acme Traders",
		Aggregates: vendor.Aggregates{
			AddressType:      "Rented Room",
			TransactionCount: 8,
			ITCAmount:        1200000,
			CashPayments:     5000,
		},
	}).Return(assessment, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/vendors/evaluate", EvaluateRequest{
		GSTIN:            "27abcde1234f1z5",
		Name:             "Acme Traders",
		AddressType:      "Rented Room",
		TransactionCount: 8,
		ITCAmount:        1200000,
		CashPayments:     5000,
	})
	req = req.WithContext(testutil.AuthenticatedContext(s.T(), requestcontext.RoleAccountant))

	rr := testutil.DoRequest(http.HandlerFunc(handler.HandleEvaluate), req)

	testutil.AssertStatusOK(s.T(), rr)
	resp := testutil.UnmarshalResponse[AssessmentResponse](s.T(), rr)
	assert.Equal(s.T(), assessment.VendorID.String(), resp.VendorID)
	assert.Equal(s.T(), "27ABCDE1234F1Z5", resp.GSTIN)
	assert.Equal(s.T(), "ABCDE1234F", resp.PAN)
	assert.Equal(s.T(), 45, resp.RiskScore)
	assert.Equal(s.T(), "Medium Risk", resp.RiskTier)
	assert.Equal(s.T(), "₹12.00 L", resp.ITCExposure)
	assert.True(s.T(), resp.Degraded)
	require.Contains(s.T(), resp.Sources, "udyam")
	assert.False(s.T(), resp.Sources["udyam"].OK)
	assert.Equal(s.T(), "unreachable", resp.Sources["udyam"].FailureKind)
}

func (s *VendorHandlerSuite) TestHandleEvaluate_Unauthenticated() {
	handler, _ := newTestHandler(s.T())

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/vendors/evaluate", EvaluateRequest{
		GSTIN: "27ABCDE1234F1Z5",
	})

	rr := testutil.DoRequest(http.HandlerFunc(handler.HandleEvaluate), req)

	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, string(dErrors.CodeUnauthorized))
}

func (s *VendorHandlerSuite) TestHandleEvaluate_InvalidGSTIN() {
	handler, _ := newTestHandler(s.T())

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/vendors/evaluate", EvaluateRequest{
		GSTIN: "too-short",
		Name:  "Acme Traders",
	})
	req = req.WithContext(testutil.AuthenticatedContext(s.T(), requestcontext.RoleAccountant))

	rr := testutil.DoRequest(http.HandlerFunc(handler.HandleEvaluate), req)

	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeValidation))
}

func (s *VendorHandlerSuite) TestHandleEvaluate_MalformedBody() {
	handler, _ := newTestHandler(s.T())

	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/vendors/evaluate", "{not json")
	req = req.WithContext(testutil.AuthenticatedContext(s.T(), requestcontext.RoleAccountant))

	rr := testutil.DoRequest(http.HandlerFunc(handler.HandleEvaluate), req)

	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
}

func (s *VendorHandlerSuite) TestHandleEvaluate_ServiceError() {
	handler, mockService := newTestHandler(s.T())
	mockService.EXPECT().Evaluate(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeTimeout, "registry lookups timed out"))

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/vendors/evaluate", EvaluateRequest{
		GSTIN: "27ABCDE1234F1Z5",
	})
	req = req.WithContext(testutil.AuthenticatedContext(s.T(), requestcontext.RoleAccountant))

	rr := testutil.DoRequest(http.HandlerFunc(handler.HandleEvaluate), req)

	testutil.AssertStatusAndError(s.T(), rr, http.StatusGatewayTimeout, string(dErrors.CodeTimeout))
}

func (s *VendorHandlerSuite) TestHandleList() {
	handler, mockService := newTestHandler(s.T())
	analyzedAt := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	mockService.EXPECT().List(gomock.Any()).Return([]vendor.Vendor{
		{
			ID:             id.NewVendorID(),
			Name:           "Risky Traders",
			GSTIN:          "27ABCDE1234F1Z5",
			PAN:            "ABCDE1234F",
			RiskScore:      95,
			RiskTier:       risk.TierCritical,
			ITCAmount:      25000000,
			Watchlisted:    true,
			LastAnalyzedAt: analyzedAt,
		},
		{
			ID:             id.NewVendorID(),
			Name:           "Steady Supplies",
			GSTIN:          "29FGHIJ5678K1Z3",
			PAN:            "FGHIJ5678K",
			RiskScore:      10,
			RiskTier:       risk.TierLow,
			ITCAmount:      40000,
			LastAnalyzedAt: analyzedAt,
		},
	}, nil)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/vendors")
	req = req.WithContext(testutil.AuthenticatedContext(s.T(), requestcontext.RoleClient))

	rr := testutil.DoRequest(http.HandlerFunc(handler.HandleList), req)

	testutil.AssertStatusOK(s.T(), rr)
	resp := testutil.UnmarshalResponse[ListResponse](s.T(), rr)
	require.Len(s.T(), resp.Vendors, 2)
	assert.Equal(s.T(), "Risky Traders", resp.Vendors[0].Name)
	assert.Equal(s.T(), "Critical", resp.Vendors[0].RiskTier)
	assert.Equal(s.T(), "₹2.50 Cr", resp.Vendors[0].ITCExposure)
	assert.True(s.T(), resp.Vendors[0].Watchlisted)
	assert.Equal(s.T(), "₹40.00 K", resp.Vendors[1].ITCExposure)
}

func (s *VendorHandlerSuite) TestHandleList_Unauthenticated() {
	handler, _ := newTestHandler(s.T())

	req := testutil.NewRequest(s.T(), http.MethodGet, "/vendors")
	rr := testutil.DoRequest(http.HandlerFunc(handler.HandleList), req)

	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, string(dErrors.CodeUnauthorized))
}

func (s *VendorHandlerSuite) TestHandleWatchlist() {
	handler, mockService := newTestHandler(s.T())
	vendorID := id.NewVendorID()
	mockService.EXPECT().SetWatchlist(gomock.Any(), vendorID, true).Return(nil)

	router := newRouter(handler)
	req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/vendors/"+vendorID.String()+"/watchlist", WatchlistRequest{Watchlisted: true})
	req = req.WithContext(testutil.AuthenticatedContext(s.T(), requestcontext.RoleAccountant))

	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
}

func (s *VendorHandlerSuite) TestHandleWatchlist_UnknownVendor() {
	handler, mockService := newTestHandler(s.T())
	vendorID := id.NewVendorID()
	mockService.EXPECT().SetWatchlist(gomock.Any(), vendorID, false).
		Return(dErrors.New(dErrors.CodeNotFound, "vendor not found"))

	router := newRouter(handler)
	req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/vendors/"+vendorID.String()+"/watchlist", WatchlistRequest{Watchlisted: false})
	req = req.WithContext(testutil.AuthenticatedContext(s.T(), requestcontext.RoleAccountant))

	rr := testutil.DoRequest(router, req)

	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))
}

func (s *VendorHandlerSuite) TestHandleWatchlist_BadVendorID() {
	handler, _ := newTestHandler(s.T())

	router := newRouter(handler)
	req := testutil.NewJSONRequest(s.T(), http.MethodPut, "/vendors/not-a-uuid/watchlist", WatchlistRequest{Watchlisted: true})
	req = req.WithContext(testutil.AuthenticatedContext(s.T(), requestcontext.RoleAccountant))

	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
}
