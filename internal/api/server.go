package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/jatana/gymdesk/internal/errs"
	"github.com/jatana/gymdesk/internal/models"
	"github.com/jatana/gymdesk/internal/service"
)

const (
	dateLayout     = "2006-01-02"
	maxUploadBytes = 10 << 20
)

// Server provides the HTTP API over the back-office services.
type Server struct {
	plans       *service.PlanService
	members     *service.MemberService
	memberships *service.MembershipService
	payments    *service.PaymentService
	documents   *service.DocumentService
	logger      *logrus.Logger
	mux         *http.ServeMux
}

// NewServer creates a Server, registers all routes, and returns it.
func NewServer(
	plans *service.PlanService,
	members *service.MemberService,
	memberships *service.MembershipService,
	payments *service.PaymentService,
	documents *service.DocumentService,
	logger *logrus.Logger,
) *Server {
	s := &Server{
		plans:       plans,
		members:     members,
		memberships: memberships,
		payments:    payments,
		documents:   documents,
		logger:      logger,
		mux:         http.NewServeMux(),
	}
	s.routes()
	return s
}

// Handler returns the http.Handler that can be passed to http.Server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ---------------------------------------------------------------------------
// Routes
// ---------------------------------------------------------------------------

func (s *Server) routes() {
	// API – Plans
	s.mux.HandleFunc("POST /api/plans", instrument("/api/plans", s.handleCreatePlan))
	s.mux.HandleFunc("GET /api/plans", instrument("/api/plans", s.handleListPlans))
	s.mux.HandleFunc("GET /api/plans/{id}", instrument("/api/plans/{id}", s.handleGetPlan))
	s.mux.HandleFunc("PUT /api/plans/{id}", instrument("/api/plans/{id}", s.handleUpdatePlan))
	s.mux.HandleFunc("DELETE /api/plans/{id}", instrument("/api/plans/{id}", s.handleDeletePlan))

	// API – Members
	s.mux.HandleFunc("POST /api/members", instrument("/api/members", s.handleCreateMember))
	s.mux.HandleFunc("GET /api/members", instrument("/api/members", s.handleListMembers))
	s.mux.HandleFunc("GET /api/members/ending", instrument("/api/members/ending", s.handleListMembersEndingBy))
	s.mux.HandleFunc("GET /api/members/{id}", instrument("/api/members/{id}", s.handleGetMember))
	s.mux.HandleFunc("PUT /api/members/{id}", instrument("/api/members/{id}", s.handleUpdateMember))
	s.mux.HandleFunc("PATCH /api/members/{id}/status", instrument("/api/members/{id}/status", s.handleUpdateMemberStatus))

	// API – Memberships and payments
	s.mux.HandleFunc("POST /api/members/{id}/memberships",
		instrument("/api/members/{id}/memberships", s.handleAddMembership))
	s.mux.HandleFunc("GET /api/members/{id}/memberships",
		instrument("/api/members/{id}/memberships", s.handleListMemberships))
	s.mux.HandleFunc("GET /api/members/{id}/memberships/{membershipID}",
		instrument("/api/members/{id}/memberships/{membershipID}", s.handleGetMembershipDetail))
	s.mux.HandleFunc("POST /api/members/{id}/memberships/{membershipID}/payments",
		instrument("/api/members/{id}/memberships/{membershipID}/payments", s.handleRecordPayment))

	// API – Documents
	s.mux.HandleFunc("POST /api/members/{id}/documents",
		instrument("/api/members/{id}/documents", s.handleUploadDocument))
	s.mux.HandleFunc("GET /api/members/{id}/documents",
		instrument("/api/members/{id}/documents", s.handleListDocuments))

	// Operational endpoints
	s.mux.Handle("GET /metrics", promhttp.Handler())
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.WithError(err).Error("failed to encode JSON response")
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps the service error taxonomy onto status
// codes. Unclassified errors never leak their message to the caller.
func (s *Server) respondServiceError(w http.ResponseWriter, operation string, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrAlreadyExists):
		s.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrInvalidArgument):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrStorageUnavailable):
		s.respondError(w, http.StatusServiceUnavailable, "document storage is unavailable")
	default:
		s.logger.WithError(err).Errorf("failed to %s", operation)
		s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to %s", operation))
	}
}

// decodeJSON reads the request body into dst and returns an error message on
// failure.  The caller should return immediately when ok == false.
func (s *Server) decodeJSON(r *http.Request, dst any) (ok bool, errMsg string) {
	if r.Body == nil {
		return false, "request body is empty"
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return false, fmt.Sprintf("invalid JSON: %v", err)
	}
	return true, ""
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

func parseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---------------------------------------------------------------------------
// Plans
// ---------------------------------------------------------------------------

type planRequest struct {
	PlanName       string  `json:"plan_name"`
	DurationMonths int     `json:"duration_months"`
	Price          float64 `json:"price"`
	Description    string  `json:"description"`
}

func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	if strings.TrimSpace(req.PlanName) == "" {
		s.respondError(w, http.StatusBadRequest, "plan_name is required")
		return
	}

	plan, err := s.plans.CreatePlan(r.Context(), service.PlanInput{
		PlanName:       req.PlanName,
		DurationMonths: req.DurationMonths,
		Price:          req.Price,
		Description:    req.Description,
	})
	if err != nil {
		s.respondServiceError(w, "create plan", err)
		return
	}
	s.respondJSON(w, http.StatusCreated, plan)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.plans.ListPlans(r.Context())
	if err != nil {
		s.respondServiceError(w, "list plans", err)
		return
	}
	s.respondJSON(w, http.StatusOK, plans)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.plans.GetPlan(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, "get plan", err)
		return
	}
	s.respondJSON(w, http.StatusOK, plan)
}

func (s *Server) handleUpdatePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	// The path id is the plan name; ignore any divergent body value.
	plan, err := s.plans.UpdatePlan(r.Context(), service.PlanInput{
		PlanName:       r.PathValue("id"),
		DurationMonths: req.DurationMonths,
		Price:          req.Price,
		Description:    req.Description,
	})
	if err != nil {
		s.respondServiceError(w, "update plan", err)
		return
	}
	s.respondJSON(w, http.StatusOK, plan)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := s.plans.DeletePlan(r.Context(), r.PathValue("id")); err != nil {
		s.respondServiceError(w, "delete plan", err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}

// ---------------------------------------------------------------------------
// Members
// ---------------------------------------------------------------------------

type createMemberRequest struct {
	MemberID    string `json:"member_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD, optional
	Gender      string `json:"gender"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

type updateMemberRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD, optional
	Gender      string `json:"gender"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

type updateMemberStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	if strings.TrimSpace(req.MemberID) == "" {
		s.respondError(w, http.StatusBadRequest, "member_id is required")
		return
	}
	dob, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
		return
	}

	member, err := s.members.CreateMember(r.Context(), service.MemberInput{
		MemberID:    strings.TrimSpace(req.MemberID),
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		DateOfBirth: dob,
		Gender:      models.Gender(strings.ToUpper(req.Gender)),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Email:       strings.TrimSpace(req.Email),
		Address:     strings.TrimSpace(req.Address),
	})
	if err != nil {
		s.respondServiceError(w, "create member", err)
		return
	}
	s.respondJSON(w, http.StatusCreated, member)
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	summaries, err := s.members.ListMembers(r.Context(), q.Get("filter"), q.Get("searchKey"))
	if err != nil {
		s.respondServiceError(w, "list members", err)
		return
	}
	s.respondJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleListMembersEndingBy(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("by")
	if raw == "" {
		s.respondError(w, http.StatusBadRequest, "by query parameter is required")
		return
	}
	date, err := parseDate(raw)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "by must be YYYY-MM-DD")
		return
	}

	summaries, err := s.members.ListMembersEndingBy(r.Context(), date)
	if err != nil {
		s.respondServiceError(w, "list members by end date", err)
		return
	}
	s.respondJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetMember(w http.ResponseWriter, r *http.Request) {
	member, err := s.members.GetMember(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, "get member", err)
		return
	}
	s.respondJSON(w, http.StatusOK, member)
}

func (s *Server) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	var req updateMemberRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	dob, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
		return
	}

	member, err := s.members.UpdateMember(r.Context(), r.PathValue("id"), service.MemberUpdateInput{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		DateOfBirth: dob,
		Gender:      models.Gender(strings.ToUpper(req.Gender)),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Email:       strings.TrimSpace(req.Email),
		Address:     strings.TrimSpace(req.Address),
	})
	if err != nil {
		s.respondServiceError(w, "update member", err)
		return
	}
	s.respondJSON(w, http.StatusOK, member)
}

func (s *Server) handleUpdateMemberStatus(w http.ResponseWriter, r *http.Request) {
	var req updateMemberStatusRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	member, err := s.members.UpdateMemberStatus(r.Context(), r.PathValue("id"),
		models.MemberStatus(strings.ToUpper(req.Status)))
	if err != nil {
		s.respondServiceError(w, "update member status", err)
		return
	}
	s.respondJSON(w, http.StatusOK, member)
}

// ---------------------------------------------------------------------------
// Memberships and payments
// ---------------------------------------------------------------------------

type membershipRequest struct {
	PlanID          string  `json:"plan_id"`
	StartDate       string  `json:"start_date"` // YYYY-MM-DD
	EndDate         string  `json:"end_date"`   // YYYY-MM-DD
	PricePaid       float64 `json:"price_paid"`
	PaymentDateTime string  `json:"payment_date_time"` // RFC 3339
	PaymentMethod   string  `json:"payment_method"`
	TransactionID   string  `json:"transaction_id"`
}

type paymentRequest struct {
	Amount          float64 `json:"amount"`
	PaymentDateTime string  `json:"payment_date_time"` // RFC 3339
	Method          string  `json:"payment_method"`
	TransactionID   string  `json:"transaction_id"`
	ReceiptURL      string  `json:"receipt_url"`
}

func (s *Server) handleAddMembership(w http.ResponseWriter, r *http.Request) {
	var req membershipRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	if strings.TrimSpace(req.PlanID) == "" {
		s.respondError(w, http.StatusBadRequest, "plan_id is required")
		return
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
		return
	}
	paymentTime, err := time.Parse(time.RFC3339, req.PaymentDateTime)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "payment_date_time must be RFC 3339 format")
		return
	}

	membership, err := s.memberships.AddMembership(r.Context(), r.PathValue("id"), service.MembershipInput{
		PlanID:          req.PlanID,
		StartDate:       startDate,
		EndDate:         endDate,
		PricePaid:       req.PricePaid,
		PaymentDateTime: paymentTime,
		PaymentMethod:   models.PaymentMethod(strings.ToUpper(req.PaymentMethod)),
		TransactionID:   req.TransactionID,
	})
	if err != nil {
		s.respondServiceError(w, "create membership", err)
		return
	}
	s.respondJSON(w, http.StatusCreated, membership)
}

func (s *Server) handleListMemberships(w http.ResponseWriter, r *http.Request) {
	memberships, err := s.memberships.ListMembershipsForMember(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, "list memberships", err)
		return
	}
	s.respondJSON(w, http.StatusOK, memberships)
}

func (s *Server) handleGetMembershipDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.memberships.GetMembershipDetail(r.Context(),
		r.PathValue("id"), r.PathValue("membershipID"))
	if err != nil {
		s.respondServiceError(w, "get membership", err)
		return
	}
	s.respondJSON(w, http.StatusOK, detail)
}

func (s *Server) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	paymentTime, err := time.Parse(time.RFC3339, req.PaymentDateTime)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "payment_date_time must be RFC 3339 format")
		return
	}

	// The membership lookup inside the service also covers the member
	// path segment: a mismatched pair surfaces as not found below.
	detail, err := s.memberships.GetMembershipDetail(r.Context(),
		r.PathValue("id"), r.PathValue("membershipID"))
	if err != nil {
		s.respondServiceError(w, "record payment", err)
		return
	}

	payment, err := s.payments.RecordPayment(r.Context(), detail.Membership.MembershipID, service.PaymentInput{
		Amount:          req.Amount,
		PaymentDateTime: paymentTime,
		Method:          models.PaymentMethod(strings.ToUpper(req.Method)),
		TransactionID:   req.TransactionID,
		ReceiptURL:      req.ReceiptURL,
	})
	if err != nil {
		s.respondServiceError(w, "record payment", err)
		return
	}
	s.respondJSON(w, http.StatusCreated, payment)
}

// ---------------------------------------------------------------------------
// Documents
// ---------------------------------------------------------------------------

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	docType := strings.ToUpper(r.FormValue("doc_type"))
	if docType == "" {
		s.respondError(w, http.StatusBadRequest, "doc_type form field is required")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "file form field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	doc, err := s.documents.Upload(r.Context(), r.PathValue("id"), models.DocumentType(docType), data)
	if err != nil {
		s.respondServiceError(w, "upload document", err)
		return
	}
	s.respondJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.documents.ListForMember(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondServiceError(w, "list documents", err)
		return
	}
	s.respondJSON(w, http.StatusOK, docs)
}
