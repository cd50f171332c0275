package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/services"
	"gearguard/pkg/config"
	"gearguard/pkg/constants"
	"gearguard/pkg/customvalidator"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

var testUsers = map[string]entities.User{
	"admin-token":      {ID: "u-admin", Name: "Admin", Email: "admin@gearguard.dev", Role: constants.RoleAdmin},
	"technician-token": {ID: "u-tech", Name: "Tech", Email: "tech@gearguard.dev", Role: constants.RoleTechnician},
}

type stubAuthService struct {
	services.AuthServiceInterface
}

func (s *stubAuthService) Authenticate(_ context.Context, token string) (*entities.User, error) {
	u, ok := testUsers[token]
	if !ok {
		return nil, apperrors.NewUnauthenticatedError("Invalid token", apperrors.ErrInvalidToken)
	}
	return &u, nil
}

func (s *stubAuthService) Login(_ context.Context, payload dto.LoginDTO) (*dto.TokenDTO, error) {
	if payload.Password != "secret123" {
		return nil, apperrors.NewUnauthenticatedError("Invalid email or password", apperrors.ErrInvalidCredentials)
	}
	u := testUsers["admin-token"]
	return &dto.TokenDTO{AccessToken: "admin-token", TokenType: "bearer", User: dto.NewUserOut(&u)}, nil
}

func (s *stubAuthService) Me(ctx context.Context) (*dto.UserOutDTO, error) {
	id, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range testUsers {
		if u.ID == id {
			out := dto.NewUserOut(&u)
			return &out, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

type stubEquipmentService struct {
	services.EquipmentServiceInterface
	created int
	deleted []string
}

func (s *stubEquipmentService) FindPublicEquipment(_ context.Context, id string) (*dto.EquipmentOutDTO, error) {
	if id != "eq-1" {
		return nil, apperrors.NewNotFoundError("Equipment not found")
	}
	return &dto.EquipmentOutDTO{ID: "eq-1", Name: "Lathe"}, nil
}

func (s *stubEquipmentService) GetEquipments(_ context.Context, _ types.EquipmentFilter) ([]dto.EquipmentOutDTO, error) {
	return []dto.EquipmentOutDTO{{ID: "eq-1", Name: "Lathe"}}, nil
}

func (s *stubEquipmentService) CreateEquipment(_ context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentOutDTO, error) {
	s.created++
	return &dto.EquipmentOutDTO{ID: "eq-new", Name: payload.Name}, nil
}

func (s *stubEquipmentService) DeleteEquipment(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubRequestService struct {
	services.RequestServiceInterface
}

func (s *stubRequestService) GetRequests(_ context.Context, _ types.RequestFilter) ([]dto.RequestOutDTO, error) {
	return []dto.RequestOutDTO{}, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type RouterTestSuite struct {
	suite.Suite
	echo      *echo.Echo
	equipment *stubEquipmentService
	pinger    *fakePinger
}

func (s *RouterTestSuite) SetupTest() {
	e := echo.New()
	v := validator.New()
	s.Require().NoError(customvalidator.RegisterCustomValidations(v))
	e.Validator = utils.NewValidator(v)

	nopLogger := zap.NewNop()
	loggers := &Loggers{Main: nopLogger, Auth: nopLogger, User: nopLogger, Equipment: nopLogger, Request: nopLogger, Report: nopLogger}

	cfg := config.FromEnv()
	cfg.App.RateLimit = 0
	cfg.App.RequestTimeout = time.Second
	cfg.App.FrontendBaseURL = "http://scan.test"

	s.equipment = &stubEquipmentService{}
	s.pinger = &fakePinger{}
	RegisterRoutes(e, Services{
		Auth:      &stubAuthService{},
		Equipment: s.equipment,
		Request:   &stubRequestService{},
	}, s.pinger, loggers, cfg)
	s.echo = e
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/v1"+path, bytes.NewReader([]byte(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) decodeError(rec *httptest.ResponseRecorder) utils.HttpResponse {
	var resp utils.HttpResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (s *RouterTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "", "")
	s.Equal(http.StatusOK, rec.Code)

	s.pinger.err = errors.New("down")
	rec = s.do(http.MethodGet, "/health", "", "")
	s.Equal(http.StatusServiceUnavailable, rec.Code)
}

func (s *RouterTestSuite) TestLoginThenMe() {
	rec := s.do(http.MethodPost, "/auth/login", "", `{"email":"admin@gearguard.dev","password":"secret123"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	var token dto.TokenDTO
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &token))
	s.Equal("bearer", token.TokenType)

	rec = s.do(http.MethodGet, "/auth/me", token.AccessToken, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var me dto.UserOutDTO
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &me))
	s.Equal(token.User.ID, me.ID)
}

func (s *RouterTestSuite) TestLoginValidationEnvelope() {
	rec := s.do(http.MethodPost, "/auth/login", "", `{"email":"not-an-email"}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	resp := s.decodeError(rec)
	s.False(resp.Status)
	s.Equal("Validation failed", resp.Message)
	s.Contains(resp.Details, "email")
	s.Contains(resp.Details, "password")
}

func (s *RouterTestSuite) TestProtectedRoutesNeedValidToken() {
	for _, token := range []string{"", "garbage"} {
		rec := s.do(http.MethodGet, "/requests", token, "")
		s.Equal(http.StatusUnauthorized, rec.Code, "token %q", token)
		s.False(s.decodeError(rec).Status)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests", nil)
	req.Header.Set(echo.HeaderAuthorization, "Token admin-token")
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/requests", "technician-token", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())
}

func (s *RouterTestSuite) TestRoleGateOnEquipmentCreate() {
	body := `{"name":"Drill","serialNumber":"SN-9","category":"Tools","department":"Shop","ownerEmployeeName":"Lee",
		"purchaseDate":"2024-01-01","warrantyExpiry":"2026-01-01","location":"Bay 1","maintenanceTeamId":"t-1","defaultTechnicianId":"u-1"}`

	rec := s.do(http.MethodPost, "/equipment", "technician-token", body)
	s.Equal(http.StatusForbidden, rec.Code)
	s.Zero(s.equipment.created)

	rec = s.do(http.MethodPost, "/equipment", "admin-token", body)
	s.Equal(http.StatusCreated, rec.Code)
	s.Equal(1, s.equipment.created)
}

func (s *RouterTestSuite) TestEquipmentCreateRejectsBadDate() {
	body := `{"name":"Drill","serialNumber":"SN-9","category":"Tools","department":"Shop","ownerEmployeeName":"Lee",
		"purchaseDate":"01/02/2024","warrantyExpiry":"2026-01-01","location":"Bay 1","maintenanceTeamId":"t-1","defaultTechnicianId":"u-1"}`

	rec := s.do(http.MethodPost, "/equipment", "admin-token", body)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(s.decodeError(rec).Details, "purchaseDate")
}

func (s *RouterTestSuite) TestDeleteReturnsOk() {
	rec := s.do(http.MethodDelete, "/equipment/eq-1", "admin-token", "")
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"ok":true}`, rec.Body.String())
	s.Equal([]string{"eq-1"}, s.equipment.deleted)
}

func (s *RouterTestSuite) TestPublicEquipmentWithoutAuth() {
	rec := s.do(http.MethodGet, "/public/equipment/eq-1", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"name":"Lathe"`)

	rec = s.do(http.MethodGet, "/public/equipment/missing", "", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *RouterTestSuite) TestPublicQR() {
	for _, mode := range []string{"", "link", "json"} {
		rec := s.do(http.MethodGet, "/public/equipment/eq-1/qr?mode="+mode, "", "")
		s.Equal(http.StatusOK, rec.Code, "mode %q", mode)
		s.Equal("image/png", rec.Header().Get(echo.HeaderContentType))
		s.True(strings.HasPrefix(rec.Body.String(), "\x89PNG"))
	}

	rec := s.do(http.MethodGet, "/public/equipment/eq-1/qr?mode=svg", "", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *RouterTestSuite) TestBlankTextRejectedByValidation() {
	body := `{"name":"   ","serialNumber":"SN-9","category":"Tools","department":"Shop","ownerEmployeeName":"Lee",
		"purchaseDate":"2024-01-01","warrantyExpiry":"2026-01-01","location":"Bay 1","maintenanceTeamId":"t-1","defaultTechnicianId":"u-1"}`
	rec := s.do(http.MethodPost, "/equipment", "admin-token", body)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(s.decodeError(rec).Details, "name")
	s.Zero(s.equipment.created)

	rec = s.do(http.MethodPut, "/users/u-tech", "admin-token", `{"name":"   "}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(s.decodeError(rec).Details, "name")

	rec = s.do(http.MethodPut, "/requests/req-1", "technician-token", `{"subject":" "}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(s.decodeError(rec).Details, "subject")
}
