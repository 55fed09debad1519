package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "bilanz/internal/errors"
	"bilanz/internal/models"
	"bilanz/internal/pagination"
	"bilanz/internal/services"
)

type mockModelService struct {
	createModelFn   func(userID uint, partnerID *uint, productCategory *string, analyticalAccountID uint, status models.ModelStatus) (*models.AutoAnalyticalModel, error)
	getUserModelsFn func(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.AutoAnalyticalModel], error)
	updateModelFn   func(userID, modelID uint, partnerID *uint, productCategory *string, analyticalAccountID uint, status models.ModelStatus) (*models.AutoAnalyticalModel, error)
	deleteModelFn   func(userID, modelID uint) error
	matchFn         func(userID uint, partnerID *uint, productCategory *string) (*services.ModelMatch, error)
}

func (m *mockModelService) CreateModel(userID uint, partnerID *uint, productCategory *string, analyticalAccountID uint, status models.ModelStatus) (*models.AutoAnalyticalModel, error) {
	if m.createModelFn != nil {
		return m.createModelFn(userID, partnerID, productCategory, analyticalAccountID, status)
	}
	return &models.AutoAnalyticalModel{}, nil
}

func (m *mockModelService) GetUserModels(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.AutoAnalyticalModel], error) {
	if m.getUserModelsFn != nil {
		return m.getUserModelsFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.AutoAnalyticalModel{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockModelService) UpdateModel(userID, modelID uint, partnerID *uint, productCategory *string, analyticalAccountID uint, status models.ModelStatus) (*models.AutoAnalyticalModel, error) {
	if m.updateModelFn != nil {
		return m.updateModelFn(userID, modelID, partnerID, productCategory, analyticalAccountID, status)
	}
	return &models.AutoAnalyticalModel{}, nil
}

func (m *mockModelService) DeleteModel(userID, modelID uint) error {
	if m.deleteModelFn != nil {
		return m.deleteModelFn(userID, modelID)
	}
	return nil
}

func (m *mockModelService) Match(userID uint, partnerID *uint, productCategory *string) (*services.ModelMatch, error) {
	if m.matchFn != nil {
		return m.matchFn(userID, partnerID, productCategory)
	}
	return nil, nil
}

func setupModelRouter(handler *ModelHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("/auto-analytical-models", injectUserID(1))
	g.POST("", handler.CreateModel)
	g.GET("", handler.GetModels)
	g.GET("/match", handler.Match)
	g.PUT("/:id", handler.UpdateModel)
	g.DELETE("/:id", handler.DeleteModel)
	return r
}

func TestModelHandler_CreateModel(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockModelService{
			createModelFn: func(userID uint, partnerID *uint, _ *string, analyticalAccountID uint, _ models.ModelStatus) (*models.AutoAnalyticalModel, error) {
				if partnerID == nil || *partnerID != 9 {
					t.Errorf("expected partner 9, got %v", partnerID)
				}
				return &models.AutoAnalyticalModel{Base: models.Base{ID: 2}, UserID: userID, AnalyticalAccountID: analyticalAccountID}, nil
			},
		}
		handler := NewModelHandler(svc, &mockAuditService{})
		r := setupModelRouter(handler)

		rec := doRequest(r, "POST", "/auto-analytical-models",
			`{"partner_id":9,"analytical_account_id":5,"status":"confirm"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on missing account", func(t *testing.T) {
		handler := NewModelHandler(&mockModelService{}, &mockAuditService{})
		r := setupModelRouter(handler)

		rec := doRequest(r, "POST", "/auto-analytical-models", `{"status":"draft"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 on foreign partner", func(t *testing.T) {
		svc := &mockModelService{
			createModelFn: func(_ uint, _ *uint, _ *string, _ uint, _ models.ModelStatus) (*models.AutoAnalyticalModel, error) {
				return nil, apperrors.ErrPartnerNotFound
			},
		}
		handler := NewModelHandler(svc, &mockAuditService{})
		r := setupModelRouter(handler)

		rec := doRequest(r, "POST", "/auto-analytical-models",
			`{"partner_id":404,"analytical_account_id":5}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PARTNER_NOT_FOUND")
	})
}

func TestModelHandler_Match(t *testing.T) {
	t.Run("passes query criteria", func(t *testing.T) {
		var gotPartner *uint
		var gotCategory *string
		svc := &mockModelService{
			matchFn: func(_ uint, partnerID *uint, productCategory *string) (*services.ModelMatch, error) {
				gotPartner = partnerID
				gotCategory = productCategory
				return &services.ModelMatch{ModelID: 7, AnalyticalAccountID: 5, AnalyticalAccountCode: "MKT", Score: 2}, nil
			},
		}
		handler := NewModelHandler(svc, &mockAuditService{})
		r := setupModelRouter(handler)

		rec := doRequest(r, "GET", "/auto-analytical-models/match?partner_id=9&product_category=consulting", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPartner == nil || *gotPartner != 9 {
			t.Errorf("expected partner 9, got %v", gotPartner)
		}
		if gotCategory == nil || *gotCategory != "consulting" {
			t.Errorf("expected category consulting, got %v", gotCategory)
		}
		match := parseJSON(t, rec)["match"].(map[string]interface{})
		if match["analytical_account_code"] != "MKT" {
			t.Errorf("expected code MKT, got %v", match["analytical_account_code"])
		}
	})

	t.Run("returns null match when nothing applies", func(t *testing.T) {
		handler := NewModelHandler(&mockModelService{}, &mockAuditService{})
		r := setupModelRouter(handler)

		rec := doRequest(r, "GET", "/auto-analytical-models/match", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["match"] != nil {
			t.Errorf("expected null match, got %v", parseJSON(t, rec)["match"])
		}
	})

	t.Run("returns 400 on bad partner_id", func(t *testing.T) {
		handler := NewModelHandler(&mockModelService{}, &mockAuditService{})
		r := setupModelRouter(handler)

		rec := doRequest(r, "GET", "/auto-analytical-models/match?partner_id=abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestModelHandler_DeleteModel(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockModelService{
			deleteModelFn: func(_, _ uint) error { return apperrors.ErrModelNotFound },
		}
		handler := NewModelHandler(svc, &mockAuditService{})
		r := setupModelRouter(handler)

		rec := doRequest(r, "DELETE", "/auto-analytical-models/99", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "MODEL_NOT_FOUND")
	})
}
