package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "bilanz/internal/errors"
	"bilanz/internal/models"
	"bilanz/internal/pagination"
	"bilanz/internal/services"
)

type mockBudgetService struct {
	createBudgetFn          func(userID uint, name string, startDate, endDate time.Time, status models.BudgetStatus, lines []services.BudgetLineInput) (*models.Budget, error)
	getUserBudgetsFn        func(userID uint, status models.BudgetStatus, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	getBudgetByIDFn         func(userID, budgetID uint) (*models.Budget, error)
	updateBudgetFn          func(userID, budgetID uint, name string, startDate, endDate time.Time, status models.BudgetStatus, lines []services.BudgetLineInput) (*models.Budget, error)
	archiveBudgetFn         func(userID, budgetID uint) error
	confirmBudgetFn         func(userID, budgetID uint) error
	reviseBudgetFn          func(userID, budgetID uint) (*models.Budget, error)
	calculateAchievementsFn func(userID, budgetID uint) (*services.AchievementResult, error)
	getBudgetCountFn        func(userID uint) (int64, error)
}

func (m *mockBudgetService) CreateBudget(userID uint, name string, startDate, endDate time.Time, status models.BudgetStatus, lines []services.BudgetLineInput) (*models.Budget, error) {
	if m.createBudgetFn != nil {
		return m.createBudgetFn(userID, name, startDate, endDate, status, lines)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) GetUserBudgets(userID uint, status models.BudgetStatus, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	if m.getUserBudgetsFn != nil {
		return m.getUserBudgetsFn(userID, status, page)
	}
	resp := pagination.NewPageResponse([]models.Budget{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockBudgetService) GetBudgetByID(userID, budgetID uint) (*models.Budget, error) {
	if m.getBudgetByIDFn != nil {
		return m.getBudgetByIDFn(userID, budgetID)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) UpdateBudget(userID, budgetID uint, name string, startDate, endDate time.Time, status models.BudgetStatus, lines []services.BudgetLineInput) (*models.Budget, error) {
	if m.updateBudgetFn != nil {
		return m.updateBudgetFn(userID, budgetID, name, startDate, endDate, status, lines)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) ArchiveBudget(userID, budgetID uint) error {
	if m.archiveBudgetFn != nil {
		return m.archiveBudgetFn(userID, budgetID)
	}
	return nil
}

func (m *mockBudgetService) ConfirmBudget(userID, budgetID uint) error {
	if m.confirmBudgetFn != nil {
		return m.confirmBudgetFn(userID, budgetID)
	}
	return nil
}

func (m *mockBudgetService) ReviseBudget(userID, budgetID uint) (*models.Budget, error) {
	if m.reviseBudgetFn != nil {
		return m.reviseBudgetFn(userID, budgetID)
	}
	return &models.Budget{}, nil
}

func (m *mockBudgetService) CalculateAchievements(userID, budgetID uint) (*services.AchievementResult, error) {
	if m.calculateAchievementsFn != nil {
		return m.calculateAchievementsFn(userID, budgetID)
	}
	return &services.AchievementResult{}, nil
}

func (m *mockBudgetService) GetBudgetCount(userID uint) (int64, error) {
	if m.getBudgetCountFn != nil {
		return m.getBudgetCountFn(userID)
	}
	return 0, nil
}

func setupBudgetRouter(handler *BudgetHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("/budgets", injectUserID(1))
	g.POST("", handler.CreateBudget)
	g.GET("", handler.GetBudgets)
	g.GET("/count", handler.GetBudgetCount)
	g.GET("/:id", handler.GetBudget)
	g.PUT("/:id", handler.UpdateBudget)
	g.DELETE("/:id", handler.ArchiveBudget)
	g.POST("/:id/confirm", handler.ConfirmBudget)
	g.POST("/:id/revise", handler.ReviseBudget)
	g.POST("/:id/calculate-achievements", handler.CalculateAchievements)
	return r
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(userID uint, name string, _, _ time.Time, _ models.BudgetStatus, lines []services.BudgetLineInput) (*models.Budget, error) {
				if userID != 1 {
					t.Errorf("expected user 1, got %d", userID)
				}
				if len(lines) != 1 {
					t.Errorf("expected 1 line, got %d", len(lines))
				}
				return &models.Budget{Base: models.Base{ID: 3}, Name: name, Status: models.BudgetStatusDraft}, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"name":"Q1","start_date":"2026-01-01T00:00:00Z","end_date":"2026-03-31T00:00:00Z","lines":[{"analytical_account_id":5,"type":"expense","planned_amount":1000}]}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		budget := parseJSON(t, rec)["budget"].(map[string]interface{})
		if budget["name"] != "Q1" {
			t.Errorf("expected name Q1, got %v", budget["name"])
		}
	})

	t.Run("returns 400 on missing lines", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"name":"Q1","start_date":"2026-01-01T00:00:00Z","end_date":"2026-03-31T00:00:00Z"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 when no line survives validation", func(t *testing.T) {
		svc := &mockBudgetService{
			createBudgetFn: func(_ uint, _ string, _, _ time.Time, _ models.BudgetStatus, _ []services.BudgetLineInput) (*models.Budget, error) {
				return nil, apperrors.ErrNoValidBudgetLines
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets",
			`{"name":"Q1","start_date":"2026-01-01T00:00:00Z","end_date":"2026-03-31T00:00:00Z","lines":[{"analytical_account_id":0,"planned_amount":100}]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "NO_VALID_BUDGET_LINES")
	})
}

func TestBudgetHandler_GetBudgets(t *testing.T) {
	t.Run("passes status filter", func(t *testing.T) {
		var gotStatus models.BudgetStatus
		svc := &mockBudgetService{
			getUserBudgetsFn: func(_ uint, status models.BudgetStatus, _ pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
				gotStatus = status
				resp := pagination.NewPageResponse([]models.Budget{}, 1, 20, 0)
				return &resp, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets?status=confirm", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotStatus != models.BudgetStatusConfirm {
			t.Errorf("expected status confirm passed through, got %s", gotStatus)
		}
	})

	t.Run("defaults to draft", func(t *testing.T) {
		var gotStatus models.BudgetStatus
		svc := &mockBudgetService{
			getUserBudgetsFn: func(_ uint, status models.BudgetStatus, _ pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
				gotStatus = status
				resp := pagination.NewPageResponse([]models.Budget{}, 1, 20, 0)
				return &resp, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		doRequest(r, "GET", "/budgets", "")

		if gotStatus != models.BudgetStatusDraft {
			t.Errorf("expected default status draft, got %s", gotStatus)
		}
	})

	t.Run("returns 400 on unknown status", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "GET", "/budgets?status=bogus", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_GetBudgetCount(t *testing.T) {
	svc := &mockBudgetService{
		getBudgetCountFn: func(_ uint) (int64, error) { return 4, nil },
	}
	handler := NewBudgetHandler(svc, &mockAuditService{})
	r := setupBudgetRouter(handler)

	rec := doRequest(r, "GET", "/budgets/count", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if parseJSON(t, rec)["count"] != float64(4) {
		t.Errorf("expected count 4, got %v", parseJSON(t, rec)["count"])
	}
}

func TestBudgetHandler_ConfirmBudget(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets/3/confirm", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 409 when not draft", func(t *testing.T) {
		svc := &mockBudgetService{
			confirmBudgetFn: func(_, _ uint) error { return apperrors.ErrBudgetStatusConflict },
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets/3/confirm", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_STATUS_CONFLICT")
	})

	t.Run("returns 400 on bad id", func(t *testing.T) {
		handler := NewBudgetHandler(&mockBudgetService{}, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets/abc/confirm", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBudgetHandler_ReviseBudget(t *testing.T) {
	t.Run("returns 201 with revision", func(t *testing.T) {
		svc := &mockBudgetService{
			reviseBudgetFn: func(_, budgetID uint) (*models.Budget, error) {
				return &models.Budget{Base: models.Base{ID: 10}, Name: "Q1.r1", RevisionOf: &budgetID}, nil
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets/3/revise", "")

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["name"] != "Q1.r1" {
			t.Errorf("expected revision name Q1.r1, got %v", result["name"])
		}
	})

	t.Run("returns 409 when not confirmed", func(t *testing.T) {
		svc := &mockBudgetService{
			reviseBudgetFn: func(_, _ uint) (*models.Budget, error) {
				return nil, apperrors.ErrBudgetNotConfirmed
			},
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "POST", "/budgets/3/revise", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_NOT_CONFIRMED")
	})
}

func TestBudgetHandler_CalculateAchievements(t *testing.T) {
	svc := &mockBudgetService{
		calculateAchievementsFn: func(_, _ uint) (*services.AchievementResult, error) {
			return &services.AchievementResult{TotalAchieved: 320.5, LinesUpdated: 2}, nil
		},
	}
	handler := NewBudgetHandler(svc, &mockAuditService{})
	r := setupBudgetRouter(handler)

	rec := doRequest(r, "POST", "/budgets/3/calculate-achievements", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["total_achieved"] != 320.5 {
		t.Errorf("expected total achieved 320.5, got %v", result["total_achieved"])
	}
	if result["lines_updated"] != float64(2) {
		t.Errorf("expected 2 lines updated, got %v", result["lines_updated"])
	}
}

func TestBudgetHandler_ArchiveBudget(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockBudgetService{
			archiveBudgetFn: func(_, _ uint) error { return apperrors.ErrBudgetNotFound },
		}
		handler := NewBudgetHandler(svc, &mockAuditService{})
		r := setupBudgetRouter(handler)

		rec := doRequest(r, "DELETE", "/budgets/99", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "BUDGET_NOT_FOUND")
	})
}
