package services

import (
	"testing"

	"bilanz/internal/models"
	"bilanz/internal/pagination"
	"bilanz/internal/testutil"
)

func strPtr(s string) *string { return &s }

func TestCreateModel(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewModelService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAnalyticalAccount(t, db, user.ID)
		partner := testutil.CreateTestContact(t, db, user.ID, models.ContactTypeCustomer)

		model, err := svc.CreateModel(user.ID, &partner.ID, strPtr("services"), account.ID, models.ModelStatusConfirm)
		testutil.AssertNoError(t, err)

		if model.ID == 0 {
			t.Fatal("expected non-zero model ID")
		}
		if model.Status != models.ModelStatusConfirm {
			t.Errorf("expected status confirm, got %s", model.Status)
		}
	})

	t.Run("unknown_status_falls_back_to_draft", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewModelService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAnalyticalAccount(t, db, user.ID)

		model, err := svc.CreateModel(user.ID, nil, nil, account.ID, "bogus")
		testutil.AssertNoError(t, err)

		if model.Status != models.ModelStatusDraft {
			t.Errorf("expected status draft, got %s", model.Status)
		}
	})

	t.Run("account_required", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewModelService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateModel(user.ID, nil, nil, 0, models.ModelStatusDraft)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("account_must_belong_to_tenant", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewModelService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAnalyticalAccount(t, db, user2.ID)

		_, err := svc.CreateModel(user1.ID, nil, nil, account.ID, models.ModelStatusDraft)
		testutil.AssertAppError(t, err, "ANALYTICAL_ACCOUNT_NOT_FOUND")
	})

	t.Run("partner_must_belong_to_tenant", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewModelService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAnalyticalAccount(t, db, user1.ID)
		partner := testutil.CreateTestContact(t, db, user2.ID, models.ContactTypeVendor)

		_, err := svc.CreateModel(user1.ID, &partner.ID, nil, account.ID, models.ModelStatusDraft)
		testutil.AssertAppError(t, err, "PARTNER_NOT_FOUND")
	})
}

func TestGetUserModels(t *testing.T) {
	t.Run("tenant_isolation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewModelService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		account1 := testutil.CreateTestAnalyticalAccount(t, db, user1.ID)
		account2 := testutil.CreateTestAnalyticalAccount(t, db, user2.ID)

		testutil.CreateTestModel(t, db, user1.ID, account1.ID, nil, nil, models.ModelStatusDraft)
		testutil.CreateTestModel(t, db, user2.ID, account2.ID, nil, nil, models.ModelStatusDraft)

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetUserModels(user1.ID, page)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Errorf("expected 1 model for user1, got %d", result.TotalItems)
		}
	})
}

func TestUpdateModel(t *testing.T) {
	t.Run("overwrites_criteria", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewModelService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAnalyticalAccount(t, db, user.ID)
		model := testutil.CreateTestModel(t, db, user.ID, account.ID, nil, strPtr("hardware"), models.ModelStatusDraft)

		updated, err := svc.UpdateModel(user.ID, model.ID, nil, nil, account.ID, models.ModelStatusConfirm)
		testutil.AssertNoError(t, err)

		if updated.ProductCategory != nil {
			t.Errorf("expected product category cleared, got %v", *updated.ProductCategory)
		}
		if updated.Status != models.ModelStatusConfirm {
			t.Errorf("expected status confirm, got %s", updated.Status)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewModelService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAnalyticalAccount(t, db, user.ID)

		_, err := svc.UpdateModel(user.ID, 9999, nil, nil, account.ID, models.ModelStatusDraft)
		testutil.AssertAppError(t, err, "MODEL_NOT_FOUND")
	})
}

func TestDeleteModel(t *testing.T) {
	t.Run("deletes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewModelService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAnalyticalAccount(t, db, user.ID)
		model := testutil.CreateTestModel(t, db, user.ID, account.ID, nil, nil, models.ModelStatusDraft)

		testutil.AssertNoError(t, svc.DeleteModel(user.ID, model.ID))

		err := svc.DeleteModel(user.ID, model.ID)
		testutil.AssertAppError(t, err, "MODEL_NOT_FOUND")
	})

	t.Run("wrong_tenant", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewModelService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAnalyticalAccount(t, db, user2.ID)
		model := testutil.CreateTestModel(t, db, user2.ID, account.ID, nil, nil, models.ModelStatusDraft)

		err := svc.DeleteModel(user1.ID, model.ID)
		testutil.AssertAppError(t, err, "MODEL_NOT_FOUND")
	})
}

func TestMatch(t *testing.T) {
	t.Run("no_confirmed_rules", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewModelService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAnalyticalAccount(t, db, user.ID)
		partner := testutil.CreateTestContact(t, db, user.ID, models.ContactTypeCustomer)

		testutil.CreateTestModel(t, db, user.ID, account.ID, &partner.ID, nil, models.ModelStatusDraft)
		testutil.CreateTestModel(t, db, user.ID, account.ID, &partner.ID, nil, models.ModelStatusCancelled)

		match, err := svc.Match(user.ID, &partner.ID, nil)
		testutil.AssertNoError(t, err)

		if match != nil {
			t.Errorf("expected no match, got model %d", match.ModelID)
		}
	})

	t.Run("partner_rule_beats_wildcard", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewModelService(db)
		user := testutil.CreateTestUser(t, db)
		generic := testutil.CreateTestAnalyticalAccount(t, db, user.ID)
		specific := testutil.CreateTestAnalyticalAccount(t, db, user.ID)
		partner := testutil.CreateTestContact(t, db, user.ID, models.ContactTypeCustomer)

		testutil.CreateTestModel(t, db, user.ID, generic.ID, nil, nil, models.ModelStatusConfirm)
		rule := testutil.CreateTestModel(t, db, user.ID, specific.ID, &partner.ID, nil, models.ModelStatusConfirm)

		match, err := svc.Match(user.ID, &partner.ID, nil)
		testutil.AssertNoError(t, err)

		if match == nil {
			t.Fatal("expected a match")
		}
		if match.ModelID != rule.ID {
			t.Errorf("expected partner rule %d to win, got %d", rule.ID, match.ModelID)
		}
		if match.Score != 1 {
			t.Errorf("expected score 1, got %d", match.Score)
		}
		if match.AnalyticalAccountID != specific.ID {
			t.Errorf("expected account %d, got %d", specific.ID, match.AnalyticalAccountID)
		}
	})

	t.Run("both_criteria_beat_single", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewModelService(db)
		user := testutil.CreateTestUser(t, db)
		account1 := testutil.CreateTestAnalyticalAccount(t, db, user.ID)
		account2 := testutil.CreateTestAnalyticalAccount(t, db, user.ID)
		partner := testutil.CreateTestContact(t, db, user.ID, models.ContactTypeCustomer)

		testutil.CreateTestModel(t, db, user.ID, account1.ID, &partner.ID, nil, models.ModelStatusConfirm)
		full := testutil.CreateTestModel(t, db, user.ID, account2.ID, &partner.ID, strPtr("consulting"), models.ModelStatusConfirm)

		match, err := svc.Match(user.ID, &partner.ID, strPtr("consulting"))
		testutil.AssertNoError(t, err)

		if match == nil {
			t.Fatal("expected a match")
		}
		if match.ModelID != full.ID {
			t.Errorf("expected two-criteria rule %d to win, got %d", full.ID, match.ModelID)
		}
		if match.Score != 2 {
			t.Errorf("expected score 2, got %d", match.Score)
		}
	})

	t.Run("wildcard_matches_when_nothing_specific", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewModelService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAnalyticalAccount(t, db, user.ID)
		partner := testutil.CreateTestContact(t, db, user.ID, models.ContactTypeCustomer)
		other := testutil.CreateTestContact(t, db, user.ID, models.ContactTypeCustomer)

		wildcard := testutil.CreateTestModel(t, db, user.ID, account.ID, nil, nil, models.ModelStatusConfirm)
		testutil.CreateTestModel(t, db, user.ID, account.ID, &other.ID, nil, models.ModelStatusConfirm)

		match, err := svc.Match(user.ID, &partner.ID, nil)
		testutil.AssertNoError(t, err)

		if match == nil {
			t.Fatal("expected the wildcard rule to match")
		}
		if match.ModelID != wildcard.ID {
			t.Errorf("expected wildcard rule %d, got %d", wildcard.ID, match.ModelID)
		}
		if match.Score != 0 {
			t.Errorf("expected score 0, got %d", match.Score)
		}
	})

	t.Run("constrained_rule_excluded_when_criterion_absent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewModelService(db)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAnalyticalAccount(t, db, user.ID)
		partner := testutil.CreateTestContact(t, db, user.ID, models.ContactTypeCustomer)

		testutil.CreateTestModel(t, db, user.ID, account.ID, &partner.ID, nil, models.ModelStatusConfirm)

		match, err := svc.Match(user.ID, nil, nil)
		testutil.AssertNoError(t, err)

		if match != nil {
			t.Errorf("expected no match without partner criterion, got model %d", match.ModelID)
		}
	})

	t.Run("oldest_rule_wins_ties", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewModelService(db)
		user := testutil.CreateTestUser(t, db)
		account1 := testutil.CreateTestAnalyticalAccount(t, db, user.ID)
		account2 := testutil.CreateTestAnalyticalAccount(t, db, user.ID)
		partner := testutil.CreateTestContact(t, db, user.ID, models.ContactTypeCustomer)

		first := testutil.CreateTestModel(t, db, user.ID, account1.ID, &partner.ID, nil, models.ModelStatusConfirm)
		testutil.CreateTestModel(t, db, user.ID, account2.ID, &partner.ID, nil, models.ModelStatusConfirm)

		match, err := svc.Match(user.ID, &partner.ID, nil)
		testutil.AssertNoError(t, err)

		if match == nil {
			t.Fatal("expected a match")
		}
		if match.ModelID != first.ID {
			t.Errorf("expected oldest rule %d to win the tie, got %d", first.ID, match.ModelID)
		}
	})

	t.Run("tenant_isolation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewModelService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestAnalyticalAccount(t, db, user2.ID)

		testutil.CreateTestModel(t, db, user2.ID, account.ID, nil, nil, models.ModelStatusConfirm)

		match, err := svc.Match(user1.ID, nil, nil)
		testutil.AssertNoError(t, err)

		if match != nil {
			t.Errorf("expected no cross-tenant match, got model %d", match.ModelID)
		}
	})
}
