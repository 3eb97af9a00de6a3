package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bizlens/internal/models/db_models"
	"bizlens/internal/models/request_models"
	"bizlens/internal/repositories"
	"bizlens/pkg/utils"
)

func setupReviewService(t *testing.T) (ReviewServiceInterface, *gorm.DB, *fakeMailService) {
	t.Helper()
	db := setupTestDB(t,
		&db_models.Account{}, &db_models.Category{}, &db_models.City{}, &db_models.Tag{},
		&db_models.Business{}, &db_models.Offering{}, &db_models.OfferingImage{},
		&db_models.UserReview{}, &db_models.CreditTransaction{})

	mail := &fakeMailService{}
	svc := NewReviewService(
		repositories.NewReviewRepository(db),
		repositories.NewAccountRepository(db),
		repositories.NewBusinessRepository(db),
		NewSeededReviewRanker(7),
		mail,
	)
	return svc, db, mail
}

func seedAccount(t *testing.T, db *gorm.DB, email string, credits, level int) db_models.Account {
	t.Helper()
	account := db_models.Account{
		Name:         "Reviewer",
		Email:        email,
		PasswordHash: "x",
		Role:         "user",
		Credits:      credits,
		Level:        level,
	}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return account
}

func seedBusiness(t *testing.T, db *gorm.DB, name string) db_models.Business {
	t.Helper()
	business := db_models.Business{
		Name:      name,
		Slug:      uuid.NewString(),
		IsVisible: true,
	}
	if err := db.Create(&business).Error; err != nil {
		t.Fatalf("seed business: %v", err)
	}
	return business
}

func seedReview(t *testing.T, db *gorm.DB, accountID, businessID uuid.UUID, status db_models.ReviewStatus, text string, images []string) db_models.UserReview {
	t.Helper()
	review := db_models.UserReview{
		AccountID:  accountID,
		BusinessID: businessID,
		Rating:     4,
		ReviewText: text,
		ImageURLs:  pq.StringArray(images),
		Status:     status,
	}
	if err := db.Create(&review).Error; err != nil {
		t.Fatalf("seed review: %v", err)
	}
	return review
}

func TestSubmitReviewValidation(t *testing.T) {
	svc, db, _ := setupReviewService(t)
	account := seedAccount(t, db, "author@example.com", 0, 1)
	business := seedBusiness(t, db, "Corner Cafe")

	tests := []struct {
		name string
		req  request_models.SubmitReviewRequest
	}{
		{
			name: "rating too low",
			req:  request_models.SubmitReviewRequest{BusinessID: business.ID, Rating: 0},
		},
		{
			name: "rating too high",
			req:  request_models.SubmitReviewRequest{BusinessID: business.ID, Rating: 6},
		},
		{
			name: "too many images",
			req: request_models.SubmitReviewRequest{
				BusinessID: business.ID,
				Rating:     4,
				ImageURLs:  []string{"a", "b", "c", "d", "e", "f", "g"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitReview(tt.req, account.ID, context.Background())
			assert.ErrorIs(t, err, utils.ErrInvalidInput)
		})
	}
}

func TestSubmitReviewUnknownBusiness(t *testing.T) {
	svc, db, _ := setupReviewService(t)
	account := seedAccount(t, db, "author@example.com", 0, 1)

	req := request_models.SubmitReviewRequest{BusinessID: uuid.New(), Rating: 4}
	_, err := svc.SubmitReview(req, account.ID, context.Background())
	assert.ErrorIs(t, err, utils.ErrBusinessNotFound)
}

func TestSubmitReviewCreatesPending(t *testing.T) {
	svc, db, _ := setupReviewService(t)
	account := seedAccount(t, db, "author@example.com", 0, 1)
	business := seedBusiness(t, db, "Corner Cafe")

	req := request_models.SubmitReviewRequest{
		BusinessID: business.ID,
		Rating:     5,
		ReviewText: "  Great espresso  ",
		ImageURLs:  []string{"https://img.example.com/1.jpg", "https://img.example.com/2.jpg", "https://img.example.com/3.jpg"},
	}
	id, err := svc.SubmitReview(req, account.ID, context.Background())
	require.NoError(t, err)

	var stored db_models.UserReview
	require.NoError(t, db.First(&stored, "id = ?", id).Error)
	assert.Equal(t, db_models.ReviewStatusPending, stored.Status)
	assert.Equal(t, 5, stored.Rating)
	assert.Equal(t, "Great espresso", stored.ReviewText)
	assert.Len(t, stored.ImageURLs, 3)
	assert.Equal(t, account.ID, stored.AccountID)
}

func TestSubmitReviewPendingResubmitReplaces(t *testing.T) {
	svc, db, _ := setupReviewService(t)
	account := seedAccount(t, db, "author@example.com", 0, 1)
	business := seedBusiness(t, db, "Corner Cafe")

	first := request_models.SubmitReviewRequest{BusinessID: business.ID, Rating: 4, ReviewText: "first take"}
	firstID, err := svc.SubmitReview(first, account.ID, context.Background())
	require.NoError(t, err)

	second := request_models.SubmitReviewRequest{
		BusinessID: business.ID,
		Rating:     2,
		ReviewText: "second take",
		ImageURLs:  []string{"https://img.example.com/1.jpg"},
	}
	secondID, err := svc.SubmitReview(second, account.ID, context.Background())
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	var count int64
	require.NoError(t, db.Model(&db_models.UserReview{}).
		Where("account_id = ? AND business_id = ?", account.ID, business.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var stored db_models.UserReview
	require.NoError(t, db.First(&stored, "id = ?", firstID).Error)
	assert.Equal(t, 2, stored.Rating)
	assert.Equal(t, "second take", stored.ReviewText)
	assert.Len(t, stored.ImageURLs, 1)
}

func TestSubmitReviewDuplicateAfterModeration(t *testing.T) {
	svc, db, _ := setupReviewService(t)
	account := seedAccount(t, db, "author@example.com", 0, 1)
	business := seedBusiness(t, db, "Corner Cafe")
	seedReview(t, db, account.ID, business.ID, db_models.ReviewStatusApproved, "done", nil)

	req := request_models.SubmitReviewRequest{BusinessID: business.ID, Rating: 3}
	_, err := svc.SubmitReview(req, account.ID, context.Background())
	assert.ErrorIs(t, err, utils.ErrDuplicateReview)
}

func TestModerateReviewNotFound(t *testing.T) {
	svc, _, _ := setupReviewService(t)

	req := request_models.ModerateReviewRequest{ReviewID: uuid.New(), Approve: true}
	_, err := svc.ModerateReview(req, uuid.New(), context.Background())
	assert.ErrorIs(t, err, utils.ErrReviewNotFound)
}

func TestModerateApproveFullReview(t *testing.T) {
	svc, db, mail := setupReviewService(t)
	account := seedAccount(t, db, "author@example.com", 95, 1)
	business := seedBusiness(t, db, "Corner Cafe")
	review := seedReview(t, db, account.ID, business.ID, db_models.ReviewStatusPending,
		"solid food", []string{"a.jpg", "b.jpg", "c.jpg"})
	moderator := seedAccount(t, db, "mod@example.com", 0, 1)

	req := request_models.ModerateReviewRequest{ReviewID: review.ID, Approve: true, Note: "looks good"}
	result, err := svc.ModerateReview(req, moderator.ID, context.Background())
	require.NoError(t, err)

	assert.Equal(t, string(db_models.ReviewStatusApproved), result.Status)
	assert.Equal(t, 10, result.CreditAward)
	assert.Equal(t, 2, result.NewLevel)

	var storedReview db_models.UserReview
	require.NoError(t, db.First(&storedReview, "id = ?", review.ID).Error)
	assert.Equal(t, db_models.ReviewStatusApproved, storedReview.Status)
	require.NotNil(t, storedReview.ModeratedBy)
	assert.Equal(t, moderator.ID, *storedReview.ModeratedBy)
	assert.NotNil(t, storedReview.ModeratedAt)
	assert.Equal(t, "looks good", storedReview.ModerationNote)

	var storedAccount db_models.Account
	require.NoError(t, db.First(&storedAccount, "id = ?", account.ID).Error)
	assert.Equal(t, 105, storedAccount.Credits)
	assert.Equal(t, 2, storedAccount.Level)

	var storedBusiness db_models.Business
	require.NoError(t, db.First(&storedBusiness, "id = ?", business.ID).Error)
	assert.Equal(t, 1, storedBusiness.RatingCount)
	assert.InDelta(t, 4.0, storedBusiness.RatingAvg, 1e-9)

	var ledger db_models.CreditTransaction
	require.NoError(t, db.First(&ledger, "account_id = ?", account.ID).Error)
	assert.Equal(t, 10, ledger.Delta)
	assert.Equal(t, "review_approved", ledger.Reason)
	require.NotNil(t, ledger.ReviewID)
	assert.Equal(t, review.ID, *ledger.ReviewID)

	require.Len(t, mail.moderated, 1)
	assert.Equal(t, "author@example.com", mail.moderated[0].to)
	assert.Equal(t, "Corner Cafe", mail.moderated[0].business)
	assert.True(t, mail.moderated[0].approved)
}

func TestModerateApprovePartialReview(t *testing.T) {
	svc, db, _ := setupReviewService(t)
	account := seedAccount(t, db, "author@example.com", 0, 1)
	business := seedBusiness(t, db, "Corner Cafe")
	review := seedReview(t, db, account.ID, business.ID, db_models.ReviewStatusPending,
		"", []string{"a.jpg"})

	req := request_models.ModerateReviewRequest{ReviewID: review.ID, Approve: true}
	result, err := svc.ModerateReview(req, uuid.New(), context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, result.CreditAward)
	assert.Equal(t, 0, result.NewLevel)

	var storedAccount db_models.Account
	require.NoError(t, db.First(&storedAccount, "id = ?", account.ID).Error)
	assert.Equal(t, 5, storedAccount.Credits)
	assert.Equal(t, 1, storedAccount.Level)
}

func TestModerateReject(t *testing.T) {
	svc, db, mail := setupReviewService(t)
	account := seedAccount(t, db, "author@example.com", 50, 1)
	business := seedBusiness(t, db, "Corner Cafe")
	review := seedReview(t, db, account.ID, business.ID, db_models.ReviewStatusPending,
		"spammy text", []string{"a.jpg", "b.jpg", "c.jpg"})

	req := request_models.ModerateReviewRequest{ReviewID: review.ID, Approve: false, Note: "off topic"}
	result, err := svc.ModerateReview(req, uuid.New(), context.Background())
	require.NoError(t, err)

	assert.Equal(t, string(db_models.ReviewStatusRejected), result.Status)
	assert.Equal(t, 0, result.CreditAward)

	var storedAccount db_models.Account
	require.NoError(t, db.First(&storedAccount, "id = ?", account.ID).Error)
	assert.Equal(t, 50, storedAccount.Credits)

	var storedBusiness db_models.Business
	require.NoError(t, db.First(&storedBusiness, "id = ?", business.ID).Error)
	assert.Equal(t, 0, storedBusiness.RatingCount)

	var ledgerCount int64
	require.NoError(t, db.Model(&db_models.CreditTransaction{}).Count(&ledgerCount).Error)
	assert.EqualValues(t, 0, ledgerCount)

	require.Len(t, mail.moderated, 1)
	assert.False(t, mail.moderated[0].approved)
	assert.Equal(t, "off topic", mail.moderated[0].note)
}

func TestModerateTwiceFails(t *testing.T) {
	svc, db, _ := setupReviewService(t)
	account := seedAccount(t, db, "author@example.com", 0, 1)
	business := seedBusiness(t, db, "Corner Cafe")
	review := seedReview(t, db, account.ID, business.ID, db_models.ReviewStatusPending, "once", nil)

	req := request_models.ModerateReviewRequest{ReviewID: review.ID, Approve: true}
	_, err := svc.ModerateReview(req, uuid.New(), context.Background())
	require.NoError(t, err)

	_, err = svc.ModerateReview(req, uuid.New(), context.Background())
	assert.ErrorIs(t, err, utils.ErrInvalidStatusTransition)
}

func TestLevelForCredits(t *testing.T) {
	tests := []struct {
		credits int
		want    int
	}{
		{0, 1}, {99, 1},
		{100, 2}, {249, 2},
		{250, 3}, {499, 3},
		{500, 4}, {999, 4},
		{1000, 5}, {5000, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levelForCredits(tt.credits), "credits=%d", tt.credits)
	}
}

func TestRegisterView(t *testing.T) {
	svc, db, _ := setupReviewService(t)
	account := seedAccount(t, db, "author@example.com", 0, 1)
	business := seedBusiness(t, db, "Corner Cafe")
	review := seedReview(t, db, account.ID, business.ID, db_models.ReviewStatusApproved, "nice", nil)

	require.NoError(t, svc.RegisterView(review.ID, context.Background()))
	require.NoError(t, svc.RegisterView(review.ID, context.Background()))

	var stored db_models.UserReview
	require.NoError(t, db.First(&stored, "id = ?", review.ID).Error)
	assert.Equal(t, 2, stored.Views)
}

func TestRegisterViewUnknownReview(t *testing.T) {
	svc, _, _ := setupReviewService(t)
	err := svc.RegisterView(uuid.New(), context.Background())
	assert.ErrorIs(t, err, utils.ErrReviewNotFound)
}

func TestListApprovedByBusinessRanked(t *testing.T) {
	svc, db, _ := setupReviewService(t)
	business := seedBusiness(t, db, "Corner Cafe")
	novice := seedAccount(t, db, "novice@example.com", 0, 1)
	veteran := seedAccount(t, db, "veteran@example.com", 2000, 5)

	// Level 5 full review scores in [162, 198]; the level 1 partial one in
	// [45, 55]. The bands cannot overlap, so order is deterministic.
	full := seedReview(t, db, veteran.ID, business.ID, db_models.ReviewStatusApproved,
		"long write-up", []string{"a.jpg", "b.jpg", "c.jpg"})
	partial := seedReview(t, db, novice.ID, business.ID, db_models.ReviewStatusApproved, "", nil)
	seedReview(t, db, novice.ID, uuid.New(), db_models.ReviewStatusApproved, "other business", nil)

	responses, err := svc.ListApprovedByBusiness(business.ID.String(), context.Background())
	require.NoError(t, err)

	require.Len(t, responses, 2)
	assert.Equal(t, full.ID.String(), responses[0].ID)
	assert.Equal(t, partial.ID.String(), responses[1].ID)
	assert.Equal(t, 5, responses[0].AuthorLevel)
}

func TestModerationQueuePagination(t *testing.T) {
	svc, db, _ := setupReviewService(t)
	business := seedBusiness(t, db, "Corner Cafe")
	for i := 0; i < 3; i++ {
		account := seedAccount(t, db, uuid.NewString()+"@example.com", 0, 1)
		seedReview(t, db, account.ID, business.ID, db_models.ReviewStatusPending, "pending", nil)
	}

	first, err := svc.ModerationQueue(1, 2, context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, first.Total)
	assert.Len(t, first.Items, 2)
	assert.Equal(t, "Corner Cafe", first.Items[0].BusinessName)

	second, err := svc.ModerationQueue(2, 2, context.Background())
	require.NoError(t, err)
	assert.Len(t, second.Items, 1)
}