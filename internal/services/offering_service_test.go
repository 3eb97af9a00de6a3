package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bizlens/internal/models/db_models"
	"bizlens/internal/models/request_models"
	"bizlens/internal/repositories"
	"bizlens/pkg/utils"
)

func setupOfferingService(t *testing.T) (OfferingServiceInterface, *fakeModerationChecker, *fakeEmbeddingService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t,
		&db_models.Category{}, &db_models.City{}, &db_models.Tag{},
		&db_models.Business{}, &db_models.Offering{}, &db_models.OfferingImage{})
	moderation := &fakeModerationChecker{
		results: map[string]ImageCheckResult{},
		errs:    map[string]error{},
	}
	embedding := &fakeEmbeddingService{}
	svc := NewOfferingService(
		repositories.NewOfferingRepository(db),
		repositories.NewOfferingImageRepository(db),
		repositories.NewBusinessRepository(db),
		moderation,
		embedding,
	)
	return svc, moderation, embedding, db
}

// seedImage backdates created_at so promotion order is unambiguous even when
// several rows land within the same second.
func seedImage(t *testing.T, db *gorm.DB, offeringID uuid.UUID, url string, approved, primary bool, createdAt int64) db_models.OfferingImage {
	t.Helper()
	image := db_models.OfferingImage{
		OfferingID: offeringID,
		URL:        url,
		Source:     "upload",
		IsApproved: approved,
		IsPrimary:  primary,
	}
	if err := db.Create(&image).Error; err != nil {
		t.Fatalf("failed to seed image: %v", err)
	}
	if err := db.Model(&db_models.OfferingImage{}).
		Where("id = ?", image.ID).
		Update("created_at", createdAt).Error; err != nil {
		t.Fatalf("failed to backdate image: %v", err)
	}
	image.CreatedAt = createdAt
	return image
}

func reloadImage(t *testing.T, db *gorm.DB, id uuid.UUID) db_models.OfferingImage {
	t.Helper()
	var image db_models.OfferingImage
	if err := db.First(&image, "id = ?", id).Error; err != nil {
		t.Fatalf("failed to reload image %s: %v", id, err)
	}
	return image
}

func TestCreateOfferingDefaultsCurrency(t *testing.T) {
	svc, _, embedding, db := setupOfferingService(t)
	business := seedBusiness(t, db, "Corner Cafe")

	id, err := svc.CreateOffering(request_models.CreateOfferingRequest{
		BusinessID: business.ID,
		Name:       "Flat White",
	}, context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	var offering db_models.Offering
	require.NoError(t, db.First(&offering, "id = ?", id).Error)
	assert.Equal(t, "USD", offering.Currency)
	assert.True(t, offering.IsActive)
	assert.Equal(t, 1, embedding.offeringCalls)
}

func TestCreateOfferingNormalizesCurrency(t *testing.T) {
	svc, _, _, db := setupOfferingService(t)
	business := seedBusiness(t, db, "Corner Cafe")

	price := int64(450)
	id, err := svc.CreateOffering(request_models.CreateOfferingRequest{
		BusinessID: business.ID,
		Name:       "Flat White",
		PriceCents: &price,
		Currency:   " eur ",
	}, context.Background())
	require.NoError(t, err)

	var offering db_models.Offering
	require.NoError(t, db.First(&offering, "id = ?", id).Error)
	assert.Equal(t, "EUR", offering.Currency)
	require.NotNil(t, offering.PriceCents)
	assert.Equal(t, int64(450), *offering.PriceCents)
}

func TestCreateOfferingValidation(t *testing.T) {
	svc, _, _, db := setupOfferingService(t)
	business := seedBusiness(t, db, "Corner Cafe")

	_, err := svc.CreateOffering(request_models.CreateOfferingRequest{
		BusinessID: business.ID,
		Name:       "   ",
	}, context.Background())
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.CreateOffering(request_models.CreateOfferingRequest{
		BusinessID: uuid.New(),
		Name:       "Flat White",
	}, context.Background())
	assert.ErrorIs(t, err, utils.ErrBusinessNotFound)
}

func TestUpdateOfferingPartial(t *testing.T) {
	svc, _, embedding, db := setupOfferingService(t)
	business := seedBusiness(t, db, "Corner Cafe")
	offering := seedOffering(t, db, business.ID, "Flat White")

	price := int64(525)
	inactive := false
	err := svc.UpdateOffering(request_models.UpdateOfferingRequest{
		ID:         offering.ID,
		PriceCents: &price,
		IsActive:   &inactive,
	}, context.Background())
	require.NoError(t, err)

	var updated db_models.Offering
	require.NoError(t, db.First(&updated, "id = ?", offering.ID).Error)
	assert.Equal(t, "Flat White", updated.Name)
	require.NotNil(t, updated.PriceCents)
	assert.Equal(t, int64(525), *updated.PriceCents)
	assert.False(t, updated.IsActive)
	assert.Equal(t, 1, embedding.offeringCalls)
}

func TestUpdateOfferingUnknown(t *testing.T) {
	svc, _, _, _ := setupOfferingService(t)

	err := svc.UpdateOffering(request_models.UpdateOfferingRequest{
		ID:   uuid.New(),
		Name: "Renamed",
	}, context.Background())
	assert.ErrorIs(t, err, utils.ErrOfferingNotFound)
}

func TestGetOfferingIncludesImages(t *testing.T) {
	svc, _, _, db := setupOfferingService(t)
	business := seedBusiness(t, db, "Corner Cafe")
	offering := seedOffering(t, db, business.ID, "Flat White")

	seedImage(t, db, offering.ID, "https://img.example.com/side.jpg", true, false, 1000)
	primary := seedImage(t, db, offering.ID, "https://img.example.com/front.jpg", true, true, 2000)

	resp, err := svc.GetOfferingByID(offering.ID.String(), context.Background())
	require.NoError(t, err)

	assert.Equal(t, offering.ID.String(), resp.ID)
	assert.Equal(t, business.ID.String(), resp.BusinessID)
	assert.Equal(t, "Flat White", resp.Name)
	assert.Equal(t, "https://img.example.com/front.jpg", resp.PrimaryURL)
	require.Len(t, resp.Images, 2)
	assert.Equal(t, primary.ID.String(), resp.Images[0].ID)
	assert.True(t, resp.Images[0].IsPrimary)
}

func TestGetOfferingUnknown(t *testing.T) {
	svc, _, _, _ := setupOfferingService(t)

	_, err := svc.GetOfferingByID(uuid.NewString(), context.Background())
	assert.ErrorIs(t, err, utils.ErrOfferingNotFound)
}

func TestListByBusinessSkipsInactiveAndUnapprovedImages(t *testing.T) {
	svc, _, _, db := setupOfferingService(t)
	business := seedBusiness(t, db, "Corner Cafe")
	other := seedBusiness(t, db, "Rival Diner")

	active := seedOffering(t, db, business.ID, "Flat White")
	retired := seedOffering(t, db, business.ID, "Retired Roast")
	require.NoError(t, db.Model(&retired).Update("is_active", false).Error)
	seedOffering(t, db, other.ID, "Pancakes")

	seedImage(t, db, active.ID, "https://img.example.com/approved.jpg", true, true, 2000)
	seedImage(t, db, active.ID, "https://img.example.com/pending.jpg", false, false, 1000)

	responses, err := svc.ListByBusiness(business.ID.String(), 1, 10, context.Background())
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "Flat White", responses[0].Name)
	require.Len(t, responses[0].Images, 1)
	assert.Equal(t, "https://img.example.com/approved.jpg", responses[0].Images[0].URL)
}

func TestListByBusinessPaginates(t *testing.T) {
	svc, _, _, db := setupOfferingService(t)
	business := seedBusiness(t, db, "Corner Cafe")
	for _, name := range []string{"Flat White", "Espresso", "Cold Brew"} {
		seedOffering(t, db, business.ID, name)
	}

	page1, err := svc.ListByBusiness(business.ID.String(), 1, 2, context.Background())
	require.NoError(t, err)
	assert.Len(t, page1, 2)

	page2, err := svc.ListByBusiness(business.ID.String(), 2, 2, context.Background())
	require.NoError(t, err)
	assert.Len(t, page2, 1)
}

func TestAddImageStoresUnapproved(t *testing.T) {
	svc, moderation, _, db := setupOfferingService(t)
	business := seedBusiness(t, db, "Corner Cafe")
	offering := seedOffering(t, db, business.ID, "Flat White")

	id, err := svc.AddImage(request_models.AddOfferingImageRequest{
		OfferingID: offering.ID,
		URL:        "https://img.example.com/new.jpg",
		Source:     "upload",
		License:    "owner",
	}, context.Background())
	require.NoError(t, err)

	var image db_models.OfferingImage
	require.NoError(t, db.First(&image, "id = ?", id).Error)
	assert.Equal(t, "https://img.example.com/new.jpg", image.URL)
	assert.Equal(t, "upload", image.Source)
	assert.False(t, image.IsApproved)
	assert.False(t, image.IsPrimary)
	assert.Equal(t, []string{"https://img.example.com/new.jpg"}, moderation.checked)
}

func TestAddImageRejectedAtIngest(t *testing.T) {
	svc, moderation, _, db := setupOfferingService(t)
	business := seedBusiness(t, db, "Corner Cafe")
	offering := seedOffering(t, db, business.ID, "Flat White")

	url := "https://img.example.com/bad.jpg"
	moderation.results[url] = ImageCheckResult{Passed: false, Reason: "safe_search_adult", Confidence: 0.8}

	_, err := svc.AddImage(request_models.AddOfferingImageRequest{
		OfferingID: offering.ID,
		URL:        url,
	}, context.Background())
	assert.ErrorIs(t, err, utils.ErrImageRejected)

	var count int64
	require.NoError(t, db.Model(&db_models.OfferingImage{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddImageModerationFailure(t *testing.T) {
	svc, moderation, _, db := setupOfferingService(t)
	business := seedBusiness(t, db, "Corner Cafe")
	offering := seedOffering(t, db, business.ID, "Flat White")

	url := "https://img.example.com/unreachable.jpg"
	moderation.errs[url] = errors.New("vision unavailable")

	_, err := svc.AddImage(request_models.AddOfferingImageRequest{
		OfferingID: offering.ID,
		URL:        url,
	}, context.Background())
	assert.ErrorIs(t, err, utils.ErrUpstreamFailed)
}

func TestAddImageUnknownOffering(t *testing.T) {
	svc, _, _, _ := setupOfferingService(t)

	_, err := svc.AddImage(request_models.AddOfferingImageRequest{
		OfferingID: uuid.New(),
		URL:        "https://img.example.com/new.jpg",
	}, context.Background())
	assert.ErrorIs(t, err, utils.ErrOfferingNotFound)
}

func TestApproveImage(t *testing.T) {
	svc, _, _, db := setupOfferingService(t)
	business := seedBusiness(t, db, "Corner Cafe")
	offering := seedOffering(t, db, business.ID, "Flat White")
	image := seedImage(t, db, offering.ID, "https://img.example.com/pending.jpg", false, false, 1000)

	require.NoError(t, svc.ApproveImage(image.ID, context.Background()))
	assert.True(t, reloadImage(t, db, image.ID).IsApproved)

	err := svc.ApproveImage(uuid.New(), context.Background())
	assert.ErrorIs(t, err, utils.ErrImageNotFound)
}

func TestSetPrimaryImageMovesFlag(t *testing.T) {
	svc, _, _, db := setupOfferingService(t)
	business := seedBusiness(t, db, "Corner Cafe")
	offering := seedOffering(t, db, business.ID, "Flat White")

	first := seedImage(t, db, offering.ID, "https://img.example.com/a.jpg", true, true, 1000)
	second := seedImage(t, db, offering.ID, "https://img.example.com/b.jpg", true, false, 2000)

	require.NoError(t, svc.SetPrimaryImage(request_models.SetPrimaryImageRequest{ImageID: second.ID}, context.Background()))

	assert.False(t, reloadImage(t, db, first.ID).IsPrimary)
	assert.True(t, reloadImage(t, db, second.ID).IsPrimary)
}

func TestSetPrimaryImageRejectsUnapproved(t *testing.T) {
	svc, _, _, db := setupOfferingService(t)
	business := seedBusiness(t, db, "Corner Cafe")
	offering := seedOffering(t, db, business.ID, "Flat White")
	pending := seedImage(t, db, offering.ID, "https://img.example.com/pending.jpg", false, false, 1000)

	err := svc.SetPrimaryImage(request_models.SetPrimaryImageRequest{ImageID: pending.ID}, context.Background())
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	err = svc.SetPrimaryImage(request_models.SetPrimaryImageRequest{ImageID: uuid.New()}, context.Background())
	assert.ErrorIs(t, err, utils.ErrImageNotFound)
}

func TestDeletePrimaryImagePromotesNewestApproved(t *testing.T) {
	svc, _, _, db := setupOfferingService(t)
	business := seedBusiness(t, db, "Corner Cafe")
	offering := seedOffering(t, db, business.ID, "Flat White")

	primary := seedImage(t, db, offering.ID, "https://img.example.com/a.jpg", true, true, 1000)
	older := seedImage(t, db, offering.ID, "https://img.example.com/b.jpg", true, false, 1500)
	newest := seedImage(t, db, offering.ID, "https://img.example.com/c.jpg", true, false, 2000)
	pending := seedImage(t, db, offering.ID, "https://img.example.com/d.jpg", false, false, 3000)

	require.NoError(t, svc.DeleteImage(primary.ID, context.Background()))

	var gone db_models.OfferingImage
	err := db.First(&gone, "id = ?", primary.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.True(t, reloadImage(t, db, newest.ID).IsPrimary)
	assert.False(t, reloadImage(t, db, older.ID).IsPrimary)
	assert.False(t, reloadImage(t, db, pending.ID).IsPrimary)
}

func TestDeleteNonPrimaryImageLeavesPrimary(t *testing.T) {
	svc, _, _, db := setupOfferingService(t)
	business := seedBusiness(t, db, "Corner Cafe")
	offering := seedOffering(t, db, business.ID, "Flat White")

	primary := seedImage(t, db, offering.ID, "https://img.example.com/a.jpg", true, true, 1000)
	extra := seedImage(t, db, offering.ID, "https://img.example.com/b.jpg", true, false, 2000)

	require.NoError(t, svc.DeleteImage(extra.ID, context.Background()))

	assert.True(t, reloadImage(t, db, primary.ID).IsPrimary)

	err := svc.DeleteImage(uuid.New(), context.Background())
	assert.ErrorIs(t, err, utils.ErrImageNotFound)
}