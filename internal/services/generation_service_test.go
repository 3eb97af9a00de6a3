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

type fakeTextGenerator struct {
	draft string
	err   error
	input utils.DescriptionInput
}

func (f *fakeTextGenerator) GenerateDescription(_ context.Context, input utils.DescriptionInput) (string, error) {
	f.input = input
	if f.err != nil {
		return "", f.err
	}
	return f.draft, nil
}

func setupGenerationService(t *testing.T, generator *fakeTextGenerator) (GenerationServiceInterface, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t,
		&db_models.Category{}, &db_models.City{}, &db_models.Tag{},
		&db_models.Business{}, &db_models.Offering{}, &db_models.OfferingImage{})
	svc := NewGenerationService(
		generator,
		"openai",
		repositories.NewOfferingRepository(db),
		repositories.NewBusinessRepository(db),
	)
	return svc, db
}

func seedOffering(t *testing.T, db *gorm.DB, businessID uuid.UUID, name string) db_models.Offering {
	t.Helper()
	offering := db_models.Offering{
		BusinessID: businessID,
		Name:       name,
		Currency:   "USD",
		IsActive:   true,
	}
	if err := db.Create(&offering).Error; err != nil {
		t.Fatalf("seed offering: %v", err)
	}
	return offering
}

func TestGenerateOfferingDescription(t *testing.T) {
	generator := &fakeTextGenerator{draft: "A cozy two-seat espresso bar."}
	svc, db := setupGenerationService(t, generator)

	business := seedBusiness(t, db, "Corner Cafe")
	require.NoError(t, db.Model(&business).Association("Tags").Append(
		&db_models.Tag{Name: "coffee"}, &db_models.Tag{Name: "pastry"}))
	offering := seedOffering(t, db, business.ID, "Flat White")

	result, err := svc.GenerateOfferingDescription(offering.ID.String(), request_models.GenerateDescriptionRequest{
		Notes: "family owned since 1982",
	}, context.Background())
	require.NoError(t, err)

	assert.Equal(t, offering.ID.String(), result.OfferingID)
	assert.Equal(t, "A cozy two-seat espresso bar.", result.Draft)
	assert.Equal(t, "openai", result.Provider)

	assert.Equal(t, "Flat White", generator.input.Name)
	assert.Equal(t, "Corner Cafe", generator.input.Category)
	assert.ElementsMatch(t, []string{"coffee", "pastry"}, generator.input.Tags)
	assert.Equal(t, "family owned since 1982", generator.input.Notes)
}

func TestGenerateOfferingDescriptionUnknownOffering(t *testing.T) {
	svc, _ := setupGenerationService(t, &fakeTextGenerator{})

	_, err := svc.GenerateOfferingDescription(uuid.NewString(), request_models.GenerateDescriptionRequest{}, context.Background())
	assert.ErrorIs(t, err, utils.ErrOfferingNotFound)
}

func TestGenerateOfferingDescriptionGeneratorFailure(t *testing.T) {
	generator := &fakeTextGenerator{err: errors.New("model overloaded")}
	svc, db := setupGenerationService(t, generator)

	business := seedBusiness(t, db, "Corner Cafe")
	offering := seedOffering(t, db, business.ID, "Flat White")

	_, err := svc.GenerateOfferingDescription(offering.ID.String(), request_models.GenerateDescriptionRequest{}, context.Background())
	assert.ErrorIs(t, err, utils.ErrUpstreamFailed)
}