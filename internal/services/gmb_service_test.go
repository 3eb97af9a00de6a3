package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bizlens/internal/models/db_models"
	"bizlens/internal/models/request_models"
	"bizlens/internal/repositories"
	"bizlens/pkg/utils"
)

type fakeGMBClient struct {
	accounts      []utils.GMBAccount
	accountsErr   error
	accountsCalls int
	locations     map[string][]utils.GMBLocation
	locationsErrs map[string]error
}

func (f *fakeGMBClient) ListAccounts(context.Context) ([]utils.GMBAccount, error) {
	f.accountsCalls++
	return f.accounts, f.accountsErr
}

func (f *fakeGMBClient) ListLocations(_ context.Context, accountResource string) ([]utils.GMBLocation, error) {
	if err, ok := f.locationsErrs[accountResource]; ok {
		return nil, err
	}
	return f.locations[accountResource], nil
}

func setupGMBService(t *testing.T, client utils.GMBClientInterface) (GMBServiceInterface, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t,
		&db_models.Category{}, &db_models.City{}, &db_models.Tag{},
		&db_models.Business{}, &db_models.Offering{}, &db_models.OfferingImage{})
	svc := NewGMBService(
		client,
		repositories.NewBusinessRepository(db),
		repositories.NewCategoryRepository(db),
		repositories.NewCityRepository(db),
	)
	return svc, db
}

func cafeLocation(resource, title string) utils.GMBLocation {
	return utils.GMBLocation{
		Resource:     resource,
		Title:        title,
		Address:      "100 Main St",
		Locality:     "Portland",
		Region:       "OR",
		CategoryName: "Coffee Shop",
		Phone:        "+1 503 555 0100",
		Website:      "https://cornercafe.example.com",
		Latitude:     45.52,
		Longitude:    -122.68,
		Raw:          json.RawMessage(`{"name":"` + resource + `"}`),
	}
}

func TestDiscoverLocationsWithoutAPIKey(t *testing.T) {
	svc, _ := setupGMBService(t, nil)

	_, err := svc.DiscoverLocations(request_models.ImportLocationsRequest{}, context.Background())
	assert.ErrorIs(t, err, ErrGoogleKeyMissing)
}

func TestDiscoverLocationsImportsAllAccounts(t *testing.T) {
	client := &fakeGMBClient{
		accounts: []utils.GMBAccount{
			{Resource: "accounts/1", Title: "Main"},
			{Resource: "accounts/2", Title: "Franchise"},
		},
		locations: map[string][]utils.GMBLocation{
			"accounts/1": {
				cafeLocation("accounts/1/locations/10", "Corner Cafe"),
				cafeLocation("accounts/1/locations/11", "Harbor Bakery"),
			},
			"accounts/2": {
				cafeLocation("accounts/2/locations/20", "Uptown Deli"),
			},
		},
	}
	svc, db := setupGMBService(t, client)

	summary, err := svc.DiscoverLocations(request_models.ImportLocationsRequest{}, context.Background())
	require.NoError(t, err)

	assert.True(t, summary.Success)
	assert.Equal(t, 2, summary.AccountsScanned)
	assert.Equal(t, 3, summary.LocationsFound)
	assert.Equal(t, 3, summary.BusinessesCreated)
	assert.Zero(t, summary.BusinessesUpdated)
	assert.Empty(t, summary.Errors)

	var business db_models.Business
	require.NoError(t, db.First(&business, "gmb_resource = ?", "accounts/1/locations/10").Error)
	assert.Equal(t, "Corner Cafe", business.Name)
	assert.Equal(t, "corner-cafe", business.Slug)
	assert.False(t, business.IsVisible)
	assert.False(t, business.IsVerified)
	require.NotNil(t, business.CategoryID)
	require.NotNil(t, business.CityID)

	var categoryCount int64
	require.NoError(t, db.Model(&db_models.Category{}).Count(&categoryCount).Error)
	assert.Equal(t, int64(1), categoryCount)

	var city db_models.City
	require.NoError(t, db.First(&city, "id = ?", business.CityID).Error)
	assert.Equal(t, "Portland", city.Name)
	assert.Equal(t, "OR", city.Region)
}

func TestDiscoverLocationsScopedToOneAccount(t *testing.T) {
	client := &fakeGMBClient{
		locations: map[string][]utils.GMBLocation{
			"accounts/1": {cafeLocation("accounts/1/locations/10", "Corner Cafe")},
		},
	}
	svc, _ := setupGMBService(t, client)

	summary, err := svc.DiscoverLocations(request_models.ImportLocationsRequest{
		AccountResource: "accounts/1",
	}, context.Background())
	require.NoError(t, err)

	assert.Zero(t, client.accountsCalls)
	assert.Equal(t, 1, summary.AccountsScanned)
	assert.Equal(t, 1, summary.BusinessesCreated)
}

func TestDiscoverRerunUpdatesExistingRows(t *testing.T) {
	location := cafeLocation("accounts/1/locations/10", "Corner Cafe")
	client := &fakeGMBClient{
		accounts:  []utils.GMBAccount{{Resource: "accounts/1"}},
		locations: map[string][]utils.GMBLocation{"accounts/1": {location}},
	}
	svc, db := setupGMBService(t, client)

	_, err := svc.DiscoverLocations(request_models.ImportLocationsRequest{}, context.Background())
	require.NoError(t, err)

	// An operator publishes the row between runs; the rerun must not undo that.
	require.NoError(t, db.Model(&db_models.Business{}).
		Where("gmb_resource = ?", location.Resource).
		Update("is_visible", true).Error)

	location.Phone = "+1 503 555 0199"
	client.locations["accounts/1"] = []utils.GMBLocation{location}

	summary, err := svc.DiscoverLocations(request_models.ImportLocationsRequest{}, context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.BusinessesCreated)
	assert.Equal(t, 1, summary.BusinessesUpdated)

	var count int64
	require.NoError(t, db.Model(&db_models.Business{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var business db_models.Business
	require.NoError(t, db.First(&business, "gmb_resource = ?", location.Resource).Error)
	assert.Equal(t, "+1 503 555 0199", business.Phone)
	assert.Equal(t, "corner-cafe", business.Slug)
	assert.True(t, business.IsVisible)
}

func TestDiscoverSlugCollisionGetsSuffix(t *testing.T) {
	client := &fakeGMBClient{
		accounts: []utils.GMBAccount{{Resource: "accounts/1"}},
		locations: map[string][]utils.GMBLocation{
			"accounts/1": {
				cafeLocation("accounts/1/locations/10", "Corner Cafe"),
				cafeLocation("accounts/1/locations/11", "Corner Cafe"),
			},
		},
	}
	svc, db := setupGMBService(t, client)

	summary, err := svc.DiscoverLocations(request_models.ImportLocationsRequest{}, context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.BusinessesCreated)

	var second db_models.Business
	require.NoError(t, db.First(&second, "gmb_resource = ?", "accounts/1/locations/11").Error)
	assert.True(t, strings.HasPrefix(second.Slug, "corner-cafe-"))
	assert.NotEqual(t, "corner-cafe", second.Slug)
}

func TestDiscoverAccountListingFailure(t *testing.T) {
	client := &fakeGMBClient{accountsErr: errors.New("oauth token expired")}
	svc, _ := setupGMBService(t, client)

	summary, err := svc.DiscoverLocations(request_models.ImportLocationsRequest{}, context.Background())
	require.NoError(t, err)

	assert.False(t, summary.Success)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "accounts", summary.Errors[0].ID)
	assert.Zero(t, summary.AccountsScanned)
}

func TestDiscoverLocationListingFailureIsIsolated(t *testing.T) {
	client := &fakeGMBClient{
		accounts: []utils.GMBAccount{
			{Resource: "accounts/1"},
			{Resource: "accounts/2"},
		},
		locations: map[string][]utils.GMBLocation{
			"accounts/2": {cafeLocation("accounts/2/locations/20", "Uptown Deli")},
		},
		locationsErrs: map[string]error{"accounts/1": errors.New("quota exceeded")},
	}
	svc, db := setupGMBService(t, client)

	summary, err := svc.DiscoverLocations(request_models.ImportLocationsRequest{}, context.Background())
	require.NoError(t, err)

	assert.False(t, summary.Success)
	assert.Equal(t, 2, summary.AccountsScanned)
	assert.Equal(t, 1, summary.BusinessesCreated)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "accounts/1", summary.Errors[0].ID)

	var count int64
	require.NoError(t, db.Model(&db_models.Business{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDiscoverUntitledLocationIsReportedPerUnit(t *testing.T) {
	untitled := cafeLocation("accounts/1/locations/10", "")
	client := &fakeGMBClient{
		accounts: []utils.GMBAccount{{Resource: "accounts/1"}},
		locations: map[string][]utils.GMBLocation{
			"accounts/1": {
				untitled,
				cafeLocation("accounts/1/locations/11", "Harbor Bakery"),
			},
		},
	}
	svc, _ := setupGMBService(t, client)

	summary, err := svc.DiscoverLocations(request_models.ImportLocationsRequest{}, context.Background())
	require.NoError(t, err)

	// A bad unit is reported but does not fail the run.
	assert.True(t, summary.Success)
	assert.Equal(t, 1, summary.BusinessesCreated)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "accounts/1/locations/10", summary.Errors[0].ID)
}

func TestDiscoverStopsWhenContextCanceled(t *testing.T) {
	client := &fakeGMBClient{
		locations: map[string][]utils.GMBLocation{
			"accounts/1": {cafeLocation("accounts/1/locations/10", "Corner Cafe")},
		},
	}
	svc, _ := setupGMBService(t, client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := svc.DiscoverLocations(request_models.ImportLocationsRequest{
		AccountResource: "accounts/1",
	}, ctx)
	require.NoError(t, err)

	assert.False(t, summary.Success)
	assert.Zero(t, summary.AccountsScanned)
	require.Len(t, summary.Errors, 1)
	assert.Equal(t, "accounts/1", summary.Errors[0].ID)
}