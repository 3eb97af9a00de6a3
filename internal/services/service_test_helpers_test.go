package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jarcoal/httpmock"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"bizlens/internal/models/db_models"
	"bizlens/pkg/utils"
)

// setupHTTPMock activates httpmock and registers cleanup with the test.
func setupHTTPMock(t *testing.T) {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
}

// setupTestDB opens a unique in-memory SQLite database per test and migrates
// the given models.
func setupTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type moderatedMail struct {
	to       string
	business string
	approved bool
	note     string
}

// fakeMailService records outgoing mail instead of talking to an SMTP server.
type fakeMailService struct {
	moderated  []moderatedMail
	resetTo    string
	resetToken string
	err        error
}

func (f *fakeMailService) SendReviewModeratedMail(to, businessName string, approved bool, note string) error {
	if f.err != nil {
		return f.err
	}
	f.moderated = append(f.moderated, moderatedMail{to: to, business: businessName, approved: approved, note: note})
	return nil
}

func (f *fakeMailService) SendMailToResetPassword(to, token string) error {
	if f.err != nil {
		return f.err
	}
	f.resetTo = to
	f.resetToken = token
	return nil
}

// fakeSettingsService answers GetBool from a fixed map and leaves the rest of
// the interface inert.
type fakeSettingsService struct {
	bools map[string]bool
}

func (f *fakeSettingsService) GetBool(_ context.Context, key string, fallback bool) bool {
	if v, ok := f.bools[key]; ok {
		return v
	}
	return fallback
}

func (f *fakeSettingsService) GetSetting(string, context.Context) (*db_models.AppSetting, error) {
	return nil, utils.ErrSettingNotFound
}

func (f *fakeSettingsService) UpdateSetting(string, json.RawMessage, string, context.Context) error {
	return nil
}

func (f *fakeSettingsService) ListSettings(context.Context) ([]db_models.AppSetting, error) {
	return nil, nil
}

type fakeSafeSearchClient struct {
	verdict utils.SafeSearchVerdict
	err     error
	calls   int
}

func (f *fakeSafeSearchClient) Detect(context.Context, string) (utils.SafeSearchVerdict, error) {
	f.calls++
	if f.err != nil {
		return utils.SafeSearchVerdict{}, f.err
	}
	return f.verdict, nil
}
