package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/relatify/relatify_go_server/config"
	"github.com/relatify/relatify_go_server/internal/model"
	"github.com/relatify/relatify_go_server/internal/pkg/cache"
	"github.com/relatify/relatify_go_server/internal/repository"
	"github.com/relatify/relatify_go_server/internal/testutil"
)

func setupScanService(t *testing.T) (*ScanService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	progressSvc := NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewBadgeRepository(db),
		cache.New(nil, 0),
		nil,
	)
	service := NewScanService(
		repository.NewScanRepository(db),
		progressSvc,
		nil,
		&config.ScanConfig{MaxSize: 5 << 20, ExpireDays: 30},
	)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}
	return service, db, cleanup
}

func TestScanService_UploadImage_Validation(t *testing.T) {
	service, db, cleanup := setupScanService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	big := make([]byte, (5<<20)+1)
	_, err := service.UploadImage(user.ID, big, "page.jpg")
	assert.Equal(t, ErrScanTooLarge, err)

	_, err = service.UploadImage(user.ID, []byte("data"), "page.pdf")
	assert.Equal(t, ErrUnsupportedFormat, err)
}

func TestScanService_UploadImage_StorageUnavailable(t *testing.T) {
	service, db, cleanup := setupScanService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	// OSS 降级运行时合法上传返回错误而非崩溃
	_, err := service.UploadImage(user.ID, []byte("jpeg data"), "page.jpg")
	assert.Equal(t, ErrStorageUnavailable, err)
}

func TestScanService_SubmitText(t *testing.T) {
	service, db, cleanup := setupScanService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	scan := testutil.TestScan(t, db, user.ID)

	resp, err := service.SubmitText(context.Background(), user.ID, scan.ID, "photosynthesis notes")
	require.NoError(t, err)
	assert.True(t, resp.Processed)
	assert.Equal(t, "photosynthesis notes", resp.ExtractedText)
}

func TestScanService_SubmitText_EmptyText(t *testing.T) {
	service, db, cleanup := setupScanService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	scan := testutil.TestScan(t, db, user.ID)

	_, err := service.SubmitText(context.Background(), user.ID, scan.ID, "   ")
	assert.Equal(t, ErrEmptyScanText, err)
}

func TestScanService_SubmitText_OwnerScoped(t *testing.T) {
	service, db, cleanup := setupScanService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	scan := testutil.TestScan(t, db, user.ID)

	_, err := service.SubmitText(context.Background(), other.ID, scan.ID, "text")
	assert.Equal(t, ErrScanNotFound, err)
}

func TestScanService_SubmitText_AlreadyProcessed(t *testing.T) {
	service, db, cleanup := setupScanService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	scan := testutil.TestScan(t, db, user.ID, testutil.WithProcessed("done"))

	_, err := service.SubmitText(context.Background(), user.ID, scan.ID, "again")
	assert.Equal(t, ErrScanAlreadyDone, err)
}

func TestScanService_SubmitText_AwardsScanMaster(t *testing.T) {
	service, db, cleanup := setupScanService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	for i := 0; i < 5; i++ {
		scan := testutil.TestScan(t, db, user.ID)
		_, err := service.SubmitText(context.Background(), user.ID, scan.ID, "some text")
		require.NoError(t, err)
	}

	has, err := repository.NewBadgeRepository(db).Has(user.ID, model.BadgeScanMaster)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestScanService_List(t *testing.T) {
	service, db, cleanup := setupScanService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	testutil.TestScan(t, db, user.ID)
	testutil.TestScan(t, db, user.ID)
	testutil.TestScan(t, db, other.ID)

	scans, err := service.List(user.ID, 10)
	require.NoError(t, err)
	assert.Len(t, scans, 2)
}

func TestScanService_PurgeExpired(t *testing.T) {
	service, db, cleanup := setupScanService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	old := testutil.TestScan(t, db, user.ID, testutil.WithScanCreatedAt(time.Now().AddDate(0, 0, -45)))
	recent := testutil.TestScan(t, db, user.ID)

	purged, err := service.PurgeExpired(100)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	scanRepo := repository.NewScanRepository(db)
	_, err = scanRepo.GetByID(old.ID)
	assert.Error(t, err)
	_, err = scanRepo.GetByID(recent.ID)
	assert.NoError(t, err)
}
