// server/internal/store/shop_store_test.go
package store_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"vendor-shop-api-server/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
)

var sqlErrForeignKey = errors.New("foreign key constraint fails")

func newShopStore(t *testing.T) (*store.ShopStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return store.NewShopStore(db), mock
}

var shopColumns = []string{"id", "title", "type", "latitude", "longitude", "status", "created_at", "updated_at"}

func TestCreateShopDefaultsStatus(t *testing.T) {
	s, mock := newShopStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO shops (title, type, latitude, longitude, status, created_at) VALUES (?, ?, ?, ?, ?, NOW())")).
		WithArgs("Corner Deli", "retail", 40.7128, -74.006, "active").
		WillReturnResult(sqlmock.NewResult(3, 1))

	id, err := s.CreateShop(context.Background(), store.ShopFields{
		Title: "Corner Deli", Type: "retail", Latitude: 40.7128, Longitude: -74.006,
	})
	if err != nil {
		t.Fatalf("CreateShop: %v", err)
	}
	if id != 3 {
		t.Errorf("id = %d, want 3", id)
	}
	expectations(t, mock)
}

func TestAssignShopLocationsReplaces(t *testing.T) {
	s, mock := newShopStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM shop_locations WHERE shop_id = ?")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO shop_locations (shop_id, location_id) VALUES (?, ?)")).
		WithArgs(int64(3), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Tập cũ {1,2} được thay trọn vẹn bằng {5}
	if err := s.AssignShopLocations(context.Background(), 3, []int64{5}); err != nil {
		t.Fatalf("AssignShopLocations: %v", err)
	}
	expectations(t, mock)
}

func TestAssignShopLocationsDedupes(t *testing.T) {
	s, mock := newShopStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM shop_locations WHERE shop_id = ?")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO shop_locations")).
		WithArgs(int64(3), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO shop_locations")).
		WithArgs(int64(3), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Id trùng lặp chỉ được insert một lần
	if err := s.AssignShopLocations(context.Background(), 3, []int64{1, 1, 2, 1}); err != nil {
		t.Fatalf("AssignShopLocations: %v", err)
	}
	expectations(t, mock)
}

func TestAssignShopLocationsEmptyClears(t *testing.T) {
	s, mock := newShopStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM shop_locations WHERE shop_id = ?")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	if err := s.AssignShopLocations(context.Background(), 3, []int64{}); err != nil {
		t.Fatalf("AssignShopLocations: %v", err)
	}
	expectations(t, mock)
}

func TestAssignShopLocationsRollsBackOnFailure(t *testing.T) {
	s, mock := newShopStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM shop_locations WHERE shop_id = ?")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO shop_locations")).
		WithArgs(int64(3), int64(9)).
		WillReturnError(sqlErrForeignKey)
	mock.ExpectRollback()

	err := s.AssignShopLocations(context.Background(), 3, []int64{9})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	expectations(t, mock)
}

func TestGetShopByIDRoundTrip(t *testing.T) {
	s, mock := newShopStore(t)

	created := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM shops WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(shopColumns).
			AddRow(3, "Corner Deli", "retail", 40.7128, -74.006, "active", created, nil))
	mock.ExpectQuery(regexp.QuoteMeta("FROM shop_locations sl")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "location_type_id", "name", "parent_location_id", "type_name"}).
			AddRow(11, 2, "New York", 10, "state"))

	shop, err := s.GetShopByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetShopByID: %v", err)
	}
	if shop == nil {
		t.Fatal("shop = nil, want record")
	}
	if shop.Title != "Corner Deli" || shop.Type != "retail" || shop.Status != "active" {
		t.Errorf("fields changed on round trip: %+v", shop)
	}
	if shop.Latitude != 40.7128 || shop.Longitude != -74.006 {
		t.Errorf("coordinates changed on round trip: %+v", shop)
	}
	if len(shop.Locations) != 1 || shop.Locations[0].TypeName != "state" {
		t.Errorf("locations = %+v, want one entry with type name", shop.Locations)
	}
	expectations(t, mock)
}

func TestGetShopByIDNotFound(t *testing.T) {
	s, mock := newShopStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM shops WHERE id = ?")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(shopColumns))

	shop, err := s.GetShopByID(context.Background(), 99)
	if err != nil {
		t.Fatalf("GetShopByID: %v", err)
	}
	if shop != nil {
		t.Errorf("shop = %+v, want nil", shop)
	}
	expectations(t, mock)
}

func TestGetShopsPagination(t *testing.T) {
	s, mock := newShopStore(t)

	// Trang 1: limit 10, offset 0
	firstPage := sqlmock.NewRows(shopColumns)
	for i := 0; i < 10; i++ {
		firstPage.AddRow(int64(i+1), "Shop", "retail", 1.0, 2.0, "active", time.Now(), nil)
	}
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY s.created_at DESC LIMIT 10 OFFSET 0")).
		WillReturnRows(firstPage)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT s.id) FROM shops s")).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(25))

	page1, err := s.GetShops(context.Background(), store.ShopFilters{}, 1, 10)
	if err != nil {
		t.Fatalf("GetShops page 1: %v", err)
	}
	if len(page1.Shops) != 10 {
		t.Errorf("page 1 len = %d, want 10", len(page1.Shops))
	}
	if page1.Pagination.TotalPages != 3 || page1.Pagination.Total != 25 {
		t.Errorf("pagination = %+v, want total 25 totalPages 3", page1.Pagination)
	}

	// Trang 3: offset 20, còn lại 5 shop
	lastPage := sqlmock.NewRows(shopColumns)
	for i := 20; i < 25; i++ {
		lastPage.AddRow(int64(i+1), "Shop", "retail", 1.0, 2.0, "active", time.Now(), nil)
	}
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY s.created_at DESC LIMIT 10 OFFSET 20")).
		WillReturnRows(lastPage)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT s.id) FROM shops s")).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(25))

	page3, err := s.GetShops(context.Background(), store.ShopFilters{}, 3, 10)
	if err != nil {
		t.Fatalf("GetShops page 3: %v", err)
	}
	if len(page3.Shops) != 5 {
		t.Errorf("page 3 len = %d, want 5", len(page3.Shops))
	}
	expectations(t, mock)
}

func TestGetShopsCoercesBadPaging(t *testing.T) {
	s, mock := newShopStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT 10 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows(shopColumns))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT s.id)")).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(0))

	// page/limit không hợp lệ rơi về 1/10 thay vì báo lỗi
	result, err := s.GetShops(context.Background(), store.ShopFilters{}, 0, -5)
	if err != nil {
		t.Fatalf("GetShops: %v", err)
	}
	if result.Pagination.Page != 1 || result.Pagination.Limit != 10 {
		t.Errorf("pagination = %+v, want page 1 limit 10", result.Pagination)
	}
	expectations(t, mock)
}

func TestGetShopsFilterConjunction(t *testing.T) {
	s, mock := newShopStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN shop_locations sl ON s.id = sl.shop_id WHERE sl.location_id = ? AND s.type = ? AND s.status = ?")).
		WithArgs(int64(11), "retail", "active").
		WillReturnRows(sqlmock.NewRows(shopColumns).
			AddRow(3, "Corner Deli", "retail", 1.0, 2.0, "active", time.Now(), nil))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(DISTINCT s.id) FROM shops s JOIN shop_locations sl")).
		WithArgs(int64(11), "retail", "active").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(1))

	result, err := s.GetShops(context.Background(), store.ShopFilters{
		Type: "retail", Status: "active", LocationID: 11,
	}, 1, 10)
	if err != nil {
		t.Fatalf("GetShops: %v", err)
	}
	if len(result.Shops) != 1 || result.Shops[0].Type != "retail" || result.Shops[0].Status != "active" {
		t.Errorf("result = %+v, want only the matching intersection", result.Shops)
	}
	expectations(t, mock)
}

func TestUpdateShopFullReplace(t *testing.T) {
	s, mock := newShopStore(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE shops SET title = ?, type = ?, latitude = ?, longitude = ?, status = ?, updated_at = NOW() WHERE id = ?")).
		WithArgs("Renamed", "wholesale", 1.5, 2.5, "inactive", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := s.UpdateShop(context.Background(), 3, store.ShopFields{
		Title: "Renamed", Type: "wholesale", Latitude: 1.5, Longitude: 2.5, Status: "inactive",
	})
	if err != nil {
		t.Fatalf("UpdateShop: %v", err)
	}
	if !updated {
		t.Error("updated = false, want true")
	}
	expectations(t, mock)
}

func TestDeleteShopTransactional(t *testing.T) {
	s, mock := newShopStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM shop_locations WHERE shop_id = ?")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM shops WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deleted, err := s.DeleteShop(context.Background(), 3)
	if err != nil {
		t.Fatalf("DeleteShop: %v", err)
	}
	if !deleted {
		t.Error("deleted = false, want true")
	}
	expectations(t, mock)
}

func TestDeleteShopRollsBackOnFailure(t *testing.T) {
	s, mock := newShopStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM shop_locations WHERE shop_id = ?")).
		WithArgs(int64(3)).
		WillReturnError(sqlErrForeignKey)
	mock.ExpectRollback()

	_, err := s.DeleteShop(context.Background(), 3)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	expectations(t, mock)
}
