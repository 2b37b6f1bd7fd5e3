// server/internal/store/errors.go
package store

import "errors"

var (
	// ErrHasChildren được trả về khi xóa một địa điểm còn địa điểm con.
	ErrHasChildren = errors.New("cannot delete location with children locations")

	// ErrInUseByShops được trả về khi xóa một địa điểm đang được shop sử dụng.
	ErrInUseByShops = errors.New("cannot delete location used by shops")

	// ErrHierarchyCycle được trả về khi cập nhật parent tạo thành chu trình
	// trong cây địa điểm (parent mới là chính nó hoặc một hậu duệ của nó).
	ErrHierarchyCycle = errors.New("cannot set parent to the location itself or one of its descendants")
)
