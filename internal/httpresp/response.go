package httpresp

import "github.com/gin-gonic/gin"

// ListResponse wraps collection payloads. Total carries the full
// result count, which differs from len(Data) on paginated endpoints.
type ListResponse[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(201, data)
}

func List[T any](c *gin.Context, data []T, total int64) {
	if data == nil {
		data = []T{}
	}
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Total: total,
	})
}
