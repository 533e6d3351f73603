package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kofiasare/hotelmetrics/constants"
	"github.com/kofiasare/hotelmetrics/internal/entity"
)

func parseDateParam(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: want YYYY-MM-DD", name, raw)
	}
	return &t, nil
}

func departmentParam(c *gin.Context) (constants.Department, bool) {
	raw := c.Query("department")
	if raw == "" {
		return "", false
	}
	dept, ok := constants.CanonicalizeDepartment(raw)
	if !ok {
		return "", false
	}
	return dept, true
}

// listItems returns stored items for a department, optionally bounded by a
// from/to date window (inclusive).
// GET /api/v1/items?department=...&from=...&to=...
func (s *Server) listItems(c *gin.Context) {
	dept, ok := departmentParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "department is required"})
		return
	}

	from, err := parseDateParam(c, "from")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	to, err := parseDateParam(c, "to")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := s.store.QueryItems(c.Request.Context(), dept, from, to)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if items == nil {
		items = []entity.StoredItem{}
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}
