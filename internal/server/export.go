package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// exportXLSX streams an XLSX workbook of stored items for a department.
// GET /api/v1/export/xlsx?department=...&from=...&to=...
func (s *Server) exportXLSX(c *gin.Context) {
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

	data, err := s.export.ExportItemsXLSX(c.Request.Context(), dept, from, to)
	if err != nil {
		s.respondError(c, err)
		return
	}

	filename := fmt.Sprintf("kpi-items-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
