package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/kofiasare/hotelmetrics/constants"
)

// ingestDocument accepts a multipart upload, spools it to a temp file with
// the original extension preserved, and runs the full ingestion pipeline.
// POST /api/v1/ingest
func (s *Server) ingestDocument(c *gin.Context) {
	uploaded, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}

	dept := constants.Department(c.DefaultPostForm("department", string(constants.FrontOffice)))
	if canonical, ok := constants.CanonicalizeDepartment(string(dept)); ok {
		dept = canonical
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown department %q", dept)})
		return
	}

	// Spool under the original base name so stored items carry the client's
	// filename, which the idempotency index keys on.
	tempDir, err := os.MkdirTemp("", "hotelmetrics-upload-")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "saving upload failed"})
		return
	}
	defer os.RemoveAll(tempDir)

	tempPath := filepath.Join(tempDir, filepath.Base(uploaded.Filename))
	if err := c.SaveUploadedFile(uploaded, tempPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "saving upload failed"})
		return
	}

	summary, err := s.ingest.IngestFile(c.Request.Context(), tempPath, dept)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
