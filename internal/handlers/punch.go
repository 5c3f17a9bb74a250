package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/simmons/punch/internal/auth"
	"github.com/simmons/punch/internal/models"
	"github.com/simmons/punch/internal/punch"
	"github.com/simmons/punch/internal/store"
)

// projectID parses the :id route parameter.
func projectID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return 0, false
	}
	return id, true
}

// ownedProject loads the project and confirms it belongs to the
// authenticated user. Foreign projects look identical to missing ones.
func ownedProject(c *gin.Context, st *store.PostgresStore, id int64) (models.Project, bool) {
	project, err := st.Project(c.Request.Context(), id)
	if errors.Is(err, store.ErrProjectNotFound) || (err == nil && project.Owner != auth.Username(c)) {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return models.Project{}, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db query failed"})
		return models.Project{}, false
	}
	return project, true
}

// RegisterPunchRoutes registers the punch-submission endpoint.
//
// POST /projects/:id/punch
// - Requires X-API-Key (user context); project must belong to the user
// - The direction check and event append are a single atomic unit
// - Idempotent: retries detected via Idempotency-Key header or request_id
func RegisterPunchRoutes(r gin.IRoutes, st *store.PostgresStore) {
	r.POST("/projects/:id/punch", func(c *gin.Context) {
		id, ok := projectID(c)
		if !ok {
			return
		}
		if _, ok := ownedProject(c, st, id); !ok {
			return
		}

		var req models.PunchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON payload"})
			return
		}

		direction, ok := models.ParseDirection(req.Direction)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": `direction must be "in" or "out"`})
			return
		}

		// Idempotency precedence:
		// 1) Idempotency-Key header (recommended for retries)
		// 2) request_id in payload
		// 3) generated UUID (fallback; cannot dedupe client retries)
		requestID := c.GetHeader("Idempotency-Key")
		if requestID == "" {
			requestID = req.RequestID
		}
		if requestID == "" {
			requestID = uuid.New().String()
		}

		event, duplicate, err := st.RecordPunch(c.Request.Context(), id, direction, requestID)
		if errors.Is(err, punch.ErrStateMismatch) {
			c.JSON(http.StatusConflict, gin.H{"error": "punch direction conflicts with current state"})
			return
		}
		if errors.Is(err, store.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db insert failed"})
			return
		}

		// 201 for new punches, 200 for retried ones (idempotent success).
		status := http.StatusCreated
		if duplicate {
			status = http.StatusOK
		}

		c.JSON(status, models.PunchResponse{
			EventID:   event.ID,
			Direction: string(direction),
			Clock:     event.Clock.Format(time.RFC3339),
			Duplicate: duplicate,
		})
	})
}
