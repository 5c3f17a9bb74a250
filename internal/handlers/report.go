package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/simmons/punch/internal/models"
	"github.com/simmons/punch/internal/report"
	"github.com/simmons/punch/internal/store"
	"github.com/simmons/punch/internal/timeutil"
)

// RegisterReportRoutes registers the summary-report endpoint.
//
// GET /projects/:id/report
// - Requires X-API-Key (user context); project must belong to the user
// - Returns daily totals for the current ISO week, six weekly totals, and
//   the last ten events, all most-recent-first
func RegisterReportRoutes(r gin.IRoutes, st *store.PostgresStore, builder *report.Builder) {
	r.GET("/projects/:id/report", func(c *gin.Context) {
		id, ok := projectID(c)
		if !ok {
			return
		}
		if _, ok := ownedProject(c, st, id); !ok {
			return
		}

		summary, err := builder.Summary(c.Request.Context(), id)
		if errors.Is(err, store.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		if errors.Is(err, timeutil.ErrBadLocalTime) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "report window is not a valid local time"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "report generation failed"})
			return
		}

		c.JSON(http.StatusOK, summaryResponse(summary))
	})
}

// summaryResponse flattens a report into its JSON form, rendering durations
// with the "<hours>h<minutes>m" convention.
func summaryResponse(s *models.SummaryReport) models.SummaryResponse {
	resp := models.SummaryResponse{
		NextDirection: string(s.NextDirection),
		Days:          make([]models.DayEntry, 0, len(s.Days)),
		Weeks:         make([]models.WeekEntry, 0, len(s.Weeks)),
		RecentEvents:  make([]models.EventEntry, 0, len(s.RecentEvents)),
		Anomalies:     len(s.Diagnostics),
	}
	for _, d := range s.Days {
		resp.Days = append(resp.Days, models.DayEntry{
			Date:  d.Date.String(),
			Gross: timeutil.FormatElapsed(d.Work.Gross),
			Net:   timeutil.FormatElapsed(d.Work.Net),
		})
	}
	for _, w := range s.Weeks {
		resp.Weeks = append(resp.Weeks, models.WeekEntry{
			Year:  w.Week.Year,
			Week:  w.Week.Week,
			Gross: timeutil.FormatElapsed(w.Work.Gross),
			Net:   timeutil.FormatElapsed(w.Work.Net),
		})
	}
	for _, e := range s.RecentEvents {
		resp.RecentEvents = append(resp.RecentEvents, models.EventEntry{
			ID:    e.ID,
			Type:  string(e.Type),
			Clock: e.Clock.Format(time.RFC3339),
		})
	}
	return resp
}
