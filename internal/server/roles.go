package server

import (
	"html/template"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/typing"
)

// handleRoles streams the hero typing animation as "role" server-sent
// events. Each connection owns one animator, disposed when the client goes
// away.
func (s *Server) handleRoles(c *gin.Context) {
	id := uuid.NewString()

	// Single slot holding the newest frame; a slow client skips frames
	// instead of lagging behind.
	frames := make(chan string, 1)
	anim, err := typing.New(s.portfolio.Profile.Roles, s.scheduler, func(st typing.State) {
		text := st.Text()
		select {
		case frames <- text:
		default:
			select {
			case <-frames:
			default:
			}
			frames <- text
		}
	})
	if err != nil {
		log.Printf("Roles stream %s: %v", id, err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	anim.Start()
	defer anim.Dispose()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case text := <-frames:
			c.SSEvent("role", template.HTMLEscapeString(text))
			return true
		}
	})

	if gin.Mode() == gin.DebugMode {
		log.Printf("Roles stream %s closed", id)
	}
}
