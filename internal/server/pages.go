package server

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
)

const themeCookie = "theme"

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// theme returns the visitor's theme from the cookie, or the configured default.
func (s *Server) theme(c *gin.Context) string {
	if v, err := c.Cookie(themeCookie); err == nil && (v == config.ThemeDark || v == config.ThemeLight) {
		return v
	}
	return s.cfg.Theme.Default
}

func (s *Server) handleIndex(c *gin.Context) {
	p := s.portfolio
	c.HTML(http.StatusOK, "index.html", gin.H{
		"p":        p,
		"sections": content.Sections,
		"theme":    s.theme(c),
		"initial":  p.Profile.BrandInitial(),
		"role":     p.Profile.Roles[0],
		"hire":     contact.Compose(p.Profile.Email, p.Profile.Hire.Subject, p.Profile.Hire.Body),
	})
}

func (s *Server) handleExperience(c *gin.Context) {
	c.HTML(http.StatusOK, "experience-content.html", gin.H{
		"jobs": s.portfolio.Experience,
	})
}

func (s *Server) handleEducation(c *gin.Context) {
	c.HTML(http.StatusOK, "education-content.html", gin.H{
		"degrees": s.portfolio.Education,
	})
}

func (s *Server) handleContactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{
		"title": "Send Me a Message",
	})
}

// handleContact hands the message off to the visitor's email client. HTMX
// requests get an HX-Redirect to the mailto: link plus a confirmation
// fragment; plain form posts are redirected directly.
func (s *Server) handleContact(c *gin.Context) {
	var msg contact.Message
	if err := c.ShouldBind(&msg); err != nil {
		status := http.StatusUnprocessableEntity
		if isHTMX(c) {
			// htmx only swaps 2xx responses.
			status = http.StatusOK
		}
		c.HTML(status, "contact-error.html", gin.H{
			"error": "Please fill in your name, a valid email address and a message.",
		})
		return
	}

	link := contact.MailtoURL(s.recipient(), msg)
	log.Printf("Contact form handed off to mail client (subject %q)", msg.Subject)

	if !isHTMX(c) {
		c.Redirect(http.StatusSeeOther, link)
		return
	}

	c.Header("HX-Redirect", link)
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"title":   "Opening your email client...",
		"success": "Your message will be sent through your default email app.",
		"mailto":  link,
	})
}

// handleTheme flips the theme cookie between dark and light.
func (s *Server) handleTheme(c *gin.Context) {
	next := config.ThemeLight
	if s.theme(c) == config.ThemeLight {
		next = config.ThemeDark
	}
	c.SetCookie(themeCookie, next, 3600*24*365, "/", "", false, true)

	if isHTMX(c) {
		c.Header("HX-Refresh", "true")
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}
