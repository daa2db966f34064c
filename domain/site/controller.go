package site

import (
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/akeren/commit-waitlist/config"
	"github.com/akeren/commit-waitlist/config/router"
	"github.com/akeren/commit-waitlist/internal/log"
	"github.com/akeren/commit-waitlist/pkg/constants"
	"github.com/akeren/commit-waitlist/pkg/emailaddr"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	pageTitle       = "Commit — Waitlist"
	pageDescription = "Join the Commit waitlist."
	siteName        = "Commit"
	twitterCreator  = "@vexlsgg"
	indexTemplate   = "index.html"
)

var pageKeywords = strings.Join([]string{
	"habit tracker", "habit tracking", "consistency", "streaks", "productivity", "waitlist", "Commit app",
}, ", ")

// PageData feeds templates/index.html.
type PageData struct {
	Title          string
	Description    string
	SiteName       string
	CanonicalURL   string
	Keywords       string
	TwitterCreator string
	EmailPattern   string
	SubmitPath     string
}

func newPageData(site *config.SiteConfig) PageData {
	return PageData{
		Title:          pageTitle,
		Description:    pageDescription,
		SiteName:       siteName,
		CanonicalURL:   site.BaseURL + "/",
		Keywords:       pageKeywords,
		TwitterCreator: twitterCreator,
		EmailPattern:   emailaddr.Pattern,
		SubmitPath:     constants.WaitlistPath,
	}
}

func parseTemplates() *template.Template {
	return template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))
}

// NewSiteController serves the landing page, robots.txt and sitemap.xml.
func NewSiteController(site *config.SiteConfig, logger *log.Logger) *router.RESTController {
	data := newPageData(site)

	return router.NewRESTController(
		"SiteController",
		"/",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.SetHTMLTemplate(parseTemplates())

			rs.AddGetHandlerFunc(c, "", func(ctx *router.RequestContext) {
				ctx.HTML(http.StatusOK, indexTemplate, data)
			})

			rs.AddGetHandlerFunc(c, "robots.txt", func(ctx *router.RequestContext) {
				ctx.String(http.StatusOK, RobotsText(site.BaseURL))
			})

			rs.AddGetHandlerFunc(c, "sitemap.xml", func(ctx *router.RequestContext) {
				body, err := SitemapXML(site.BaseURL, time.Now())
				if err != nil {
					router.GetLogger(ctx).Error("Failed to render sitemap", "error", err)
					ctx.JSON(http.StatusInternalServerError, router.InternalServerErrorResult("Failed to render sitemap").ToJSON())
					return
				}
				ctx.Data(http.StatusOK, "application/xml; charset=utf-8", body)
			})

			logger.Debug("Site routes registered", "base_url", site.BaseURL)
		},
	)
}
