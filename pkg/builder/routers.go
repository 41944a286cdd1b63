package builder

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/loopfz/gadgeto/tonic"
	"github.com/ribo916/postman-builder/pkg/builder/handler"
	"github.com/ribo916/postman-builder/pkg/builder/helper/problem"
	"github.com/wI2L/fizz"
	"github.com/wI2L/fizz/openapi"
	"golang.org/x/time/rate"
)

var (
	apiVersionHeader = fizz.Header(
		"API-Version",
		"The API version of the response",
		"",
	)

	notFoundResponse = fizz.Response(
		"404",
		"Not Found",
		nil,
		nil,
		nil,
	)
)

func NewRouter(apiVersion string, controller *handler.ToolsController) *fizz.Fizz {
	//gin.SetMode(gin.ReleaseMode)
	g := gin.Default()

	// Configure CORS to allow access from everywhere
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "API-Version"}
	config.ExposeHeaders = []string{"API-Version"}
	g.Use(cors.New(config))

	g.Use(APIVersionMiddleware(apiVersion))
	g.Use(RateLimitMiddleware(rate.NewLimiter(rate.Limit(20), 40)))
	f := fizz.NewFromEngine(g)

	if f.Generator().API().Components.SecuritySchemes == nil {
		f.Generator().API().Components.SecuritySchemes = map[string]*openapi.SecuritySchemeOrRef{}
	}
	f.Generator().API().Components.SecuritySchemes["apiKey"] = &openapi.SecuritySchemeOrRef{
		SecurityScheme: &openapi.SecurityScheme{
			Type: "apiKey",
			In:   "header",
			Name: "X-Api-Key",
		},
	}

	info := &openapi.Info{
		Title:       "Postman Builder API v1",
		Description: "Converts OpenAPI specifications into Postman collections and publishes them",
		Version:     apiVersion,
		Contact: &openapi.Contact{
			Name: "postman-builder",
			URL:  "https://github.com/ribo916/postman-builder/issues",
		},
	}

	root := f.Group("/v1", "API v1", "Postman Builder V1 routes")

	tools := root.Group("", "Tools", "Conversion and publishing")

	// POST /v1/postman/convert
	tools.POST("/postman/convert",
		[]fizz.OperationOption{
			fizz.ID("CreatePostmanCollection"),
			fizz.Summary("Build a Postman collection"),
			fizz.Description("Converts OpenAPI to a transformed Postman Collection JSON. Body: { oasUrl } or { oasBody } (stringified JSON or YAML)."),
			apiVersionHeader,
			notFoundResponse,
		},
		tonic.Handler(controller.ConvertPostmanCollection, 200),
	)

	// POST /v1/postman/publish
	tools.POST("/postman/publish",
		[]fizz.OperationOption{
			fizz.ID("PublishPostmanCollection"),
			fizz.Summary("Build and publish a Postman collection"),
			fizz.Description("Converts OpenAPI to a Postman collection, writes the artifact, and creates it in the configured workspace. Body: { oasUrl } or { oasBody }."),
			apiVersionHeader,
			notFoundResponse,
		},
		tonic.Handler(controller.PublishPostmanCollection, 200),
	)

	// POST /v1/lint
	tools.POST("/lint",
		[]fizz.OperationOption{
			fizz.ID("lintOpenAPIPost"),
			fizz.Summary("Lint OpenAPI (POST)"),
			fizz.Description("Lints an OpenAPI specification with the vacuum recommended ruleset. Body: { oasUrl } or { oasBody } (stringified JSON or YAML)."),
			apiVersionHeader,
			notFoundResponse,
		},
		tonic.Handler(controller.LintOAS, 200),
	)

	// OpenAPI documentation
	f.GET("/v1/openapi.json", []fizz.OperationOption{}, f.OpenAPI(info, "json"))

	return f
}

type apiVersionWriter struct {
	gin.ResponseWriter
	version string
}

func (w *apiVersionWriter) WriteHeader(code int) {
	if code >= 200 && code < 300 {
		w.Header().Set("API-Version", w.version)
	}
	w.ResponseWriter.WriteHeader(code)
}

func APIVersionMiddleware(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer = &apiVersionWriter{c.Writer, version}
		c.Next()
	}
}

// RateLimitMiddleware rejects requests once the shared limiter is drained.
func RateLimitMiddleware(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			apiErr := problem.NewTooManyRequests("rate limit exceeded, slow down")
			c.Header("Content-Type", "application/problem+json")
			c.AbortWithStatusJSON(apiErr.Status, apiErr)
			return
		}
		c.Next()
	}
}
