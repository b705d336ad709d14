package server

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	AllowOriginHeader       = "Access-Control-Allow-Origin"
	AllowHeadersHeader      = "Access-Control-Allow-Headers"
	AllowMethodsHeader      = "Access-Control-Allow-Methods"
	AllControlRequestHeader = "Access-Control-Request-Method"
	AllowCredentialsHeader  = "Access-Control-Allow-Credentials"
	ExposeHeadersHeader     = "Access-Control-Expose-Headers"
	MaxAgeHeader            = "Access-Control-Max-Age"
	Separator               = ", "
)

// Cors configures cross origin access to the HTTP routes, including stored files.
type Cors struct {
	AllowCredentials *bool    `yaml:"allowCredentials,omitempty" json:"allowCredentials,omitempty"`
	AllowHeaders     []string `yaml:"allowHeaders,omitempty" json:"allowHeaders,omitempty"`
	AllowMethods     []string `yaml:"allowMethods,omitempty" json:"allowMethods,omitempty"`
	AllowOrigins     []string `yaml:"allowOrigins,omitempty" json:"allowOrigins,omitempty"`
	ExposeHeaders    []string `yaml:"exposeHeaders,omitempty" json:"exposeHeaders,omitempty"`
	MaxAge           *int64   `yaml:"maxAge,omitempty" json:"maxAge,omitempty"`
}

func (c *Cors) originMap() map[string]bool {
	var result = make(map[string]bool, len(c.AllowOrigins))
	for _, origin := range c.AllowOrigins {
		result[origin] = true
	}
	return result
}

// Middleware sets CORS headers and answers preflight requests.
func (c *Cors) Middleware(next http.Handler) http.Handler {
	allowed := c.originMap()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.setHeaders(w, r, allowed)
		if r.Method == http.MethodOptions && r.Header.Get(AllControlRequestHeader) != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (c *Cors) setHeaders(writer http.ResponseWriter, request *http.Request, allowedOrigins map[string]bool) {
	origin := request.Header.Get("Origin")
	header := writer.Header()
	if allowedOrigins["*"] {
		if origin == "" {
			header.Set(AllowOriginHeader, "*")
		} else {
			header.Set(AllowOriginHeader, origin)
		}
	} else if origin != "" && allowedOrigins[origin] {
		header.Set(AllowOriginHeader, origin)
	}
	if len(c.AllowMethods) > 0 {
		methods := strings.Join(c.AllowMethods, Separator)
		if methods == "*" {
			methods = request.Header.Get(AllControlRequestHeader)
			if methods == "" {
				methods = request.Method
			}
		}
		header.Set(AllowMethodsHeader, methods)
	}
	if len(c.AllowHeaders) > 0 {
		allowedHeaders := strings.Join(c.AllowHeaders, Separator)
		if allowedHeaders == "*" {
			allowedHeaders = "Content-Type,Authorization,Mcp-Session-Id,Mcp-Protocol-Version"
		}
		header.Set(AllowHeadersHeader, allowedHeaders)
	}
	if c.AllowCredentials != nil {
		header.Set(AllowCredentialsHeader, strconv.FormatBool(*c.AllowCredentials))
	}
	if c.MaxAge != nil {
		header.Set(MaxAgeHeader, strconv.FormatInt(*c.MaxAge, 10))
	}
	if len(c.ExposeHeaders) > 0 {
		exposedHeaders := strings.Join(c.ExposeHeaders, Separator)
		if exposedHeaders == "*" {
			// browsers need Content-Disposition exposed to read the original filename
			exposedHeaders = "Content-Type,Content-Disposition,Mcp-Session-Id"
		}
		header.Set(ExposeHeadersHeader, exposedHeaders)
	}
}

// DefaultCors allows any origin and exposes the file download headers.
func DefaultCors() *Cors {
	return &Cors{
		AllowHeaders:  []string{"*"},
		AllowMethods:  []string{"*"},
		AllowOrigins:  []string{"*"},
		ExposeHeaders: []string{"*"},
	}
}

// originValidationMiddleware rejects requests whose Origin header is not in
// allowed. Requests without Origin (non-browser clients) pass; "*" allows all.
func originValidationMiddleware(allowed []string) Middleware {
	return func(next http.Handler) http.Handler {
		allowedMap := make(map[string]bool, len(allowed))
		for _, v := range allowed {
			allowedMap[v] = true
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || allowedMap["*"] || allowedMap[origin] {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, "origin not allowed", http.StatusForbidden)
		})
	}
}
