package storefront

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

// SessionCookie is the name of the storefront session cookie
const SessionCookie = "OCSESSID"

var pageNames = []string{
	"login", "account", "logout", "forgotten", "register", "success",
	"home", "search", "product", "cart", "special", "notfound",
}

// Server is a fake of the storefront pages exercised by the scenarios
type Server struct {
	store  *Store
	pages  map[string]*template.Template
	router chi.Router
	get    map[string]http.HandlerFunc
	post   map[string]http.HandlerFunc
}

// Option configures a Server
type Option func(*serverOptions)

type serverOptions struct {
	requestLogging bool
}

// WithRequestLogging logs every request through chi's logger middleware
func WithRequestLogging() Option {
	return func(o *serverOptions) { o.requestLogging = true }
}

// NewServer parses the page templates and wires the routes
func NewServer(store *Store, opts ...Option) (*Server, error) {
	var options serverOptions
	for _, opt := range opts {
		opt(&options)
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	s := &Server{
		store: store,
		pages: pages,
	}
	s.get = map[string]http.HandlerFunc{
		"account/login":       s.loginPage,
		"account/account":     s.accountPage,
		"account/logout":      s.logout,
		"account/forgotten":   s.forgottenPage,
		"account/register":    s.registerPage,
		"account/success":     s.successPage,
		"common/home":         s.homePage,
		"product/search":      s.searchPage,
		"product/product":     s.productPage,
		"checkout/cart":       s.cartPage,
		"information/special": s.specialPage,
	}
	s.post = map[string]http.HandlerFunc{
		"account/login":     s.login,
		"account/register":  s.register,
		"checkout/cart/add": s.addToCart,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if options.requestLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(s.withSession)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, routeURL("common/home"), http.StatusFound)
	})
	r.Get("/index.php", s.dispatch(s.get))
	r.Post("/index.php", s.dispatch(s.post))
	r.NotFound(s.notFound)
	s.router = r

	return s, nil
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) dispatch(routes map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Query().Get("route")
		if route == "" {
			route = "common/home"
		}
		handler, ok := routes[route]
		if !ok {
			s.notFound(w, r)
			return
		}
		handler(w, r)
	}
}

type sessionKey struct{}

// withSession makes sure every request carries a live session cookie
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(SessionCookie); err == nil {
			if _, err := s.store.Session(c.Value); err == nil {
				id = c.Value
			}
		}
		if id == "" {
			id = s.store.NewSession().ID
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, id)))
	})
}

func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionKey{}).(string)
	return id
}

func routeURL(route string) string {
	return "index.php?route=" + route
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	id := sessionID(r)
	if sess, err := s.store.Session(id); err == nil {
		data.LoggedIn = sess.LoggedIn()
	}
	data.CartCount = s.store.CartCount(id)
	flash := s.store.TakeFlash(id)
	if data.Alert.Success == "" {
		data.Alert.Success = flash.Success
	}
	if data.Alert.Danger == "" {
		data.Alert.Danger = flash.Danger
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.pages[name].ExecuteTemplate(w, "layout", data); err != nil {
		log.Printf("Error rendering %s page: %v", name, err)
	}
}
