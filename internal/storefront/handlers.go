package storefront

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
)

// Messages rendered in page alerts.
const (
	MsgNoMatch   = "Warning: No match for E-Mail Address and/or Password."
	MsgCartAdded = "Success: You have added a product to your shopping cart!"
)

type alert struct {
	Success string
	Danger  string
}

type pageData struct {
	Title     string
	Alert     alert
	LoggedIn  bool
	CartCount int
	Search    string

	Email        string
	Account      Account
	Form         Registration
	Errors       FieldErrors
	Product      Product
	Products     []Product
	Cart         []CartLine
	GridModuleID int
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	if sess, err := s.store.Session(sessionID(r)); err == nil && sess.LoggedIn() {
		http.Redirect(w, r, routeURL("account/account"), http.StatusFound)
		return
	}
	s.render(w, r, http.StatusOK, "login", pageData{Title: "Account Login"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	email := r.PostForm.Get("email")

	account, err := s.store.Authenticate(email, r.PostForm.Get("password"))
	if errors.Is(err, ErrNoMatch) {
		s.render(w, r, http.StatusOK, "login", pageData{
			Title: "Account Login",
			Alert: alert{Danger: MsgNoMatch},
			Email: email,
		})
		return
	}
	if err != nil {
		log.Printf("Error authenticating %s: %v", email, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := s.store.SignIn(sessionID(r), account.Email); err != nil {
		log.Printf("Error signing in %s: %v", email, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, routeURL("account/account"), http.StatusFound)
}

func (s *Server) accountPage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Session(sessionID(r))
	if err != nil || !sess.LoggedIn() {
		http.Redirect(w, r, routeURL("account/login"), http.StatusFound)
		return
	}
	account, _ := s.store.Account(sess.Email)
	s.render(w, r, http.StatusOK, "account", pageData{Title: "My Account", Account: account})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.store.SignOut(sessionID(r)); err != nil {
		log.Printf("Error signing out: %v", err)
	}
	s.render(w, r, http.StatusOK, "logout", pageData{Title: "Account Logout"})
}

func (s *Server) forgottenPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "forgotten", pageData{Title: "Forgot Your Password?"})
}

func (s *Server) registerPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register", pageData{Title: "Register Account"})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	form := Registration{
		FirstName: r.PostForm.Get("firstname"),
		LastName:  r.PostForm.Get("lastname"),
		Email:     r.PostForm.Get("email"),
		Telephone: r.PostForm.Get("telephone"),
		Password:  r.PostForm.Get("password"),
		Confirm:   r.PostForm.Get("confirm"),
		Agree:     r.PostForm.Get("agree") != "",
	}

	fieldErrs, warning := form.Validate()
	if len(fieldErrs) == 0 && warning == "" {
		account := Account{
			FirstName: strings.TrimSpace(form.FirstName),
			LastName:  strings.TrimSpace(form.LastName),
			Email:     form.Email,
			Telephone: strings.TrimSpace(form.Telephone),
		}
		err := s.store.Register(account, form.Password)
		if err == nil {
			if err := s.store.SignIn(sessionID(r), account.Email); err != nil {
				log.Printf("Error signing in new account %s: %v", account.Email, err)
			}
			http.Redirect(w, r, routeURL("account/success"), http.StatusFound)
			return
		}
		if !errors.Is(err, ErrEmailTaken) {
			log.Printf("Error registering %s: %v", account.Email, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		warning = MsgEmailUsed
	}

	form.Password, form.Confirm = "", ""
	s.render(w, r, http.StatusOK, "register", pageData{
		Title:  "Register Account",
		Alert:  alert{Danger: warning},
		Form:   form,
		Errors: fieldErrs,
	})
}

func (s *Server) successPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "success", pageData{Title: "Your Account Has Been Created!"})
}

func (s *Server) homePage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "home", pageData{Title: "Your Store", Products: s.store.Specials()})
}

func (s *Server) searchPage(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("search")
	s.render(w, r, http.StatusOK, "search", pageData{
		Title:    "Search - " + term,
		Search:   term,
		Products: s.store.Search(term),
	})
}

func (s *Server) productPage(w http.ResponseWriter, r *http.Request) {
	product, err := s.productFromValue(r.URL.Query().Get("product_id"))
	if err != nil {
		s.notFound(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "product", pageData{
		Title:        product.Name,
		Product:      product,
		GridModuleID: ProductGridModuleID,
	})
}

func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	productID, err := strconv.Atoi(r.PostForm.Get("product_id"))
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	quantity, _ := strconv.Atoi(r.PostForm.Get("quantity"))

	id := sessionID(r)
	product, err := s.store.AddToCart(id, productID, quantity)
	if errors.Is(err, ErrProductNotFound) {
		s.notFound(w, r)
		return
	}
	if err != nil {
		log.Printf("Error adding product %d to cart: %v", productID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := s.store.SetFlash(id, Flash{Success: MsgCartAdded}); err != nil {
		log.Printf("Error setting cart flash: %v", err)
	}
	http.Redirect(w, r, routeURL("product/product&product_id="+strconv.Itoa(product.ID)), http.StatusFound)
}

func (s *Server) cartPage(w http.ResponseWriter, r *http.Request) {
	lines, err := s.store.Cart(sessionID(r))
	if err != nil {
		log.Printf("Error loading cart: %v", err)
	}
	s.render(w, r, http.StatusOK, "cart", pageData{Title: "Shopping Cart", Cart: lines})
}

func (s *Server) specialPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "special", pageData{Title: "Special Offers", Products: s.store.Specials()})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "notfound", pageData{Title: "Page Not Found"})
}

func (s *Server) productFromValue(value string) (Product, error) {
	id, err := strconv.Atoi(value)
	if err != nil {
		return Product{}, ErrProductNotFound
	}
	return s.store.Product(id)
}
