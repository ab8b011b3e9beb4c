package storefront

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Domain errors
var (
	ErrNoMatch         = errors.New("no match for e-mail address and/or password")
	ErrEmailTaken      = errors.New("e-mail address is already registered")
	ErrProductNotFound = errors.New("product not found")
	ErrSessionNotFound = errors.New("session not found")
)

// Account is a registered customer
type Account struct {
	FirstName    string
	LastName     string
	Email        string
	Telephone    string
	passwordHash []byte
}

// Product is a catalogue entry
type Product struct {
	ID      int
	Name    string
	Model   string
	Price   string
	Special string
}

// OnSpecial returns true if the product has a special price
func (p Product) OnSpecial() bool {
	return p.Special != ""
}

// CartLine is one product in a shopping cart
type CartLine struct {
	Product  Product
	Quantity int
}

// Session is the server side state behind the session cookie
type Session struct {
	ID      string
	Email   string
	Flash   Flash
	cart    map[int]int
	ordered []int
}

// Flash carries a one-shot message to the next rendered page
type Flash struct {
	Success string
	Danger  string
}

// LoggedIn returns true if a customer is signed in on this session
func (s *Session) LoggedIn() bool {
	return s.Email != ""
}

// Store keeps accounts, the catalogue and sessions in memory
type Store struct {
	mu         sync.RWMutex
	accounts   map[string]*Account
	products   map[int]Product
	sessions   map[string]*Session
	bcryptCost int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		accounts:   make(map[string]*Account),
		products:   make(map[int]Product),
		sessions:   make(map[string]*Session),
		bcryptCost: bcrypt.MinCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account with the given password
func (s *Store) Register(account Account, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	key := normalizeEmail(account.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[key]; exists {
		return ErrEmailTaken
	}
	account.passwordHash = hash
	s.accounts[key] = &account
	return nil
}

// Authenticate checks the credentials and returns the matching account
func (s *Store) Authenticate(email, password string) (Account, error) {
	s.mu.RLock()
	account, ok := s.accounts[normalizeEmail(email)]
	s.mu.RUnlock()

	if !ok {
		return Account{}, ErrNoMatch
	}
	if err := bcrypt.CompareHashAndPassword(account.passwordHash, []byte(password)); err != nil {
		return Account{}, ErrNoMatch
	}
	return *account, nil
}

// Account looks up an account by e-mail
func (s *Store) Account(email string) (Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[normalizeEmail(email)]
	if !ok {
		return Account{}, false
	}
	return *account, true
}

// AddProduct adds or replaces a catalogue entry
func (s *Store) AddProduct(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

// Product looks up a product by id
func (s *Store) Product(id int) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return p, nil
}

// Search returns products whose name contains term, ignoring case, ordered by id
func (s *Store) Search(term string) []Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	return s.filter(func(p Product) bool {
		return strings.Contains(strings.ToLower(p.Name), term)
	})
}

// Specials returns the products that carry a special price
func (s *Store) Specials() []Product {
	return s.filter(Product.OnSpecial)
}

func (s *Store) filter(keep func(Product) bool) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Product
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NewSession starts an anonymous session
func (s *Store) NewSession() *Session {
	sess := &Session{
		ID:   uuid.New().String(),
		cart: make(map[int]int),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

// Session returns a snapshot of the session with the given id
func (s *Store) Session(id string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return *sess, nil
}

func (s *Store) withSession(id string, fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	return fn(sess)
}

// SignIn attaches an account to the session
func (s *Store) SignIn(sessionID, email string) error {
	return s.withSession(sessionID, func(sess *Session) error {
		sess.Email = normalizeEmail(email)
		return nil
	})
}

// SignOut detaches the account and empties the cart
func (s *Store) SignOut(sessionID string) error {
	return s.withSession(sessionID, func(sess *Session) error {
		sess.Email = ""
		sess.cart = make(map[int]int)
		sess.ordered = nil
		return nil
	})
}

// SetFlash stores a message for the next page render
func (s *Store) SetFlash(sessionID string, flash Flash) error {
	return s.withSession(sessionID, func(sess *Session) error {
		sess.Flash = flash
		return nil
	})
}

// TakeFlash returns the pending message and clears it
func (s *Store) TakeFlash(sessionID string) Flash {
	var flash Flash
	_ = s.withSession(sessionID, func(sess *Session) error {
		flash = sess.Flash
		sess.Flash = Flash{}
		return nil
	})
	return flash
}

// AddToCart adds quantity units of a product to the session's cart
func (s *Store) AddToCart(sessionID string, productID, quantity int) (Product, error) {
	product, err := s.Product(productID)
	if err != nil {
		return Product{}, err
	}
	if quantity < 1 {
		quantity = 1
	}

	err = s.withSession(sessionID, func(sess *Session) error {
		if _, seen := sess.cart[productID]; !seen {
			sess.ordered = append(sess.ordered, productID)
		}
		sess.cart[productID] += quantity
		return nil
	})
	return product, err
}

// Cart returns the cart lines in the order products were first added
func (s *Store) Cart(sessionID string) ([]CartLine, error) {
	var ids []int
	var quantities map[int]int
	err := s.withSession(sessionID, func(sess *Session) error {
		ids = append(ids, sess.ordered...)
		quantities = make(map[int]int, len(sess.cart))
		for id, qty := range sess.cart {
			quantities[id] = qty
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	lines := make([]CartLine, 0, len(ids))
	for _, id := range ids {
		p, err := s.Product(id)
		if err != nil {
			continue
		}
		lines = append(lines, CartLine{Product: p, Quantity: quantities[id]})
	}
	return lines, nil
}

// CartCount returns the number of units in the session's cart
func (s *Store) CartCount(sessionID string) int {
	count := 0
	_ = s.withSession(sessionID, func(sess *Session) error {
		for _, qty := range sess.cart {
			count += qty
		}
		return nil
	})
	return count
}
