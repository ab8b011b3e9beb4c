package storefront

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore()
	require.NoError(t, Seed(store, "Jane", "Doe", "jane@example.com", "secret123"))
	return store
}

func TestStore_Authenticate(t *testing.T) {
	store := seededStore(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid credentials", "jane@example.com", "secret123", nil},
		{"email is case insensitive", " Jane@Example.com ", "secret123", nil},
		{"wrong password", "jane@example.com", "invalidpassword123", ErrNoMatch},
		{"unknown email", "nonexistent1@example.com", "anypassword", ErrNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := store.Authenticate(tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Jane", account.FirstName)
		})
	}
}

func TestStore_RegisterDuplicate(t *testing.T) {
	store := seededStore(t)

	err := store.Register(Account{Email: "JANE@example.com"}, "other")

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSeed_WithoutAccount(t *testing.T) {
	store := NewStore()

	require.NoError(t, Seed(store, "", "", "", ""))

	_, ok := store.Account("")
	assert.False(t, ok)
	assert.Len(t, store.Search("a"), 4)
}

func TestStore_Search(t *testing.T) {
	store := seededStore(t)

	tests := []struct {
		term    string
		wantIDs []int
	}{
		{"nikon", []int{31, 46}},
		{"NIKON", []int{31, 46}},
		{"  nikon d3", []int{31}},
		{"canon", []int{30}},
		{"xbox", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			var ids []int
			for _, p := range store.Search(tt.term) {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestStore_Specials(t *testing.T) {
	store := seededStore(t)

	var ids []int
	for _, p := range store.Specials() {
		ids = append(ids, p.ID)
	}

	assert.Equal(t, []int{28, 30, 43}, ids)
}

func TestStore_Cart(t *testing.T) {
	// GIVEN
	store := seededStore(t)
	sess := store.NewSession()

	// WHEN
	_, err := store.AddToCart(sess.ID, 46, 0)
	require.NoError(t, err)
	product, err := store.AddToCart(sess.ID, 31, 2)
	require.NoError(t, err)
	_, err = store.AddToCart(sess.ID, 46, 1)
	require.NoError(t, err)

	// THEN
	assert.Equal(t, "Nikon D300", product.Name)
	lines, err := store.Cart(sess.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 46, lines[0].Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 31, lines[1].Product.ID)
	assert.Equal(t, 4, store.CartCount(sess.ID))
}

func TestStore_CartErrors(t *testing.T) {
	store := seededStore(t)
	sess := store.NewSession()

	_, err := store.AddToCart(sess.ID, 999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = store.AddToCart("missing", 31, 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.Zero(t, store.CartCount("missing"))
}

func TestStore_SessionLifecycle(t *testing.T) {
	store := seededStore(t)
	sess := store.NewSession()
	_, err := store.AddToCart(sess.ID, 31, 1)
	require.NoError(t, err)

	require.NoError(t, store.SignIn(sess.ID, "Jane@example.com"))
	got, err := store.Session(sess.ID)
	require.NoError(t, err)
	assert.True(t, got.LoggedIn())
	assert.Equal(t, "jane@example.com", got.Email)

	require.NoError(t, store.SignOut(sess.ID))
	got, err = store.Session(sess.ID)
	require.NoError(t, err)
	assert.False(t, got.LoggedIn())
	assert.Zero(t, store.CartCount(sess.ID))

	assert.ErrorIs(t, store.SignIn("missing", "jane@example.com"), ErrSessionNotFound)
}

func TestStore_FlashIsOneShot(t *testing.T) {
	store := NewStore()
	sess := store.NewSession()

	require.NoError(t, store.SetFlash(sess.ID, Flash{Success: MsgCartAdded}))

	assert.Equal(t, MsgCartAdded, store.TakeFlash(sess.ID).Success)
	assert.Empty(t, store.TakeFlash(sess.ID).Success)
}

func TestRegistration_Validate(t *testing.T) {
	valid := Registration{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Telephone: "1234567890",
		Password:  "password123",
		Confirm:   "password123",
		Agree:     true,
	}

	tests := []struct {
		name        string
		mutate      func(r *Registration)
		wantFields  FieldErrors
		wantWarning string
	}{
		{"valid", func(r *Registration) {}, FieldErrors{}, ""},
		{"missing first name", func(r *Registration) { r.FirstName = "" }, FieldErrors{"firstname": MsgFirstName}, ""},
		{"blank last name", func(r *Registration) { r.LastName = "   " }, FieldErrors{"lastname": MsgLastName}, ""},
		{"first name too long", func(r *Registration) { r.FirstName = "abcdefghijklmnopqrstuvwxyzabcdefg" }, FieldErrors{"firstname": MsgFirstName}, ""},
		{"32 multibyte runes fit", func(r *Registration) { r.FirstName = "éééééééééééééééééééééééééééééééé" }, FieldErrors{}, ""},
		{"bad email", func(r *Registration) { r.Email = "not-an-email" }, FieldErrors{"email": MsgEmail}, ""},
		{"short telephone", func(r *Registration) { r.Telephone = "12" }, FieldErrors{"telephone": MsgTelephone}, ""},
		{"short password", func(r *Registration) { r.Password, r.Confirm = "abc", "abc" }, FieldErrors{"password": MsgPassword}, ""},
		{"confirm mismatch", func(r *Registration) { r.Confirm = "password124" }, FieldErrors{"confirm": MsgConfirm}, ""},
		{"not agreed", func(r *Registration) { r.Agree = false }, FieldErrors{}, MsgAgree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)

			fields, warning := form.Validate()

			assert.Equal(t, tt.wantFields, fields)
			assert.Equal(t, tt.wantWarning, warning)
		})
	}
}
