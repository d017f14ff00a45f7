package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunucargo/platform/internal/backend"
	"github.com/sunucargo/platform/internal/fixtures"
	"github.com/sunucargo/platform/internal/record"
	"github.com/sunucargo/platform/internal/store"
	"github.com/sunucargo/platform/internal/testutil"
)

var seedTime = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

const testSecret = "test-secret"

func newTestService(t *testing.T) (*Service, *store.Store, backend.Marker) {
	t.Helper()
	nop := zerolog.Nop()
	mem := backend.NewMemory()
	clock := testutil.NewClock(seedTime, time.Second)
	newID := testutil.IDSequence("id")

	st := store.New(mem, store.Options{
		Seeds:  fixtures.MustLoad(seedTime),
		Now:    clock.Now,
		NewID:  newID,
		Logger: &nop,
	})
	svc := NewService(st, mem, NewNotifier(), Options{
		Secret: testSecret,
		Now:    clock.Now,
		NewID:  newID,
		Logger: &nop,
	})
	return svc, st, mem
}

func count(t *testing.T, st *store.Store, collection string) int {
	t.Helper()
	return len(st.Collection(collection).All().Data)
}

func TestSignUp_CreatesCredentialProfileWallet(t *testing.T) {
	svc, st, _ := newTestService(t)

	res := svc.SignUp("awa@example.com", "secret123", record.Record{
		"role": "client", "first_name": "Awa", "last_name": "Diop",
	})
	require.NoError(t, res.Err)
	require.NotNil(t, res.Session)
	userID := res.User.ID()
	require.NotEmpty(t, userID)

	profile := st.Collection("profiles").Eq("id", userID).Single()
	require.NotNil(t, profile.Data, "profile shares the credential id")
	assert.Equal(t, "client", profile.Data["role"])
	assert.Equal(t, true, profile.Data["is_verified"], "demo mode auto-verifies")
	assert.Equal(t, true, profile.Data["is_active"])

	wallet := st.Collection("wallets").Eq("user_id", userID).Single()
	require.NotNil(t, wallet.Data, "wallet shares the credential id")
	n, ok := record.AsNumber(wallet.Data["balance"])
	require.True(t, ok)
	assert.Zero(t, n, "new wallets start at zero")
	assert.Equal(t, "XOF", wallet.Data["currency"])
}

func TestSignUp_DuplicateEmailWritesNothing(t *testing.T) {
	svc, st, _ := newTestService(t)

	users := count(t, st, "users")
	profiles := count(t, st, "profiles")
	wallets := count(t, st, "wallets")

	res := svc.SignUp("client@example.com", "whatever", nil)
	assert.ErrorIs(t, res.Err, ErrUserExists)
	assert.Nil(t, res.Session)

	assert.Equal(t, users, count(t, st, "users"))
	assert.Equal(t, profiles, count(t, st, "profiles"))
	assert.Equal(t, wallets, count(t, st, "wallets"))
}

func TestSignUp_InvalidEmail(t *testing.T) {
	svc, st, _ := newTestService(t)
	users := count(t, st, "users")

	res := svc.SignUp("not-an-email", "secret123", nil)
	assert.ErrorIs(t, res.Err, ErrInvalidEmail)
	assert.Equal(t, users, count(t, st, "users"))
}

func TestSignUp_DefaultRole(t *testing.T) {
	svc, st, _ := newTestService(t)

	res := svc.SignUp("anon@example.com", "secret123", nil)
	require.NoError(t, res.Err)

	profile := st.Collection("profiles").Eq("id", res.User.ID()).Single()
	require.NotNil(t, profile.Data)
	assert.Equal(t, DefaultRole, profile.Data["role"])
}

func TestSignUp_TransporterCompanyName(t *testing.T) {
	svc, st, _ := newTestService(t)

	res := svc.SignUp("truck@example.com", "secret123", record.Record{
		"role": "transporter", "company_name": "Sahel Cargo",
	})
	require.NoError(t, res.Err)

	profile := st.Collection("profiles").Eq("id", res.User.ID()).Single()
	require.NotNil(t, profile.Data)
	assert.Equal(t, "Sahel Cargo", profile.Data["company_name"])
}

func TestSignUp_AccessTokenCarriesCredential(t *testing.T) {
	svc, _, _ := newTestService(t)

	res := svc.SignUp("awa@example.com", "secret123", record.Record{"role": "client"})
	require.NoError(t, res.Err)
	require.NotEmpty(t, res.Session.AccessToken)

	parsed, err := jwt.Parse(res.Session.AccessToken, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	}, jwt.WithTimeFunc(func() time.Time { return seedTime }))
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, res.User.ID(), claims["sub"])
	assert.Equal(t, "awa@example.com", claims["email"])
}

func TestSignIn_Succeeds(t *testing.T) {
	svc, _, _ := newTestService(t)

	res := svc.SignInWithPassword("client@example.com", "client123")
	require.NoError(t, res.Err)
	require.NotNil(t, res.Session)
	assert.Equal(t, "client-id", res.User.ID())

	_, hasPassword := res.User["password"]
	assert.False(t, hasPassword, "returned user must not carry the secret")
	_, hasSessionPassword := res.Session.User["password"]
	assert.False(t, hasSessionPassword)
}

func TestSignIn_BadCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)

	res := svc.SignInWithPassword("client@example.com", "wrong")
	assert.ErrorIs(t, res.Err, ErrInvalidCredentials)
	assert.Nil(t, res.Session)

	res = svc.SignInWithPassword("nobody@example.com", "client123")
	assert.ErrorIs(t, res.Err, ErrInvalidCredentials)
}

func TestSignIn_DiscardsPriorSession(t *testing.T) {
	svc, _, _ := newTestService(t)

	first := svc.SignInWithPassword("client@example.com", "client123")
	second := svc.SignInWithPassword("admin@example.com", "admin123")
	require.NoError(t, second.Err)

	current := svc.GetSession()
	require.NotNil(t, current.Session)
	assert.Equal(t, "admin-id", current.Session.User.ID())
	assert.NotEqual(t, first.Session.AccessToken, current.Session.AccessToken)
}

func TestSessionLifecycle(t *testing.T) {
	svc, _, marker := newTestService(t)

	assert.Nil(t, svc.GetSession().Session)
	assert.Nil(t, svc.GetUser().User)

	svc.SignInWithPassword("client@example.com", "client123")

	sess := svc.GetSession()
	require.NotNil(t, sess.Session)
	assert.Equal(t, "client-id", sess.Session.User.ID())
	assert.Equal(t, "client-id", svc.GetUser().User.ID())

	id, ok := marker.Get()
	require.True(t, ok, "identity marker mirrors the signed-in credential")
	assert.Equal(t, "client-id", id)

	require.NoError(t, svc.SignOut())
	assert.Nil(t, svc.GetSession().Session)
	_, ok = marker.Get()
	assert.False(t, ok, "sign-out clears the identity marker")
}

func TestGetSession_ReturnsCopy(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.SignInWithPassword("client@example.com", "client123")

	sess := svc.GetSession()
	require.NotNil(t, sess.Session)
	sess.Session.User["email"] = "tampered@example.com"

	assert.Equal(t, "client@example.com", svc.GetUser().User["email"],
		"mutating a returned session must not alter service state")
}

func TestSignOut_WithoutSessionIsNotAnError(t *testing.T) {
	svc, _, _ := newTestService(t)
	assert.NoError(t, svc.SignOut())
}

func TestListeners_InvokedExactlyOncePerTransition(t *testing.T) {
	svc, _, _ := newTestService(t)

	type event struct {
		name string
		user string
	}
	var got []event
	svc.OnAuthStateChange(func(name string, session *Session) {
		e := event{name: name}
		if session != nil {
			e.user = session.User.ID()
		}
		got = append(got, e)
	})

	svc.SignInWithPassword("client@example.com", "client123")
	svc.SignOut()

	require.Len(t, got, 2)
	assert.Equal(t, event{name: EventSignedIn, user: "client-id"}, got[0])
	assert.Equal(t, event{name: EventSignedOut}, got[1])
}

func TestListeners_SignUpPublishesSignedIn(t *testing.T) {
	svc, _, _ := newTestService(t)

	var events []string
	svc.OnAuthStateChange(func(name string, _ *Session) {
		events = append(events, name)
	})

	svc.SignUp("awa@example.com", "secret123", nil)
	assert.Equal(t, []string{EventSignedIn}, events)
}

func TestListeners_FailedSignInPublishesNothing(t *testing.T) {
	svc, _, _ := newTestService(t)

	calls := 0
	svc.OnAuthStateChange(func(string, *Session) { calls++ })

	svc.SignInWithPassword("client@example.com", "wrong")
	svc.SignUp("client@example.com", "whatever", nil)
	assert.Zero(t, calls)
}
