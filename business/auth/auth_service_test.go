package auth

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"laundryTrack/domain"
	rediscache "laundryTrack/internal/repository/redis"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	byEmail map[string]*domain.User
	nextID  uint
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*domain.User{}, nextID: 1}
}

func (f *fakeUsers) Create(_ context.Context, user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
	cpy := *user
	f.byEmail[user.Email] = &cpy
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, errors.New("user not found")
	}
	return *u, nil
}

type fakeSessions struct {
	byID map[string]*domain.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byID: map[string]*domain.Session{}}
}

func (f *fakeSessions) Create(_ context.Context, session *domain.Session) error {
	cpy := *session
	f.byID[session.ID] = &cpy
	return nil
}

func (f *fakeSessions) FindValidByID(_ context.Context, id string) (domain.Session, error) {
	s, ok := f.byID[id]
	if !ok || !s.ExpiresAt.After(time.Now()) {
		return domain.Session{}, errors.New("session not found")
	}
	return *s, nil
}

func (f *fakeSessions) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

type fakeOtpTokens struct {
	byEmail map[string][]*domain.OtpToken
	nextID  uint
}

func newFakeOtpTokens() *fakeOtpTokens {
	return &fakeOtpTokens{byEmail: map[string][]*domain.OtpToken{}, nextID: 1}
}

func (f *fakeOtpTokens) Create(_ context.Context, token *domain.OtpToken) error {
	token.ID = f.nextID
	f.nextID++
	cpy := *token
	f.byEmail[token.Email] = append(f.byEmail[token.Email], &cpy)
	return nil
}

func (f *fakeOtpTokens) FindValidByEmail(_ context.Context, email string) ([]domain.OtpToken, error) {
	var out []domain.OtpToken
	for _, tok := range f.byEmail[email] {
		if tok.ExpiresAt.After(time.Now()) {
			out = append(out, *tok)
		}
	}
	return out, nil
}

func (f *fakeOtpTokens) DeleteByEmail(_ context.Context, email string) error {
	delete(f.byEmail, email)
	return nil
}

type fakeNotifier struct {
	lastBody string
	sendErr  error
	sent     int
}

func (f *fakeNotifier) SendEmail(_, _, _, message string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent++
	f.lastBody = message
	return nil
}

type fakeCache struct {
	byID map[string]rediscache.SessionData
}

func newFakeCache() *fakeCache {
	return &fakeCache{byID: map[string]rediscache.SessionData{}}
}

func (f *fakeCache) Store(_ context.Context, data rediscache.SessionData) error {
	f.byID[data.SessionID] = data
	return nil
}

func (f *fakeCache) Get(_ context.Context, sessionID string) (rediscache.SessionData, error) {
	d, ok := f.byID[sessionID]
	if !ok {
		return rediscache.SessionData{}, rediscache.ErrCacheMiss
	}
	return d, nil
}

func (f *fakeCache) Delete(_ context.Context, sessionID string) error {
	delete(f.byID, sessionID)
	return nil
}

var otpPattern = regexp.MustCompile(`\d{6}`)

type authFixture struct {
	users    *fakeUsers
	sessions *fakeSessions
	otps     *fakeOtpTokens
	notifier *fakeNotifier
	cache    *fakeCache
	svc      *authService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:    newFakeUsers(),
		sessions: newFakeSessions(),
		otps:     newFakeOtpTokens(),
		notifier: &fakeNotifier{},
		cache:    newFakeCache(),
	}
	f.svc = NewAuthService(f.users, f.sessions, f.otps, f.notifier, f.cache, validator.New())
	return f
}

func (f *authFixture) sentOtp(t *testing.T) string {
	t.Helper()
	otp := otpPattern.FindString(f.notifier.lastBody)
	require.NotEmpty(t, otp, "OTP email should contain a 6-digit code")
	return otp
}

func TestSendOtp(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.SendOtp(ctx, "user@example.com"))
	assert.Equal(t, 1, f.notifier.sent)
	require.Len(t, f.otps.byEmail["user@example.com"], 1)

	stored := f.otps.byEmail["user@example.com"][0]
	assert.NotEqual(t, f.sentOtp(t), stored.OtpHash, "code must not be stored in the clear")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.OtpHash), []byte(f.sentOtp(t))))
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), stored.ExpiresAt, 5*time.Second)
}

func TestSendOtpReplacesPreviousToken(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.SendOtp(ctx, "user@example.com"))
	first := f.sentOtp(t)

	require.NoError(t, f.svc.SendOtp(ctx, "user@example.com"))
	require.Len(t, f.otps.byEmail["user@example.com"], 1, "only one live token per email")

	// old code is dead, new one works
	if first != f.sentOtp(t) {
		_, err := f.svc.VerifyOtp(ctx, "user@example.com", first)
		assert.ErrorIs(t, err, ErrInvalidOtp)
	}
	_, err := f.svc.VerifyOtp(ctx, "user@example.com", f.sentOtp(t))
	assert.NoError(t, err)
}

func TestSendOtpInvalidEmail(t *testing.T) {
	f := newAuthFixture()

	err := f.svc.SendOtp(context.Background(), "not-an-email")
	assert.EqualError(t, err, "invalid email format")
	assert.Zero(t, f.notifier.sent)
}

func TestSendOtpMailerFailure(t *testing.T) {
	f := newAuthFixture()
	f.notifier.sendErr = errors.New("mailjet down")

	err := f.svc.SendOtp(context.Background(), "user@example.com")
	assert.EqualError(t, err, "failed to send OTP email")
}

func TestVerifyOtpRoundTrip(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.SendOtp(ctx, "user@example.com"))
	otp := f.sentOtp(t)

	session, err := f.svc.VerifyOtp(ctx, "user@example.com", otp)
	require.NoError(t, err)
	assert.NotEmpty(t, session.SessionID)
	assert.Equal(t, "user@example.com", session.Email)

	// user was created on first login
	user, err := f.users.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)

	// tokens were purged: the same code cannot be replayed
	_, err = f.svc.VerifyOtp(ctx, "user@example.com", otp)
	assert.ErrorIs(t, err, ErrInvalidOtp)
}

func TestVerifyOtpReusesExistingUser(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	existing := domain.User{Email: "user@example.com"}
	require.NoError(t, f.users.Create(ctx, &existing))

	require.NoError(t, f.svc.SendOtp(ctx, "user@example.com"))
	session, err := f.svc.VerifyOtp(ctx, "user@example.com", f.sentOtp(t))
	require.NoError(t, err)
	assert.Equal(t, existing.ID, session.UserID)
}

func TestVerifyOtpWrongCodeLeavesTokenLive(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.SendOtp(ctx, "user@example.com"))
	otp := f.sentOtp(t)

	wrong := "000000"
	if wrong == otp {
		wrong = "111111"
	}

	_, err := f.svc.VerifyOtp(ctx, "user@example.com", wrong)
	assert.ErrorIs(t, err, ErrInvalidOtp)

	// a retry with the right code inside the window still succeeds
	_, err = f.svc.VerifyOtp(ctx, "user@example.com", otp)
	assert.NoError(t, err)
}

func TestVerifyOtpExpired(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.SendOtp(ctx, "user@example.com"))
	otp := f.sentOtp(t)

	f.otps.byEmail["user@example.com"][0].ExpiresAt = time.Now().Add(-time.Minute)

	_, err := f.svc.VerifyOtp(ctx, "user@example.com", otp)
	assert.ErrorIs(t, err, ErrInvalidOtp)
}

func TestGetSession(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.SendOtp(ctx, "user@example.com"))
	created, err := f.svc.VerifyOtp(ctx, "user@example.com", f.sentOtp(t))
	require.NoError(t, err)

	resolved, err := f.svc.GetSession(ctx, created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, created.UserID, resolved.UserID)
	assert.Equal(t, "user@example.com", resolved.Email)

	_, err = f.svc.GetSession(ctx, "no-such-session")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetSessionExpiryEnforced(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.SendOtp(ctx, "user@example.com"))
	created, err := f.svc.VerifyOtp(ctx, "user@example.com", f.sentOtp(t))
	require.NoError(t, err)

	f.sessions.byID[created.SessionID].ExpiresAt = time.Now().Add(-time.Hour)
	delete(f.cache.byID, created.SessionID)

	_, err = f.svc.GetSession(ctx, created.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetSessionFallsBackToStoreOnCacheMiss(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.SendOtp(ctx, "user@example.com"))
	created, err := f.svc.VerifyOtp(ctx, "user@example.com", f.sentOtp(t))
	require.NoError(t, err)

	delete(f.cache.byID, created.SessionID)

	resolved, err := f.svc.GetSession(ctx, created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, created.UserID, resolved.UserID)

	// the store hit warmed the cache again
	_, ok := f.cache.byID[created.SessionID]
	assert.True(t, ok)
}

func TestLogout(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.SendOtp(ctx, "user@example.com"))
	created, err := f.svc.VerifyOtp(ctx, "user@example.com", f.sentOtp(t))
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, created.SessionID))

	_, err = f.svc.GetSession(ctx, created.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// logging out again is a no-op
	assert.NoError(t, f.svc.Logout(ctx, created.SessionID))
}
