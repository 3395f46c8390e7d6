package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/romusmm/my-gift-box/internal/sequencer"
	"github.com/romusmm/my-gift-box/internal/viewstate"
)

const sessionCookieName = "GIFTBOX_WEB_SESSION"

// SessionData is the visitor's state, persisted inside a signed cookie.
type SessionData struct {
	ID        string            `json:"id"`
	View      viewstate.State   `json:"view"`
	Pending   sequencer.Pending `json:"pending,omitempty"`
	CSRFToken string            `json:"csrf,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	// internal dirty flag; not serialized
	dirty bool `json:"-"`
}

// SessionOptions configures the session cookie.
type SessionOptions struct {
	// SigningKey signs the cookie. When empty a process-ephemeral key is generated.
	SigningKey string
	// Secure marks cookies Secure (production).
	Secure bool
	Logger *zap.Logger
	// Targets holds pending link targets off the cookie. When nil a
	// process-local memory store is used.
	Targets sequencer.TargetStore
}

type sessionCodec struct {
	key     []byte
	secure  bool
	targets sequencer.TargetStore
	logger  *zap.Logger
}

// Session loads or initializes a session and stores it in request context.
func Session(opts SessionOptions) func(http.Handler) http.Handler {
	codec := newSessionCodec(opts)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sd, fromCookie := codec.read(r)
			if fromCookie {
				codec.loadTarget(r.Context(), sd)
			}
			if sd.ID == "" {
				sd.ID = ulid.Make().String()
				sd.View = viewstate.Initial()
				sd.CreatedAt = time.Now().UTC()
				sd.UpdatedAt = sd.CreatedAt
				sd.CSRFToken = newCSRFToken()
				sd.dirty = true
			}
			sd.View = viewstate.Normalize(sd.View)
			sd.Pending = sequencer.Normalize(sd.Pending)

			ctx := context.WithValue(r.Context(), sessionKey{}, sd)
			rw := NewResponseRecorder(w)
			// ensure cookie is set just before first write if needed
			rw.SetBeforeWrite(func(w http.ResponseWriter) {
				if sd.dirty || !fromCookie {
					codec.write(r.Context(), w, sd)
				}
			})
			next.ServeHTTP(rw, r.WithContext(ctx))
			// If nothing was written yet (e.g., HEAD), persist cookie now
			if !rw.Wrote() && (sd.dirty || !fromCookie) {
				codec.write(r.Context(), w, sd)
			}
		})
	}
}

func newSessionCodec(opts SessionOptions) sessionCodec {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	key := []byte(opts.SigningKey)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			logger.Error("session: failed to generate signing key", zap.Error(err))
			key = []byte("insecure-dev-key-please-set-GIFTBOX_WEB_SESSION_SIGNING_KEY")
		}
		logger.Warn("session: using ephemeral signing key; set GIFTBOX_WEB_SESSION_SIGNING_KEY for production")
	}
	targets := opts.Targets
	if targets == nil {
		targets = sequencer.NewMemoryStore()
	}
	return sessionCodec{key: key, secure: opts.Secure, targets: targets, logger: logger}
}

// GetSession returns session data from context
func GetSession(r *http.Request) *SessionData {
	if v := r.Context().Value(sessionKey{}); v != nil {
		if sd, ok := v.(*SessionData); ok {
			return sd
		}
	}
	return &SessionData{View: viewstate.Initial()}
}

// MarkDirty flags the session for writing at end of request
func (s *SessionData) MarkDirty() { s.dirty = true; s.UpdatedAt = time.Now().UTC() }

// Dispatch applies a view-state action and marks the session dirty when it changed.
func (s *SessionData) Dispatch(a viewstate.Action) viewstate.State {
	next := viewstate.Reduce(s.View, a)
	if next != s.View {
		s.View = next
		s.MarkDirty()
	}
	return next
}

// SetPending replaces the deferred navigation.
func (s *SessionData) SetPending(p sequencer.Pending) {
	if p != s.Pending {
		s.Pending = p
		s.MarkDirty()
	}
}

// read parses and verifies the session cookie
func (c sessionCodec) read(r *http.Request) (*SessionData, bool) {
	ck, err := r.Cookie(sessionCookieName)
	if err != nil || ck.Value == "" {
		return &SessionData{}, false
	}
	payloadEnc, sigEnc, ok := strings.Cut(ck.Value, ".")
	if !ok {
		return &SessionData{}, false
	}
	payloadB, err := base64.RawURLEncoding.DecodeString(payloadEnc)
	if err != nil {
		return &SessionData{}, false
	}
	sigB, err := base64.RawURLEncoding.DecodeString(sigEnc)
	if err != nil {
		return &SessionData{}, false
	}
	mac := hmac.New(sha256.New, c.key)
	mac.Write(payloadB)
	if !hmac.Equal(sigB, mac.Sum(nil)) {
		return &SessionData{}, false
	}
	var sd SessionData
	if err := json.Unmarshal(payloadB, &sd); err != nil {
		return &SessionData{}, false
	}
	return &sd, true
}

// loadTarget restores the pending link target kept off the cookie. A missing
// target leaves the pending navigation to be normalized to idle.
func (c sessionCodec) loadTarget(ctx context.Context, sd *SessionData) {
	if !sd.Pending.Animating || sd.ID == "" {
		return
	}
	url, ok, err := c.targets.Load(ctx, sd.ID, time.Now())
	if err != nil {
		c.logger.Warn("session: load pending target", zap.String("session_id", sd.ID), zap.Error(err))
		return
	}
	if ok {
		sd.Pending.TargetURL = url
	}
}

// saveTarget mirrors the pending target into the store.
func (c sessionCodec) saveTarget(ctx context.Context, sd *SessionData) {
	var err error
	if sd.Pending.Animating && sd.Pending.TargetURL != "" {
		now := time.Now()
		ttl := sequencer.DefaultTargetTTL
		if d := sd.Pending.Deadline.Sub(now); d > 0 {
			ttl += d
		}
		err = c.targets.Save(ctx, sd.ID, sd.Pending.TargetURL, now, ttl)
	} else {
		err = c.targets.Release(ctx, sd.ID)
	}
	if err != nil {
		c.logger.Warn("session: store pending target", zap.String("session_id", sd.ID), zap.Error(err))
	}
}

// write signs the session into the cookie. The pending target lives in the
// target store, so the cookie size does not grow with message text.
func (c sessionCodec) write(ctx context.Context, w http.ResponseWriter, sd *SessionData) {
	c.saveTarget(ctx, sd)
	stored := *sd
	stored.Pending.TargetURL = ""
	b, _ := json.Marshal(&stored)
	payload := base64.RawURLEncoding.EncodeToString(b)
	mac := hmac.New(sha256.New, c.key)
	mac.Write(b)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	// httpOnly to prevent JS access
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    payload + "." + sig,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}
