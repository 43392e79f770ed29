package gateway

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/websocket"

	"team-lab/auth"
	"team-lab/domain"
	"team-lab/domain/event"
	"team-lab/errors"
)

// A connection that keeps sending undecodable frames is cut off instead of
// looping on error replies forever.
const maxDecodeErrorsPerConn = 5

var validate = validator.New()

type joinTeamPayload struct {
	TeamID int64 `json:"teamId" validate:"required,gt=0"`
}

type leaveTeamPayload struct {
	TeamID int64 `json:"teamId" validate:"required,gt=0"`
}

type identityContextKey struct{}

func withIdentity(ctx context.Context, claims *auth.UserClaims) context.Context {
	return context.WithValue(ctx, identityContextKey{}, claims)
}

func identityFromConn(conn *websocket.Conn) *auth.UserClaims {
	req := conn.Request()
	if req == nil {
		return nil
	}
	claims, _ := req.Context().Value(identityContextKey{}).(*auth.UserClaims)
	return claims
}

// NewHandler mounts the realtime channel at /ws plus an /up health probe.
// The handshake requires a valid user token (query parameter or bearer
// header); the verified identity is attached to the request context before
// any frame handler runs.
func NewHandler(log *slog.Logger, gw *Gateway, signer auth.Signer) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/up", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	wsHandler := websocket.Handler(func(conn *websocket.Conn) {
		handleConn(log, gw, conn)
	})

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		token := tokenFromRequest(r)
		if token == "" {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		claims, err := signer.VerifyUser(token)
		if err != nil {
			log.Warn("websocket handshake rejected",
				"remote", r.RemoteAddr,
				"error", err,
			)
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}

		ctx := withIdentity(r.Context(), claims)
		wsHandler.ServeHTTP(w, r.WithContext(ctx))
	})

	return mux
}

func tokenFromRequest(r *http.Request) string {
	if token := strings.TrimSpace(r.URL.Query().Get("token")); token != "" {
		return token
	}
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

func handleConn(log *slog.Logger, gw *Gateway, conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	claims := identityFromConn(conn)
	if claims == nil {
		// The /ws wrapper always attaches an identity; a missing one means
		// the handler was mounted without auth, which we refuse to serve.
		return
	}

	peer := NewPeer(conn)
	sess := NewSession(peer, domain.UserID(claims.UserID), claims.DisplayName)
	defer gw.Disconnect(sess)

	log.Debug("connection established",
		"conn_id", peer.ID(),
		"user_id", claims.UserID,
	)

	decoder := json.NewDecoder(conn)
	decodeErrors := 0
	for {
		var frame Frame
		if err := decoder.Decode(&frame); err != nil {
			if stderrors.Is(err, io.EOF) {
				return
			}
			decodeErrors++
			gw.sendError(peer, errors.ErrBadRequest)
			if decodeErrors >= maxDecodeErrorsPerConn {
				return
			}
			continue
		}
		decodeErrors = 0

		switch frame.Event {
		case event.JoinTeam:
			var payload joinTeamPayload
			if !decodePayload(gw, peer, frame.Data, &payload) {
				continue
			}
			gw.JoinTeam(sess, domain.TeamID(payload.TeamID))
		case event.LeaveTeam:
			var payload leaveTeamPayload
			if !decodePayload(gw, peer, frame.Data, &payload) {
				continue
			}
			gw.LeaveTeam(sess, domain.TeamID(payload.TeamID))
		default:
			gw.sendError(peer, errors.ErrBadRequest)
		}
	}
}

func decodePayload(gw *Gateway, peer *Peer, data json.RawMessage, out any) bool {
	if err := json.Unmarshal(data, out); err != nil {
		gw.sendError(peer, errors.ErrBadRequest)
		return false
	}
	if err := validate.Struct(out); err != nil {
		gw.sendError(peer, errors.ErrBadRequest)
		return false
	}
	return true
}
