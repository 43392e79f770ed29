package api

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"team-lab/auth"
	"team-lab/domain"
	"team-lab/errors"
	"team-lab/services"
)

var validate = validator.New()

// envelope is the uniform response body: code SUCCESS with data on the
// happy path, an error code and message otherwise.
type envelope struct {
	Code    string `json:"code"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

type createTeamRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type createInviteRequest struct {
	EndAt       time.Time `json:"endAt" validate:"required"`
	UsageMaxCnt int       `json:"usageMaxCnt" validate:"required,min=1"`
}

type acceptInviteRequest struct {
	Token string `json:"token" validate:"required"`
}

type changeRoleRequest struct {
	Role        string `json:"role" validate:"required,oneof=MASTER MANAGER MEMBER"`
	DisplayName string `json:"displayName"`
}

type inviteLinkResponse struct {
	Link        string    `json:"link"`
	EndAt       time.Time `json:"endAt"`
	UsageMaxCnt int       `json:"usageMaxCnt"`
}

type inviteDescriptorResponse struct {
	TeamID      int64     `json:"teamId"`
	TeamName    string    `json:"teamName"`
	EndAt       time.Time `json:"endAt"`
	UsageMaxCnt int       `json:"usageMaxCnt"`
	UsageCurCnt int       `json:"usageCurCnt"`
}

type joinResultResponse struct {
	TeamID   int64  `json:"teamId"`
	TeamName string `json:"teamName"`
}

// Router exposes the command surface of the invitation and membership
// services. The realtime channel stays on its own handler; the router only
// delegates /ws and /up to it.
type Router struct {
	log     *slog.Logger
	invites services.ITeamInviteService
	members *services.MemberService
	signer  auth.Signer
}

func NewRouter(
	log *slog.Logger,
	invites services.ITeamInviteService,
	members *services.MemberService,
	signer auth.Signer,
	realtime http.Handler,
) http.Handler {
	router := &Router{
		log:     log,
		invites: invites,
		members: members,
		signer:  signer,
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", realtime)
	mux.Handle("/up", realtime)
	mux.HandleFunc("POST /teams", router.createTeam)
	mux.HandleFunc("POST /teams/{teamId}/invites", router.createInvite)
	mux.HandleFunc("GET /teams/{teamId}/invites", router.listInvites)
	mux.HandleFunc("DELETE /teams/{teamId}/invites", router.revokeInvites)
	mux.HandleFunc("POST /teams/invites/accept", router.acceptInvite)
	mux.HandleFunc("GET /teams/invites/verify", router.verifyInvite)
	mux.HandleFunc("PATCH /teams/{teamId}/members/{userId}/role", router.changeRole)
	return mux
}

func (rt *Router) createTeam(w http.ResponseWriter, r *http.Request) {
	userID := rt.identity(r)
	var body createTeamRequest
	if !rt.decode(w, r, &body) {
		return
	}
	team, err := rt.members.CreateTeam(body.Name, userID)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, team)
}

func (rt *Router) createInvite(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	userID := rt.identity(r)
	var body createInviteRequest
	if !rt.decode(w, r, &body) {
		return
	}
	link, err := rt.invites.Create(teamID, userID, body.EndAt, body.UsageMaxCnt)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, inviteLinkResponse{
		Link:        link.Link,
		EndAt:       link.EndAt,
		UsageMaxCnt: link.UsageMaxCnt,
	})
}

func (rt *Router) listInvites(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	invites, err := rt.invites.List(teamID, rt.identity(r))
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, invites)
}

func (rt *Router) revokeInvites(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	revoked, err := rt.invites.Revoke(teamID, rt.identity(r))
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]int{"revoked": revoked})
}

// acceptInvite allows anonymous callers through to the service, which
// answers Unauthorized so the frontend can route them to signup first.
func (rt *Router) acceptInvite(w http.ResponseWriter, r *http.Request) {
	var body acceptInviteRequest
	if !rt.decode(w, r, &body) {
		return
	}
	result, err := rt.invites.Accept(body.Token, rt.identity(r))
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, joinResultResponse{
		TeamID:   int64(result.TeamID),
		TeamName: result.TeamName,
	})
}

func (rt *Router) verifyInvite(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		rt.writeError(w, errors.ErrBadRequest)
		return
	}
	descriptor, err := rt.invites.Verify(token)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, inviteDescriptorResponse{
		TeamID:      int64(descriptor.TeamID),
		TeamName:    descriptor.TeamName,
		EndAt:       descriptor.EndAt,
		UsageMaxCnt: descriptor.UsageMaxCnt,
		UsageCurCnt: descriptor.UsageCurCnt,
	})
}

func (rt *Router) changeRole(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathTeamID(w, r)
	if !ok {
		return
	}
	targetID, err := strconv.ParseInt(r.PathValue("userId"), 10, 64)
	if err != nil || targetID <= 0 {
		rt.writeError(w, errors.ErrBadRequest)
		return
	}
	var body changeRoleRequest
	if !rt.decode(w, r, &body) {
		return
	}
	member, err := rt.members.ChangeRole(
		teamID,
		rt.identity(r),
		domain.UserID(targetID),
		domain.Role(body.Role),
		body.DisplayName,
	)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, member)
}

// identity resolves the bearer token into a user id, returning zero for
// anonymous or invalid credentials. Each service decides whether zero is
// acceptable.
func (rt *Router) identity(r *http.Request) domain.UserID {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return 0
	}
	claims, err := rt.signer.VerifyUser(strings.TrimSpace(token))
	if err != nil {
		return 0
	}
	return domain.UserID(claims.UserID)
}

func (rt *Router) decode(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		rt.writeError(w, errors.ErrBadRequest)
		return false
	}
	if err := validate.Struct(out); err != nil {
		rt.writeError(w, errors.ErrBadRequest)
		return false
	}
	return true
}

func (rt *Router) writeError(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		rt.log.Error("request failed", "error", err)
	}
	writeJSON(w, status, envelope{Code: code, Data: nil, Message: err.Error()})
}

func statusOf(err error) int {
	switch {
	case stderrors.Is(err, errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case stderrors.Is(err, errors.ErrForbidden):
		return http.StatusForbidden
	case stderrors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, errors.ErrInvalidToken),
		stderrors.Is(err, errors.ErrInviteExpired),
		stderrors.Is(err, errors.ErrInviteExhausted),
		stderrors.Is(err, errors.ErrAlreadyMember),
		stderrors.Is(err, errors.ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func pathTeamID(w http.ResponseWriter, r *http.Request) (domain.TeamID, bool) {
	id, err := strconv.ParseInt(r.PathValue("teamId"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, envelope{
			Code:    errors.CodeOf(errors.ErrBadRequest),
			Message: "invalid team id",
		})
		return 0, false
	}
	return domain.TeamID(id), true
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Code: "SUCCESS", Data: data, Message: ""})
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
