package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/net/websocket"

	"team-lab/domain"
	"team-lab/domain/event"
	"team-lab/gateway"
)

type testInviteFlowSuite struct {
	BaseSuite
}

func TestInviteFlowSuite(t *testing.T) {
	suite.Run(t, &testInviteFlowSuite{})
}

// TestFullInviteAndPresenceFlow walks the whole product loop against a live
// gateway: create a team, mint an invite, redeem it with a second user and
// watch both users meet in the team room.
func (s *testInviteFlowSuite) TestFullInviteAndPresenceFlow() {
	// Distinct ids per run so reruns against the same store never collide.
	masterID := domain.UserID(time.Now().UnixNano() % 1_000_000_000)
	joinerID := masterID + 1
	masterToken := s.UserToken(masterID, "Master")
	joinerToken := s.UserToken(joinerID, "Joiner")

	var teamID int64
	var inviteToken string

	s.Run("Step 1: Master creates a team", func() {
		status, resp := s.Call(http.MethodPost, "/teams", masterToken, map[string]any{
			"name": "e2e-team",
		})
		s.Require().Equal(http.StatusCreated, status)
		s.Require().Equal("SUCCESS", resp.Code)

		var team struct {
			ID int64 `json:"team_id"`
		}
		s.Require().NoError(json.Unmarshal(resp.Data, &team))
		s.Require().Positive(team.ID)
		teamID = team.ID
	})

	s.Run("Step 2: Master mints an invite link", func() {
		status, resp := s.Call(http.MethodPost, s.teamPath(teamID, "/invites"), masterToken, map[string]any{
			"endAt":       time.Now().Add(24 * time.Hour).Format(time.RFC3339),
			"usageMaxCnt": 1,
		})
		s.Require().Equal(http.StatusCreated, status)

		var link struct {
			Link string `json:"link"`
		}
		s.Require().NoError(json.Unmarshal(resp.Data, &link))
		inviteToken = tokenFromLink(s.T(), link.Link)
	})

	s.Run("Step 3: Joiner redeems the invite", func() {
		status, resp := s.Call(http.MethodPost, "/teams/invites/accept", joinerToken, map[string]any{
			"token": inviteToken,
		})
		s.Require().Equal(http.StatusOK, status)
		s.Require().Equal("SUCCESS", resp.Code)
	})

	s.Run("Step 4: A second redemption exhausts the single-use invite", func() {
		otherToken := s.UserToken(joinerID+1, "Latecomer")
		status, resp := s.Call(http.MethodPost, "/teams/invites/accept", otherToken, map[string]any{
			"token": inviteToken,
		})
		s.Require().Equal(http.StatusBadRequest, status)
		s.Require().Equal("EXHAUSTED_USAGE", resp.Code)
	})

	s.Run("Step 5: Both users meet in the team room", func() {
		masterConn := s.DialSocket(masterToken)
		masterDecoder := json.NewDecoder(masterConn)
		s.joinTeam(masterConn, teamID)

		s.Require().Equal(event.OnlineUsers, s.readFrame(masterDecoder).Event)
		s.Require().Equal(event.JoinedTeam, s.readFrame(masterDecoder).Event)

		joinerConn := s.DialSocket(joinerToken)
		joinerDecoder := json.NewDecoder(joinerConn)
		s.joinTeam(joinerConn, teamID)

		s.Require().Equal(event.OnlineUsers, s.readFrame(joinerDecoder).Event)
		s.Require().Equal(event.JoinedTeam, s.readFrame(joinerDecoder).Event)

		// The master hears the joiner come online.
		frame := s.readFrame(masterDecoder)
		s.Require().Equal(event.UserJoined, frame.Event)
		var joined event.UserJoinedPayload
		s.Require().NoError(json.Unmarshal(frame.Data, &joined))
		s.Require().Equal(joinerID, joined.UserID)
	})
}

func (s *testInviteFlowSuite) joinTeam(conn *websocket.Conn, teamID int64) {
	payload, err := json.Marshal(map[string]any{"teamId": teamID})
	s.Require().NoError(err)
	s.Require().NoError(json.NewEncoder(conn).Encode(gateway.Frame{Event: event.JoinTeam, Data: payload}))
}

func (s *testInviteFlowSuite) readFrame(decoder *json.Decoder) gateway.Frame {
	var frame gateway.Frame
	s.Require().NoError(decoder.Decode(&frame))
	return frame
}

func (s *testInviteFlowSuite) teamPath(teamID int64, suffix string) string {
	return fmt.Sprintf("/teams/%d%s", teamID, suffix)
}

// tokenFromLink extracts the token query parameter from an invite deep link.
func tokenFromLink(t *testing.T, link string) string {
	t.Helper()
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	token := parsed.Query().Get("token")
	require.NotEmpty(t, token)
	return token
}
