package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/net/websocket"

	"team-lab/auth"
	"team-lab/domain"
)

// BaseSuite carries the shared plumbing of every scenario: environment
// config, a token signer matching the target gateway, and HTTP/websocket
// helpers against it.
type BaseSuite struct {
	suite.Suite
	Config Config
	Signer auth.Signer
	client *http.Client
}

// SetupSuite loads the environment configuration before running tests.
// The whole suite is skipped when no gateway address is configured.
func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.GatewayAddr == "" {
		s.T().Skip("GATEWAY_ADDR not set, skipping end-to-end suite")
	}
	s.Signer = auth.NewSigner(s.Config.JWTSecret)
	s.client = &http.Client{Timeout: 10 * time.Second}
}

func (s *BaseSuite) UserToken(userID domain.UserID, displayName string) string {
	token, err := s.Signer.SignUser(userID, displayName, time.Hour)
	s.Require().NoError(err)
	return token
}

type apiResponse struct {
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Call sends one JSON request to the gateway's REST surface and decodes the
// uniform response envelope.
func (s *BaseSuite) Call(method, path, token string, body any) (int, apiResponse) {
	var reader bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		if s.Config.DebugJSON {
			s.T().Logf("%s %s\nREQUEST:\n%s", method, path, payload)
		}
		reader = *bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, fmt.Sprintf("http://%s%s", s.Config.GatewayAddr, path), &reader)
	s.Require().NoError(err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var decoded apiResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&decoded))
	if s.Config.DebugJSON {
		s.T().Logf("%s %s [%d]\nRESPONSE:\n%s", method, path, resp.StatusCode, decoded.Data)
	}
	return resp.StatusCode, decoded
}

// DialSocket opens an authenticated websocket connection to the gateway.
func (s *BaseSuite) DialSocket(token string) *websocket.Conn {
	url := fmt.Sprintf("ws://%s/ws?token=%s", s.Config.GatewayAddr, token)
	conn, err := websocket.Dial(url, "", fmt.Sprintf("http://%s", s.Config.GatewayAddr))
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = conn.Close() })
	return conn
}
