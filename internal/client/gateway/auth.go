package gateway

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/syspark/internal/client/models"
)

// Login exchanges credentials for a bearer token via POST /api/login.
// A 2xx without a token is treated as unclassified.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.LoginResponse, error) {
	var resp models.LoginResponse
	res := c.Do(ctx, Request{Method: http.MethodPost, Path: "login", Body: creds})
	if err := res.Decode(&resp); err != nil {
		return models.LoginResponse{}, err
	}
	if strings.TrimSpace(resp.AccessToken) == "" {
		return models.LoginResponse{}, &Error{Kind: KindUnclassified, Status: res.Status}
	}
	return resp, nil
}

// LoginMessage is Message with the login screen wording for 401/403.
func LoginMessage(err error) string {
	if KindOf(err) == KindUnauthorized {
		return MsgInvalidCredentials
	}
	return Message(err)
}
