package transport

import (
	"encoding/json"
	"strings"

	"github.com/fastygo/trucar/domain"
)

// TokenResponse accepts both shapes /login/token has returned over time:
// nested {"token": {"access_token"}, "user"} and flat {"access_token", "user"}.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type,omitempty"`
	Token       *TokenData   `json:"token,omitempty"`
	User        *domain.User `json:"user"`
}

type TokenData struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// Bearer returns the access token from whichever shape was received.
func (r TokenResponse) Bearer() string {
	if r.Token != nil && r.Token.AccessToken != "" {
		return r.Token.AccessToken
	}
	return r.AccessToken
}

type VehiclePage struct {
	Vehicles   []domain.Vehicle `json:"vehicles"`
	TotalItems int              `json:"total_items"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorBody is the error payload of the backend. Detail is either a string or a
// list of field errors.
type ErrorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldError struct {
	Loc []interface{} `json:"loc"`
	Msg string        `json:"msg"`
}

// Message renders Detail as a single human readable line.
func (b ErrorBody) Message() string {
	if len(b.Detail) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(b.Detail, &text); err == nil {
		return text
	}
	var fields []fieldError
	if err := json.Unmarshal(b.Detail, &fields); err == nil {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			if len(f.Loc) > 0 {
				if name, ok := f.Loc[len(f.Loc)-1].(string); ok {
					parts = append(parts, name+": "+f.Msg)
					continue
				}
			}
			parts = append(parts, f.Msg)
		}
		return strings.Join(parts, "; ")
	}
	return string(b.Detail)
}
