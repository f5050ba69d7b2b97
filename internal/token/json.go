package token

import (
	"encoding/json"
)

type jsonAccess struct {
	Access string `json:"access_token"`
	Type   string `json:"token_type"`
}

func ToJson(accessToken string) ([]byte, error) {
	return json.MarshalIndent(&jsonAccess{
		Access: accessToken,
		Type:   "Bearer",
	}, "", "  ")
}
