package model

// Credential is the user-supplied exchange API key pair. It lives for the
// lifetime of the process (memory driver) or until overwritten in the
// configured store; there is no expiry or rotation.
type Credential struct {
	APIKey    string `json:"apiKey" db:"api_key" bson:"api_key"`
	APISecret string `json:"apiSecret" db:"api_secret" bson:"api_secret"`
}

func (c Credential) IsComplete() bool {
	return c.APIKey != "" && c.APISecret != ""
}

// ConnectRequest is the body of POST /api/exchange/connect.
type ConnectRequest struct {
	APIKey    string `json:"apiKey" validate:"required"`
	APISecret string `json:"apiSecret" validate:"required"`
}
