package metadomain

// TokenResponse representa a resposta da API do Meta ao trocar um código ou token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
