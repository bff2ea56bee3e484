package auth

import "golang.org/x/oauth2/clientcredentials"

// Conf holds OAuth2 client credentials for outbound requests.
type Conf struct {
	ClientID     string   `json:"client_id" koanf:"client_id"`
	ClientSecret string   `json:"client_secret" koanf:"client_secret"`
	TokenURL     string   `json:"token_url" koanf:"token_url"`
	Scopes       []string `json:"scopes" koanf:"scopes"`
}

// Enabled reports whether credentials were configured.
func (c Conf) Enabled() bool { return c.TokenURL != "" }

func (c Conf) toOauth2Config() clientcredentials.Config {
	return clientcredentials.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		TokenURL:     c.TokenURL,
		Scopes:       c.Scopes,
	}
}
