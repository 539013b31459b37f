package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// GoogleVerifier validates a Google OAuth access token by calling the
// userinfo endpoint with it as a bearer credential.
type GoogleVerifier struct {
	userInfoURL string
}

func NewGoogleVerifier() *GoogleVerifier {
	return &GoogleVerifier{userInfoURL: googleUserInfoURL}
}

type googleUserInfo struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

func (v *GoogleVerifier) Verify(ctx context.Context, accessToken string) (*Profile, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))

	resp, err := ctxGet(ctx, client, v.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: userinfo returned %d", ErrVerificationFailed, resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("%w: userinfo response has no email", ErrVerificationFailed)
	}

	return &Profile{
		Email:      info.Email,
		FirstName:  info.GivenName,
		LastName:   info.FamilyName,
		Avatar:     info.Picture,
		ProviderID: info.Sub,
	}, nil
}

func ctxGet(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}
