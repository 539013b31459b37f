package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const facebookGraphURL = "https://graph.facebook.com/me"

// FacebookVerifier validates a Facebook access token against the Graph API.
type FacebookVerifier struct {
	graphURL string
	client   *http.Client
}

func NewFacebookVerifier() *FacebookVerifier {
	return &FacebookVerifier{graphURL: facebookGraphURL, client: http.DefaultClient}
}

type facebookUserInfo struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Picture   struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

func (v *FacebookVerifier) Verify(ctx context.Context, accessToken string) (*Profile, error) {
	q := url.Values{}
	q.Set("fields", "id,email,first_name,last_name,picture.type(large)")
	q.Set("access_token", accessToken)

	resp, err := ctxGet(ctx, v.client, v.graphURL+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: graph api returned %d", ErrVerificationFailed, resp.StatusCode)
	}

	var info facebookUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerificationFailed, err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("%w: graph api response has no email", ErrVerificationFailed)
	}

	return &Profile{
		Email:      info.Email,
		FirstName:  info.FirstName,
		LastName:   info.LastName,
		Avatar:     info.Picture.Data.URL,
		ProviderID: info.ID,
	}, nil
}
