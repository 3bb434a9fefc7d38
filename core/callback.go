package core

import "net/url"

// Callback is the outcome of an OAuth redirect, extracted from the
// callback URL. Web flows carry an authorization code in the query;
// native deep links carry a direct token pair in the URL fragment
// (e.g. hotelmanager://auth/callback#access_token=...&refresh_token=...).
type Callback struct {
	Code         string
	AccessToken  string
	RefreshToken string
	State        string
	ErrorCode    string
	ErrorDesc    string
}

// HasTokenPair reports whether the provider returned tokens directly,
// skipping the code-exchange step.
func (c *Callback) HasTokenPair() bool {
	return c.AccessToken != "" && c.RefreshToken != ""
}

// ParseCallbackURL extracts the OAuth result from a callback URL.
// Query and fragment parameters are merged; the fragment wins on conflict
// since native providers place tokens there. Returns ErrCallbackInvalid
// when the URL carries neither a code, a token pair, nor a provider error.
func ParseCallbackURL(raw string) (*Callback, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	params := u.Query()
	if u.Fragment != "" {
		frag, err := url.ParseQuery(u.Fragment)
		if err == nil {
			for k, vs := range frag {
				params[k] = vs
			}
		}
	}

	cb := &Callback{
		Code:         params.Get("code"),
		AccessToken:  params.Get("access_token"),
		RefreshToken: params.Get("refresh_token"),
		State:        params.Get("state"),
		ErrorCode:    params.Get("error"),
		ErrorDesc:    params.Get("error_description"),
	}

	if cb.Code == "" && !cb.HasTokenPair() && cb.ErrorCode == "" {
		return nil, ErrCallbackInvalid
	}

	return cb, nil
}
