package erpapi

import "context"

// ConfigResult is the backend's configuration/verification answer. When
// RedirectURL is set the portal must navigate there next (the backend drives
// onboarding this way).
type ConfigResult struct {
	RedirectURL string         `json:"redirect_url"`
	Settings    map[string]any `json:"settings"`
}

// FetchConfig reads the backend-held portal configuration.
func (c *Client) FetchConfig(ctx context.Context) (ConfigResult, error) {
	var result ConfigResult
	if err := c.get(ctx, "/config/", &result); err != nil {
		return ConfigResult{}, err
	}
	return result, nil
}

// VerifyConfig submits onboarding/verification data. The caller must follow
// any redirect_url in the result.
func (c *Client) VerifyConfig(ctx context.Context, payload map[string]string) (ConfigResult, error) {
	var result ConfigResult
	if err := c.post(ctx, "/config/verify", payload, &result); err != nil {
		return ConfigResult{}, err
	}
	return result, nil
}
