package api

import "context"

// ListFollowups returns applications idle for 7+ days with no follow-up sent.
func (c *Client) ListFollowups(ctx context.Context) ([]Application, error) {
	var out []Application
	if err := c.getJSON(ctx, "/followups", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GenerateFollowup(ctx context.Context, appID string) (*FollowupDraft, error) {
	var out FollowupDraft
	if err := c.postJSON(ctx, "/followups/"+appID+"/generate", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MarkFollowupSent(ctx context.Context, appID string) error {
	return c.postJSON(ctx, "/followups/"+appID+"/mark-sent", nil, nil)
}
