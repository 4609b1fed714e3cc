package api

import "context"

// ListApplications returns the user's applications, newest first.
func (c *Client) ListApplications(ctx context.Context) ([]Application, error) {
	var out []Application
	if err := c.getJSON(ctx, "/applications", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateApplication(ctx context.Context, in ApplicationInput) (*Application, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out Application
	if err := c.postJSON(ctx, "/applications", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateApplication(ctx context.Context, id string, in ApplicationInput) (*Application, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var out Application
	if err := c.putJSON(ctx, "/applications/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteApplication(ctx context.Context, id string) error {
	return c.deleteJSON(ctx, "/applications/"+id)
}

func (c *Client) GetAnalytics(ctx context.Context) (*Analytics, error) {
	var out Analytics
	if err := c.getJSON(ctx, "/analytics", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
