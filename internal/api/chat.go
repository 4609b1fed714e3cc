package api

import "context"

// Chat sends one conversation turn. SessionID is nil on the first turn; the
// response carries the id to use for the rest of the conversation.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	var out ChatResponse
	if err := c.postJSON(ctx, "/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
