package client

import "context"

// ChatResponse wraps a chat reply.
type ChatResponse struct {
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

// Chat sends a user message to the assistant and returns its reply.
func (c *Client) Chat(ctx context.Context, userInput string) (*ChatResponse, error) {
	body := map[string]string{"userInput": userInput}

	var resp ChatResponse
	if err := c.post(ctx, "/api/chat", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
