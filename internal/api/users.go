package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jask/userdesk/internal/users"
)

// ListUsers fetches every record. A result that is not a JSON array is
// treated as an empty list.
func (c *Client) ListUsers(ctx context.Context) ([]users.User, error) {
	raw, err := c.Request(ctx, http.MethodGet, "", nil)
	if err != nil {
		return nil, err
	}
	list := []users.User{}
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return list, nil
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: decode users: %v", ErrInvalidResponse, err)
	}
	return list, nil
}

// CreateUser posts a new record. The response body is ignored.
func (c *Client) CreateUser(ctx context.Context, p users.Payload) error {
	_, err := c.Request(ctx, http.MethodPost, "", p)
	return err
}

func (c *Client) UpdateUser(ctx context.Context, id int64, p users.Payload) error {
	_, err := c.Request(ctx, http.MethodPut, userPath(id), p)
	return err
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	_, err := c.Request(ctx, http.MethodDelete, userPath(id), nil)
	return err
}

func userPath(id int64) string {
	return "/" + strconv.FormatInt(id, 10)
}
