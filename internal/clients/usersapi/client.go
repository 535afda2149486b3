package usersapi

import (
	"context"
	"fmt"
	"net/url"
	"time"
	"userdesk/internal/domain/user"
	"userdesk/internal/httpclient"
	"userdesk/internal/logging"
)

const usersPath = "/users"

type Client struct {
	http   *httpclient.Client
	logger logging.Logger
}

type CreateUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CreateUserResponse is the part of the created record the console reads.
type CreateUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

func New(baseURL string, timeout time.Duration, logger logging.Logger) (*Client, error) {
	httpCli, err := httpclient.New(baseURL, timeout, logger.With("component", "users_api_http"))
	if err != nil {
		return nil, err
	}

	return &Client{
		http:   httpCli,
		logger: logger.With("component", "users_api"),
	}, nil
}

// CreateUser POST /users
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (CreateUserResponse, error) {
	var res CreateUserResponse
	if err := c.http.PostJSON(ctx, usersPath, req, &res); err != nil {
		return CreateUserResponse{}, fmt.Errorf("create user: %w", err)
	}
	return res, nil
}

// FindUserByEmail GET /users?email=
func (c *Client) FindUserByEmail(ctx context.Context, email string) (user.User, error) {
	var res user.User
	query := url.Values{"email": {email}}
	if err := c.http.GetJSON(ctx, usersPath, query, &res); err != nil {
		return user.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return res, nil
}
