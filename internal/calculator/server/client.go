package server

import (
	"context"
	"time"

	"github.com/msto63/taxwise/internal/calculator"
	coreGrpc "github.com/msto63/taxwise/pkg/core/grpc"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls a remote TaxService
type Client struct {
	conn    *grpc.ClientConn
	timeout time.Duration
	owned   bool
}

// Dial connects to a TaxService at target
func Dial(cfg coreGrpc.ClientConfig, opts ...grpc.DialOption) (*Client, error) {
	conn, err := coreGrpc.Dial(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, timeout: cfg.Timeout, owned: true}, nil
}

// NewClient wraps an existing connection. Close leaves conn open.
func NewClient(conn *grpc.ClientConn, timeout time.Duration) *Client {
	return &Client{conn: conn, timeout: timeout}
}

// Calculate computes the report for a monthly income given as text
func (c *Client) Calculate(ctx context.Context, monthlyIncome string) (*calculator.Response, error) {
	req, err := structpb.NewStruct(map[string]interface{}{IncomeField: monthlyIncome})
	if err != nil {
		return nil, err
	}

	var out calculator.Response
	if err := c.invoke(ctx, CalculateFullMethod, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBrackets returns the server's active table
func (c *Client) ListBrackets(ctx context.Context) (*calculator.BracketList, error) {
	var out calculator.BracketList
	if err := c.invoke(ctx, ListBracketsFullMethod, &structpb.Struct{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FormatIncome regroups raw input the way the input field does
func (c *Client) FormatIncome(ctx context.Context, raw string) (string, error) {
	req, err := structpb.NewStruct(map[string]interface{}{IncomeField: raw})
	if err != nil {
		return "", err
	}
	var out struct {
		Formatted string `json:"formatted"`
	}
	if err := c.invoke(ctx, FormatIncomeFullMethod, req, &out); err != nil {
		return "", err
	}
	return out.Formatted, nil
}

// Close closes the connection if the client created it
func (c *Client) Close() error {
	if c.owned {
		return c.conn.Close()
	}
	return nil
}

func (c *Client) invoke(ctx context.Context, method string, req *structpb.Struct, v interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, method, req, resp); err != nil {
		return err
	}
	return fromStruct(resp, v)
}
