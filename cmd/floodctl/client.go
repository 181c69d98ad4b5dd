package main

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const sessionCookie = "floodgate_session"

// Client is a thin HTTP client for the Floodgate API. It attaches the
// stored session cookie to every request.
type Client struct {
	addr    string
	session string
	http    *http.Client
}

func newClient() *Client {
	addr := cfg.Addr
	if env := os.Getenv("FLOODGATE_ADDR"); env != "" {
		addr = env
	}
	session := cfg.Session
	if env := os.Getenv("FLOODGATE_SESSION"); env != "" {
		session = env
	}

	transport := &http.Transport{}
	if cfg.TLSSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		addr:    addr,
		session: session,
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (c *Client) do(method, path string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, c.addr+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: c.session})
	}
	return c.http.Do(req)
}

func (c *Client) decode(resp *http.Response) (map[string]any, error) {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Code != "" {
			return nil, fmt.Errorf("%s: %s", apiErr.Code, apiErr.Message)
		}
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return result, nil
}

func (c *Client) get(path string) (map[string]any, error) {
	resp, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return c.decode(resp)
}

func (c *Client) patchRaw(path string, body []byte) (map[string]any, error) {
	resp, err := c.do(http.MethodPatch, path, body)
	if err != nil {
		return nil, err
	}
	return c.decode(resp)
}

func (c *Client) delete(path string) error {
	resp, err := c.do(http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	_, err = c.decode(resp)
	return err
}

// login authenticates and returns the session token from the Set-Cookie
// header along with the response body.
func (c *Client) login(username, password string) (string, map[string]any, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", nil, err
	}
	resp, err := c.do(http.MethodPost, "/api/auth/authenticate", body)
	if err != nil {
		return "", nil, err
	}
	var session string
	for _, ck := range resp.Cookies() {
		if ck.Name == sessionCookie {
			session = ck.Value
		}
	}
	result, err := c.decode(resp)
	if err != nil {
		return "", nil, err
	}
	if session == "" {
		return "", nil, fmt.Errorf("server did not return a session cookie")
	}
	return session, result, nil
}

func queryEscape(s string) string {
	return url.QueryEscape(s)
}
