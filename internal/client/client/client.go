// Package client is the typed HTTP client of the files manager API used by
// fmcli.
package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/netx"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type File struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	ParentID string `json:"parentId"`
}

func (f File) IsFolder() bool {
	return f.Type == "folder"
}

type newFile struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID string `json:"parentId,omitempty"`
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data,omitempty"`
}

type APIClient struct {
	http *netx.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{http: netx.NewClient(baseURL, timeout)}
}

// SetToken makes every following request carry the session token; an empty
// token clears it.
func (c *APIClient) SetToken(token string) {
	c.http.SetHeader(common.TokenHeaderName, token)
}

func (c *APIClient) Register(ctx context.Context, email string, password []byte) (User, error) {
	var u User
	in := map[string]string{"email": email, "password": string(password)}
	err := c.http.Do(ctx, http.MethodPost, "/users", in, &u)
	return u, err
}

// Connect exchanges credentials for a session token.
func (c *APIClient) Connect(ctx context.Context, email string, password []byte) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.http.DoWithBasicAuth(ctx, http.MethodGet, "/connect", email, string(password), &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *APIClient) Disconnect(ctx context.Context) error {
	return c.http.Do(ctx, http.MethodGet, "/disconnect", nil, nil)
}

func (c *APIClient) Me(ctx context.Context) (User, error) {
	var u User
	err := c.http.Do(ctx, http.MethodGet, "/users/me", nil, &u)
	return u, err
}

func (c *APIClient) CreateFolder(ctx context.Context, name, parentID string) (File, error) {
	return c.create(ctx, newFile{Name: name, Type: "folder", ParentID: parentID})
}

// Upload sends data base64-encoded as the API expects. kind is "file" or
// "image".
func (c *APIClient) Upload(ctx context.Context, name, kind, parentID string, isPublic bool, data []byte) (File, error) {
	return c.create(ctx, newFile{
		Name:     name,
		Type:     kind,
		ParentID: parentID,
		IsPublic: isPublic,
		Data:     base64.StdEncoding.EncodeToString(data),
	})
}

func (c *APIClient) create(ctx context.Context, in newFile) (File, error) {
	var f File
	err := c.http.Do(ctx, http.MethodPost, "/files", in, &f)
	return f, err
}

func (c *APIClient) List(ctx context.Context, parentID string, page int) ([]File, error) {
	q := url.Values{}
	if parentID != "" {
		q.Set("parentId", parentID)
	}
	q.Set("page", strconv.Itoa(page))

	var files []File
	if err := c.http.Do(ctx, http.MethodGet, "/files?"+q.Encode(), nil, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (c *APIClient) Get(ctx context.Context, id string) (File, error) {
	var f File
	err := c.http.Do(ctx, http.MethodGet, "/files/"+url.PathEscape(id), nil, &f)
	return f, err
}

func (c *APIClient) SetPublic(ctx context.Context, id string, public bool) (File, error) {
	action := "unpublish"
	if public {
		action = "publish"
	}

	var f File
	err := c.http.Do(ctx, http.MethodPut, fmt.Sprintf("/files/%s/%s", url.PathEscape(id), action), nil, &f)
	return f, err
}

// Download writes the file content, or the thumbnail of the given width when
// size is not empty, into w and returns its content type.
func (c *APIClient) Download(ctx context.Context, id, size string, w io.Writer) (string, error) {
	path := "/files/" + url.PathEscape(id) + "/data"
	if size != "" {
		path += "?size=" + url.QueryEscape(size)
	}
	return c.http.Download(ctx, path, w)
}
