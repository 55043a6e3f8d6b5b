package appwrite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/storeit/vaulted/core"
)

// uniqueID asks the backend to mint the document id server-side.
const uniqueID = "unique()"

// userDocument is the directory's wire shape for a user record.
type userDocument struct {
	ID        string `json:"$id"`
	CreatedAt string `json:"$createdAt"`
	UpdatedAt string `json:"$updatedAt"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	AccountID string `json:"accountId"`
}

func (d userDocument) toRecord() *core.UserRecord {
	return &core.UserRecord{
		ID:        d.ID,
		FullName:  d.FullName,
		Email:     d.Email,
		Avatar:    d.Avatar,
		AccountID: d.AccountID,
		CreatedAt: parseTime(d.CreatedAt),
		UpdatedAt: parseTime(d.UpdatedAt),
	}
}

type documentList struct {
	Total     int            `json:"total"`
	Documents []userDocument `json:"documents"`
}

// equalQuery builds the backend's JSON query syntax for an equality filter.
func equalQuery(attribute, value string) string {
	q, _ := json.Marshal(map[string]any{
		"method":    "equal",
		"attribute": attribute,
		"values":    []string{value},
	})
	return string(q)
}

func (c *Client) collectionPath() string {
	return fmt.Sprintf("/databases/%s/collections/%s/documents",
		url.PathEscape(c.cfg.DatabaseID), url.PathEscape(c.cfg.UsersCollectionID))
}

// findOne runs an equality query and applies zero-or-one-match semantics.
func (c *Client) findOne(ctx context.Context, attribute, value string) (*core.UserRecord, error) {
	params := url.Values{}
	params.Add("queries[]", equalQuery(attribute, value))

	var list documentList
	if err := c.do(ctx, http.MethodGet, c.collectionPath()+"?"+params.Encode(), nil, &list); err != nil {
		return nil, err
	}

	if list.Total == 0 || len(list.Documents) == 0 {
		return nil, core.ErrUserNotFound
	}
	return list.Documents[0].toRecord(), nil
}

func (c *Client) FindUserByEmail(ctx context.Context, email string) (*core.UserRecord, error) {
	return c.findOne(ctx, "email", email)
}

func (c *Client) FindUserByAccountID(ctx context.Context, accountID string) (*core.UserRecord, error) {
	return c.findOne(ctx, "accountId", accountID)
}

func (c *Client) CreateUser(ctx context.Context, user *core.UserRecord) error {
	body := map[string]any{
		"documentId": uniqueID,
		"data": map[string]string{
			"fullName":  user.FullName,
			"email":     user.Email,
			"avatar":    user.Avatar,
			"accountId": user.AccountID,
		},
	}

	var doc userDocument
	if err := c.do(ctx, http.MethodPost, c.collectionPath(), body, &doc); err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
			return core.ErrUserExists
		}
		return err
	}

	user.ID = doc.ID
	user.CreatedAt = parseTime(doc.CreatedAt)
	user.UpdatedAt = parseTime(doc.UpdatedAt)
	return nil
}
