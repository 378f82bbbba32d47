package gateway

import (
	"context"
	"fmt"
	"net/url"

	"voltio_back_end/internal/models"
)

// ClientByEmail cherche un client par email, nil si aucun
func (c *Client) ClientByEmail(ctx context.Context, email string) (*models.Client, error) {
	q := url.Values{"email": {email}}
	var clients []models.Client
	if err := c.getJSON(ctx, "recherche client", "/clients", q, &clients); err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, nil
	}
	return &clients[0], nil
}

func (c *Client) GetClient(ctx context.Context, id int) (*models.Client, error) {
	var client models.Client
	if err := c.getJSON(ctx, "profil client", fmt.Sprintf("/clients/%d", id), nil, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *Client) CreateClient(ctx context.Context, client models.Client) (*models.Client, error) {
	var created models.Client
	if err := c.postJSON(ctx, "création client", "/clients", client, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
