package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"voltio_back_end/internal/models"
)

// CreateBill persiste une facture ; la passerelle assigne l'id_key
func (c *Client) CreateBill(ctx context.Context, bill models.Bill) (*models.Bill, error) {
	var created models.Bill
	if err := c.postJSON(ctx, "création facture", "/bills", bill, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	var created models.Order
	if err := c.postJSON(ctx, "création commande", "/orders", order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) CreateOrderDetail(ctx context.Context, detail models.OrderDetail) (*models.OrderDetail, error) {
	var created models.OrderDetail
	if err := c.postJSON(ctx, "création détail commande", "/order_details", detail, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// --- Suppressions, utilisées uniquement par la compensation du checkout ---

func (c *Client) DeleteBill(ctx context.Context, id int) error {
	return c.deleteJSON(ctx, "suppression facture", fmt.Sprintf("/bills/%d", id))
}

func (c *Client) DeleteOrder(ctx context.Context, id int) error {
	return c.deleteJSON(ctx, "suppression commande", fmt.Sprintf("/orders/%d", id))
}

func (c *Client) DeleteOrderDetail(ctx context.Context, id int) error {
	return c.deleteJSON(ctx, "suppression détail commande", fmt.Sprintf("/order_details/%d", id))
}

// --- Lectures pour l'historique du profil ---

func (c *Client) OrdersByClient(ctx context.Context, clientID int) ([]models.Order, error) {
	q := url.Values{"client_id": {strconv.Itoa(clientID)}}
	var orders []models.Order
	if err := c.getJSON(ctx, "commandes client", "/orders", q, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) BillsByClient(ctx context.Context, clientID int) ([]models.Bill, error) {
	q := url.Values{"client_id": {strconv.Itoa(clientID)}}
	var bills []models.Bill
	if err := c.getJSON(ctx, "factures client", "/bills", q, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (c *Client) OrderDetailsByOrder(ctx context.Context, orderID int) ([]models.OrderDetail, error) {
	q := url.Values{"order_id": {strconv.Itoa(orderID)}}
	var details []models.OrderDetail
	if err := c.getJSON(ctx, "détails commande", "/order_details", q, &details); err != nil {
		return nil, err
	}
	return details, nil
}
