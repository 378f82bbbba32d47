package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"voltio_back_end/internal/models"
)

// Politique de livraison : gratuite strictement au-dessus du seuil, sinon forfait
const (
	FreeShippingThreshold = 100.0
	ShippingFlat          = 10.0
)

var (
	ErrEmptyCart        = errors.New("le panier est vide")
	ErrCheckoutInFlight = errors.New("un checkout est déjà en cours pour ce client")
)

// ValidationError porte les fautes de stock agrégées, dans l'ordre du panier
type ValidationError struct {
	Faults []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Faults, " ")
}

// Gateway regroupe les appels distants dont le checkout a besoin.
// Chaque appel est atomique individuellement ; rien ne couvre la séquence.
type Gateway interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateBill(ctx context.Context, bill models.Bill) (*models.Bill, error)
	CreateOrder(ctx context.Context, order models.Order) (*models.Order, error)
	CreateOrderDetail(ctx context.Context, detail models.OrderDetail) (*models.OrderDetail, error)
	DeleteBill(ctx context.Context, id int) error
	DeleteOrder(ctx context.Context, id int) error
	DeleteOrderDetail(ctx context.Context, id int) error
}

// Result est l'issue d'un checkout réussi
type Result struct {
	OrderID    int     `json:"order_id"`
	BillID     int     `json:"bill_id"`
	BillNumber string  `json:"bill_number"`
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	Total      float64 `json:"total"`
}

// Coordinator séquence facture → commande → N détails contre la passerelle.
// Un seul checkout en vol par client : le second appel échoue immédiatement.
// En cas d'échec après le premier write, il supprime au mieux ce que la
// tentative avait déjà créé (détails, puis commande, puis facture) et
// journalise tout enregistrement resté orphelin.
type Coordinator struct {
	gw  Gateway
	now func() time.Time

	mu       sync.Mutex
	inFlight map[int]bool
}

func NewCoordinator(gw Gateway) *Coordinator {
	return &Coordinator{
		gw:       gw,
		now:      time.Now,
		inFlight: make(map[int]bool),
	}
}

// ComputeTotals calcule sous-total, livraison et total une seule fois,
// avant tout write : la même valeur part dans la facture et la commande.
func ComputeTotals(items []models.CartItem) (subtotal, shipping, total float64) {
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	if subtotal > FreeShippingThreshold {
		shipping = 0
	} else {
		shipping = ShippingFlat
	}
	return subtotal, shipping, subtotal + shipping
}

// Checkout transforme le panier en facture + commande + détails.
// Aucune idempotence entre tentatives : relancer un checkout échoué est une
// action explicite de l'utilisateur et produit une nouvelle facture.
func (c *Coordinator) Checkout(ctx context.Context, clientID int, items []models.CartItem) (*Result, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if !c.begin(clientID) {
		return nil, ErrCheckoutInFlight
	}
	defer c.end(clientID)

	// --- Revalidation du stock sur un instantané frais du catalogue ---
	products, err := c.gw.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("lecture du catalogue: %w", err)
	}

	if faults := ValidateStock(items, SnapshotByID(products)); len(faults) > 0 {
		return nil, &ValidationError{Faults: faults}
	}

	subtotal, shipping, total := ComputeTotals(items)

	// --- Étape 1 : facture ---
	bill, err := c.gw.CreateBill(ctx, models.Bill{
		ClientID:    clientID,
		Total:       total,
		BillNumber:  "B-" + uuid.NewString(),
		Date:        c.now().Format("2006-01-02"),
		PaymentType: models.PaymentTypeCard,
	})
	if err != nil {
		return nil, fmt.Errorf("création de la facture: %w", err)
	}

	// --- Étape 2 : commande, même total que la facture ---
	order, err := c.gw.CreateOrder(ctx, models.Order{
		ClientID:       clientID,
		Total:          total,
		Status:         models.OrderStatusPending,
		DeliveryMethod: models.DeliveryMethodPickup,
		Date:           c.now().Format(time.RFC3339),
		BillID:         bill.ID,
	})
	if err != nil {
		c.compensate(nil, nil, bill)
		return nil, fmt.Errorf("création de la commande: %w", err)
	}

	// --- Étape 3 : détails, un par ligne, en parallèle ---
	// Pas d'annulation croisée : chaque ligne est tentée jusqu'au bout et
	// toutes les issues sont attendues avant de conclure.
	var (
		detailMu sync.Mutex
		created  []models.OrderDetail
	)

	var g errgroup.Group
	for _, item := range items {
		item := item
		g.Go(func() error {
			detail, err := c.gw.CreateOrderDetail(ctx, models.OrderDetail{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price, // prix figé au moment de l'achat
			})
			if err != nil {
				return err
			}
			detailMu.Lock()
			created = append(created, *detail)
			detailMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.compensate(created, order, bill)
		return nil, fmt.Errorf("création des détails de commande: %w", err)
	}

	log.Printf("✅ Checkout client %d: commande #%d, facture #%d (%.2f€)", clientID, order.ID, bill.ID, total)

	return &Result{
		OrderID:    order.ID,
		BillID:     bill.ID,
		BillNumber: bill.BillNumber,
		Subtotal:   subtotal,
		Shipping:   shipping,
		Total:      total,
	}, nil
}

// compensate tente d'effacer ce que la tentative a créé, dans l'ordre inverse
// des écritures. Au mieux seulement : un échec ici laisse un enregistrement
// orphelin côté passerelle, qu'on journalise au lieu de le cacher.
func (c *Coordinator) compensate(details []models.OrderDetail, order *models.Order, bill *models.Bill) {
	// Contexte neuf : la compensation doit partir même si l'appel d'origine
	// a été annulé ou a expiré
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	for _, d := range details {
		if err := c.gw.DeleteOrderDetail(ctx, d.ID); err != nil {
			log.Printf("⚠️ Compensation: détail de commande #%d orphelin: %v", d.ID, err)
		}
	}
	if order != nil {
		if err := c.gw.DeleteOrder(ctx, order.ID); err != nil {
			log.Printf("⚠️ Compensation: commande #%d orpheline: %v", order.ID, err)
		}
	}
	if bill != nil {
		if err := c.gw.DeleteBill(ctx, bill.ID); err != nil {
			log.Printf("⚠️ Compensation: facture #%d orpheline: %v", bill.ID, err)
		}
	}
}

func (c *Coordinator) begin(clientID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight[clientID] {
		return false
	}
	c.inFlight[clientID] = true
	return true
}

func (c *Coordinator) end(clientID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, clientID)
}
