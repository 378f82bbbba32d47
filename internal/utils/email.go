package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/skip2/go-qrcode"
	"github.com/wneessen/go-mail"

	"voltio_back_end/internal/models"
)

// GenerateOrderQR génère le QR de retrait en magasin pour une commande
func GenerateOrderQR(orderID int, billNumber string) ([]byte, error) {
	payload := fmt.Sprintf("VOLTIO|ORDER:%d|BILL:%s", orderID, billNumber)
	return qrcode.Encode(payload, qrcode.Medium, 256)
}

// SendOrderConfirmationEmail envoie la confirmation de commande avec le QR de
// retrait en pièce jointe. Un échec ici ne remet jamais en cause le checkout.
func SendOrderConfirmationEmail(to string, orderID int, total float64, items []models.CartItem, qrPNG []byte) error {
	msg := mail.NewMsg()

	if err := msg.From("noreply@voltio.shop"); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Confirmation de commande #%d", orderID))
	msg.SetBodyString(mail.TypeTextHTML, generateOrderConfirmationHTML(orderID, total, items))

	if qrPNG != nil {
		msg.AttachReader("retrait_voltio.png", bytes.NewReader(qrPNG))
	}

	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		smtpHost = "localhost"
	}

	client, err := mail.NewClient(smtpHost,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail de confirmation à", to)
	return client.DialAndSend(msg)
}

// generateOrderConfirmationHTML génère le HTML de confirmation de commande
func generateOrderConfirmationHTML(orderID int, total float64, items []models.CartItem) string {
	itemsHTML := ""
	for _, item := range items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f€</td>
				<td>%.2f€</td>
			</tr>`, item.Name, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Votre commande #%d est confirmée</h2>
		<p>Bonjour,</p>
		<p>Merci pour votre achat chez Voltio. Présentez le QR code joint lors du retrait en magasin.</p>
		<table style="width: 100%%; border-collapse: collapse;">
			<tr>
				<th align="left">Produit</th>
				<th align="left">Quantité</th>
				<th align="left">Prix</th>
				<th align="left">Sous-total</th>
			</tr>%s
		</table>
		<p style="font-size: 18px;"><strong>Total : %.2f€</strong></p>
	</div>
</body>
</html>`, orderID, itemsHTML, total)
}
