package utils

import (
	"fmt"

	"hanbloom_back_end/internal/models"
)

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande.
// qrBase64 (optionnel) : QR du numéro de commande, prêt pour <img src="...">
func GenerateOrderConfirmationHTML(order *models.Order, qrBase64 string) string {
	itemsHTML := ""
	for _, item := range order.LineItems {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: center;">%d</td>
				<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right;">Rs %.2f</td>
				<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right;">Rs %.2f</td>
			</tr>`, item.Name, item.Quantity, item.UnitPrice, item.Subtotal())
	}

	qrHTML := ""
	if qrBase64 != "" {
		qrHTML = fmt.Sprintf(`
			<p style="text-align: center; margin-top: 24px;">
				<img src="%s" alt="QR commande" width="128" height="128" />
			</p>`, qrBase64)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"></head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #fdf6f8;">
	<table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px;">
		<tr>
			<td style="background: linear-gradient(135deg, #f8b5c8 0%%, #e57f9e 100%%); padding: 32px; text-align: center; border-radius: 12px 12px 0 0;">
				<h1 style="margin: 0; color: #ffffff; font-size: 26px;">🌸 Hanbloom</h1>
				<p style="margin: 8px 0 0 0; color: #ffffff;">Merci pour votre commande !</p>
			</td>
		</tr>
		<tr>
			<td style="padding: 32px;">
				<p>Commande <strong>%s</strong> confirmée ✅</p>
				<table style="width: 100%%; border-collapse: collapse;">
					<tr>
						<th style="padding: 8px; text-align: left;">Produit</th>
						<th style="padding: 8px; text-align: center;">Qté</th>
						<th style="padding: 8px; text-align: right;">Prix</th>
						<th style="padding: 8px; text-align: right;">Total</th>
					</tr>
					%s
				</table>
				<p style="text-align: right; font-size: 18px; margin-top: 16px;">
					<strong>Total : Rs %.2f</strong>
				</p>
				%s
			</td>
		</tr>
	</table>
</body>
</html>`, order.OrderNumber, itemsHTML, order.TotalAmount, qrHTML)
}

// GenerateOrderFailedHTML : email d'échec de paiement
func GenerateOrderFailedHTML(order *models.Order) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"></head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif;">
	<h2>❌ Paiement non abouti</h2>
	<p>Le paiement de la commande <strong>%s</strong> n'a pas pu être confirmé.</p>
	<p>Aucun montant n'a été débité. Vous pouvez retenter le paiement depuis votre panier.</p>
</body>
</html>`, order.OrderNumber)
}
