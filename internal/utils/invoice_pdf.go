package utils

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/cdproto/page"
)

// RenderInvoicePDF charge la page facture du storefront côté serveur et
// l'imprime en PDF. frontendURL doit ressembler à
// https://hanbloom.com/invoice — l'id de commande passe en query.
func RenderInvoicePDF(frontendURL, orderID string) ([]byte, error) {
	q := url.Values{}
	q.Set("order", orderID)
	fullURL := fmt.Sprintf("%s/invoice?%s", frontendURL, q.Encode())

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// timeout pour éviter de bloquer l'envoi d'email
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate(fullURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("impression PDF: %w", err)
	}

	return pdf, nil
}
