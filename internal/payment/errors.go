package payment

import (
	"errors"
	"fmt"
)

// Taxonomie d'erreurs du flux de paiement.
// Les étapes passerelle font autorité : leur échec est fatal à la requête.
// Les étapes base de données sont auxiliaires : leur échec est loggé,
// jamais remonté à l'appelant (voir PersistErr sur CheckoutResult).
var (
	// ErrNotConfigured : credentials passerelle absents, ce n'est pas la
	// faute de l'appelant — on répond "service indisponible" sans détail
	ErrNotConfigured = errors.New("passerelle de paiement non configurée")

	// ErrTimeout : la passerelle n'a pas répondu dans le délai imparti
	ErrTimeout = errors.New("délai passerelle dépassé")
)

// InvalidRequestError : entrée invalide, remontée telle quelle en 4xx
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return e.Reason
}

// GatewayError : la passerelle a rejeté l'appel. Message du fournisseur
// conservé pour pouvoir être remonté quand il est sûr de l'être.
type GatewayError struct {
	Op  string
	Msg string
	Err error
}

func (e *GatewayError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("passerelle (%s): %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("passerelle (%s): %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
