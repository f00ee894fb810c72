package paymentprovider

// CreateIntentRequest — параметры создания платёжного намерения.
// Amount указывается в минимальных единицах валюты (центах).
type CreateIntentRequest struct {
	Amount   int64
	Currency string
	Metadata map[string]string
}

// PaymentIntent — ответ провайдера о созданном намерении.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// apiError — тело ошибки провайдера.
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
